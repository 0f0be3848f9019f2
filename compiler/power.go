package compiler

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// The Starlark grammar has no power operator. Before parsing, every
// "a ** b" is rewritten into the call suffix "a(**(b))": the suffix binds to
// the primary on its left like Python's **, a leading unary sign still
// applies to the whole power, and chains nest to the right. The lowerer
// recognizes these calls by the position of the inserted parenthesis, so a
// user-written f(**x) is still rejected as argument unpacking.

type tokenKind int

const (
	tokOther tokenKind = iota
	tokOperand
	tokOpen
	tokClose
	tokDot
	tokSign
	tokPower
)

type token struct {
	kind       tokenKind
	start, end int
}

// lineCol is a 1-based line and rune column, counted the way the Starlark
// scanner counts them.
type lineCol struct {
	line, col int32
}

// powerSource is the text handed to the parser together with what is needed
// to map positions back to the expression the user wrote.
type powerSource struct {
	src    string
	text   string
	origin []int
	calls  map[lineCol]bool
}

var keywords = map[string]bool{
	"and": true, "or": true, "not": true, "in": true, "is": true,
	"if": true, "else": true, "for": true, "lambda": true,
}

func rewritePowers(src string) *powerSource {
	ps := &powerSource{src: src, text: src}
	if !strings.Contains(src, "**") {
		return ps
	}
	toks, ok := scanTokens(src)
	if !ok {
		return ps
	}

	rewrite := make(map[int]bool)
	closers := make(map[int]int)
	for i, t := range toks {
		if t.kind != tokPower || i == 0 {
			continue
		}
		if prev := toks[i-1].kind; prev != tokOperand && prev != tokClose {
			continue
		}
		end := unaryEnd(src, toks, i+1)
		if end < 0 {
			continue
		}
		rewrite[i] = true
		closers[end-1]++
	}
	if len(rewrite) == 0 {
		return ps
	}

	var b strings.Builder
	origin := make([]int, 0, len(src)+6*len(rewrite)+1)
	var callOffsets []int
	insert := func(s string, at int) {
		b.WriteString(s)
		for range len(s) {
			origin = append(origin, at)
		}
	}
	copySrc := func(from, to int) {
		b.WriteString(src[from:to])
		for k := from; k < to; k++ {
			origin = append(origin, k)
		}
	}

	pos := 0
	for i, t := range toks {
		copySrc(pos, t.start)
		if rewrite[i] {
			callOffsets = append(callOffsets, b.Len())
			b.WriteString("(**(")
			origin = append(origin, t.start, t.start, t.start+1, t.start+1)
		} else {
			copySrc(t.start, t.end)
		}
		for range closers[i] {
			insert("))", t.end)
		}
		pos = t.end
	}
	copySrc(pos, len(src))
	origin = append(origin, len(src))

	ps.text = b.String()
	ps.origin = origin
	ps.calls = make(map[lineCol]bool, len(callOffsets))
	for _, off := range callOffsets {
		ps.calls[positionAt(ps.text, off)] = true
	}
	return ps
}

// isPowerCall reports whether a call's opening parenthesis was inserted by
// rewritePowers.
func (ps *powerSource) isPowerCall(line, col int32) bool {
	return ps.calls[lineCol{line, col}]
}

// restore rewrites the position of a SyntaxError in err from parser
// coordinates to coordinates in the original expression.
func (ps *powerSource) restore(err error) {
	if ps.origin == nil {
		return
	}
	var se *SyntaxError
	if !errors.As(err, &se) || se.Line <= 0 || se.Col <= 0 {
		return
	}
	off := offsetAt(ps.text, lineCol{int32(se.Line), int32(se.Col)})
	lc := positionAt(ps.src, ps.origin[off])
	se.Line, se.Col = int(lc.line), int(lc.col)
}

// unaryEnd returns the index just past the unary expression starting at
// toks[j], or -1 when there is none.
func unaryEnd(src string, toks []token, j int) int {
	for j < len(toks) && toks[j].kind == tokSign {
		j++
	}
	j = primaryEnd(src, toks, j)
	if j < 0 {
		return -1
	}
	if j < len(toks) && toks[j].kind == tokPower {
		return unaryEnd(src, toks, j+1)
	}
	return j
}

func primaryEnd(src string, toks []token, j int) int {
	if j >= len(toks) {
		return -1
	}
	switch toks[j].kind {
	case tokOperand:
		j++
	case tokOpen:
		if j = matchEnd(toks, j); j < 0 {
			return -1
		}
	default:
		return -1
	}

	for j < len(toks) {
		t := toks[j]
		switch {
		case t.kind == tokOpen && src[t.start] != '{':
			if j = matchEnd(toks, j); j < 0 {
				return -1
			}
		case t.kind == tokDot && j+1 < len(toks) && toks[j+1].kind == tokOperand:
			j += 2
		default:
			return j
		}
	}
	return j
}

func matchEnd(toks []token, j int) int {
	depth := 0
	for ; j < len(toks); j++ {
		switch toks[j].kind {
		case tokOpen:
			depth++
		case tokClose:
			depth--
			if depth == 0 {
				return j + 1
			}
		}
	}
	return -1
}

// scanTokens splits src into the coarse tokens the rewrite needs. It reports
// false for input it cannot follow, such as an unterminated string, in which
// case the parser sees the expression unchanged.
func scanTokens(src string) ([]token, bool) {
	var toks []token
	add := func(kind tokenKind, start, end int) {
		toks = append(toks, token{kind: kind, start: start, end: end})
	}

	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\\':
			i++
		case c == '#':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '\'' || c == '"':
			end, ok := stringEnd(src, i)
			if !ok {
				return nil, false
			}
			add(tokOperand, i, end)
			i = end
		case isDigit(c) || (c == '.' && i+1 < len(src) && isDigit(src[i+1])):
			end := numberEnd(src, i)
			add(tokOperand, i, end)
			i = end
		case strings.HasPrefix(src[i:], "**"):
			add(tokPower, i, i+2)
			i += 2
		case c == '(' || c == '[' || c == '{':
			add(tokOpen, i, i+1)
			i++
		case c == ')' || c == ']' || c == '}':
			add(tokClose, i, i+1)
			i++
		case c == '.':
			add(tokDot, i, i+1)
			i++
		case c == '+' || c == '-' || c == '~':
			add(tokSign, i, i+1)
			i++
		default:
			r, size := utf8.DecodeRuneInString(src[i:])
			if r != '_' && !unicode.IsLetter(r) {
				add(tokOther, i, i+size)
				i += size
				continue
			}
			end := i + size
			for end < len(src) {
				r, size := utf8.DecodeRuneInString(src[end:])
				if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}
				end += size
			}
			if end < len(src) && (src[end] == '\'' || src[end] == '"') && isStringPrefix(src[i:end]) {
				strEnd, ok := stringEnd(src, end)
				if !ok {
					return nil, false
				}
				add(tokOperand, i, strEnd)
				i = strEnd
				continue
			}
			kind := tokOperand
			if keywords[src[i:end]] {
				kind = tokOther
			}
			add(kind, i, end)
			i = end
		}
	}
	return toks, true
}

func stringEnd(src string, i int) (int, bool) {
	delim := src[i : i+1]
	if strings.HasPrefix(src[i:], strings.Repeat(delim, 3)) {
		delim = strings.Repeat(delim, 3)
	}
	for j := i + len(delim); j < len(src); {
		switch {
		case src[j] == '\\':
			j += 2
		case strings.HasPrefix(src[j:], delim):
			return j + len(delim), true
		case src[j] == '\n' && len(delim) == 1:
			return 0, false
		default:
			j++
		}
	}
	return 0, false
}

func numberEnd(src string, i int) int {
	radix := src[i] == '0' && i+1 < len(src) && strings.ContainsRune("xXoObB", rune(src[i+1]))
	j := i
	for j < len(src) {
		c := src[j]
		switch {
		case isDigit(c) || c == '_' || c == '.' || (c|0x20 >= 'a' && c|0x20 <= 'z'):
			j++
		case (c == '+' || c == '-') && !radix && src[j-1]|0x20 == 'e':
			j++
		default:
			return j
		}
	}
	return j
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isStringPrefix(s string) bool {
	switch strings.ToLower(s) {
	case "r", "b", "rb", "br":
		return true
	}
	return false
}

// positionAt returns the line and column of byte offset off in text.
func positionAt(text string, off int) lineCol {
	lc := lineCol{line: 1, col: 1}
	for i, r := range text {
		if i >= off {
			break
		}
		lc = advance(text, i, r, lc)
	}
	return lc
}

// offsetAt is the inverse of positionAt. Positions past the end map to
// len(text).
func offsetAt(text string, want lineCol) int {
	lc := lineCol{line: 1, col: 1}
	for i, r := range text {
		if lc == want {
			return i
		}
		lc = advance(text, i, r, lc)
	}
	return len(text)
}

func advance(text string, i int, r rune, lc lineCol) lineCol {
	switch {
	case r == '\r' && i+1 < len(text) && text[i+1] == '\n':
	case r == '\n' || r == '\r':
		lc.line++
		lc.col = 1
	default:
		lc.col++
	}
	return lc
}
