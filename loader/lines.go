package loader

import (
	"bufio"
	"fmt"
	"strings"
)

// CommentPrefix starts a line that holds no expression.
const CommentPrefix = "#"

// Line is one expression read from a Loader.
type Line struct {
	// Number is the 1-based line number in the source.
	Number int
	Text   string
}

// singleExpression is implemented by loaders whose whole content is one
// expression.
type singleExpression interface {
	Expression() Line
}

// Lines reads every expression from l, one per line. Blank lines and lines
// starting with CommentPrefix are skipped. A loader holding a single
// expression yields exactly that expression, unnumbered.
func Lines(l Loader) ([]Line, error) {
	if s, ok := l.(singleExpression); ok {
		return []Line{s.Expression()}, nil
	}

	r, err := l.GetReader()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", l.GetSourceURL(), err)
	}
	defer func() { _ = r.Close() }()

	var out []Line
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, CommentPrefix) {
			continue
		}
		out = append(out, Line{Number: n, Text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", l.GetSourceURL(), err)
	}
	return out, nil
}
