// Package allowlist holds the fixed set of names an expression may reference.
//
// The list is the security boundary of the evaluator: a name that is not in
// the list can never be resolved, called, or otherwise reached while an
// expression is evaluated. Lists are immutable once built, and every entry is
// declared explicitly rather than discovered at run time.
package allowlist

import (
	"fmt"
	"slices"
	"strings"

	"github.com/robbyt/go-safecalc/internal/numeric"
)

// ReservedPrefix marks names that may never be added to a List.
const ReservedPrefix = "__"

// Variadic is the MaxArgs value of a function that accepts any number of
// arguments from MinArgs upwards.
const Variadic = -1

// Func implements an allow-listed function. The argument count has already
// been checked against the entry's arity when it is called.
type Func func(args []numeric.Value) (numeric.Value, error)

// Entry is a single allow-listed constant or function.
type Entry struct {
	name    string
	doc     string
	value   numeric.Value
	fn      Func
	minArgs int
	maxArgs int
}

// Constant declares a named numeric constant.
func Constant(name string, value numeric.Value, doc string) *Entry {
	return &Entry{name: name, doc: doc, value: value}
}

// Function declares a named function taking between minArgs and maxArgs
// arguments. Use Variadic as maxArgs for no upper bound.
func Function(name string, minArgs, maxArgs int, fn Func, doc string) *Entry {
	return &Entry{name: name, doc: doc, fn: fn, minArgs: minArgs, maxArgs: maxArgs}
}

func (e *Entry) Name() string { return e.name }

func (e *Entry) Doc() string { return e.doc }

// IsFunction reports whether the entry is callable.
func (e *Entry) IsFunction() bool {
	return e.fn != nil
}

// Value returns the constant's value. It is the zero Value for functions.
func (e *Entry) Value() numeric.Value {
	return e.value
}

// Arity returns the accepted argument range of a function.
func (e *Entry) Arity() (minArgs, maxArgs int) {
	return e.minArgs, e.maxArgs
}

// CheckArity returns an error when n arguments cannot be passed to the entry.
func (e *Entry) CheckArity(n int) error {
	if !e.IsFunction() {
		return numeric.Errorf(numeric.ErrType, fmt.Sprintf("'%s' is not callable", e.name))
	}
	if n >= e.minArgs && (e.maxArgs == Variadic || n <= e.maxArgs) {
		return nil
	}

	var want string
	switch {
	case e.maxArgs == Variadic:
		want = fmt.Sprintf("at least %s", plural(e.minArgs))
	case e.minArgs == e.maxArgs:
		want = fmt.Sprintf("exactly %s", plural(e.minArgs))
	default:
		want = fmt.Sprintf("from %d to %s", e.minArgs, plural(e.maxArgs))
	}
	return numeric.Errorf(
		numeric.ErrType,
		fmt.Sprintf("%s() takes %s (%d given)", e.name, want, n),
	)
}

// Call invokes the function with args after checking the arity.
func (e *Entry) Call(args []numeric.Value) (numeric.Value, error) {
	if err := e.CheckArity(len(args)); err != nil {
		return numeric.Value{}, err
	}
	return e.fn(args)
}

// Signature returns a short human-readable form such as "log(x[, y])".
func (e *Entry) Signature() string {
	if !e.IsFunction() {
		return e.name
	}

	var b strings.Builder
	b.WriteString(e.name)
	b.WriteByte('(')
	for i := range e.minArgs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(paramName(i))
	}
	switch {
	case e.maxArgs == Variadic:
		if e.minArgs > 0 {
			b.WriteString(", ")
		}
		b.WriteString("...")
	case e.maxArgs > e.minArgs:
		b.WriteByte('[')
		for i := e.minArgs; i < e.maxArgs; i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(paramName(i))
		}
		b.WriteByte(']')
	}
	b.WriteByte(')')
	return b.String()
}

func paramName(i int) string {
	if i < 3 {
		return []string{"x", "y", "z"}[i]
	}
	return fmt.Sprintf("a%d", i)
}

func plural(n int) string {
	if n == 1 {
		return "one argument"
	}
	return fmt.Sprintf("%d arguments", n)
}

// List is an immutable set of allow-listed entries keyed by name.
type List struct {
	entries map[string]*Entry
	names   []string
}

// New builds a List. Names must be valid identifiers, unique, and must not
// start with ReservedPrefix.
func New(entries ...*Entry) (*List, error) {
	l := &List{
		entries: make(map[string]*Entry, len(entries)),
		names:   make([]string, 0, len(entries)),
	}
	for _, e := range entries {
		if e == nil {
			return nil, ErrNilEntry
		}
		if !isIdentifier(e.name) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidName, e.name)
		}
		if strings.HasPrefix(e.name, ReservedPrefix) {
			return nil, fmt.Errorf("%w: %q", ErrReservedName, e.name)
		}
		if _, dup := l.entries[e.name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, e.name)
		}
		if e.IsFunction() && (e.minArgs < 0 || (e.maxArgs != Variadic && e.maxArgs < e.minArgs)) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidArity, e.name)
		}
		l.entries[e.name] = e
		l.names = append(l.names, e.name)
	}
	slices.Sort(l.names)
	return l, nil
}

// MustNew is like New but panics on error. It is meant for package-level
// lists built from literal entries.
func MustNew(entries ...*Entry) *List {
	l, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return l
}

// Lookup returns the entry for name.
func (l *List) Lookup(name string) (*Entry, bool) {
	e, ok := l.entries[name]
	return e, ok
}

// Has reports whether name is allow-listed.
func (l *List) Has(name string) bool {
	_, ok := l.entries[name]
	return ok
}

// Names returns the allow-listed names in sorted order.
func (l *List) Names() []string {
	return slices.Clone(l.names)
}

func (l *List) Len() int {
	return len(l.names)
}

// Entries returns the entries sorted by name.
func (l *List) Entries() []*Entry {
	out := make([]*Entry, 0, len(l.names))
	for _, n := range l.names {
		out = append(out, l.entries[n])
	}
	return out
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
