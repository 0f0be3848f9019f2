package compiler

import "github.com/robbyt/go-safecalc/internal/tree"

// Executable is a compiled expression, ready to run any number of times.
type Executable struct {
	source string
	root   tree.Node
	names  []string
}

func newExecutable(source string, root tree.Node, names []string) *Executable {
	if source == "" || root == nil {
		return nil
	}
	return &Executable{source: source, root: root, names: names}
}

// GetSource returns the trimmed expression text.
func (e *Executable) GetSource() string {
	return e.source
}

// GetRoot returns the checked expression tree.
func (e *Executable) GetRoot() tree.Node {
	return e.root
}

// GetNames returns the allow-listed names the expression refers to, in
// source order.
func (e *Executable) GetNames() []string {
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}
