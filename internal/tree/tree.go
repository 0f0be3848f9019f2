// Package tree defines the checked expression tree produced by the compiler
// and walked by the evaluator. Names are resolved to allow-list entries when
// the tree is built, so walking it never looks a name up by string.
package tree

import (
	"github.com/robbyt/go-safecalc/allowlist"
	"github.com/robbyt/go-safecalc/internal/numeric"
)

// Op is an arithmetic operator.
type Op int

const (
	Add Op = iota
	Sub
	Mul
	Div
	FloorDiv
	Mod
	Pow
	Neg
	Pos
)

var opNames = [...]string{
	Add:      "+",
	Sub:      "-",
	Mul:      "*",
	Div:      "/",
	FloorDiv: "//",
	Mod:      "%",
	Pow:      "**",
	Neg:      "-",
	Pos:      "+",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return "?"
	}
	return opNames[o]
}

// Node is one node of a checked expression tree.
type Node interface {
	node()
}

// Const is a numeric literal.
type Const struct {
	Value numeric.Value
}

// Name is a reference to an allow-listed constant.
type Name struct {
	Entry *allowlist.Entry
}

// Unary applies Neg or Pos to X.
type Unary struct {
	Op Op
	X  Node
}

// Binary applies an arithmetic operator to X and Y.
type Binary struct {
	Op   Op
	X, Y Node
}

// Call invokes an allow-listed function.
type Call struct {
	Entry *allowlist.Entry
	Args  []Node
}

func (*Const) node()  {}
func (*Name) node()   {}
func (*Unary) node()  {}
func (*Binary) node() {}
func (*Call) node()   {}
