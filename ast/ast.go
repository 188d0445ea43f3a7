// Package ast holds the node types produced by the parser. Nodes are
// plain data: built once during a parse, immutable afterwards, and
// owned exclusively top-down (no node is shared by two parents).
package ast

// Prototype is the signature of a callable: its name and the ordered
// parameter names. Parameter name uniqueness is not checked here.
type Prototype struct {
	Name string
	Args []string
}

// Function pairs a prototype with its single expression body.
type Function struct {
	Prototype Prototype
	Body      Expression
}

type Expression interface {
	isExpression()
}

// Number is a 64-bit float literal.
type Number float64

func (Number) isExpression() {}

// Variable is a reference to a named value.
type Variable string

func (Variable) isExpression() {}

// Binary applies an operator character to two operands.
type Binary struct {
	Op    rune
	Left  Expression
	Right Expression
}

func (Binary) isExpression() {}

// Call invokes a named callee with ordered arguments.
type Call struct {
	Callee string
	Args   []Expression
}

func (Call) isExpression() {}

// TopLevel is one top-level declaration of a program.
type TopLevel interface {
	isTopLevel()
}

// ExternDecl declares a function by prototype only; its body lives
// outside the program.
type ExternDecl struct {
	Proto Prototype
}

func (ExternDecl) isTopLevel() {}

// FunctionDef defines a function together with its body.
type FunctionDef struct {
	Func Function
}

func (FunctionDef) isTopLevel() {}

// Program is the ordered sequence of top-level declarations of one
// source unit.
type Program []TopLevel
