// Package ast defines the Zinc abstract syntax tree: a tagged tree whose
// node variants fall into expressions, statements, and top-level
// declarations (spec §3).
package ast

import "github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/report"

// Node is implemented by every AST node; every node carries a source
// position propagated from its first token (spec §3 invariant).
type Node interface {
	Pos() *report.TextSpan
}

type Base struct {
	Span *report.TextSpan
}

func (b Base) Pos() *report.TextSpan { return b.Span }

// ---------------------------------------------------------------------
// Types

// TypeKind is the closed set of base kinds a Type may be built from.
type TypeKind int

const (
	TInt TypeKind = iota
	TDecimal
	TChar
	TString
	TBool
	TVoid
	TPointer
	TFixedArray
	TOpenArray
	TStruct
)

// Type is either a base kind or a one-level constructor over another Type.
type Type struct {
	Kind     TypeKind
	Elem     *Type  // for TPointer, TFixedArray, TOpenArray
	Size     int    // for TFixedArray
	StructName string // for TStruct
}

// ---------------------------------------------------------------------
// Expressions

type Expr interface {
	Node
	exprNode()
}

type IntLit struct {
	Base
	Value int64
}

type DecimalLit struct {
	Base
	Value float64
}

type StringLit struct {
	Base
	Value string
}

type CharLit struct {
	Base
	Value rune
}

type BoolLit struct {
	Base
	Value bool
}

type NullLit struct{ Base }

// VarRef is a bare identifier reference. Resolver annotates Kind.
type VarRef struct {
	Base
	Name string
	Kind RefKind
}

// RefKind tags how a VarRef/Call resolved (spec §4.3).
type RefKind int

const (
	RefUnresolved RefKind = iota
	RefLocal
	RefParam
	RefGlobal
	RefFunction
	RefPassthrough
)

// UnaryOp covers negative, not, and the prefix builtin phrases.
type UnaryOp struct {
	Base
	Op      UnaryKind
	Operand Expr
}

type UnaryKind int

const (
	UNeg UnaryKind = iota
	UNot
	USqrt
	UAbs
	UAddressOf
	UDeref
)

// BinaryOp covers arithmetic, comparison, and logical operators.
type BinaryOp struct {
	Base
	Op    BinaryKind
	Left  Expr
	Right Expr
	// Third is used by ternary-like comparisons (is between A and B).
	Third Expr
}

type BinaryKind int

const (
	BAdd BinaryKind = iota
	BSub
	BMul
	BDiv
	BMod
	BPow

	BEq
	BNe
	BGt
	BLt
	BGe
	BLe
	BBetween
	BContains

	BAnd
	BOr
)

// ArrayIndex is `item number N in X`, `the first/last item in X`, or `X[N]`
// (raw-C passthrough uses its own node instead).
type ArrayIndex struct {
	Base
	Array Expr
	Index Expr // nil for first/last-item sugar
	First bool
	Last  bool
}

// FieldAccess is possessive (`bob's name`) or dotted (`bob.name`) access;
// both produce this node (spec §3).
type FieldAccess struct {
	Base
	Struct Expr
	Field  string
}

// Call is a function call, resolved by the parser's two-pass phrase match
// against the forward-declared function table.
type Call struct {
	Base
	Name string
	Args []Expr
	Kind RefKind
}

// RawExpr wraps a raw-C passthrough fragment used in expression position.
type RawExpr struct {
	Base
	Text string
}

// Concat is the operand list built by `A and then B` / `A followed by B`
// in output statements (spec §4.2 "Concatenation lists").
type Concat struct {
	Base
	Operands []Expr
}

// RandomNumber is `a random number between A and B` (supplemental feature).
type RandomNumber struct {
	Base
	Low, High Expr
}

func (*IntLit) exprNode()       {}
func (*DecimalLit) exprNode()   {}
func (*StringLit) exprNode()    {}
func (*CharLit) exprNode()      {}
func (*BoolLit) exprNode()      {}
func (*NullLit) exprNode()      {}
func (*VarRef) exprNode()       {}
func (*UnaryOp) exprNode()      {}
func (*BinaryOp) exprNode()     {}
func (*ArrayIndex) exprNode()   {}
func (*FieldAccess) exprNode()  {}
func (*Call) exprNode()         {}
func (*RawExpr) exprNode()      {}
func (*Concat) exprNode()       {}
func (*RandomNumber) exprNode() {}
