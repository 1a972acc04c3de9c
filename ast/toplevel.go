package ast

// Decl is a top-level node: include directive, struct definition, function
// definition, or the main function.
type Decl interface {
	Node
	declNode()
}

// Include is `include the standard input and output` etc (spec §6's fixed
// mapping table resolves Target to a concrete header at lowering time).
type Include struct {
	Base
	Target string
}

type Field struct {
	Name string
	Type *Type
}

// StructDef is `define a <Name> as having: <fields> end`.
type StructDef struct {
	Base
	Name   string
	Fields []Field
}

type Param struct {
	Name string
	Type *Type
}

// FuncDef is `to <name phrase> [with <params>] [and return a <type>]:
// <block> end`. Name is already the underscore-joined sanitized form (spec
// §4.4); Phrase preserves the original surface words for diagnostics.
type FuncDef struct {
	Base
	Name    string
	Phrase  []string
	Params  []Param
	RetType *Type // nil for void
	Body    []Stmt
}

// MainFunc is `to do the main thing: <block> end`.
type MainFunc struct {
	Base
	Body []Stmt
}

func (*Include) declNode()   {}
func (*StructDef) declNode() {}
func (*FuncDef) declNode()   {}
func (*MainFunc) declNode()  {}

// Program is the whole parsed source file.
type Program struct {
	Decls []Decl
}
