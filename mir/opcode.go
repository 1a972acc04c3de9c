// Package mir implements Zinc's bytecode intermediate representation: the
// instruction set, an AST-to-bytecode compiler, and a disassembler (spec
// §4.5). The opcode family and instruction shape are grounded on
// original_source/bytecode.py's OpCode enum and Instruction dataclass.
package mir

import "fmt"

// Op is a single bytecode opcode.
type Op int

const (
	// Stack operations
	PushInt Op = iota
	PushFloat
	PushString
	PushChar
	PushBool
	PushNull
	Pop
	Dup

	// Variable operations
	LoadLocal
	StoreLocal
	LoadGlobal
	StoreGlobal

	// Arithmetic
	Add
	Sub
	Mul
	Div
	Mod
	Neg
	Pow

	// Comparison
	Eq
	Ne
	Lt
	Le
	Gt
	Ge

	// Logical
	And
	Or
	Not

	// Control flow
	Jump
	JumpIfFalse
	JumpIfTrue

	// Function operations
	Call
	Return
	ReturnValue

	// Built-in I/O
	Print
	PrintNewline
	InputInt
	InputFloat
	InputString
	InputChar

	// Math
	Sqrt
	Abs

	// Array operations
	ArrayNew
	ArrayGet
	ArraySet
	ArrayLen
	ArrayLiteral

	// Struct operations
	StructNew
	StructGet
	StructSet

	// Memory operations
	Alloc
	Free
	LoadPtr
	StorePtr
	AddressOf

	// Random
	Random

	// Program control
	Halt
	Nop
)

var opNames = map[Op]string{
	PushInt: "PUSH_INT", PushFloat: "PUSH_FLOAT", PushString: "PUSH_STRING",
	PushChar: "PUSH_CHAR", PushBool: "PUSH_BOOL", PushNull: "PUSH_NULL",
	Pop: "POP", Dup: "DUP",
	LoadLocal: "LOAD_LOCAL", StoreLocal: "STORE_LOCAL",
	LoadGlobal: "LOAD_GLOBAL", StoreGlobal: "STORE_GLOBAL",
	Add: "ADD", Sub: "SUB", Mul: "MUL", Div: "DIV", Mod: "MOD", Neg: "NEG", Pow: "POW",
	Eq: "EQ", Ne: "NE", Lt: "LT", Le: "LE", Gt: "GT", Ge: "GE",
	And: "AND", Or: "OR", Not: "NOT",
	Jump: "JUMP", JumpIfFalse: "JUMP_IF_FALSE", JumpIfTrue: "JUMP_IF_TRUE",
	Call: "CALL", Return: "RETURN", ReturnValue: "RETURN_VALUE",
	Print: "PRINT", PrintNewline: "PRINT_NEWLINE",
	InputInt: "INPUT_INT", InputFloat: "INPUT_FLOAT", InputString: "INPUT_STRING", InputChar: "INPUT_CHAR",
	Sqrt: "SQRT", Abs: "ABS",
	ArrayNew: "CREATE_ARRAY", ArrayGet: "ARRAY_GET", ArraySet: "ARRAY_SET",
	ArrayLen: "ARRAY_LENGTH", ArrayLiteral: "ARRAY_LITERAL",
	StructNew: "CREATE_STRUCT", StructGet: "STRUCT_GET", StructSet: "STRUCT_SET",
	Alloc: "ALLOC", Free: "FREE", LoadPtr: "LOAD_PTR", StorePtr: "STORE_PTR", AddressOf: "ADDRESS_OF",
	Random: "RANDOM",
	Halt:   "HALT", Nop: "NOP",
}

func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return fmt.Sprintf("OP(%d)", int(o))
}

// Instruction is a single bytecode instruction with an optional operand.
// Line carries the source line for diagnostics (original_source/bytecode.py
// tags every Instruction with its originating line the same way).
type Instruction struct {
	Op      Op
	Operand interface{}
	Line    int
}

func (i Instruction) String() string {
	if i.Operand != nil {
		return fmt.Sprintf("%s %v", i.Op, i.Operand)
	}
	return i.Op.String()
}

// CallOperand is the operand shape for Call: callee name plus argument
// count, matching original_source/compiler.py's `(name, argc)` tuples.
type CallOperand struct {
	Name string
	Argc int
}

// AddressOfOperand tags whether ADDRESS_OF targets a local slot or a global
// name.
type AddressOfOperand struct {
	Local bool
	Index int
	Name  string
}
