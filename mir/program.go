package mir

import "fmt"

// Function is a compiled function's flat instruction list plus its local
// variable slot count, grounded on original_source/bytecode.py's Function
// dataclass.
type Function struct {
	Name         string
	Params       []string
	ParamTypes   []string
	ReturnType   string
	Code         []Instruction
	LocalsCount  int
	IsMain       bool
}

// StructDef records a struct's field names in declaration order alongside
// their type strings, for the CREATE_STRUCT/STRUCT_GET/STRUCT_SET opcodes.
type StructDef struct {
	Name   string
	Fields []FieldDef
}

type FieldDef struct {
	Name string
	Type string
}

// Program is a fully compiled Zinc program ready for disassembly or native
// code generation.
type Program struct {
	Functions   map[string]*Function
	Structs     map[string]*StructDef
	MainName    string
}

// Disassemble renders a human-readable listing of every function's
// instructions, grounded on original_source/bytecode.py's
// CompiledProgram.disassemble.
func (p *Program) Disassemble() string {
	out := "=== Zinc Bytecode Disassembly ===\n\n"

	if len(p.Structs) > 0 {
		out += "--- Structs ---\n"
		for _, s := range p.Structs {
			out += fmt.Sprintf("struct %s:\n", s.Name)
			for _, f := range s.Fields {
				out += fmt.Sprintf("  %s %s\n", f.Type, f.Name)
			}
		}
		out += "\n"
	}

	out += "--- Functions ---\n"
	for _, f := range p.Functions {
		out += fmt.Sprintf("\nfunction %s(%v):\n", f.Name, f.Params)
		for i, instr := range f.Code {
			out += fmt.Sprintf("  %4d: %s\n", i, instr)
		}
	}

	return out
}
