package mir

import (
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/ast"
)

// loopContext tracks pending break jumps and the continue target for the
// loop currently being compiled, grounded on original_source/compiler.py's
// LoopContext.
type loopContext struct {
	breakJumps     []int
	continueTarget int
}

// Compiler lowers a resolved *ast.Program to bytecode.
type Compiler struct {
	prog *Program

	fn         *Function
	localVars  map[string]int
	localTypes map[string]*ast.Type
	localCount int
	arraySizes map[string]int
	loopStack  []*loopContext
}

// Compile runs the full AST-to-bytecode lowering.
func Compile(prog *ast.Program) *Program {
	c := &Compiler{prog: &Program{Functions: map[string]*Function{}, Structs: map[string]*StructDef{}}}

	for _, d := range prog.Decls {
		if s, ok := d.(*ast.StructDef); ok {
			c.compileStruct(s)
		}
	}
	for _, d := range prog.Decls {
		if f, ok := d.(*ast.FuncDef); ok {
			c.compileFunction(f)
		}
	}
	for _, d := range prog.Decls {
		if m, ok := d.(*ast.MainFunc); ok {
			c.compileMain(m)
		}
	}

	if _, ok := c.prog.Functions["main"]; ok {
		c.prog.MainName = "main"
	}

	return c.prog
}

func (c *Compiler) compileStruct(s *ast.StructDef) {
	sd := &StructDef{Name: s.Name}
	for _, f := range s.Fields {
		sd.Fields = append(sd.Fields, FieldDef{Name: f.Name, Type: typeString(f.Type)})
	}
	c.prog.Structs[s.Name] = sd
}

func typeString(t *ast.Type) string {
	if t == nil {
		return "int"
	}
	switch t.Kind {
	case ast.TInt:
		return "number"
	case ast.TDecimal:
		return "decimal"
	case ast.TString:
		return "text"
	case ast.TChar:
		return "letter"
	case ast.TBool:
		return "boolean"
	case ast.TStruct:
		return t.StructName
	case ast.TPointer:
		return "pointer:" + typeString(t.Elem)
	case ast.TOpenArray, ast.TFixedArray:
		return "array:" + typeString(t.Elem)
	default:
		return "int"
	}
}

func (c *Compiler) compileFunction(f *ast.FuncDef) {
	params := make([]string, len(f.Params))
	paramTypes := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Name
		paramTypes[i] = typeString(p.Type)
	}

	c.fn = &Function{Name: f.Name, Params: params, ParamTypes: paramTypes, ReturnType: typeString(f.RetType)}
	c.localVars = map[string]int{}
	c.localTypes = map[string]*ast.Type{}
	c.localCount = 0
	c.arraySizes = map[string]int{}

	for _, p := range f.Params {
		c.localVars[p.Name] = c.localCount
		c.localTypes[p.Name] = p.Type
		c.localCount++
	}

	for _, s := range f.Body {
		c.stmt(s)
	}

	if len(c.fn.Code) == 0 || c.fn.Code[len(c.fn.Code)-1].Op != Return {
		c.emit(Return, nil)
	}

	c.fn.LocalsCount = c.localCount
	c.prog.Functions[f.Name] = c.fn
	c.fn = nil
}

func (c *Compiler) compileMain(m *ast.MainFunc) {
	c.fn = &Function{Name: "main", IsMain: true}
	c.localVars = map[string]int{}
	c.localTypes = map[string]*ast.Type{}
	c.localCount = 0
	c.arraySizes = map[string]int{}

	for _, s := range m.Body {
		c.stmt(s)
	}

	if len(c.fn.Code) == 0 || c.fn.Code[len(c.fn.Code)-1].Op != Return {
		c.emit(PushInt, int64(0))
		c.emit(ReturnValue, nil)
	}

	c.fn.LocalsCount = c.localCount
	c.prog.Functions["main"] = c.fn
	c.fn = nil
}

func (c *Compiler) emit(op Op, operand interface{}) int {
	c.fn.Code = append(c.fn.Code, Instruction{Op: op, Operand: operand})
	return len(c.fn.Code) - 1
}

func (c *Compiler) offset() int { return len(c.fn.Code) }

func (c *Compiler) patch(at int) {
	c.fn.Code[at].Operand = c.offset()
}

func (c *Compiler) patchTo(at int, target int) {
	c.fn.Code[at].Operand = target
}

func (c *Compiler) declareLocal(name string, ty *ast.Type) int {
	idx := c.localCount
	c.localVars[name] = idx
	c.localTypes[name] = ty
	c.localCount++
	return idx
}
