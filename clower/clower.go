// Package clower lowers a resolved *ast.Program to a C translation unit
// (spec §4.4). The statement and expression lowering tables, the prelude
// include set, and the printf/scanf format-specifier choices are grounded on
// original_source/transpiler.py's Transpiler class.
package clower

import (
	"fmt"
	"sort"
	"strings"

	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/ast"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/report"
)

// Lower converts prog into a complete C source file.
func Lower(prog *ast.Program) string {
	c := &clower{
		includes: map[string]bool{"stdio": true},
		varTypes: map[string]*ast.Type{},
		arrSize:  map[string]int{},
	}
	return c.run(prog)
}

type clower struct {
	out      strings.Builder
	indent   int
	includes map[string]bool
	structs  map[string]bool
	varTypes map[string]*ast.Type
	arrSize  map[string]int
}

func (c *clower) emit(line string) {
	c.out.WriteString(strings.Repeat("    ", c.indent))
	c.out.WriteString(line)
	c.out.WriteByte('\n')
}

func (c *clower) emitRaw(line string) {
	c.out.WriteString(line)
	c.out.WriteByte('\n')
}

func (c *clower) run(prog *ast.Program) string {
	c.structs = map[string]bool{}

	var structs []*ast.StructDef
	var funcs []*ast.FuncDef
	var main *ast.MainFunc

	for _, d := range prog.Decls {
		switch n := d.(type) {
		case *ast.Include:
			c.includes[libForInclude(n.Target)] = true
		case *ast.StructDef:
			structs = append(structs, n)
			c.structs[n.Name] = true
		case *ast.FuncDef:
			funcs = append(funcs, n)
		case *ast.MainFunc:
			main = n
		}
	}

	var body strings.Builder
	headerWriter := c.out
	c.out = strings.Builder{}

	for _, s := range structs {
		c.transpileStruct(s)
	}

	for _, f := range funcs {
		c.emitRaw(forwardDecl(f))
	}
	if len(funcs) > 0 {
		c.emitRaw("")
	}

	for _, f := range funcs {
		c.transpileFunc(f)
		c.emitRaw("")
	}

	if main != nil {
		c.transpileMain(main)
	}

	body = c.out
	c.out = headerWriter

	for _, inc := range sortedIncludes(c.includes) {
		if inc == "raylib" {
			c.emitRaw(`#include "raylib.h"`)
		} else {
			c.emitRaw(fmt.Sprintf("#include <%s.h>", inc))
		}
	}
	c.emitRaw("")
	c.out.WriteString(body.String())

	return c.out.String()
}

func sortedIncludes(m map[string]bool) []string {
	var out []string
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// libForInclude maps a Zinc `include` target phrase to a C header/library
// name. Unrecognised targets, including `the file called "X"`, map to stdio.
func libForInclude(target string) string {
	switch strings.ToLower(target) {
	case "the standard input and output", "the standard input output":
		return "stdio"
	case "math", "the math library", "the standard math functions":
		return "math"
	case "strings", "the string library", "the string functions":
		return "string"
	case "memory", "the memory library", "the random functions":
		return "stdlib"
	case "graphics", "the graphics library":
		return "raylib"
	case "time":
		return "time"
	default:
		return "stdio"
	}
}

func forwardDecl(f *ast.FuncDef) string {
	ret := "void"
	if f.RetType != nil {
		ret = typeToC(f.RetType)
	}
	params := paramList(f.Params)
	return fmt.Sprintf("%s %s(%s);", ret, f.Name, params)
}

func paramList(params []ast.Param) string {
	if len(params) == 0 {
		return "void"
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%s %s", typeToC(p.Type), p.Name)
	}
	return strings.Join(parts, ", ")
}

func (c *clower) transpileStruct(s *ast.StructDef) {
	c.emitRaw("typedef struct {")
	c.indent++
	for _, f := range s.Fields {
		c.emit(fmt.Sprintf("%s %s;", typeToC(f.Type), f.Name))
	}
	c.indent--
	c.emitRaw(fmt.Sprintf("} %s;", s.Name))
	c.emitRaw("")
}

func (c *clower) transpileFunc(f *ast.FuncDef) {
	c.varTypes = map[string]*ast.Type{}
	c.arrSize = map[string]int{}
	for _, p := range f.Params {
		c.varTypes[p.Name] = p.Type
	}

	ret := "void"
	if f.RetType != nil {
		ret = typeToC(f.RetType)
	}
	c.emitRaw(fmt.Sprintf("%s %s(%s) {", ret, f.Name, paramList(f.Params)))
	c.indent++
	for _, s := range f.Body {
		c.stmt(s)
	}
	c.indent--
	c.emitRaw("}")
}

func (c *clower) transpileMain(m *ast.MainFunc) {
	c.varTypes = map[string]*ast.Type{}
	c.arrSize = map[string]int{}
	c.emitRaw("int main(void) {")
	c.indent++
	for _, s := range m.Body {
		c.stmt(s)
	}
	if len(m.Body) == 0 {
		c.emit("return 0;")
	} else if _, ok := m.Body[len(m.Body)-1].(*ast.Return); !ok {
		c.emit("return 0;")
	}
	c.indent--
	c.emitRaw("}")
}

// typeToC maps a Zinc type to its C spelling (spec §4.4 "type mapping").
func typeToC(t *ast.Type) string {
	if t == nil {
		return "int"
	}
	switch t.Kind {
	case ast.TInt:
		return "int"
	case ast.TDecimal:
		return "double"
	case ast.TChar:
		return "char"
	case ast.TString:
		return "char*"
	case ast.TBool:
		return "int"
	case ast.TVoid:
		return "void"
	case ast.TStruct:
		return t.StructName
	case ast.TPointer:
		return typeToC(t.Elem) + "*"
	case ast.TFixedArray, ast.TOpenArray:
		return typeToC(t.Elem) + "*"
	default:
		report.ReportCompileWarning(nil, "unmapped type in C lowering, defaulting to int")
		return "int"
	}
}
