// Package resolve walks a parsed *ast.Program and annotates every VarRef and
// Call with how it resolved (spec §4.3): a local, a parameter, a global, a
// known function, or (never an error) an unresolved passthrough name left
// for the C fallback to carry through to the lowering stage.
//
// The scope-stack shape (push/pop a map per block, search backwards for
// shadowing, fall through to function args then globals) is grounded on
// src/walk/symbol_table.go's lookup/defineLocal/defineGlobal pattern.
package resolve

import (
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/ast"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/report"
)

// Symbol is a single resolved name: a local, a parameter, or a global.
type Symbol struct {
	Name string
	Kind ast.RefKind
	Type *ast.Type
}

// scope is one block's worth of local bindings.
type scope struct {
	vars map[string]*Symbol
}

// Resolver tracks the global function/struct tables (populated up front by
// Run, mirroring the parser's own forward-declaration prepass) plus a stack
// of local scopes for whatever function body is currently being walked.
type Resolver struct {
	funcs   map[string]*ast.FuncDef
	structs map[string]*ast.StructDef
	scopes  []*scope
}

// Run resolves every function and the main body in prog, mutating the AST
// in place.
func Run(prog *ast.Program) {
	r := &Resolver{funcs: map[string]*ast.FuncDef{}, structs: map[string]*ast.StructDef{}}

	for _, d := range prog.Decls {
		switch n := d.(type) {
		case *ast.FuncDef:
			if _, dup := r.funcs[n.Name]; dup {
				report.Raise(report.ResolveError, n.Pos(), "function %q is already defined", n.Name)
			}
			r.funcs[n.Name] = n
		case *ast.StructDef:
			if _, dup := r.structs[n.Name]; dup {
				report.Raise(report.ResolveError, n.Pos(), "struct %q is already defined", n.Name)
			}
			r.structs[n.Name] = n
		}
	}

	for _, d := range prog.Decls {
		switch n := d.(type) {
		case *ast.FuncDef:
			r.resolveFunc(n)
		case *ast.MainFunc:
			r.pushScope()
			r.resolveBlock(n.Body)
			r.popScope()
		}
	}
}

func (r *Resolver) pushScope() { r.scopes = append(r.scopes, &scope{vars: map[string]*Symbol{}}) }
func (r *Resolver) popScope()  { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) cur() *scope { return r.scopes[len(r.scopes)-1] }

// define binds name in the innermost scope, raising on a redeclaration
// within the SAME scope (shadowing an outer scope is fine).
func (r *Resolver) define(name string, kind ast.RefKind, ty *ast.Type, span *report.TextSpan) {
	c := r.cur()
	if _, dup := c.vars[name]; dup {
		report.Raise(report.ResolveError, span, "%q is already declared in this scope", name)
	}
	c.vars[name] = &Symbol{Name: name, Kind: kind, Type: ty}
}

// lookup searches scopes innermost-first, then the function/struct tables.
// An unmatched name is never an error here — it resolves to RefPassthrough
// so raw-C identifiers that happen to look like Zinc names still compile
// (spec §4.3).
func (r *Resolver) lookup(name string) ast.RefKind {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if sym, ok := r.scopes[i].vars[name]; ok {
			return sym.Kind
		}
	}
	if _, ok := r.funcs[name]; ok {
		return ast.RefFunction
	}
	return ast.RefPassthrough
}

func (r *Resolver) resolveFunc(fn *ast.FuncDef) {
	r.pushScope()
	for _, param := range fn.Params {
		r.define(param.Name, ast.RefParam, param.Type, fn.Pos())
	}
	r.resolveBlock(fn.Body)
	r.popScope()
}
