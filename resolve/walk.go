package resolve

import "github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/ast"

func (r *Resolver) resolveBlock(body []ast.Stmt) {
	for _, s := range body {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VarDecl:
		if n.Init != nil {
			r.resolveExpr(n.Init)
		}
		kind := ast.RefLocal
		if len(r.scopes) == 1 {
			kind = ast.RefGlobal
		}
		r.define(n.Name, kind, n.Type, n.Pos())
	case *ast.Assign:
		r.resolveTarget(n.Target)
		r.resolveExpr(n.Value)
	case *ast.CompoundAssign:
		r.resolveTarget(n.Target)
		if n.Amount != nil {
			r.resolveExpr(n.Amount)
		}
	case *ast.If:
		r.resolveExpr(n.Cond)
		r.pushScope()
		r.resolveBlock(n.Body)
		r.popScope()
		for _, ei := range n.ElseIfs {
			r.resolveExpr(ei.Cond)
			r.pushScope()
			r.resolveBlock(ei.Body)
			r.popScope()
		}
		if n.Else != nil {
			r.pushScope()
			r.resolveBlock(n.Else)
			r.popScope()
		}
	case *ast.While:
		r.resolveExpr(n.Cond)
		r.pushScope()
		r.resolveBlock(n.Body)
		r.popScope()
	case *ast.ForRange:
		r.resolveExpr(n.From)
		r.resolveExpr(n.To)
		r.pushScope()
		r.define(n.VarName, ast.RefLocal, n.VarType, n.Pos())
		r.resolveBlock(n.Body)
		r.popScope()
	case *ast.ForEach:
		r.resolveExpr(n.List)
		r.pushScope()
		r.define(n.VarName, ast.RefLocal, n.VarType, n.Pos())
		r.resolveBlock(n.Body)
		r.popScope()
	case *ast.Repeat:
		r.resolveExpr(n.Count)
		r.pushScope()
		r.resolveBlock(n.Body)
		r.popScope()
	case *ast.Return:
		if n.Value != nil {
			r.resolveExpr(n.Value)
		}
	case *ast.CallStmt:
		r.resolveExpr(n.Call)
	case *ast.Say:
		r.resolveExpr(n.Value)
	case *ast.Input:
		r.resolveTarget(n.Target)
	case *ast.Allocate:
		r.resolveExpr(n.Count)
		kind := ast.RefLocal
		if len(r.scopes) == 1 {
			kind = ast.RefGlobal
		}
		r.define(n.VarName, kind, &ast.Type{Kind: ast.TPointer, Elem: n.ElemTy}, n.Pos())
	case *ast.Free:
		r.resolveExpr(n.Target)
	case *ast.FileOpen:
		r.resolveExpr(n.Path)
		kind := ast.RefLocal
		if len(r.scopes) == 1 {
			kind = ast.RefGlobal
		}
		r.define(n.VarName, kind, nil, n.Pos())
	case *ast.FileClose:
		r.resolveExpr(n.Handle)
	case *ast.FileReadLine:
		r.resolveExpr(n.Handle)
		r.resolveTarget(n.Target)
	case *ast.OpenWindow:
		r.resolveExpr(n.Width)
		r.resolveExpr(n.Height)
		if n.Title != nil {
			r.resolveExpr(n.Title)
		}
	case *ast.ClearScreen:
		r.resolveExpr(n.Color)
	case *ast.DrawRectangle:
		r.resolveExpr(n.X)
		r.resolveExpr(n.Y)
		r.resolveExpr(n.W)
		r.resolveExpr(n.H)
		if n.Color != nil {
			r.resolveExpr(n.Color)
		}
	case *ast.DrawText:
		r.resolveExpr(n.Text)
		r.resolveExpr(n.X)
		r.resolveExpr(n.Y)
	case *ast.Break, *ast.Continue, *ast.CloseWindow, *ast.BeginDrawing, *ast.EndDrawing, *ast.RawStmt:
		// no names to resolve
	}
}

func (r *Resolver) resolveTarget(t ast.AssignTarget) {
	switch n := t.(type) {
	case *ast.NameTarget:
		n.Kind = r.lookup(n.Name)
	case *ast.IndexTarget:
		r.resolveExpr(n.Array)
		if n.Index != nil {
			r.resolveExpr(n.Index)
		}
	case *ast.FieldTarget:
		r.resolveExpr(n.Struct)
	}
}

func (r *Resolver) resolveExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.VarRef:
		n.Kind = r.lookup(n.Name)
	case *ast.UnaryOp:
		r.resolveExpr(n.Operand)
	case *ast.BinaryOp:
		r.resolveExpr(n.Left)
		if n.Right != nil {
			r.resolveExpr(n.Right)
		}
		if n.Third != nil {
			r.resolveExpr(n.Third)
		}
	case *ast.ArrayIndex:
		r.resolveExpr(n.Array)
		if n.Index != nil {
			r.resolveExpr(n.Index)
		}
	case *ast.FieldAccess:
		r.resolveExpr(n.Struct)
	case *ast.Call:
		if _, ok := r.funcs[n.Name]; ok {
			n.Kind = ast.RefFunction
		} else {
			n.Kind = ast.RefPassthrough
		}
		for _, a := range n.Args {
			r.resolveExpr(a)
		}
	case *ast.Concat:
		for _, o := range n.Operands {
			r.resolveExpr(o)
		}
	case *ast.RandomNumber:
		r.resolveExpr(n.Low)
		r.resolveExpr(n.High)
	case *ast.FileHasLine:
		r.resolveExpr(n.Handle)
	case *ast.IntLit, *ast.DecimalLit, *ast.StringLit, *ast.CharLit, *ast.BoolLit, *ast.NullLit,
		*ast.RawExpr, *ast.WindowShouldClose, *ast.MouseX, *ast.MouseY, *ast.MousePressed:
		// leaves, nothing to resolve
	}
}
