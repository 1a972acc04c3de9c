package clower

import (
	"fmt"

	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/ast"
)

func (c *clower) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VarDecl:
		c.varDecl(n)
	case *ast.Assign:
		target := c.target(n.Target)
		c.emit(fmt.Sprintf("%s = %s;", target, c.expr(n.Value)))
	case *ast.CompoundAssign:
		c.compoundAssign(n)
	case *ast.If:
		c.ifStmt(n)
	case *ast.While:
		c.emit(fmt.Sprintf("while (%s) {", c.expr(n.Cond)))
		c.indent++
		for _, s := range n.Body {
			c.stmt(s)
		}
		c.indent--
		c.emit("}")
	case *ast.ForRange:
		c.forRange(n)
	case *ast.ForEach:
		c.forEach(n)
	case *ast.Repeat:
		count := c.expr(n.Count)
		c.emit(fmt.Sprintf("for (int __rep__ = 0; __rep__ < %s; __rep__++) {", count))
		c.indent++
		for _, s := range n.Body {
			c.stmt(s)
		}
		c.indent--
		c.emit("}")
	case *ast.Break:
		c.emit("break;")
	case *ast.Continue:
		c.emit("continue;")
	case *ast.Return:
		if n.Value != nil {
			c.emit(fmt.Sprintf("return %s;", c.expr(n.Value)))
		} else {
			c.emit("return;")
		}
	case *ast.CallStmt:
		c.emit(c.expr(n.Call) + ";")
	case *ast.Say:
		c.say(n)
	case *ast.Input:
		c.input(n)
	case *ast.Allocate:
		c.includes["stdlib"] = true
		elemTy := typeToC(n.ElemTy)
		c.varTypes[n.VarName] = &ast.Type{Kind: ast.TPointer, Elem: n.ElemTy}
		c.emit(fmt.Sprintf("%s* %s = malloc(%s * sizeof(%s));", elemTy, n.VarName, c.expr(n.Count), elemTy))
	case *ast.Free:
		c.includes["stdlib"] = true
		c.emit(fmt.Sprintf("free(%s);", c.expr(n.Target)))
	case *ast.FileOpen:
		c.includes["stdio"] = true
		mode := `"r"`
		if n.Write {
			mode = `"w"`
		}
		c.varTypes[n.VarName] = nil
		c.emit(fmt.Sprintf("FILE* %s = fopen(%s, %s);", n.VarName, c.expr(n.Path), mode))
	case *ast.FileClose:
		c.emit(fmt.Sprintf("fclose(%s);", c.expr(n.Handle)))
	case *ast.FileReadLine:
		target := c.target(n.Target)
		c.emit(fmt.Sprintf("char __line__[1024];"))
		c.emit(fmt.Sprintf("fgets(__line__, sizeof(__line__), %s);", c.expr(n.Handle)))
		c.emit(fmt.Sprintf("%s = __line__;", target))
	case *ast.OpenWindow:
		c.includes["raylib"] = true
		title := `"Zinc App"`
		if n.Title != nil {
			title = c.expr(n.Title)
		}
		c.emit(fmt.Sprintf("InitWindow(%s, %s, %s);", c.expr(n.Width), c.expr(n.Height), title))
		c.emit("SetTargetFPS(60);")
	case *ast.CloseWindow:
		c.emit("CloseWindow();")
	case *ast.BeginDrawing:
		c.emit("BeginDrawing();")
	case *ast.EndDrawing:
		c.emit("EndDrawing();")
	case *ast.ClearScreen:
		c.emit(fmt.Sprintf("ClearBackground(%s);", c.expr(n.Color)))
	case *ast.DrawRectangle:
		color := "BLACK"
		if n.Color != nil {
			color = c.expr(n.Color)
		}
		c.emit(fmt.Sprintf("DrawRectangle(%s, %s, %s, %s, %s);", c.expr(n.X), c.expr(n.Y), c.expr(n.W), c.expr(n.H), color))
	case *ast.DrawText:
		size := "20"
		if n.Size != nil {
			size = c.expr(n.Size)
		}
		color := "BLACK"
		if n.Color != nil {
			color = c.expr(n.Color)
		}
		c.emit(fmt.Sprintf("DrawText(%s, %s, %s, %s, %s);", c.expr(n.Text), c.expr(n.X), c.expr(n.Y), size, color))
	case *ast.RawStmt:
		c.emitRaw(c.indentStr() + n.Text)
	}
}

func (c *clower) indentStr() string {
	s := ""
	for i := 0; i < c.indent; i++ {
		s += "    "
	}
	return s
}

func (c *clower) varDecl(n *ast.VarDecl) {
	c.varTypes[n.Name] = n.Type
	cType := typeToC(n.Type)

	if n.Type != nil && n.Type.Kind == ast.TOpenArray {
		if n.Init == nil {
			c.emit(fmt.Sprintf("%s* %s = NULL;", typeToC(n.Type.Elem), n.Name))
			return
		}
	}

	if n.Init == nil {
		switch {
		case cType == "char*" || (n.Type != nil && n.Type.Kind == ast.TPointer):
			c.emit(fmt.Sprintf("%s %s = NULL;", cType, n.Name))
		case n.Type != nil && n.Type.Kind == ast.TStruct:
			c.emit(fmt.Sprintf("%s %s = {0};", cType, n.Name))
		default:
			c.emit(fmt.Sprintf("%s %s = 0;", cType, n.Name))
		}
		return
	}

	c.emit(fmt.Sprintf("%s %s = %s;", cType, n.Name, c.expr(n.Init)))
}

func (c *clower) compoundAssign(n *ast.CompoundAssign) {
	target := c.target(n.Target)
	amt := "1"
	if n.Amount != nil {
		amt = c.expr(n.Amount)
	}
	op := map[ast.BinaryKind]string{ast.BAdd: "+=", ast.BSub: "-=", ast.BMul: "*=", ast.BDiv: "/="}[n.Op]
	c.emit(fmt.Sprintf("%s %s %s;", target, op, amt))
}

func (c *clower) ifStmt(n *ast.If) {
	c.emit(fmt.Sprintf("if (%s) {", c.expr(n.Cond)))
	c.indent++
	for _, s := range n.Body {
		c.stmt(s)
	}
	c.indent--

	for _, ei := range n.ElseIfs {
		c.emit(fmt.Sprintf("} else if (%s) {", c.expr(ei.Cond)))
		c.indent++
		for _, s := range ei.Body {
			c.stmt(s)
		}
		c.indent--
	}

	if n.Else != nil {
		c.emit("} else {")
		c.indent++
		for _, s := range n.Else {
			c.stmt(s)
		}
		c.indent--
	}

	c.emit("}")
}

func (c *clower) forRange(n *ast.ForRange) {
	c.varTypes[n.VarName] = n.VarType
	from, to := c.expr(n.From), c.expr(n.To)
	if n.Descending {
		c.emit(fmt.Sprintf("for (int %s = %s; %s >= %s; %s--) {", n.VarName, from, n.VarName, to, n.VarName))
	} else {
		c.emit(fmt.Sprintf("for (int %s = %s; %s <= %s; %s++) {", n.VarName, from, n.VarName, to, n.VarName))
	}
	c.indent++
	for _, s := range n.Body {
		c.stmt(s)
	}
	c.indent--
	c.emit("}")
}

func (c *clower) forEach(n *ast.ForEach) {
	varTy := n.VarType
	if ref, ok := n.List.(*ast.VarRef); ok && varTy == nil {
		if lt := c.varTypes[ref.Name]; lt != nil && lt.Elem != nil {
			varTy = lt.Elem // untyped `for each item in X` takes X's element type
		}
	}
	c.varTypes[n.VarName] = varTy
	iterable := c.expr(n.List)
	elemTy := "int"
	if varTy != nil {
		elemTy = typeToC(varTy)
	}

	if ref, ok := n.List.(*ast.VarRef); ok {
		if size, ok := c.arrSize[ref.Name]; ok {
			c.emit(fmt.Sprintf("for (int __i__ = 0; __i__ < %d; __i__++) {", size))
			c.indent++
			c.emit(fmt.Sprintf("%s %s = %s[__i__];", elemTy, n.VarName, iterable))
			for _, s := range n.Body {
				c.stmt(s)
			}
			c.indent--
			c.emit("}")
			return
		}
	}

	c.emit(fmt.Sprintf("for (int __i__ = 0; __i__ < sizeof(%s)/sizeof(%s[0]); __i__++) {", iterable, iterable))
	c.indent++
	c.emit(fmt.Sprintf("%s %s = %s[__i__];", elemTy, n.VarName, iterable))
	for _, s := range n.Body {
		c.stmt(s)
	}
	c.indent--
	c.emit("}")
}

func (c *clower) input(n *ast.Input) {
	target := c.target(n.Target)
	switch n.Kind {
	case ast.InputNumber:
		c.emit(fmt.Sprintf(`scanf("%%d", &%s);`, target))
	case ast.InputDecimal:
		c.emit(fmt.Sprintf(`scanf("%%lf", &%s);`, target))
	default:
		c.emit("char __buf__[256];")
		c.emit(`scanf("%255s", __buf__);`)
		c.emit(fmt.Sprintf("%s = __buf__;", target))
	}
}

func (c *clower) target(t ast.AssignTarget) string {
	switch n := t.(type) {
	case *ast.NameTarget:
		return n.Name
	case *ast.IndexTarget:
		arr := c.expr(n.Array)
		if n.Last {
			if ref, ok := n.Array.(*ast.VarRef); ok {
				if size, ok := c.arrSize[ref.Name]; ok {
					return fmt.Sprintf("%s[%d]", arr, size-1)
				}
			}
			return fmt.Sprintf("%s[sizeof(%s)/sizeof(%s[0]) - 1]", arr, arr, arr)
		}
		return fmt.Sprintf("%s[%s]", arr, c.expr(n.Index))
	case *ast.FieldTarget:
		if n.Field == "*" {
			return "*" + c.expr(n.Struct)
		}
		obj := c.expr(n.Struct)
		if c.isPointerExpr(n.Struct) {
			return fmt.Sprintf("%s->%s", obj, n.Field)
		}
		return fmt.Sprintf("%s.%s", obj, n.Field)
	default:
		return "0"
	}
}

func (c *clower) isPointerExpr(e ast.Expr) bool {
	if ref, ok := e.(*ast.VarRef); ok {
		if ty, ok := c.varTypes[ref.Name]; ok && ty != nil {
			return ty.Kind == ast.TPointer
		}
	}
	return false
}
