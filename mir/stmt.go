package mir

import (
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/ast"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/report"
)

func (c *Compiler) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VarDecl:
		c.varDecl(n)
	case *ast.Assign:
		c.assign(n)
	case *ast.CompoundAssign:
		c.compoundAssign(n)
	case *ast.If:
		c.ifStmt(n)
	case *ast.While:
		c.whileStmt(n)
	case *ast.ForRange:
		c.forRange(n)
	case *ast.ForEach:
		c.forEach(n)
	case *ast.Repeat:
		c.repeat(n)
	case *ast.Break:
		c.breakStmt()
	case *ast.Continue:
		c.continueStmt()
	case *ast.Return:
		if n.Value != nil {
			c.expr(n.Value)
			c.emit(ReturnValue, nil)
		} else {
			c.emit(Return, nil)
		}
	case *ast.CallStmt:
		c.expr(n.Call)
		c.emit(Pop, nil)
	case *ast.Say:
		c.say(n)
	case *ast.Input:
		c.input(n)
	case *ast.Allocate:
		c.expr(n.Count)
		c.emit(Alloc, typeString(n.ElemTy))
		c.storeName(n.VarName, &ast.Type{Kind: ast.TPointer, Elem: n.ElemTy})
	case *ast.Free:
		c.expr(n.Target)
		c.emit(Free, nil)
	case *ast.FileOpen:
		c.expr(n.Path)
		mode := "r"
		if n.Write {
			mode = "w"
		}
		c.emit(PushString, mode)
		c.emit(Call, CallOperand{Name: "__open_file__", Argc: 2})
		c.storeName(n.VarName, nil)
	case *ast.FileClose:
		c.expr(n.Handle)
		c.emit(Call, CallOperand{Name: "__close_file__", Argc: 1})
		c.emit(Pop, nil)
	case *ast.FileReadLine:
		c.expr(n.Handle)
		c.emit(Call, CallOperand{Name: "__read_line__", Argc: 1})
		c.storeTarget(n.Target)
	case *ast.OpenWindow:
		c.expr(n.Width)
		c.expr(n.Height)
		if n.Title != nil {
			c.expr(n.Title)
		} else {
			c.emit(PushString, "Zinc App")
		}
		c.emit(Call, CallOperand{Name: "__open_window__", Argc: 3})
		c.emit(Pop, nil)
	case *ast.CloseWindow:
		c.emit(Call, CallOperand{Name: "__close_window__", Argc: 0})
		c.emit(Pop, nil)
	case *ast.BeginDrawing:
		c.emit(Call, CallOperand{Name: "__begin_drawing__", Argc: 0})
		c.emit(Pop, nil)
	case *ast.EndDrawing:
		c.emit(Call, CallOperand{Name: "__end_drawing__", Argc: 0})
		c.emit(Pop, nil)
	case *ast.ClearScreen:
		c.expr(n.Color)
		c.emit(Call, CallOperand{Name: "__clear_screen__", Argc: 1})
		c.emit(Pop, nil)
	case *ast.DrawRectangle:
		c.expr(n.X)
		c.expr(n.Y)
		c.expr(n.W)
		c.expr(n.H)
		if n.Color != nil {
			c.expr(n.Color)
		} else {
			c.emit(PushString, "black")
		}
		c.emit(Call, CallOperand{Name: "__draw_rectangle__", Argc: 5})
		c.emit(Pop, nil)
	case *ast.DrawText:
		c.expr(n.Text)
		c.expr(n.X)
		c.expr(n.Y)
		if n.Size != nil {
			c.expr(n.Size)
		} else {
			c.emit(PushInt, int64(20))
		}
		if n.Color != nil {
			c.expr(n.Color)
		} else {
			c.emit(PushString, "black")
		}
		c.emit(Call, CallOperand{Name: "__draw_text__", Argc: 5})
		c.emit(Pop, nil)
	case *ast.RawStmt:
		// Raw-C passthrough has no bytecode equivalent in the VM path; the
		// C-lowering pipeline is the only target that can express it.
		c.emit(Nop, nil)
	}
}

func (c *Compiler) varDecl(n *ast.VarDecl) {
	idx := c.declareLocal(n.Name, n.Type)

	if n.Type != nil && (n.Type.Kind == ast.TOpenArray || n.Type.Kind == ast.TFixedArray) {
		if n.Init != nil {
			c.expr(n.Init)
		} else if n.Type.Size > 0 {
			c.arraySizes[n.Name] = n.Type.Size
			c.emit(PushInt, int64(n.Type.Size))
			c.emit(ArrayNew, nil)
		} else {
			c.emit(PushNull, nil)
		}
		c.emit(StoreLocal, idx)
		return
	}

	if n.Init != nil {
		c.expr(n.Init)
		c.emit(StoreLocal, idx)
		return
	}

	switch {
	case n.Type == nil:
		c.emit(PushInt, int64(0))
	case n.Type.Kind == ast.TInt, n.Type.Kind == ast.TBool:
		c.emit(PushInt, int64(0))
	case n.Type.Kind == ast.TDecimal:
		c.emit(PushFloat, float64(0))
	case n.Type.Kind == ast.TChar:
		c.emit(PushChar, rune(0))
	case n.Type.Kind == ast.TStruct:
		c.emit(StructNew, n.Type.StructName)
	default:
		c.emit(PushNull, nil)
	}
	c.emit(StoreLocal, idx)
}

func (c *Compiler) assign(n *ast.Assign) {
	switch t := n.Target.(type) {
	case *ast.NameTarget:
		c.expr(n.Value)
		c.storeName(t.Name, nil)
	case *ast.FieldTarget:
		if t.Field == "*" {
			c.expr(t.Struct)
			c.expr(n.Value)
			c.emit(StorePtr, nil)
			return
		}
		c.expr(t.Struct)
		c.expr(n.Value)
		c.emit(StructSet, t.Field)
	case *ast.IndexTarget:
		c.expr(t.Array)
		if t.Last {
			c.expr(t.Array)
			c.emit(ArrayLen, nil)
			c.emit(PushInt, int64(1))
			c.emit(Sub, nil)
		} else {
			c.expr(t.Index)
		}
		c.expr(n.Value)
		c.emit(ArraySet, nil)
	}
}

// storeName stores the value already on the stack into a resolved name.
func (c *Compiler) storeName(name string, ty *ast.Type) {
	if ty != nil {
		c.localTypes[name] = ty
	}
	idx, ok := c.localVars[name]
	if !ok {
		idx = c.declareLocal(name, ty) // e.g. the pointer of `allocate ... and call it p`
	}
	c.emit(StoreLocal, idx)
}

func (c *Compiler) storeTarget(t ast.AssignTarget) {
	switch n := t.(type) {
	case *ast.NameTarget:
		c.storeName(n.Name, nil)
	case *ast.FieldTarget:
		c.expr(n.Struct)
		c.emit(StructSet, n.Field)
	case *ast.IndexTarget:
		c.expr(n.Array)
		c.expr(n.Index)
		c.emit(ArraySet, nil)
	}
}

func (c *Compiler) compoundAssign(n *ast.CompoundAssign) {
	c.loadTarget(n.Target)
	if n.Amount != nil {
		c.expr(n.Amount)
	} else {
		c.emit(PushInt, int64(1))
	}
	switch n.Op {
	case ast.BAdd:
		c.emit(Add, nil)
	case ast.BSub:
		c.emit(Sub, nil)
	case ast.BMul:
		c.emit(Mul, nil)
	case ast.BDiv:
		c.emit(Div, nil)
	}
	c.storeTarget(n.Target)
}

func (c *Compiler) loadTarget(t ast.AssignTarget) {
	switch n := t.(type) {
	case *ast.NameTarget:
		c.loadName(n.Name)
	case *ast.FieldTarget:
		c.expr(n.Struct)
		c.emit(StructGet, n.Field)
	case *ast.IndexTarget:
		c.expr(n.Array)
		c.expr(n.Index)
		c.emit(ArrayGet, nil)
	}
}

func (c *Compiler) loadName(name string) {
	if idx, ok := c.localVars[name]; ok {
		c.emit(LoadLocal, idx)
	} else {
		c.emit(LoadGlobal, name)
	}
}

func (c *Compiler) ifStmt(n *ast.If) {
	c.expr(n.Cond)
	jumpElse := c.emit(JumpIfFalse, 0)

	for _, s := range n.Body {
		c.stmt(s)
	}

	if len(n.ElseIfs) > 0 || n.Else != nil {
		var endJumps []int
		endJumps = append(endJumps, c.emit(Jump, 0))
		c.patch(jumpElse)

		for _, ei := range n.ElseIfs {
			c.expr(ei.Cond)
			jumpNext := c.emit(JumpIfFalse, 0)
			for _, s := range ei.Body {
				c.stmt(s)
			}
			endJumps = append(endJumps, c.emit(Jump, 0))
			c.patch(jumpNext)
		}

		for _, s := range n.Else {
			c.stmt(s)
		}

		for _, j := range endJumps {
			c.patch(j)
		}
	} else {
		c.patch(jumpElse)
	}
}

func (c *Compiler) pushLoop() *loopContext {
	lc := &loopContext{continueTarget: c.offset()}
	c.loopStack = append(c.loopStack, lc)
	return lc
}

func (c *Compiler) popLoop() *loopContext {
	lc := c.loopStack[len(c.loopStack)-1]
	c.loopStack = c.loopStack[:len(c.loopStack)-1]
	return lc
}

func (c *Compiler) whileStmt(n *ast.While) {
	lc := c.pushLoop()
	lc.continueTarget = c.offset()
	loopStart := c.offset()

	c.expr(n.Cond)
	exitJump := c.emit(JumpIfFalse, 0)

	for _, s := range n.Body {
		c.stmt(s)
	}

	c.emit(Jump, loopStart)
	c.patch(exitJump)

	for _, bj := range lc.breakJumps {
		c.patch(bj)
	}
	c.popLoop()
}

func (c *Compiler) forRange(n *ast.ForRange) {
	idx := c.declareLocal(n.VarName, n.VarType)
	c.expr(n.From)
	c.emit(StoreLocal, idx)

	lc := c.pushLoop()
	lc.continueTarget = c.offset()
	loopStart := c.offset()

	c.emit(LoadLocal, idx)
	c.expr(n.To)
	if n.Descending {
		c.emit(Ge, nil)
	} else {
		c.emit(Le, nil)
	}
	exitJump := c.emit(JumpIfFalse, 0)

	for _, s := range n.Body {
		c.stmt(s)
	}

	c.emit(LoadLocal, idx)
	c.emit(PushInt, int64(1))
	if n.Descending {
		c.emit(Sub, nil)
	} else {
		c.emit(Add, nil)
	}
	c.emit(StoreLocal, idx)

	c.emit(Jump, loopStart)
	c.patch(exitJump)

	for _, bj := range lc.breakJumps {
		c.patch(bj)
	}
	c.popLoop()
}

func (c *Compiler) forEach(n *ast.ForEach) {
	varIdx := c.declareLocal(n.VarName, n.VarType)
	idxIdx := c.declareLocal("__idx__", nil)
	arrIdx := c.declareLocal("__arr__", nil)

	c.emit(PushInt, int64(0))
	c.emit(StoreLocal, idxIdx)

	c.expr(n.List)
	c.emit(StoreLocal, arrIdx)

	lc := c.pushLoop()
	lc.continueTarget = c.offset()
	loopStart := c.offset()

	c.emit(LoadLocal, idxIdx)
	c.emit(LoadLocal, arrIdx)
	c.emit(ArrayLen, nil)
	c.emit(Lt, nil)
	exitJump := c.emit(JumpIfFalse, 0)

	c.emit(LoadLocal, arrIdx)
	c.emit(LoadLocal, idxIdx)
	c.emit(ArrayGet, nil)
	c.emit(StoreLocal, varIdx)

	for _, s := range n.Body {
		c.stmt(s)
	}

	c.emit(LoadLocal, idxIdx)
	c.emit(PushInt, int64(1))
	c.emit(Add, nil)
	c.emit(StoreLocal, idxIdx)

	c.emit(Jump, loopStart)
	c.patch(exitJump)

	for _, bj := range lc.breakJumps {
		c.patch(bj)
	}
	c.popLoop()
}

func (c *Compiler) repeat(n *ast.Repeat) {
	counterIdx := c.declareLocal("__rep__", nil)
	c.emit(PushInt, int64(0))
	c.emit(StoreLocal, counterIdx)

	c.expr(n.Count)
	limitIdx := c.declareLocal("__rep_limit__", nil)
	c.emit(StoreLocal, limitIdx)

	lc := c.pushLoop()
	lc.continueTarget = c.offset()
	loopStart := c.offset()

	c.emit(LoadLocal, counterIdx)
	c.emit(LoadLocal, limitIdx)
	c.emit(Lt, nil)
	exitJump := c.emit(JumpIfFalse, 0)

	for _, s := range n.Body {
		c.stmt(s)
	}

	c.emit(LoadLocal, counterIdx)
	c.emit(PushInt, int64(1))
	c.emit(Add, nil)
	c.emit(StoreLocal, counterIdx)

	c.emit(Jump, loopStart)
	c.patch(exitJump)

	for _, bj := range lc.breakJumps {
		c.patch(bj)
	}
	c.popLoop()
}

func (c *Compiler) breakStmt() {
	if len(c.loopStack) == 0 {
		report.Raise(report.LowerError, nil, "break used outside of a loop")
	}
	lc := c.loopStack[len(c.loopStack)-1]
	j := c.emit(Jump, 0)
	lc.breakJumps = append(lc.breakJumps, j)
}

func (c *Compiler) continueStmt() {
	if len(c.loopStack) == 0 {
		report.Raise(report.LowerError, nil, "continue used outside of a loop")
	}
	lc := c.loopStack[len(c.loopStack)-1]
	c.emit(Jump, lc.continueTarget)
}

func (c *Compiler) say(n *ast.Say) {
	var operands []ast.Expr
	if concat, ok := n.Value.(*ast.Concat); ok {
		operands = concat.Operands
	} else {
		operands = []ast.Expr{n.Value}
	}
	for _, op := range operands {
		c.expr(op)
		c.emit(Print, nil)
	}
	c.emit(PrintNewline, nil)
}

func (c *Compiler) input(n *ast.Input) {
	switch n.Kind {
	case ast.InputNumber:
		c.emit(InputInt, nil)
	case ast.InputDecimal:
		c.emit(InputFloat, nil)
	default:
		c.emit(InputString, nil)
	}
	c.storeTarget(n.Target)
}
