package parse

import (
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/ast"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/report"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/token"
)

func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur().Kind {
	case token.THERE_IS_A:
		return p.parseVarDecl()
	case token.SET, token.CHANGE, token.NOW:
		return p.parseAssign()
	case token.MAKE:
		return p.parseMakeEqualTo()
	case token.LET:
		return p.parseLetBe()
	case token.ADD, token.SUBTRACT, token.MULTIPLY, token.DIVIDE, token.INCREASE, token.DECREASE:
		return p.parseCompoundAssign()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.REPEAT:
		return p.parseRepeat()
	case token.BREAK, token.STOP_THE_LOOP:
		start := p.advance().Span
		return &ast.Break{Base: baseOf(start)}
	case token.CONTINUE, token.SKIP_TO_THE_NEXT_ONE:
		start := p.advance().Span
		return &ast.Continue{Base: baseOf(start)}
	case token.RETURN:
		return p.parseReturn()
	case token.SAY:
		return p.parseSay()
	case token.ASK_THE_USER_FOR:
		return p.parseInput()
	case token.ALLOCATE_SPACE_FOR:
		return p.parseAllocate()
	case token.FREE_THE_MEMORY_AT:
		return p.parseFree()
	case token.THE_FILE_CALLED:
		return p.parseFileOpen()
	case token.CLOSE_THE_FILE:
		return p.parseFileClose()
	case token.READ_A_LINE_FROM:
		return p.parseFileReadLineStmt()
	case token.OPEN_A_WINDOW_SIZED:
		return p.parseOpenWindow()
	case token.CLOSE_THE_WINDOW:
		start := p.advance().Span
		return &ast.CloseWindow{Base: baseOf(start)}
	case token.BEGIN_DRAWING:
		start := p.advance().Span
		return &ast.BeginDrawing{Base: baseOf(start)}
	case token.END_DRAWING:
		start := p.advance().Span
		return &ast.EndDrawing{Base: baseOf(start)}
	case token.CLEAR_THE_SCREEN_WITH:
		start := p.advance().Span
		color := p.parseExpr()
		return &ast.ClearScreen{Base: baseOf(start), Color: color}
	case token.DRAW_A_RECTANGLE_AT:
		return p.parseDrawRectangle()
	case token.DRAW_TEXT:
		return p.parseDrawText()
	default:
		if s, ok := p.tryParseCallStmt(); ok {
			return s
		}
		return p.parseRawOrFallback()
	}
}

// parseVarDecl is `there is a <type> called <name> [which is <expr>]`.
func (p *Parser) parseVarDecl() ast.Stmt {
	start := p.advance().Span // there is a
	ty := p.parseTypePhrase()
	p.expect(token.CALLED, "'called'")
	name := p.expect(token.IDENT, "variable name").Value

	var init ast.Expr
	if p.at(token.WHICH_IS) {
		p.advance()
		init = p.parseExpr()
	}

	return &ast.VarDecl{Base: baseOf(start), Name: name, Type: ty, Init: init}
}

// parseAssign handles `set`/`change`/`now` X to Y.
func (p *Parser) parseAssign() ast.Stmt {
	start := p.advance().Span
	target := p.parseAssignTarget()
	// "to" or "is" introduces the value ("now x is 5", "set x to 5").
	if p.at(token.TO) {
		p.advance()
	} else if p.at(token.IS) {
		p.advance()
	}
	val := p.parseExpr()
	return &ast.Assign{Base: baseOf(start), Target: target, Value: val}
}

// parseMakeEqualTo handles `make X equal to Y`.
func (p *Parser) parseMakeEqualTo() ast.Stmt {
	start := p.advance().Span
	target := p.parseAssignTarget()
	p.expect(token.EQUAL_TO, "'equal to'")
	val := p.parseExpr()
	return &ast.Assign{Base: baseOf(start), Target: target, Value: val}
}

// parseLetBe handles `let X be Y`.
func (p *Parser) parseLetBe() ast.Stmt {
	start := p.advance().Span
	target := p.parseAssignTarget()
	p.expect(token.BE, "'be'")
	val := p.parseExpr()
	return &ast.Assign{Base: baseOf(start), Target: target, Value: val}
}

// parseCompoundAssign handles add/subtract/multiply/divide/increase/decrease.
func (p *Parser) parseCompoundAssign() ast.Stmt {
	tk := p.advance()
	start := tk.Span

	switch tk.Kind {
	case token.ADD:
		amt := p.parseExpr()
		p.expect(token.TO, "'to'")
		target := p.parseAssignTarget()
		return &ast.CompoundAssign{Base: baseOf(start), Op: ast.BAdd, Target: target, Amount: amt}
	case token.SUBTRACT:
		amt := p.parseExpr()
		p.expect(token.FROM, "'from'")
		target := p.parseAssignTarget()
		return &ast.CompoundAssign{Base: baseOf(start), Op: ast.BSub, Target: target, Amount: amt}
	case token.MULTIPLY:
		target := p.parseAssignTarget()
		p.expect(token.BY, "'by'")
		amt := p.parseExpr()
		return &ast.CompoundAssign{Base: baseOf(start), Op: ast.BMul, Target: target, Amount: amt}
	case token.DIVIDE:
		target := p.parseAssignTarget()
		p.expect(token.BY, "'by'")
		amt := p.parseExpr()
		return &ast.CompoundAssign{Base: baseOf(start), Op: ast.BDiv, Target: target, Amount: amt}
	case token.INCREASE:
		target := p.parseAssignTarget()
		return &ast.CompoundAssign{Base: baseOf(start), Op: ast.BAdd, Target: target}
	default: // DECREASE
		target := p.parseAssignTarget()
		return &ast.CompoundAssign{Base: baseOf(start), Op: ast.BSub, Target: target}
	}
}

// parseAssignTarget parses the left-hand side of an assignment: a plain
// name, an array element (`item number N in X`, first/last-item sugar, or
// `the value at p`), or a struct field (possessive or dotted).
func (p *Parser) parseAssignTarget() ast.AssignTarget {
	start := p.cur().Span

	var tgt ast.AssignTarget
	switch p.cur().Kind {
	case token.ITEM_NUMBER:
		p.advance()
		idx := p.parseExpr()
		p.expect(token.IN, "'in'")
		arr := p.parsePrimary()
		tgt = &ast.IndexTarget{Base: baseOf(start), Array: arr, Index: idx}
	case token.THE_FIRST_ITEM_IN:
		p.advance()
		arr := p.parsePrimary()
		tgt = &ast.IndexTarget{Base: baseOf(start), Array: arr, Index: &ast.IntLit{Value: 0}}
	case token.THE_LAST_ITEM_IN:
		p.advance()
		arr := p.parsePrimary()
		tgt = &ast.IndexTarget{Base: baseOf(start), Array: arr, Last: true}
	case token.THE_VALUE_AT:
		p.advance()
		ptr := p.parsePrimary()
		tgt = &ast.FieldTarget{Base: baseOf(start), Struct: ptr, Field: "*"}
	default:
		name := p.expect(token.IDENT, "assignment target").Value
		tgt = &ast.NameTarget{Base: baseOf(start), Name: name}
	}

	for p.at(token.POSSESSIVE) || p.at(token.DOT) {
		p.advance()
		field := p.expect(token.IDENT, "field name").Value
		tgt = &ast.FieldTarget{Base: baseOf(start), Struct: targetToExpr(tgt), Field: field}
	}

	return tgt
}

// targetToExpr reinterprets an already-parsed target as an expression, used
// when a target chain continues into a field access (`bob's pet's name`).
func targetToExpr(t ast.AssignTarget) ast.Expr {
	switch v := t.(type) {
	case *ast.NameTarget:
		return &ast.VarRef{Base: v.Base, Name: v.Name}
	case *ast.FieldTarget:
		return &ast.FieldAccess{Base: v.Base, Struct: v.Struct, Field: v.Field}
	case *ast.IndexTarget:
		return &ast.ArrayIndex{Base: v.Base, Array: v.Array, Index: v.Index, Last: v.Last}
	default:
		return nil
	}
}

func (p *Parser) parseIf() ast.Stmt {
	start := p.advance().Span
	cond := p.parseExpr()
	p.optThen()
	p.optColon()
	body := p.parseBlock()

	n := &ast.If{Base: baseOf(start), Cond: cond, Body: body}
	for p.at(token.OTHERWISE_IF) {
		p.advance()
		c := p.parseExpr()
		p.optThen()
		p.optColon()
		b := p.parseBlock()
		n.ElseIfs = append(n.ElseIfs, ast.ElseIfClause{Cond: c, Body: b})
	}
	if p.at(token.OTHERWISE) {
		p.advance()
		p.optColon()
		n.Else = p.parseBlock()
	}
	p.expect(token.END, "'end'")
	return n
}

func (p *Parser) parseWhile() ast.Stmt {
	start := p.advance().Span
	cond := p.parseExpr()
	p.optColon()
	body := p.parseBlock()
	p.expect(token.END, "'end'")
	return &ast.While{Base: baseOf(start), Cond: cond, Body: body}
}

// parseFor dispatches between for-range and for-each on lookahead.
func (p *Parser) parseFor() ast.Stmt {
	start := p.advance().Span // for
	p.expect(token.EACH, "'each'")

	// `for each item in X` (untyped shorthand).
	if p.at(token.IDENT) && p.cur().Value == "item" && p.peekAt(1).Kind == token.IN {
		p.advance() // item
		p.advance() // in
		list := p.parseExpr()
		p.optColon()
		body := p.parseBlock()
		p.expect(token.END, "'end'")
		return &ast.ForEach{Base: baseOf(start), VarName: "item", List: list, Body: body}
	}

	ty := p.parseTypePhrase()
	name := p.expect(token.IDENT, "loop variable name").Value

	if p.at(token.IN) {
		p.advance()
		list := p.parseExpr()
		p.optColon()
		body := p.parseBlock()
		p.expect(token.END, "'end'")
		return &ast.ForEach{Base: baseOf(start), VarName: name, VarType: ty, List: list, Body: body}
	}

	p.expect(token.FROM, "'from'")
	from := p.parseExpr()
	descending := false
	if p.at(token.DOWN_TO) {
		descending = true
		p.advance()
	} else {
		p.expect(token.TO, "'to'")
	}
	to := p.parseExpr()
	p.optColon()
	body := p.parseBlock()
	p.expect(token.END, "'end'")

	return &ast.ForRange{
		Base: baseOf(start), VarName: name, VarType: ty,
		From: from, To: to, Descending: descending, Body: body,
	}
}

func (p *Parser) parseRepeat() ast.Stmt {
	start := p.advance().Span
	count := p.parseExpr()
	p.expect(token.TIMES, "'times'")
	p.optColon()
	body := p.parseBlock()
	p.expect(token.END, "'end'")
	return &ast.Repeat{Base: baseOf(start), Count: count, Body: body}
}

func (p *Parser) parseReturn() ast.Stmt {
	start := p.advance().Span
	if p.at(token.EOL) || p.blockTerminator() {
		return &ast.Return{Base: baseOf(start)}
	}
	val := p.parseExpr()
	return &ast.Return{Base: baseOf(start), Value: val}
}

// parseSay parses the output statement operand list: `A and then B` or
// `A followed by B` (spec §4.2 "Concatenation lists"). A bare `A and B` is
// consumed by parseExpr as a logical and, so it yields one operand.
func (p *Parser) parseSay() ast.Stmt {
	start := p.advance().Span
	operands := []ast.Expr{p.parseExpr()}
	for p.at(token.AND_THEN) || p.at(token.FOLLOWED_BY) || p.at(token.AND) {
		p.advance()
		operands = append(operands, p.parseExpr())
	}

	if len(operands) == 1 {
		return &ast.Say{Base: baseOf(start), Value: operands[0]}
	}
	return &ast.Say{Base: baseOf(start), Value: &ast.Concat{Base: baseOf(start), Operands: operands}}
}

// parseInput is `ask the user for a number/decimal/text and store it in x`.
func (p *Parser) parseInput() ast.Stmt {
	start := p.advance().Span

	var kind ast.InputKind
	switch p.cur().Kind {
	case token.A_NUMBER:
		kind = ast.InputNumber
		p.advance()
	case token.A_DECIMAL:
		kind = ast.InputDecimal
		p.advance()
	case token.TEXT_TYPE:
		kind = ast.InputText
		p.advance()
	default:
		report.Raise(report.ParseError, p.cur().Span, "expected 'a number', 'a decimal', or 'text' after 'ask the user for'")
	}

	p.expect(token.AND_STORE_IT_IN, "'and store it in'")
	target := p.parseAssignTarget()
	return &ast.Input{Base: baseOf(start), Kind: kind, Target: target}
}

func (p *Parser) parseAllocate() ast.Stmt {
	start := p.advance().Span
	count := p.parseExpr()
	var ty *ast.Type
	if p.at(token.IDENT) && p.cur().Value == "numbers" {
		p.advance() // plural element word of `allocate space for N numbers`
		ty = &ast.Type{Kind: ast.TInt}
	} else {
		ty = p.parseTypePhrase()
	}
	p.expect(token.AND_CALL_IT, "'and call it'")
	name := p.expect(token.IDENT, "pointer name").Value
	return &ast.Allocate{Base: baseOf(start), Count: count, ElemTy: ty, VarName: name}
}

func (p *Parser) parseFree() ast.Stmt {
	start := p.advance().Span
	target := p.parseExpr()
	return &ast.Free{Base: baseOf(start), Target: target}
}

func (p *Parser) parseFileOpen() ast.Stmt {
	start := p.advance().Span
	path := p.parseExpr()
	p.expect(token.WHICH_OPENS, "'which opens'")
	write := false
	if p.at(token.FOR_WRITING) {
		write = true
		p.advance()
	} else {
		p.expect(token.FOR_READING, "'for reading'")
	}
	p.expect(token.AND_CALL_IT, "'and call it'")
	name := p.expect(token.IDENT, "file handle name").Value
	return &ast.FileOpen{Base: baseOf(start), Path: path, VarName: name, Write: write}
}

func (p *Parser) parseFileClose() ast.Stmt {
	start := p.advance().Span
	handle := p.parseExpr()
	return &ast.FileClose{Base: baseOf(start), Handle: handle}
}

func (p *Parser) parseFileReadLineStmt() ast.Stmt {
	start := p.advance().Span
	handle := p.parseExpr()
	p.expect(token.AND_STORE_IT_IN, "'and store it in'")
	target := p.parseAssignTarget()
	return &ast.FileReadLine{Base: baseOf(start), Handle: handle, Target: target}
}

func (p *Parser) parseOpenWindow() ast.Stmt {
	start := p.advance().Span
	w := p.parseExpr()
	p.expect(token.BY, "'by'")
	h := p.parseExpr()
	var title ast.Expr
	if p.at(token.CALLED) {
		p.advance()
		title = p.parseExpr()
	}
	return &ast.OpenWindow{Base: baseOf(start), Width: w, Height: h, Title: title}
}

func (p *Parser) parseDrawRectangle() ast.Stmt {
	start := p.advance().Span
	x := p.parseExpr()
	p.expect(token.COMMA, "','")
	y := p.parseExpr()
	p.expect(token.COMMA, "','")
	w := p.parseExpr()
	p.expect(token.COMMA, "','")
	h := p.parseExpr()
	var color ast.Expr
	if p.at(token.IN) {
		p.advance()
		color = p.parseExpr()
	}
	return &ast.DrawRectangle{Base: baseOf(start), X: x, Y: y, W: w, H: h, Color: color}
}

func (p *Parser) parseDrawText() ast.Stmt {
	start := p.advance().Span
	text := p.parseExpr()
	p.expect(token.THE_VALUE_AT, "position") // reuses `at` wording via "the value at"-style phrase
	x := p.parseExpr()
	p.expect(token.COMMA, "','")
	y := p.parseExpr()
	return &ast.DrawText{Base: baseOf(start), Text: text, X: x, Y: y}
}

// tryParseCallStmt recognizes a bare call statement: a sequence of
// identifier tokens matching a known function name (longest match against
// the forward-declaration table), optionally followed by `with` arguments.
func (p *Parser) tryParseCallStmt() (ast.Stmt, bool) {
	if !p.at(token.IDENT) {
		return nil, false
	}

	save := p.pos
	end := p.pos
	for p.toks[end].Kind == token.IDENT && end-p.pos < 8 {
		end++
	}

	for w := end; w > p.pos; w-- {
		phrase := joinIdentWords(p.toks[p.pos:w])
		if sig, ok := p.funcs[phrase]; ok {
			start := p.cur().Span
			p.pos = w
			var args []ast.Expr
			if p.at(token.WITH) {
				p.advance()
				args = p.parseArgList()
			}
			return &ast.CallStmt{Base: baseOf(start), Call: &ast.Call{
				Base: baseOf(start), Name: sig.sanitized, Args: args, Kind: ast.RefFunction,
			}}, true
		}
	}

	p.pos = save
	return nil, false
}

func joinIdentWords(toks []*token.Token) string {
	out := ""
	for i, t := range toks {
		if i > 0 {
			out += "_"
		}
		out += t.Value
	}
	return out
}

func (p *Parser) parseArgList() []ast.Expr {
	var args []ast.Expr
	args = append(args, p.parseExpr())
	for p.at(token.COMMA) || p.at(token.AND) {
		p.advance()
		args = append(args, p.parseExpr())
	}
	return args
}

// parseRawOrFallback implements the C-fallback rule (spec §4.2): when no
// Zinc statement production matches, the rest of the physical line is
// captured verbatim as raw C.
func (p *Parser) parseRawOrFallback() ast.Stmt {
	start := p.cur().Span
	var words []string
	line := start.StartLine
	for !p.at(token.EOF) && p.cur().Span.StartLine == line {
		words = append(words, p.cur().Value)
		p.advance()
	}
	return &ast.RawStmt{Base: baseOf(start), Text: joinRaw(words)}
}

func joinRaw(words []string) string {
	out := ""
	for i, w := range words {
		if i > 0 {
			out += " "
		}
		out += w
	}
	return out
}
