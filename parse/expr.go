package parse

import (
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/ast"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/report"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/token"
)

// parseExpr is the entry point; precedence climbs low to high exactly as
// spec §4.2 lists it: or; and; not; comparison; additive; multiplicative;
// power; unary; postfix.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.at(token.OR) {
		start := p.advance().Span
		right := p.parseAnd()
		left = &ast.BinaryOp{Base: baseOf(start), Op: ast.BOr, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseNot()
	for p.at(token.AND) {
		start := p.advance().Span
		right := p.parseNot()
		left = &ast.BinaryOp{Base: baseOf(start), Op: ast.BAnd, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseNot() ast.Expr {
	if p.at(token.NOT) {
		start := p.advance().Span
		operand := p.parseNot()
		return &ast.UnaryOp{Base: baseOf(start), Op: ast.UNot, Operand: operand}
	}
	return p.parseComparison()
}

// parseComparison handles the full comparison sugar set (non-associative:
// parses a single comparison at this level, matching spec's grammar).
func (p *Parser) parseComparison() ast.Expr {
	left := p.parseAdditive()

	switch p.cur().Kind {
	case token.EQUALS:
		start := p.advance().Span
		right := p.parseAdditive()
		return &ast.BinaryOp{Base: baseOf(start), Op: ast.BEq, Left: left, Right: right}
	case token.IS:
		start := p.advance().Span
		return p.parseIsComparison(start, left)
	case token.IS_NOT_EQUAL_TO:
		start := p.advance().Span
		right := p.parseAdditive()
		return &ast.BinaryOp{Base: baseOf(start), Op: ast.BNe, Left: left, Right: right}
	case token.IS_GREATER_THAN:
		start := p.advance().Span
		right := p.parseAdditive()
		return &ast.BinaryOp{Base: baseOf(start), Op: ast.BGt, Left: left, Right: right}
	case token.IS_LESS_THAN:
		start := p.advance().Span
		right := p.parseAdditive()
		return &ast.BinaryOp{Base: baseOf(start), Op: ast.BLt, Left: left, Right: right}
	case token.IS_AT_LEAST:
		start := p.advance().Span
		right := p.parseAdditive()
		return &ast.BinaryOp{Base: baseOf(start), Op: ast.BGe, Left: left, Right: right}
	case token.IS_AT_MOST:
		start := p.advance().Span
		right := p.parseAdditive()
		return &ast.BinaryOp{Base: baseOf(start), Op: ast.BLe, Left: left, Right: right}
	case token.IS_BETWEEN:
		start := p.advance().Span
		lo := p.parseAdditive()
		p.expect(token.AND, "'and'")
		hi := p.parseAdditive()
		return &ast.BinaryOp{Base: baseOf(start), Op: ast.BBetween, Left: left, Right: lo, Third: hi}
	case token.IS_POSITIVE:
		start := p.advance().Span
		return &ast.BinaryOp{Base: baseOf(start), Op: ast.BGt, Left: left, Right: &ast.IntLit{Value: 0}}
	case token.IS_NEGATIVE:
		start := p.advance().Span
		return &ast.BinaryOp{Base: baseOf(start), Op: ast.BLt, Left: left, Right: &ast.IntLit{Value: 0}}
	case token.IS_ZERO:
		start := p.advance().Span
		return &ast.BinaryOp{Base: baseOf(start), Op: ast.BEq, Left: left, Right: &ast.IntLit{Value: 0}}
	case token.IS_EVEN:
		start := p.advance().Span
		mod := &ast.BinaryOp{Base: baseOf(start), Op: ast.BMod, Left: left, Right: &ast.IntLit{Value: 2}}
		return &ast.BinaryOp{Base: baseOf(start), Op: ast.BEq, Left: mod, Right: &ast.IntLit{Value: 0}}
	case token.IS_ODD:
		start := p.advance().Span
		mod := &ast.BinaryOp{Base: baseOf(start), Op: ast.BMod, Left: left, Right: &ast.IntLit{Value: 2}}
		return &ast.BinaryOp{Base: baseOf(start), Op: ast.BNe, Left: mod, Right: &ast.IntLit{Value: 0}}
	case token.IS_EMPTY:
		start := p.advance().Span
		length := &ast.UnaryOp{Base: baseOf(start), Op: ast.UAbs, Operand: left} // the same node `the length of` builds
		return &ast.BinaryOp{Base: baseOf(start), Op: ast.BEq, Left: length, Right: &ast.IntLit{Value: 0}}
	case token.CONTAINS:
		start := p.advance().Span
		right := p.parseAdditive()
		return &ast.BinaryOp{Base: baseOf(start), Op: ast.BContains, Left: left, Right: right}
	default:
		return left
	}
}

// parseIsComparison handles the bare `is` token as an equality check
// (`x is 5`). The other `is ...` forms fold into a single multi-word token
// in the lexer and never reach this function.
func (p *Parser) parseIsComparison(start *report.TextSpan, left ast.Expr) ast.Expr {
	right := p.parseAdditive()
	return &ast.BinaryOp{Base: baseOf(start), Op: ast.BEq, Left: left, Right: right}
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.at(token.PLUS) || p.at(token.MINUS) {
		tk := p.advance()
		op := ast.BAdd
		if tk.Kind == token.MINUS {
			op = ast.BSub
		}
		right := p.parseMultiplicative()
		left = &ast.BinaryOp{Base: baseOf(tk.Span), Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parsePower()
	for p.at(token.TIMES) || p.at(token.DIVIDED_BY) || p.at(token.MODULO) {
		// A `times` followed by ':' or the end of the line closes the count
		// of `repeat N times`; it is left for parseRepeat.
		if p.at(token.TIMES) {
			switch p.peekAt(1).Kind {
			case token.COLON, token.EOL, token.EOF:
				return left
			}
		}
		tk := p.advance()
		var op ast.BinaryKind
		switch tk.Kind {
		case token.TIMES:
			op = ast.BMul
		case token.DIVIDED_BY:
			op = ast.BDiv
		default:
			op = ast.BMod
		}
		right := p.parsePower()
		left = &ast.BinaryOp{Base: baseOf(tk.Span), Op: op, Left: left, Right: right}
	}
	return left
}

// parsePower is right-associative (spec §4.2).
func (p *Parser) parsePower() ast.Expr {
	left := p.parseUnary()
	if p.at(token.TO_THE_POWER_OF) {
		start := p.advance().Span
		right := p.parsePower()
		return &ast.BinaryOp{Base: baseOf(start), Op: ast.BPow, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.cur().Kind {
	case token.NEGATIVE, token.MINUS:
		start := p.advance().Span
		operand := p.parseUnary()
		return &ast.UnaryOp{Base: baseOf(start), Op: ast.UNeg, Operand: operand}
	case token.THE_SQUARE_ROOT_OF:
		start := p.advance().Span
		operand := p.parseUnary()
		return &ast.UnaryOp{Base: baseOf(start), Op: ast.USqrt, Operand: operand}
	case token.THE_ABSOLUTE_VALUE_OF:
		start := p.advance().Span
		operand := p.parseUnary()
		return &ast.UnaryOp{Base: baseOf(start), Op: ast.UAbs, Operand: operand}
	case token.THE_ADDRESS_OF:
		start := p.advance().Span
		operand := p.parseUnary()
		return &ast.UnaryOp{Base: baseOf(start), Op: ast.UAddressOf, Operand: operand}
	case token.THE_VALUE_AT:
		start := p.advance().Span
		operand := p.parseUnary()
		return &ast.UnaryOp{Base: baseOf(start), Op: ast.UDeref, Operand: operand}
	default:
		return p.parsePostfix()
	}
}

// parsePostfix handles array index and field access chained onto a primary
// expression.
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()

	for {
		switch p.cur().Kind {
		case token.POSSESSIVE, token.DOT:
			start := p.advance().Span
			field := p.expect(token.IDENT, "field name").Value
			expr = &ast.FieldAccess{Base: baseOf(start), Struct: expr, Field: field}
		case token.LBRACKET:
			start := p.advance().Span
			idx := p.parseExpr()
			p.expect(token.RBRACKET, "']'")
			expr = &ast.ArrayIndex{Base: baseOf(start), Array: expr, Index: idx}
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	tk := p.cur()

	switch tk.Kind {
	case token.INT:
		p.advance()
		return &ast.IntLit{Base: baseOf(tk.Span), Value: tk.IVal}
	case token.DECIMAL:
		p.advance()
		return &ast.DecimalLit{Base: baseOf(tk.Span), Value: tk.FVal}
	case token.STRING:
		p.advance()
		return &ast.StringLit{Base: baseOf(tk.Span), Value: tk.SVal}
	case token.CHAR:
		p.advance()
		r := rune(0)
		if len(tk.SVal) > 0 {
			r = []rune(tk.SVal)[0]
		}
		return &ast.CharLit{Base: baseOf(tk.Span), Value: r}
	case token.YES:
		p.advance()
		return &ast.BoolLit{Base: baseOf(tk.Span), Value: true}
	case token.NO:
		p.advance()
		return &ast.BoolLit{Base: baseOf(tk.Span), Value: false}
	case token.NULL_LIT:
		p.advance()
		return &ast.NullLit{Base: baseOf(tk.Span)}
	case token.LPAREN:
		p.advance()
		e := p.parseExpr()
		p.expect(token.RPAREN, "')'")
		return e
	case token.ITEM_NUMBER:
		p.advance()
		idx := p.parseExpr()
		p.expect(token.IN, "'in'")
		arr := p.parsePostfix()
		return &ast.ArrayIndex{Base: baseOf(tk.Span), Array: arr, Index: idx}
	case token.THE_FIRST_ITEM_IN:
		p.advance()
		arr := p.parsePostfix()
		return &ast.ArrayIndex{Base: baseOf(tk.Span), Array: arr, First: true}
	case token.THE_LAST_ITEM_IN:
		p.advance()
		arr := p.parsePostfix()
		return &ast.ArrayIndex{Base: baseOf(tk.Span), Array: arr, Last: true}
	case token.THE_LENGTH_OF:
		p.advance()
		arr := p.parsePostfix()
		return &ast.UnaryOp{Base: baseOf(tk.Span), Op: ast.UAbs, Operand: arr} // length reuses the UAbs slot; lowering treats it as a length when the operand names a known array
	case token.THE_VALUE_OF:
		p.advance()
		return p.parsePostfix()
	case token.THE_RESULT_OF:
		return p.parseCallExpr()
	case token.A_RANDOM_NUMBER_BETWEEN:
		p.advance()
		lo := p.parseAdditive()
		p.expect(token.AND, "'and'")
		hi := p.parseAdditive()
		return &ast.RandomNumber{Base: baseOf(tk.Span), Low: lo, High: hi}
	case token.THE_WINDOW_SHOULD_CLOSE:
		p.advance()
		return &ast.WindowShouldClose{Base: baseOf(tk.Span)}
	case token.THE_MOUSE_X_POSITION:
		p.advance()
		return &ast.MouseX{Base: baseOf(tk.Span)}
	case token.THE_MOUSE_Y_POSITION:
		p.advance()
		return &ast.MouseY{Base: baseOf(tk.Span)}
	case token.THE_MOUSE_WAS_CLICKED:
		p.advance()
		return &ast.MousePressed{Base: baseOf(tk.Span)}
	case token.THERE_IS_ANOTHER_LINE_IN:
		p.advance()
		handle := p.parsePostfix()
		return &ast.FileHasLine{Base: baseOf(tk.Span), Handle: handle}
	case token.IDENT:
		return p.parseIdentOrCall()
	default:
		report.Raise(report.ParseError, tk.Span, "unexpected token %q in expression", tk.Value)
		return nil
	}
}

// parseCallExpr handles `the result of <name phrase> [with <args>]`.
func (p *Parser) parseCallExpr() ast.Expr {
	start := p.advance().Span // the result of

	end := p.pos
	for p.toks[end].Kind == token.IDENT && end-p.pos < 8 {
		end++
	}

	for w := end; w > p.pos; w-- {
		phrase := joinIdentWords(p.toks[p.pos:w])
		if sig, ok := p.funcs[phrase]; ok {
			p.pos = w
			var args []ast.Expr
			if p.at(token.WITH) {
				p.advance()
				args = p.parseArgList()
			}
			return &ast.Call{Base: baseOf(start), Name: sig.sanitized, Args: args, Kind: ast.RefFunction}
		}
	}

	report.Raise(report.ParseError, start, "unknown function name after 'the result of'")
	return nil
}

// parseIdentOrCall resolves a bare identifier: if a run of two or more
// identifier words matches a known function name (longest match), treat it
// as a call; otherwise the first word is a variable reference. Unknown-at-this-point names are still tagged unresolved here
// — the resolver makes the passthrough call (spec §4.3).
func (p *Parser) parseIdentOrCall() ast.Expr {
	start := p.cur().Span

	end := p.pos
	for p.toks[end].Kind == token.IDENT && end-p.pos < 8 {
		end++
	}

	for w := end; w > p.pos+1; w-- {
		phrase := joinIdentWords(p.toks[p.pos:w])
		if sig, ok := p.funcs[phrase]; ok {
			p.pos = w
			var args []ast.Expr
			if p.at(token.WITH) {
				p.advance()
				args = p.parseArgList()
			}
			return &ast.Call{Base: baseOf(start), Name: sig.sanitized, Args: args, Kind: ast.RefFunction}
		}
	}

	name := p.advance().Value
	return &ast.VarRef{Base: baseOf(start), Name: name}
}
