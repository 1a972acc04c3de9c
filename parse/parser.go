// Package parse implements the Zinc recursive-descent parser: tokens in,
// *ast.Program out (spec §4.2).
package parse

import (
	"strings"

	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/ast"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/report"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/token"
)

// funcSig is recorded by the forward-declaration prepass (spec §4.2, §9
// "Multi-word function names").
type funcSig struct {
	sanitized string
	words     []string // the identifier words making up the call phrase
	params    []ast.Param
	ret       *ast.Type
}

// Parser holds the token stream and the function table built by the
// prepass so that call sites (including ones preceding their definition)
// resolve via the same longest-match rule used for definitions.
type Parser struct {
	toks  []*token.Token
	pos   int
	funcs map[string]*funcSig // keyed by underscore-joined phrase
}

// Parse runs the two-pass parse described in spec §9: first index every
// `to`-introduced name, then parse the full program using that index.
func Parse(toks []*token.Token) *ast.Program {
	p := &Parser{toks: toks, funcs: map[string]*funcSig{}}
	p.prepass()
	p.pos = 0
	return p.parseProgram()
}

// ---------------------------------------------------------------------
// Token stream helpers

func (p *Parser) cur() *token.Token  { return p.toks[p.pos] }
func (p *Parser) peekAt(n int) *token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) advance() *token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(k token.Kind, what string) *token.Token {
	if !p.at(k) {
		report.Raise(report.ParseError, p.cur().Span, "expected %s, found %q", what, p.cur().Value)
	}
	return p.advance()
}

// skipEOLs consumes any run of end-of-line tokens (spec §4.2: the parser
// tolerates runs of newlines).
func (p *Parser) skipEOLs() {
	for p.at(token.EOL) {
		p.advance()
	}
}

// optColon consumes an optional ':' (spec §4.2 "optional punctuation").
func (p *Parser) optColon() {
	if p.at(token.COLON) {
		p.advance()
	}
}

// optThen consumes an optional `then`.
func (p *Parser) optThen() {
	if p.at(token.THEN) {
		p.advance()
	}
}

// blockTerminator reports whether the current token ends a statement
// block (spec §4.2 "Statement delimiting").
func (p *Parser) blockTerminator() bool {
	switch p.cur().Kind {
	case token.END, token.OTHERWISE, token.OTHERWISE_IF, token.EOF:
		return true
	default:
		return false
	}
}

// ---------------------------------------------------------------------
// Forward-declaration prepass

func (p *Parser) prepass() {
	depth := 0
	for p.pos < len(p.toks) && !p.at(token.EOF) {
		if p.at(token.TO) && !p.lookaheadIsMain() {
			save := p.pos
			p.advance()
			sig, ok := p.tryParseSignature()
			if ok {
				p.funcs[sig.sanitized] = sig
			}
			p.pos = save
		}
		p.advance()
		depth++
		if depth > 10_000_000 {
			break
		}
	}
}

func (p *Parser) lookaheadIsMain() bool {
	return p.peekAt(1).Kind == token.MAIN
}

// tryParseSignature parses a function signature (name phrase, params,
// return type) starting right after `to`, without consuming the body. It
// returns ok=false when no name words follow `to`; a malformed parameter
// list or return type raises a ParseError.
func (p *Parser) tryParseSignature() (*funcSig, bool) {
	var words []string
	for p.at(token.IDENT) {
		words = append(words, p.cur().Value)
		p.advance()
	}
	if len(words) == 0 {
		return nil, false
	}

	sig := &funcSig{sanitized: strings.Join(words, "_"), words: words}

	if p.at(token.WITH) {
		p.advance()
		for {
			ty := p.parseTypePhrase()
			name := p.expect(token.IDENT, "parameter name").Value
			sig.params = append(sig.params, ast.Param{Name: name, Type: ty})
			if p.at(token.COMMA) || p.at(token.AND) {
				p.advance()
				continue
			}
			break
		}
	}

	if p.at(token.AND_RETURN_A) {
		p.advance()
		sig.ret = p.parseTypePhrase()
	}

	return sig, true
}

// ---------------------------------------------------------------------
// Top level

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	p.skipEOLs()
	for !p.at(token.EOF) {
		switch {
		case p.at(token.INCLUDE):
			prog.Decls = append(prog.Decls, p.parseInclude())
		case p.at(token.DEFINE):
			prog.Decls = append(prog.Decls, p.parseStructDef())
		case p.at(token.TO) && p.lookaheadIsMain():
			prog.Decls = append(prog.Decls, p.parseMainFunc())
		case p.at(token.TO):
			prog.Decls = append(prog.Decls, p.parseFuncDef())
		default:
			report.Raise(report.ParseError, p.cur().Span, "expected a top-level declaration, found %q", p.cur().Value)
		}
		p.skipEOLs()
	}
	return prog
}

func (p *Parser) parseInclude() ast.Decl {
	start := p.cur().Span
	p.advance() // include
	var words []string
	for !p.at(token.EOL) && !p.at(token.EOF) {
		words = append(words, p.cur().Value)
		p.advance()
	}
	return &ast.Include{Base: baseOf(start), Target: strings.Join(words, " ")}
}

func (p *Parser) parseStructDef() ast.Decl {
	start := p.cur().Span
	p.advance()              // define
	p.expect(token.IDENT, "'a'") // the bare article "a", lexed as a plain identifier
	name := p.expect(token.IDENT, "struct name").Value
	p.expect(token.AS, "'as'")
	p.expect(token.HAVING, "'having'")
	p.optColon()
	p.skipEOLs()

	sd := &ast.StructDef{Base: baseOf(start), Name: name}
	for !p.at(token.END) {
		ty := p.parseTypePhrase()
		p.expect(token.CALLED, "'called'")
		fname := p.expect(token.IDENT, "field name").Value
		sd.Fields = append(sd.Fields, ast.Field{Name: fname, Type: ty})
		p.skipEOLs()
	}
	p.expect(token.END, "'end'")
	return sd
}

func (p *Parser) parseMainFunc() ast.Decl {
	start := p.cur().Span
	p.advance() // to
	p.advance() // do the main thing
	p.optColon()
	p.skipEOLs()
	body := p.parseBlock()
	p.expect(token.END, "'end'")
	return &ast.MainFunc{Base: baseOf(start), Body: body}
}

func (p *Parser) parseFuncDef() ast.Decl {
	start := p.cur().Span
	p.advance() // to
	save := p.pos
	sig, ok := p.tryParseSignature()
	if !ok {
		report.Raise(report.ParseError, start, "expected a function name after 'to'")
	}
	_ = save

	p.expect(token.COLON, "':'")
	p.skipEOLs()
	body := p.parseBlock()
	p.expect(token.END, "'end'")

	return &ast.FuncDef{
		Base:    baseOf(start),
		Name:    sig.sanitized,
		Phrase:  sig.words,
		Params:  sig.params,
		RetType: sig.ret,
		Body:    body,
	}
}

func (p *Parser) parseBlock() []ast.Stmt {
	var stmts []ast.Stmt
	p.skipEOLs()
	for !p.blockTerminator() {
		stmts = append(stmts, p.parseStmt())
		p.skipEOLs()
	}
	return stmts
}

// ---------------------------------------------------------------------
// Types

func (p *Parser) parseTypePhrase() *ast.Type {
	if p.at(token.POINTER_TO) {
		p.advance()
		elem := p.parseTypePhrase()
		return &ast.Type{Kind: ast.TPointer, Elem: elem}
	}
	if p.at(token.LIST_OF) {
		p.advance()
		elem := p.parseTypePhrase()
		return &ast.Type{Kind: ast.TOpenArray, Elem: elem}
	}

	switch p.cur().Kind {
	case token.NUMBER_TYPE, token.A_NUMBER:
		p.advance()
		return &ast.Type{Kind: ast.TInt}
	case token.DECIMAL_TYPE, token.A_DECIMAL:
		p.advance()
		return &ast.Type{Kind: ast.TDecimal}
	case token.TEXT_TYPE:
		p.advance()
		return &ast.Type{Kind: ast.TString}
	case token.CHARACTER_TYPE:
		p.advance()
		return &ast.Type{Kind: ast.TChar}
	case token.YES_OR_NO_TYPE:
		p.advance()
		return &ast.Type{Kind: ast.TBool}
	case token.NOTHING_TYPE:
		p.advance()
		return &ast.Type{Kind: ast.TVoid}
	case token.IDENT:
		name := p.advance().Value
		return &ast.Type{Kind: ast.TStruct, StructName: name}
	default:
		report.Raise(report.ParseError, p.cur().Span, "expected a type, found %q", p.cur().Value)
		return nil
	}
}

func baseOf(span *report.TextSpan) ast.Base {
	return ast.Base{Span: span}
}
