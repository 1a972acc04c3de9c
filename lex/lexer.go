// Package lex implements the Zinc lexer: it turns source text into a stream
// of classified tokens, folding English multi-word operators into single
// tokens and dropping comments (spec §4.1).
package lex

import (
	"strings"
	"unicode"

	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/report"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/token"
)

// rawKind classifies a token before phrase folding.
type rawKind int

const (
	rawWord rawKind = iota
	rawInt
	rawDecimal
	rawString
	rawChar
	rawPunct
	rawEOL
	rawEOF
)

type rawToken struct {
	kind rawKind
	text string // original-case text for words; literal text otherwise
	ival int64
	fval float64
	sval string
	lit  string // exact source text, used to reconstruct raw-C passthrough
	span *report.TextSpan
	ptok token.Kind // set for rawPunct
}

// Lexer scans Zinc source text into a folded token stream. It reads the
// whole source up front (scripts are small) rather than buffering
// incrementally, which keeps the two-pass word-split/phrase-fold algorithm
// from spec §4.1 straightforward.
type Lexer struct {
	src  []rune
	pos  int
	line int
	col  int
}

// New creates a Lexer over the given source text.
func New(src string) *Lexer {
	return &Lexer{src: []rune(src), pos: 0, line: 1, col: 1}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(offset int) rune {
	if l.pos+offset >= len(l.src) {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *Lexer) advance() rune {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) here() (int, int) {
	return l.line, l.col
}

// Lex scans the entire source and returns the folded token stream ending in
// an EOF token.
func (l *Lexer) Lex() []*token.Token {
	raws := l.scanRaw()
	return fold(raws)
}

func (l *Lexer) scanRaw() []rawToken {
	var out []rawToken

	for !l.atEnd() {
		c := l.peek()

		switch {
		case c == '\n':
			startLine, startCol := l.here()
			l.advance()
			out = append(out, rawToken{kind: rawEOL, span: span(startLine, startCol, startLine, startCol)})
		case c == ' ' || c == '\t' || c == '\r':
			l.advance()
		case c == '#':
			l.skipToEOL()
		case c == '/' && l.peekAt(1) == '/':
			l.skipToEOL()
		case c == '/' && l.peekAt(1) == '*':
			l.skipBlockComment()
		case isLineCommentWord(l, "note:") || isLineCommentWord(l, "reminder:"):
			l.skipToEOL()
		case isWord(l, "notes") && l.peekAt(5) == ':':
			l.skipNotesBlock()
		case c == '"':
			out = append(out, l.scanString())
		case c == '\'' && unicode.ToLower(l.peekAt(1)) == 's' && !isIdentCont(l.peekAt(2)) && l.peekAt(2) != '\'':
			out = append(out, l.scanPunct()) // possessive 's
		case c == '\'':
			out = append(out, l.scanChar())
		case unicode.IsDigit(c):
			out = append(out, l.scanNumber())
		case isIdentStart(c):
			out = append(out, l.scanWord())
		default:
			out = append(out, l.scanPunct())
		}
	}

	startLine, startCol := l.here()
	out = append(out, rawToken{kind: rawEOF, span: span(startLine, startCol, startLine, startCol)})
	return out
}

func span(sl, sc, el, ec int) *report.TextSpan {
	return &report.TextSpan{StartLine: sl, StartCol: sc, EndLine: el, EndCol: ec}
}

func isIdentStart(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

func isIdentCont(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}

// isWord reports whether the given lowercase literal word (without a
// trailing ':') begins at the current position (used to detect the "notes:"
// block-comment opener without consuming input).
func isWord(l *Lexer, w string) bool {
	for i, r := range w {
		if unicode.ToLower(l.peekAt(i)) != r {
			return false
		}
	}
	return true
}

// isLineCommentWord checks for a literal comment-opener token (e.g.
// "note:") at the current position, case-insensitively, and consumes it if
// matched.
func isLineCommentWord(l *Lexer, w string) bool {
	for i, r := range w {
		if unicode.ToLower(l.peekAt(i)) != r {
			return false
		}
	}
	for i := 0; i < len(w); i++ {
		l.advance()
	}
	return true
}

func (l *Lexer) skipToEOL() {
	for !l.atEnd() && l.peek() != '\n' {
		l.advance()
	}
}

func (l *Lexer) skipBlockComment() {
	l.advance()
	l.advance()
	for !l.atEnd() {
		if l.peek() == '*' && l.peekAt(1) == '/' {
			l.advance()
			l.advance()
			return
		}
		l.advance()
	}
}

// skipNotesBlock drops a "notes: ... end notes" region. The opener has
// already been confirmed present (not consumed) by the caller.
func (l *Lexer) skipNotesBlock() {
	for i := 0; i < len("notes:"); i++ {
		l.advance()
	}
	for !l.atEnd() {
		if lowerMatchesAhead(l, "end notes") {
			for i := 0; i < len("end notes"); i++ {
				l.advance()
			}
			return
		}
		l.advance()
	}
}

func lowerMatchesAhead(l *Lexer, w string) bool {
	for i, r := range w {
		c := l.peekAt(i)
		if r == ' ' {
			if c != ' ' {
				return false
			}
			continue
		}
		if unicode.ToLower(c) != r {
			return false
		}
	}
	return true
}

func (l *Lexer) scanWord() rawToken {
	sl, sc := l.here()
	startIdx := l.pos
	var b strings.Builder
	for !l.atEnd() && isIdentCont(l.peek()) {
		b.WriteRune(l.advance())
	}
	el, ec := l.here()
	return rawToken{kind: rawWord, text: b.String(), lit: string(l.src[startIdx:l.pos]), span: span(sl, sc, el, ec-1)}
}

func (l *Lexer) scanNumber() rawToken {
	sl, sc := l.here()
	startIdx := l.pos
	var b strings.Builder
	isFloat := false
	for !l.atEnd() && unicode.IsDigit(l.peek()) {
		b.WriteRune(l.advance())
	}
	if l.peek() == '.' && unicode.IsDigit(l.peekAt(1)) {
		isFloat = true
		b.WriteRune(l.advance())
		for !l.atEnd() && unicode.IsDigit(l.peek()) {
			b.WriteRune(l.advance())
		}
	}
	el, ec := l.here()
	sp := span(sl, sc, el, ec-1)

	lit := string(l.src[startIdx:l.pos])
	if isFloat {
		f := parseFloat(b.String())
		return rawToken{kind: rawDecimal, fval: f, lit: lit, span: sp}
	}
	return rawToken{kind: rawInt, ival: parseInt(b.String()), lit: lit, span: sp}
}

func parseInt(s string) int64 {
	var v int64
	for _, c := range s {
		v = v*10 + int64(c-'0')
	}
	return v
}

func parseFloat(s string) float64 {
	intPart, fracPart, found := strings.Cut(s, ".")
	v := float64(parseInt(intPart))
	if !found {
		return v
	}
	frac := float64(parseInt(fracPart))
	for range fracPart {
		frac /= 10
	}
	return v + frac
}

func (l *Lexer) scanString() rawToken {
	sl, sc := l.here()
	startIdx := l.pos
	l.advance()
	var b strings.Builder
	for !l.atEnd() && l.peek() != '"' {
		c := l.advance()
		if c == '\\' {
			b.WriteRune(l.eatEscape())
		} else if c == '\n' {
			report.Raise(report.LexError, span(sl, sc, sl, sc), "unterminated string literal")
		} else {
			b.WriteRune(c)
		}
	}
	if l.atEnd() {
		report.Raise(report.LexError, span(sl, sc, sl, sc), "unterminated string literal")
	}
	l.advance()
	el, ec := l.here()
	return rawToken{kind: rawString, sval: b.String(), lit: string(l.src[startIdx:l.pos]), span: span(sl, sc, el, ec-1)}
}

func (l *Lexer) scanChar() rawToken {
	sl, sc := l.here()
	startIdx := l.pos
	l.advance()
	if l.atEnd() {
		report.Raise(report.LexError, span(sl, sc, sl, sc), "unterminated character literal")
	}

	var r rune
	c := l.advance()
	if c == '\\' {
		r = l.eatEscape()
	} else {
		r = c
	}

	if l.atEnd() || l.peek() != '\'' {
		report.Raise(report.LexError, span(sl, sc, sl, sc), "unterminated character literal")
	}
	l.advance()
	el, ec := l.here()
	return rawToken{kind: rawChar, sval: string(r), lit: string(l.src[startIdx:l.pos]), span: span(sl, sc, el, ec-1)}
}

func (l *Lexer) eatEscape() rune {
	if l.atEnd() {
		sl, sc := l.here()
		report.Raise(report.LexError, span(sl, sc, sl, sc), "stray backslash in literal")
	}
	c := l.advance()
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case '"':
		return '"'
	case '\\':
		return '\\'
	case '\'':
		return '\''
	default:
		sl, sc := l.here()
		report.Raise(report.LexError, span(sl, sc, sl, sc), "invalid escape sequence '\\%c'", c)
		return 0
	}
}

// punctSingle maps single-character punctuation to token kinds. Everything
// else that isn't an identifier, digit, quote, or whitespace is an error.
var punctSingle = map[rune]token.Kind{
	'(':  token.LPAREN,
	')':  token.RPAREN,
	'[':  token.LBRACKET,
	']':  token.RBRACKET,
	':':  token.COLON,
	',':  token.COMMA,
	'.':  token.DOT,
	';':  token.EOL,
}

func (l *Lexer) scanPunct() rawToken {
	sl, sc := l.here()
	c := l.peek()

	// Possessive 's: only when not part of an identifier.
	if c == '\'' && unicode.ToLower(l.peekAt(1)) == 's' && !isIdentCont(l.peekAt(2)) {
		l.advance()
		l.advance()
		el, ec := l.here()
		return rawToken{kind: rawPunct, ptok: token.POSSESSIVE, span: span(sl, sc, el, ec-1)}
	}

	if k, ok := punctSingle[c]; ok {
		l.advance()
		return rawToken{kind: rawPunct, ptok: k, lit: string(c), span: span(sl, sc, sl, sc)}
	}

	l.advance()
	report.Raise(report.LexError, span(sl, sc, sl, sc), "unexpected character %q", c)
	return rawToken{}
}
