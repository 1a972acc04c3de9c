package lex

import (
	"strconv"
	"strings"

	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/report"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/token"
)

// fold performs the second lexer pass: a longest-match sweep over runs of
// word tokens, collapsing multi-word keyword phrases into single tokens.
// Phrase folding never crosses a newline, literal, or punctuation token
// (spec §4.1) — those always flush any pending word run as plain
// identifiers/keywords first.
func fold(raws []rawToken) []*token.Token {
	var out []*token.Token

	i := 0
	for i < len(raws) {
		r := raws[i]

		if r.kind != rawWord {
			out = append(out, nonWordToken(r))
			i++
			continue
		}

		// Try the longest window of consecutive word tokens starting here.
		end := i
		for end < len(raws) && raws[end].kind == rawWord && end-i < maxPhraseWords {
			end++
		}

		matched := false
		for w := end; w > i; w-- {
			phrase := joinLower(raws[i:w])
			if kind, ok := phrases[phrase]; ok {
				out = append(out, &token.Token{
					Kind:  kind,
					Value: phrase,
					Span:  spanOver(raws[i], raws[w-1]),
				})
				i = w
				matched = true
				break
			}
		}

		if !matched {
			// No phrase (not even the single word) matched: plain identifier.
			out = append(out, &token.Token{
				Kind:  token.IDENT,
				Value: raws[i].text,
				Span:  raws[i].span,
			})
			i++
		}
	}

	return out
}

func joinLower(rs []rawToken) string {
	var b strings.Builder
	for idx, r := range rs {
		if idx > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strings.ToLower(r.text))
	}
	return b.String()
}

func spanOver(a, b rawToken) *report.TextSpan {
	return report.NewSpanOver(a.span, b.span)
}

func nonWordToken(r rawToken) *token.Token {
	switch r.kind {
	case rawEOL:
		return &token.Token{Kind: token.EOL, Span: r.span}
	case rawEOF:
		return &token.Token{Kind: token.EOF, Span: r.span}
	case rawInt:
		return &token.Token{Kind: token.INT, IVal: r.ival, Value: strconv.FormatInt(r.ival, 10), Span: r.span}
	case rawDecimal:
		return &token.Token{Kind: token.DECIMAL, FVal: r.fval, Value: r.lit, Span: r.span}
	case rawString:
		return &token.Token{Kind: token.STRING, SVal: r.sval, Value: r.lit, Span: r.span}
	case rawChar:
		return &token.Token{Kind: token.CHAR, SVal: r.sval, Value: r.lit, Span: r.span}
	case rawPunct:
		return &token.Token{Kind: r.ptok, Value: r.lit, Span: r.span}
	default:
		return &token.Token{Kind: token.EOF, Span: r.span}
	}
}
