package lex

import (
	"testing"

	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/token"
)

func kinds(toks []*token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func assertKinds(t *testing.T, src string, want []token.Kind) {
	t.Helper()
	got := kinds(New(src).Lex())
	if len(got) != len(want) {
		t.Fatalf("lex(%q): got %d tokens %v, want %d %v", src, len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("lex(%q): token %d = %v, want %v (full: %v)", src, i, got[i], want[i], got)
		}
	}
}

func TestLexKeywordCaseInsensitive(t *testing.T) {
	assertKinds(t, "Say \"hi\"", []token.Kind{token.SAY, token.STRING, token.EOF})
}

func TestLexLongestMatchComparison(t *testing.T) {
	assertKinds(t, "x is greater than or equal to y",
		[]token.Kind{token.IDENT, token.IS_AT_LEAST, token.IDENT, token.EOF})
}

func TestLexPhraseDoesNotBeatIdentifier(t *testing.T) {
	// "plus" appears inside the identifier but must not fold, since the
	// identifier is a single word token, not two.
	assertKinds(t, "user_age_plus_one", []token.Kind{token.IDENT, token.EOF})
}

func TestLexArithmeticPrecedenceTokens(t *testing.T) {
	assertKinds(t, "temp minus 32 times 5 divided by 9",
		[]token.Kind{token.IDENT, token.MINUS, token.INT, token.TIMES, token.INT, token.DIVIDED_BY, token.INT, token.EOF})
}

func TestLexLineComment(t *testing.T) {
	assertKinds(t, "say 1 // a comment\nsay 2",
		[]token.Kind{token.SAY, token.INT, token.EOL, token.SAY, token.INT, token.EOF})
}

func TestLexNoteComment(t *testing.T) {
	assertKinds(t, "note: this line is ignored\nsay 1",
		[]token.Kind{token.EOL, token.SAY, token.INT, token.EOF})
}

func TestLexNotesBlockComment(t *testing.T) {
	assertKinds(t, "notes: multi\nline\nend notes\nsay 1",
		[]token.Kind{token.EOL, token.SAY, token.INT, token.EOF})
}

func TestLexPossessive(t *testing.T) {
	assertKinds(t, "bob's age",
		[]token.Kind{token.IDENT, token.POSSESSIVE, token.IDENT, token.EOF})
}

func TestLexStringEscapes(t *testing.T) {
	toks := New(`"a\nb"`).Lex()
	if toks[0].SVal != "a\nb" {
		t.Fatalf("got %q want %q", toks[0].SVal, "a\nb")
	}
}

func TestLexDecimalLiteral(t *testing.T) {
	toks := New("3.5").Lex()
	if toks[0].Kind != token.DECIMAL || toks[0].FVal != 3.5 {
		t.Fatalf("got %v %v", toks[0].Kind, toks[0].FVal)
	}
}

func TestLexPositionsNonDecreasing(t *testing.T) {
	toks := New("say 1\nsay 2\n").Lex()
	lastLine := 0
	for _, tk := range toks {
		if tk.Span == nil {
			continue
		}
		if tk.Span.StartLine < lastLine {
			t.Fatalf("token positions went backwards at %v", tk)
		}
		lastLine = tk.Span.StartLine
	}
}
