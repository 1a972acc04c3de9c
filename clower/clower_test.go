package clower

import (
	"strings"
	"testing"

	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/lex"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/parse"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/resolve"
)

func lower(t *testing.T, src string) string {
	t.Helper()
	toks := lex.New(src).Lex()
	prog := parse.Parse(toks)
	resolve.Run(prog)
	return Lower(prog)
}

func TestLowerHelloWorld(t *testing.T) {
	out := lower(t, `
to do the main thing:
	say "Hello, World!"
end
`)

	if !strings.Contains(out, `#include <stdio.h>`) {
		t.Fatalf("missing stdio include:\n%s", out)
	}
	if !strings.Contains(out, `int main(void) {`) {
		t.Fatalf("missing main signature:\n%s", out)
	}
	if !strings.Contains(out, `printf("Hello, World!\n");`) {
		t.Fatalf("missing printf call:\n%s", out)
	}
}

func TestLowerIfAndComparison(t *testing.T) {
	out := lower(t, `
to do the main thing:
	there is a number called x which is 5
	if x is greater than 3 then
		say "big"
	otherwise
		say "small"
	end
end
`)

	if !strings.Contains(out, "if ((x > 3)) {") {
		t.Fatalf("expected translated comparison:\n%s", out)
	}
	if !strings.Contains(out, "} else {") {
		t.Fatalf("expected else branch:\n%s", out)
	}
}

func TestLowerFunctionForwardDecl(t *testing.T) {
	out := lower(t, `
to combine values with a number a and a number b and return a number:
	return a plus b
end

to do the main thing:
	there is a number called n which is the result of combine values with 1, 2
	say n
end
`)

	if !strings.Contains(out, "int combine_values(int a, int b);") {
		t.Fatalf("expected forward declaration:\n%s", out)
	}
	if !strings.Contains(out, "int combine_values(int a, int b) {") {
		t.Fatalf("expected function definition:\n%s", out)
	}
}

func TestLowerRepeatLoop(t *testing.T) {
	out := lower(t, `
to do the main thing:
	repeat 3 times:
		say "again"
	end
end
`)

	if !strings.Contains(out, "for (int __rep__ = 0; __rep__ < 3; __rep__++) {") {
		t.Fatalf("expected repeat-lowering to a counted for loop:\n%s", out)
	}
}
