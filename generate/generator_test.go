package generate

import (
	"bytes"
	"strings"
	"testing"

	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/lex"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/mir"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/parse"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/resolve"
)

func genModule(t *testing.T, src string) string {
	t.Helper()
	toks := lex.New(src).Lex()
	prog := parse.Parse(toks)
	resolve.Run(prog)
	bc := mir.Compile(prog)
	mod := Generate(bc)
	var buf bytes.Buffer
	if _, err := mod.WriteTo(&buf); err != nil {
		t.Fatalf("failed writing LLVM IR: %v", err)
	}
	return buf.String()
}

func TestGenerateHelloWorldDeclaresMain(t *testing.T) {
	ir := genModule(t, `
to do the main thing:
	say "Hello, World!"
end
`)

	if !strings.Contains(ir, "define i32 @main()") {
		t.Fatalf("expected a defined i32 @main(), got:\n%s", ir)
	}
	if !strings.Contains(ir, "declare") || !strings.Contains(ir, "@printf") {
		t.Fatalf("expected a printf declaration, got:\n%s", ir)
	}
}

func TestGenerateFunctionCallLowersToLLVMCall(t *testing.T) {
	ir := genModule(t, `
to combine values with a number a and a number b and return a number:
	return a plus b
end

to do the main thing:
	there is a number called r which is the result of combine values with 1, 2
	say r
end
`)

	if !strings.Contains(ir, "_zinc_combine_values") {
		t.Fatalf("expected a mangled combine_values function, got:\n%s", ir)
	}
	if !strings.Contains(ir, "call i64 @_zinc_combine_values") {
		t.Fatalf("expected a call to combine_values, got:\n%s", ir)
	}
}

func TestGenerateIfBranches(t *testing.T) {
	ir := genModule(t, `
to do the main thing:
	there is a number called x which is 5
	if x is greater than 3:
		say "big"
	otherwise:
		say "small"
	end
end
`)

	if !strings.Contains(ir, "br i1") {
		t.Fatalf("expected a conditional branch, got:\n%s", ir)
	}
}
