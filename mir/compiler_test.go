package mir

import (
	"strings"
	"testing"

	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/lex"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/parse"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/resolve"
)

func compile(t *testing.T, src string) *Program {
	t.Helper()
	toks := lex.New(src).Lex()
	prog := parse.Parse(toks)
	resolve.Run(prog)
	return Compile(prog)
}

func TestCompileHelloWorld(t *testing.T) {
	p := compile(t, `
to do the main thing:
	say "Hello, World!"
end
`)

	main, ok := p.Functions["main"]
	if !ok {
		t.Fatal("expected a main function")
	}

	var sawPrint, sawPush bool
	for _, instr := range main.Code {
		if instr.Op == PushString && instr.Operand == "Hello, World!" {
			sawPush = true
		}
		if instr.Op == Print {
			sawPrint = true
		}
	}
	if !sawPush || !sawPrint {
		t.Fatalf("expected PUSH_STRING + PRINT in main, got %v", main.Code)
	}
}

func TestCompileIfElseJumpsPatch(t *testing.T) {
	p := compile(t, `
to do the main thing:
	there is a number called x which is 5
	if x is greater than 3:
		say "big"
	otherwise:
		say "small"
	end
end
`)

	main := p.Functions["main"]
	for _, instr := range main.Code {
		if jmp, ok := instr.Operand.(int); ok && (instr.Op == Jump || instr.Op == JumpIfFalse) {
			if jmp < 0 || jmp > len(main.Code) {
				t.Fatalf("jump target %d out of range (code length %d)", jmp, len(main.Code))
			}
		}
	}
}

func TestCompileRepeatLoopBreak(t *testing.T) {
	p := compile(t, `
to do the main thing:
	repeat 3 times:
		say "again"
		break
	end
end
`)

	main := p.Functions["main"]
	var sawJump bool
	for _, instr := range main.Code {
		if instr.Op == Jump {
			sawJump = true
		}
	}
	if !sawJump {
		t.Fatalf("expected at least one JUMP (loop back-edge or break), got %v", main.Code)
	}
}

func TestCompileFunctionForwardDecl(t *testing.T) {
	p := compile(t, `
to combine values with a number a and a number b and return a number:
	return a plus b
end

to do the main thing:
	there is a number called r which is the result of combine values with 1, 2
	say r
end
`)

	fn, ok := p.Functions["combine_values"]
	if !ok {
		t.Fatalf("expected combine_values function, got %v", p.Functions)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}

	disasm := p.Disassemble()
	if !strings.Contains(disasm, "combine_values") {
		t.Fatalf("expected disassembly to mention combine_values, got %s", disasm)
	}
}
