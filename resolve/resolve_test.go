package resolve

import (
	"testing"

	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/ast"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/lex"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/parse"
)

func parseSrc(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks := lex.New(src).Lex()
	return parse.Parse(toks)
}

func TestResolveParamBeforeLocal(t *testing.T) {
	prog := parseSrc(t, `
to greet with a number n and return a number:
	return n plus 1
end

to do the main thing:
	there is a number called n which is 5
	say n
end
`)

	var fn *ast.FuncDef
	for _, d := range prog.Decls {
		if f, ok := d.(*ast.FuncDef); ok {
			fn = f
		}
	}
	if fn == nil {
		t.Fatal("expected function decl")
	}

	Run(prog)

	ret := fn.Body[0].(*ast.Return)
	bin := ret.Value.(*ast.BinaryOp)
	ref := bin.Left.(*ast.VarRef)
	if ref.Kind != ast.RefParam {
		t.Fatalf("expected param reference, got %v", ref.Kind)
	}
}

func TestResolveGlobalLocalShadowing(t *testing.T) {
	prog := parseSrc(t, `
to do the main thing:
	there is a number called count which is 0
	while count is less than 3:
		there is a number called count which is 1
		say count
	end
end
`)

	Run(prog)

	main := prog.Decls[0].(*ast.MainFunc)
	loop := main.Body[1].(*ast.While)
	inner := loop.Body[1].(*ast.Say)
	ref := inner.Value.(*ast.VarRef)
	if ref.Kind != ast.RefLocal {
		t.Fatalf("expected shadowed local, got %v", ref.Kind)
	}
}

func TestResolveUnknownNameIsPassthrough(t *testing.T) {
	prog := parseSrc(t, `
to do the main thing:
	say argc
end
`)

	Run(prog)

	main := prog.Decls[0].(*ast.MainFunc)
	say := main.Body[0].(*ast.Say)
	ref := say.Value.(*ast.VarRef)
	if ref.Kind != ast.RefPassthrough {
		t.Fatalf("expected passthrough for unknown name, got %v", ref.Kind)
	}
}

func TestResolveCallKnownFunction(t *testing.T) {
	prog := parseSrc(t, `
to greet the user:
	say "hi"
end

to do the main thing:
	greet the user
end
`)

	Run(prog)

	main := prog.Decls[1].(*ast.MainFunc)
	stmt := main.Body[0]
	if _, ok := stmt.(*ast.CallStmt); !ok {
		t.Fatalf("expected call statement, got %T", stmt)
	}
}
