// Package generate lowers bytecode (package mir) to native code via an LLVM
// IR builder, grounded on src/generate/generator.go's choice of llir/llvm
// over CGo LLVM bindings (no CGo toolchain dependency, pure Go API) and on
// original_source/llvm_codegen.py's LLVMCodeGenerator, whose boxed-i64
// value representation and explicit in-memory expression stack this
// package ports directly: every Zinc value is carried as an i64 (floats
// bitcast, pointers ptrtoint'd), and each function keeps its own
// alloca-backed stack array plus stack pointer, so that a value pushed in
// one basic block and popped in another never violates SSA dominance.
package generate

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/mir"
)

const stackDepth = 256

// Generator converts a compiled mir.Program into an LLVM module.
type Generator struct {
	mod *ir.Module

	i8, i32, i64  *types.IntType
	double        *types.FloatType
	i8ptr         *types.PointerType
	void          *types.VoidType

	printf, fgets, atoll, atof, malloc, free *ir.Func
	sqrtFn, powFn, randFn, srandFn, timeFn   *ir.Func
	strstrFn                                 *ir.Func
	stdin                                    *ir.Global

	funcs map[string]*ir.Func

	strings    map[string]stringConst
	strCount   int
	fieldIndex map[string]int
}

type stringConst struct {
	global *ir.Global
	typ    *types.ArrayType
}

// Generate runs the full bytecode-to-LLVM-IR lowering.
func Generate(prog *mir.Program) *ir.Module {
	g := &Generator{
		mod:        ir.NewModule(),
		i8:         types.I8,
		i32:        types.I32,
		i64:        types.I64,
		double:     types.Double,
		i8ptr:      types.NewPointer(types.I8),
		void:       types.Void,
		funcs:      map[string]*ir.Func{},
		strings:    map[string]stringConst{},
		fieldIndex: map[string]int{},
	}

	g.declareRuntime()
	g.buildFieldIndex(prog)

	for name, fn := range prog.Functions {
		g.declareFunc(name, fn)
	}
	for name, fn := range prog.Functions {
		g.defineFunc(name, fn)
	}

	return g.mod
}

// declareRuntime declares the external C library functions Zinc native
// codegen relies on, grounded on llvm_codegen.py's _declare_runtime_functions.
func (g *Generator) declareRuntime() {
	g.printf = g.mod.NewFunc("printf", g.i32, ir.NewParam("", g.i8ptr))
	g.printf.Sig.Variadic = true

	g.fgets = g.mod.NewFunc("fgets", g.i8ptr,
		ir.NewParam("", g.i8ptr), ir.NewParam("", g.i32), ir.NewParam("", g.i8ptr))
	g.atoll = g.mod.NewFunc("atoll", g.i64, ir.NewParam("", g.i8ptr))
	g.atof = g.mod.NewFunc("atof", g.double, ir.NewParam("", g.i8ptr))

	g.malloc = g.mod.NewFunc("malloc", g.i8ptr, ir.NewParam("", g.i64))
	g.free = g.mod.NewFunc("free", g.void, ir.NewParam("", g.i8ptr))

	g.sqrtFn = g.mod.NewFunc("sqrt", g.double, ir.NewParam("", g.double))
	g.powFn = g.mod.NewFunc("pow", g.double, ir.NewParam("", g.double), ir.NewParam("", g.double))

	g.randFn = g.mod.NewFunc("rand", g.i32)
	g.srandFn = g.mod.NewFunc("srand", g.void, ir.NewParam("", g.i32))
	g.timeFn = g.mod.NewFunc("time", g.i64, ir.NewParam("", g.i8ptr))

	g.strstrFn = g.mod.NewFunc("strstr", g.i8ptr, ir.NewParam("", g.i8ptr), ir.NewParam("", g.i8ptr))

	g.stdin = g.mod.NewGlobal("stdin", g.i8ptr)
}

// buildFieldIndex resolves struct field names to a flat slot index. Zinc's
// boxed bytecode values carry no runtime type tag, so (unlike a typed
// native backend) STRUCT_GET/STRUCT_SET cannot recover which struct type a
// popped pointer belongs to; this mirrors that same boxed-value limitation
// that leaves original_source/llvm_codegen.py's ARRAY_LENGTH a stub, and
// resolves it the same pragmatic way: one flat name-to-slot table built
// across every struct declared in the program (an ambiguous field name
// shared by two structs will alias, same as a C union would).
func (g *Generator) buildFieldIndex(prog *mir.Program) {
	for _, sd := range prog.Structs {
		for i, f := range sd.Fields {
			g.fieldIndex[f.Name] = i
		}
	}
}

func (g *Generator) mangle(name string) string {
	if name == "main" {
		return "main"
	}
	return "_zinc_" + name
}

func (g *Generator) declareFunc(name string, fn *mir.Function) {
	if name == "main" {
		llFunc := g.mod.NewFunc("main", g.i32)
		g.funcs[name] = llFunc
		return
	}

	params := make([]*ir.Param, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = ir.NewParam(fmt.Sprintf("arg_%d_%s", i, p), g.i64)
	}
	llFunc := g.mod.NewFunc(g.mangle(name), g.i64, params...)
	g.funcs[name] = llFunc
}

// getStringPtr returns an i8* to a (possibly newly created) global constant
// holding s, NUL-terminated.
func (g *Generator) getStringPtr(block *ir.Block, s string) value.Value {
	sc, ok := g.strings[s]
	if !ok {
		encoded := append([]byte(s), 0)
		init := constant.NewCharArray(encoded)
		global := g.mod.NewGlobalDef(fmt.Sprintf(".str.%d", g.strCount), init)
		global.Immutable = true
		sc = stringConst{global: global, typ: init.Typ}
		g.strCount++
		g.strings[s] = sc
	}
	zero := constant.NewInt(g.i32, 0)
	return block.NewGetElementPtr(sc.typ, sc.global, zero, zero)
}
