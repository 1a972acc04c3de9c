// Package cmd is the top-level driver: argument parsing, stage
// orchestration, and the exit-code contract of spec.md §6. Grounded on
// bootstrap/cmd/driver.go's RunCompiler shape (one function running each
// stage in order, bailing out on first failure) and original_source/zinc.py's
// compile_zinc (exact flag semantics: emit-c short-circuits before any
// native compiler is invoked, keep-c/run behavior, gcc/clang fallback).
package cmd

import (
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/ast"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/config"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/lex"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/parse"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/report"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/resolve"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/token"
)

// Run is the compiler's single entry point, called directly from main. It
// returns the process exit code per spec.md §6: 0 on success, 1 on any
// compile error, the native compiler's exit code on downstream failure, or
// the executed program's exit code when --run is used.
func Run(args []string) int {
	opts := ParseArgs(args)

	src, err := ioutil.ReadFile(opts.SrcPath)
	if err != nil {
		report.ReportFatal("unable to read source file %q: %s", opts.SrcPath, err.Error())
		return 1
	}
	srcLines := strings.Split(string(src), "\n")

	report.Init(report.LogLevelVerbose, opts.SrcPath, srcLines)

	cfg, err := config.Load(filepath.Dir(opts.SrcPath))
	if err != nil {
		report.ReportFatal("unable to load zinc.toml: %s", err.Error())
		return 1
	}
	applyConfigDefaults(opts, cfg)

	prog, ok := frontend(string(src))
	if !ok {
		report.Finished(false)
		return 1
	}

	var exitCode int
	if opts.EmitLLVM || opts.EmitObject || opts.Disassemble {
		exitCode = runBytecodePath(opts, cfg, prog)
	} else {
		exitCode = runCPath(opts, cfg, prog)
	}

	report.Finished(exitCode == 0)
	return exitCode
}

// runStage runs fn as one named pipeline phase; report.Catch turns a raised
// *report.CompileError into a printed diagnostic and sets stopped.
func runStage(name string, fn func()) (stopped bool) {
	defer report.Catch(&stopped)
	report.BeginPhase(name)
	fn()
	report.EndPhase(!stopped)
	return
}

// frontend runs lex, parse and resolve, the stages shared by both lowering
// paths. Each stage is wrapped in report.Catch so a panicked
// *report.CompileError becomes a printed diagnostic instead of a crash.
func frontend(src string) (*ast.Program, bool) {
	var toks []*token.Token
	if stopped := runStage("Lexing", func() {
		toks = lex.New(src).Lex()
	}); stopped {
		return nil, false
	}

	var prog *ast.Program
	if stopped := runStage("Parsing", func() {
		prog = parse.Parse(toks)
	}); stopped || prog == nil {
		return nil, false
	}

	if stopped := runStage("Resolving", func() {
		resolve.Run(prog)
	}); stopped {
		return nil, false
	}

	return prog, true
}
