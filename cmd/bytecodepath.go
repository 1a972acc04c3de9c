package cmd

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"os/exec"
	"strconv"

	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/ast"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/config"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/generate"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/mir"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/report"
)

// runBytecodePath compiles to the bytecode IR (mir) and, depending on flags,
// dumps the disassembly, lowers to LLVM IR text, or drives the host C
// compiler over that IR text to produce an object file. llir/llvm is a pure
// Go IR *builder*, not a full backend (src/generate/generator.go's own
// rationale for avoiding CGo LLVM bindings), so turning IR text into an
// object file or executable means shelling out the same way
// original_source/llvm_codegen.py's compile_to_object/compile_to_executable
// shell out to a system linker/compiler rather than driving LLVM's codegen
// in-process.
func runBytecodePath(opts *Options, cfg *config.Config, prog *ast.Program) int {
	var bc *mir.Program
	if stopped := runStage("Compiling to bytecode", func() {
		bc = mir.Compile(prog)
	}); stopped {
		return 1
	}

	if opts.Disassemble {
		fmt.Print(bc.Disassemble())
		return 0
	}

	var irText string
	if stopped := runStage("Generating native IR", func() {
		m := generate.Generate(bc)
		var buf bytes.Buffer
		if _, err := m.WriteTo(&buf); err != nil {
			report.Raise(report.ToolError, nil, "failed writing LLVM IR: %s", err.Error())
		}
		irText = buf.String()
	}); stopped {
		return 1
	}

	exeName := outputBase(opts)

	if opts.EmitLLVM {
		if opts.OutputPath == "" {
			fmt.Print(irText)
			return 0
		}
		if err := ioutil.WriteFile(exeName+".ll", []byte(irText), 0644); err != nil {
			report.ReportFatal("failed writing LLVM IR file: %s", err.Error())
			return 1
		}
		return 0
	}

	llFile := exeName + ".ll"
	if err := ioutil.WriteFile(llFile, []byte(irText), 0644); err != nil {
		report.ReportFatal("failed writing LLVM IR file: %s", err.Error())
		return 1
	}
	defer os.Remove(llFile)

	var exitCode int
	if opts.EmitObject {
		objArgs := []string{"-O" + strconv.Itoa(opts.OptLevel), "-c", llFile, "-o", exeName + ".o"}
		if stopped := runStage("Assembling object file", func() {
			if out, err := exec.Command(cfg.CCompiler, objArgs...).CombinedOutput(); err != nil {
				report.ReportCompileError(report.ToolError, nil, "%s failed:\n%s", cfg.CCompiler, string(out))
				exitCode = 1
				if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() > 0 {
					exitCode = exitErr.ExitCode()
				}
			}
		}); stopped {
			return 1
		}
		return exitCode
	}

	linkArgs := []string{"-O" + strconv.Itoa(opts.OptLevel), llFile, "-o", exeName, "-lm"}
	for _, lib := range cfg.Link {
		linkArgs = append(linkArgs, "-l"+lib)
	}

	if stopped := runStage("Compiling", func() {
		if out, err := exec.Command(cfg.CCompiler, linkArgs...).CombinedOutput(); err != nil {
			report.ReportCompileError(report.ToolError, nil, "%s failed:\n%s", cfg.CCompiler, string(out))
			exitCode = 1
			if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() > 0 {
				exitCode = exitErr.ExitCode()
			}
		}
	}); stopped {
		return 1
	}
	if exitCode != 0 {
		return exitCode
	}

	if !opts.Run {
		return 0
	}
	return runExecutable(exeName)
}
