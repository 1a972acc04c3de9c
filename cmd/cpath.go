package cmd

import (
	"fmt"
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/ast"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/clower"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/config"
	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/report"
)

// outputBase returns the executable/output name the user asked for, or the
// source file's basename (without extension) otherwise, matching
// original_source/zinc.py's source_path.stem fallback.
func outputBase(opts *Options) string {
	if opts.OutputPath != "" {
		return opts.OutputPath
	}
	base := filepath.Base(opts.SrcPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// runCPath lowers to C (clower.Lower) and, unless --emit-c was given, shells
// out to the configured C compiler to produce (and optionally run) a native
// executable. Grounded on original_source/zinc.py's compile_zinc: emit-c
// short-circuits before any native compiler runs; the C file is removed
// after linking unless --keep-c was given.
func runCPath(opts *Options, cfg *config.Config, prog *ast.Program) int {
	var cCode string
	stopped := runStage("Lowering to C", func() {
		cCode = clower.Lower(prog)
	})
	if stopped {
		return 1
	}

	exeName := outputBase(opts)

	if opts.EmitC {
		if opts.OutputPath == "" {
			fmt.Print(cCode)
			return 0
		}
		if err := ioutil.WriteFile(exeName+".c", []byte(cCode), 0644); err != nil {
			report.ReportFatal("failed writing C file: %s", err.Error())
			return 1
		}
		return 0
	}

	cFile := exeName + ".c"
	if err := ioutil.WriteFile(cFile, []byte(cCode), 0644); err != nil {
		report.ReportFatal("failed writing C file: %s", err.Error())
		return 1
	}
	if !opts.KeepC {
		defer os.Remove(cFile)
	}

	args := []string{cFile, "-o", exeName, "-std=" + cfg.Std, "-O" + strconv.Itoa(opts.OptLevel), "-lm"}
	for _, lib := range cfg.Link {
		args = append(args, "-l"+lib)
	}

	var exitCode int
	compileStopped := runStage("Compiling", func() {
		cmd := exec.Command(cfg.CCompiler, args...)
		out, err := cmd.CombinedOutput()
		if err != nil {
			exitCode = 1
			if exitErr, ok := err.(*exec.ExitError); ok {
				report.ReportCompileError(report.ToolError, nil, "%s failed:\n%s", cfg.CCompiler, string(out))
				if exitErr.ExitCode() > 0 {
					exitCode = exitErr.ExitCode()
				}
			} else {
				report.ReportCompileError(report.ToolError, nil, "failed to run %s: %s", cfg.CCompiler, err.Error())
			}
		}
	})
	if compileStopped {
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

// runExecutable runs the produced binary, inheriting stdio, and returns its
// exit status (spec.md §6's "the executed program's exit code").
func runExecutable(exeName string) int {
	path := exeName
	if !filepath.IsAbs(path) {
		path = "./" + path
	}

	cmd := exec.Command(path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode()
		}
		report.ReportFatal("failed to run %s: %s", path, err.Error())
		return 1
	}
	return 0
}
