package cmd

import "testing"

func TestParseArgsDefaults(t *testing.T) {
	opts := ParseArgs([]string{"prog.zn"})

	if opts.SrcPath != "prog.zn" {
		t.Errorf("expected SrcPath prog.zn, got %q", opts.SrcPath)
	}
	if opts.OptLevel != 2 {
		t.Errorf("expected default OptLevel 2, got %d", opts.OptLevel)
	}
	if opts.EmitC || opts.EmitLLVM || opts.EmitObject || opts.KeepC || opts.Run || opts.Disassemble {
		t.Errorf("expected all flags false by default, got %+v", opts)
	}
}

func TestParseArgsFlagsAndOptions(t *testing.T) {
	opts := ParseArgs([]string{"-o", "out", "-O", "3", "--keep-c", "-r", "prog.zn"})

	if opts.OutputPath != "out" {
		t.Errorf("expected OutputPath out, got %q", opts.OutputPath)
	}
	if opts.OptLevel != 3 {
		t.Errorf("expected OptLevel 3, got %d", opts.OptLevel)
	}
	if !opts.KeepC {
		t.Error("expected KeepC true")
	}
	if !opts.Run {
		t.Error("expected Run true")
	}
	if opts.SrcPath != "prog.zn" {
		t.Errorf("expected SrcPath prog.zn, got %q", opts.SrcPath)
	}
}

func TestParseArgsEmitFlags(t *testing.T) {
	opts := ParseArgs([]string{"--emit-llvm", "-d", "prog.zn"})

	if !opts.EmitLLVM {
		t.Error("expected EmitLLVM true")
	}
	if !opts.Disassemble {
		t.Error("expected Disassemble true")
	}
}

func TestOutputBaseFallsBackToSourceBasename(t *testing.T) {
	opts := ParseArgs([]string{"/tmp/path/hello.zn"})

	if got := outputBase(opts); got != "hello" {
		t.Errorf("expected hello, got %q", got)
	}
}

func TestOutputBasePrefersExplicitOutput(t *testing.T) {
	opts := ParseArgs([]string{"-o", "myprog", "hello.zn"})

	if got := outputBase(opts); got != "myprog" {
		t.Errorf("expected myprog, got %q", got)
	}
}
