package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const usage = `Usage: zinc [flags|options] <path to .zn file>

Flags:
------
-h, --help          Displays usage information (ie. this text).
-v, --version       Displays the current compiler version.
    --emit-c        Write the generated C translation unit (to stdout, or
                     to NAME.c with -o); do not invoke the native compiler.
    --emit-llvm     (IR path) write the native IR text instead of compiling.
    --emit-object   (IR path) write an object file without linking.
    --keep-c        Retain the intermediate C file after linking.
-r, --run           Execute the produced binary, inheriting stdio, and exit
                     with its status.
-d, --disassemble   (IR path) dump bytecode IR instead of compiling.

Options:
--------
-o NAME     Sets the output executable (or object/IR) name. Defaults to the
            source file's basename.
-O 0..3     (IR path) optimization level passed to the native compiler.
            Defaults to 2.
`

// options holding an argument value (as opposed to bare flags).
var valueOptions = map[string]struct{}{
	"o":         {},
	"-output":   {},
	"O":         {},
	"-optlevel": {},
}

// Options is the fully parsed command-line configuration.
type Options struct {
	SrcPath string

	OutputPath string

	EmitC       bool
	EmitLLVM    bool
	EmitObject  bool
	KeepC       bool
	Run         bool
	Disassemble bool

	OptLevel int
	optSet   bool
}

func printUsage(exitCode int) {
	fmt.Print(usage)
	os.Exit(exitCode)
}

func argumentError(message string, args ...interface{}) {
	fmt.Fprint(os.Stderr, "argument error: ", fmt.Sprintf(message, args...), "\n\n")
	printUsage(1)
}

// argParser walks os.Args-style argument lists the way
// bootstrap/cmd/args.go's argParser does: one flag/option/positional at a
// time, with options consuming the following argument as their value.
type argParser struct {
	args []string
	ndx  int
}

// nextArg parses the next argument. The first return value is the flag/
// option name (empty for a positional argument); the second is its value
// (empty for a bare flag); the third reports whether an argument was
// available at all.
func (ap *argParser) nextArg() (string, string, bool) {
	if ap.ndx >= len(ap.args) {
		return "", "", false
	}

	arg := ap.args[ap.ndx]
	ap.ndx++

	if strings.HasPrefix(arg, "-") {
		name := strings.TrimPrefix(arg, "-")

		if _, ok := valueOptions[name]; ok {
			if ap.ndx < len(ap.args) {
				value := ap.args[ap.ndx]
				ap.ndx++
				return name, value, true
			}
			argumentError("option -%s requires an argument", name)
		}

		return name, "", true
	}

	return "", arg, true
}

// ParseArgs parses the compiler's command-line arguments (typically
// os.Args[1:]) into an Options value. Exits the process directly on -h/-v
// or a malformed argument, matching bootstrap/cmd/args.go's useArg.
func ParseArgs(args []string) *Options {
	opts := &Options{OptLevel: 2}

	ap := &argParser{args: args}
	for {
		name, value, ok := ap.nextArg()
		if !ok {
			break
		}

		switch name {
		case "":
			if opts.SrcPath != "" {
				argumentError("only one source file may be given (already have %q)", opts.SrcPath)
			}
			opts.SrcPath = value
		case "h", "-help":
			printUsage(0)
		case "v", "-version":
			fmt.Println("zinc compiler")
			os.Exit(0)
		case "-emit-c":
			opts.EmitC = true
		case "-emit-llvm":
			opts.EmitLLVM = true
		case "-emit-object":
			opts.EmitObject = true
		case "-keep-c":
			opts.KeepC = true
		case "r", "-run":
			opts.Run = true
		case "d", "-disassemble":
			opts.Disassemble = true
		case "o", "-output":
			opts.OutputPath = value
		case "O", "-optlevel":
			lvl, err := strconv.Atoi(value)
			if err != nil || lvl < 0 || lvl > 3 {
				argumentError("optimization level must be an integer 0-3, got %q", value)
			}
			opts.OptLevel = lvl
			opts.optSet = true
		default:
			argumentError("unrecognized argument -%s", name)
		}
	}

	if opts.SrcPath == "" {
		argumentError("no source file given")
	}

	return opts
}
