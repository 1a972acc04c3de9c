// Command zinc is the Zinc compiler entry point: lex, parse, resolve, then
// lower either to C (default) or to bytecode IR and native code via LLVM
// (-d/--emit-llvm/--emit-object), per spec.md §6.
package main

import (
	"os"

	"github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/cmd"
)

func main() {
	os.Exit(cmd.Run(os.Args[1:]))
}
