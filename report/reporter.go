// Package report implements Zinc's diagnostic reporting: source spans, the
// closed compile-error taxonomy, and colorized phase/error output.
package report

import (
	"sync"

	"github.com/pterm/pterm"
)

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all compilation messages (default).
)

// Reporter is responsible for reporting errors, warnings, and phase progress
// to the user during compilation. It respects the set log level and is safe
// to call from multiple goroutines.
type Reporter struct {
	m        *sync.Mutex
	logLevel int
	isErr    bool

	srcPath  string
	srcLines []string

	spinner *pterm.SpinnerPrinter
	phase   string
}

var rep *Reporter

// Init initializes the global reporter to the given log level and source
// file. If the reporter has already been initialized, this does nothing.
func Init(logLevel int, srcPath string, srcLines []string) {
	if rep == nil {
		rep = &Reporter{
			m:        &sync.Mutex{},
			logLevel: logLevel,
			srcPath:  srcPath,
			srcLines: srcLines,
		}
	}
}

// AnyErrors returns whether or not any errors were detected.
func AnyErrors() bool {
	return rep.isErr
}
