package report

import (
	"fmt"
	"os"
)

// TextSpan represents a range of source text. Spans are inclusive on both
// sides and lines/columns are 1-indexed (matching how source is displayed).
type TextSpan struct {
	StartLine, StartCol int
	EndLine, EndCol     int
}

// NewSpanOver returns a span covering both given spans.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

// Kind enumerates the closed error taxonomy of the Zinc compiler (spec §7).
// Every diagnostic the compiler produces belongs to exactly one of these.
type Kind int

const (
	LexError Kind = iota
	ParseError
	ResolveError
	LowerError
	ToolError
)

func (k Kind) String() string {
	switch k {
	case LexError:
		return "lex error"
	case ParseError:
		return "parse error"
	case ResolveError:
		return "resolve error"
	case LowerError:
		return "lower error"
	case ToolError:
		return "tool error"
	default:
		return "error"
	}
}

// CompileError is a fatal, localized compiler error belonging to one of the
// taxonomy kinds. It is raised via panic and caught by Catch at the
// boundary of each pipeline stage, matching the teacher's LocalCompileError
// / CatchErrors pattern: a stage never attempts to continue after one.
type CompileError struct {
	Kind    Kind
	Message string
	Span    *TextSpan
}

func (ce *CompileError) Error() string {
	return ce.Message
}

// Raise constructs and panics with a new CompileError of the given kind.
// Every lex/parse/resolve/lower stage function that hits an unrecoverable
// condition calls this instead of returning an error directly.
func Raise(kind Kind, span *TextSpan, msg string, args ...interface{}) {
	panic(&CompileError{Kind: kind, Message: fmt.Sprintf(msg, args...), Span: span})
}

// Catch recovers a panicked *CompileError (or a plain error, or anything
// else) raised during a pipeline stage and reports it, returning whether
// compilation should stop. Must always be deferred.
func Catch(stopped *bool) {
	if x := recover(); x != nil {
		*stopped = true

		if cerr, ok := x.(*CompileError); ok {
			ReportCompileError(cerr.Kind, cerr.Span, cerr.Message)
		} else if serr, ok := x.(error); ok {
			ReportCompileError(ToolError, nil, serr.Error())
		} else {
			ReportCompileError(ToolError, nil, "%v", x)
		}
	}
}

// ReportCompileError reports a compilation error of the given kind.
func ReportCompileError(kind Kind, span *TextSpan, message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.isErr = true

	if rep.logLevel > LogLevelSilent {
		displayCompileMessage(true, kind, span, fmt.Sprintf(message, args...))
	}
}

// ReportCompileWarning reports a compilation warning.
func ReportCompileWarning(span *TextSpan, message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel > LogLevelWarn {
		displayCompileMessage(false, LexError, span, fmt.Sprintf(message, args...))
	}
}

// ReportFatal reports a fatal, non-positional error (tool invocation
// failures, bad CLI arguments) and exits the process.
func ReportFatal(message string, args ...interface{}) {
	if rep != nil && rep.logLevel > LogLevelSilent {
		displayFatal(fmt.Sprintf(message, args...))
	}

	os.Exit(1)
}
