package report

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// displayCompileMessage prints a banner naming the error/warning kind and
// source file, the message itself, and (when a span is known) the offending
// source text with carets underneath it.
func displayCompileMessage(isError bool, kind Kind, span *TextSpan, message string) {
	displayBanner(isError, kind)
	fmt.Println(message)

	if span != nil {
		displayCodeSelection(span)
	}
}

func displayBanner(isError bool, kind Kind) {
	fmt.Print("\n\n-- ")

	kindStr := kind.String()
	kindLen := len(kindStr)
	if isError {
		ErrorStyleBG.Print(strings.Title(kindStr))
	} else {
		WarnStyleBG.Print(strings.Title(kindStr))
	}

	fmt.Print(" ")

	fileName := filepath.Base(rep.srcPath)
	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen > 50 {
		bannerLen = 50
	}
	dashCount := bannerLen - len(fileName) - kindLen - 1
	if dashCount < 1 {
		dashCount = 1
	}

	fmt.Print(strings.Repeat("-", dashCount) + " ")
	InfoColorFG.Println(fileName)
}

func displayCodeSelection(span *TextSpan) {
	fmt.Println()

	if span.StartLine < 1 || span.EndLine > len(rep.srcLines) {
		return
	}

	lines := rep.srcLines[span.StartLine-1 : span.EndLine]

	minWhitespace := -1
	for _, line := range lines {
		leadingWhitespace := 0
		for _, c := range line {
			if c == ' ' {
				leadingWhitespace++
			} else if c == '\t' {
				leadingWhitespace += 4
			} else {
				break
			}
		}

		if minWhitespace == -1 || minWhitespace > leadingWhitespace {
			minWhitespace = leadingWhitespace
		}
	}
	if minWhitespace < 0 {
		minWhitespace = 0
	}

	maxLineNumberWidth := len(strconv.Itoa(span.EndLine)) + 1
	lineNumberFmtStr := "%-" + strconv.Itoa(maxLineNumberWidth) + "v"

	for i, line := range lines {
		InfoColorFG.Print(fmt.Sprintf(lineNumberFmtStr, i+span.StartLine))
		fmt.Print("|  ")
		trimmed := strings.ReplaceAll(line, "\t", "    ")
		if minWhitespace <= len(trimmed) {
			trimmed = trimmed[minWhitespace:]
		}
		fmt.Println(trimmed)

		fmt.Print(strings.Repeat(" ", maxLineNumberWidth), "|  ")
		if i == 0 {
			startCol := span.StartCol - minWhitespace
			if startCol < 0 {
				startCol = 0
			}
			fmt.Print(strings.Repeat(" ", startCol))

			if i == len(lines)-1 {
				ErrorColorFG.Println(strings.Repeat("^", max(1, span.EndCol-span.StartCol)))
			} else {
				ErrorColorFG.Println(strings.Repeat("^", max(1, len(line)-span.StartCol-minWhitespace)))
			}
		} else if i == len(lines)-1 {
			ErrorColorFG.Println(strings.Repeat("^", max(1, span.EndCol-minWhitespace)))
		} else {
			ErrorColorFG.Println(strings.Repeat("^", max(1, len(line)-minWhitespace)))
		}
	}

	fmt.Println()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func displayFatal(msg string) {
	fmt.Print("\n\n")
	ErrorStyleBG.Print("Fatal Error ")
	ErrorColorFG.Println(msg)
}

// Phase progress, mirroring the teacher's spinner-per-stage display.

var (
	phaseSpinner   *pterm.SpinnerPrinter
	currentPhase   string
	phaseStartTime time.Time
)

const maxPhaseLength = len("Generating")

// BeginPhase displays the start of a compilation phase (lex/parse/resolve/
// lower/codegen) with a spinner.
func BeginPhase(phase string) {
	if rep == nil || rep.logLevel < LogLevelVerbose {
		return
	}

	currentPhase = phase
	pad := maxPhaseLength - len(phase)
	if pad < 0 {
		pad = 0
	}
	phaseText := phase + "..." + strings.Repeat(" ", pad+2)

	phaseSpinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))
	phaseSpinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix:       pterm.Prefix{Style: SuccessStyleBG, Text: "Done"},
	}
	phaseSpinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix:       pterm.Prefix{Style: ErrorStyleBG, Text: "Fail"},
	}

	phaseSpinner.Start(phaseText)
	phaseStartTime = time.Now()
}

// EndPhase ends the current phase's spinner, reporting success or failure.
func EndPhase(success bool) {
	if phaseSpinner == nil {
		return
	}

	pad := maxPhaseLength - len(currentPhase)
	if pad < 0 {
		pad = 0
	}
	padded := currentPhase + strings.Repeat(" ", pad+2)

	if success {
		phaseSpinner.Success(padded, fmt.Sprintf("(%.3fs)", time.Since(phaseStartTime).Seconds()))
	} else {
		phaseSpinner.Fail(padded)
	}

	phaseSpinner = nil
}

// Finished prints the closing summary line.
func Finished(success bool) {
	fmt.Print("\n")

	if success {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	if success {
		SuccessColorFG.Println("compilation succeeded")
	} else {
		ErrorColorFG.Println("compilation failed")
	}
}
