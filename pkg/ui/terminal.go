package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// ASCII logo for the application
const ASCIILogo = `
    ╔═══════════════════════════════════════════════════════╗
    ║  ██████╗ ███████╗███████╗██╗         ███████╗ ██████╗  ║
    ║  ██╔══██╗██╔════╝██╔════╝██║         ██╔════╝██╔════╝  ║
    ║  ██████╔╝█████╗  █████╗  ██║         ███████╗██║       ║
    ║  ██╔══██╗██╔══╝  ██╔══╝  ██║         ╚════██║██║       ║
    ║  ██║  ██║███████╗███████╗███████╗    ███████║╚██████╗  ║
    ║  ╚═╝  ╚═╝╚══════╝╚══════╝╚══════╝    ╚══════╝ ╚═════╝  ║
    ║          FACEBOOK REEL METADATA SCRAPER                ║
    ╚═══════════════════════════════════════════════════════╝
`

var (
	outputMu     sync.Mutex
	output       io.Writer = os.Stdout
	quietMode    bool
	colorEnabled = IsTerminal(os.Stdout)
)

// Color functions for terminal output
var (
	Cyan    = colorize("\033[36m%s\033[0m")
	Yellow  = colorize("\033[33m%s\033[0m")
	Red     = colorize("\033[31m%s\033[0m")
	Green   = colorize("\033[32m%s\033[0m")
	Magenta = colorize("\033[35m%s\033[0m")
	Dim     = colorize("\033[2m%s\033[0m")
)

// colorize returns a function that wraps text with ANSI color codes when
// color output is enabled
func colorize(colorString string) func(string) string {
	return func(text string) string {
		outputMu.Lock()
		enabled := colorEnabled
		outputMu.Unlock()
		if !enabled {
			return text
		}
		return fmt.Sprintf(colorString, text)
	}
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// SetOutput redirects all printing helpers to w
func SetOutput(w io.Writer) {
	outputMu.Lock()
	defer outputMu.Unlock()
	output = w
}

// SetColor enables or disables ANSI colors
func SetColor(enabled bool) {
	outputMu.Lock()
	defer outputMu.Unlock()
	colorEnabled = enabled
}

// SetQuietMode suppresses all printing helpers
func SetQuietMode(quiet bool) {
	outputMu.Lock()
	defer outputMu.Unlock()
	quietMode = quiet
}

// IsQuietMode reports whether output is suppressed
func IsQuietMode() bool {
	outputMu.Lock()
	defer outputMu.Unlock()
	return quietMode
}

// Printf writes to the UI output unless quiet mode is on
func Printf(format string, args ...interface{}) {
	outputMu.Lock()
	w, quiet := output, quietMode
	outputMu.Unlock()
	if quiet {
		return
	}
	fmt.Fprintf(w, format, args...)
}

// PrintLogo prints the ASCII logo with color
func PrintLogo() {
	Printf("%s", Cyan(ASCIILogo))
}

// PrintError prints an error message in red
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		msg += ": " + fmt.Sprintf("%v", args[0])
	}
	Printf("%s\n", Red(msg))
}

// PrintSuccess prints a success message in green
func PrintSuccess(msg string) {
	Printf("%s\n", Green(msg))
}

// PrintInfo prints a label and value
func PrintInfo(label string, value string) {
	Printf("%s: %s\n", Cyan(label), Yellow(value))
}

// PrintWarning prints a warning message in yellow
func PrintWarning(msg string, args ...interface{}) {
	if len(args) > 0 {
		msg += ": " + fmt.Sprintf("%v", args[0])
	}
	Printf("%s\n", Yellow(msg))
}

// PrintHighlight prints a highlighted message in magenta
func PrintHighlight(msg string) {
	Printf("%s\n", Magenta(msg))
}
