// Package platform holds the small host-facing helpers shared by the
// toolshub commands: colored status output, logging, JSON and file output,
// and opening links in the user's browser.
package platform

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// colorEnabled controls whether ANSI escape codes are emitted.
// Set once by InitColor().
var colorEnabled bool

// InitColor determines whether color output should be enabled.
// It respects NO_COLOR (https://no-color.org/), TERM=dumb, and non-TTY stdout.
func InitColor() {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		colorEnabled = false
		return
	}
	colorEnabled = IsTerminal(os.Stdout)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

func apply(code, s string) string {
	if !colorEnabled {
		return s
	}
	return code + s + ansiReset
}

func Bold(s string) string     { return apply(ansiBold, s) }
func Yellow(s string) string   { return apply(ansiYellow, s) }
func Cyan(s string) string     { return apply(ansiCyan, s) }
func BoldCyan(s string) string { return apply(ansiBold+ansiCyan, s) }

// PrintBanner prints a bold cyan banner line: "\n=== title ===\n"
func PrintBanner(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", BoldCyan("=== "+title+" ==="))
}

// PrintOK prints "  [OK] msg".
func PrintOK(w io.Writer, msg string) {
	fmt.Fprintf(w, "  %s %s\n", apply(ansiBold+ansiGreen, "[OK]"), msg)
}

// PrintWarn prints "  [WARN] msg".
func PrintWarn(w io.Writer, msg string) {
	fmt.Fprintf(w, "  %s %s\n", Yellow("[WARN]"), msg)
}

// PrintInfo prints "  [INFO] msg".
func PrintInfo(w io.Writer, msg string) {
	fmt.Fprintf(w, "  [INFO] %s\n", msg)
}
