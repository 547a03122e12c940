// Package ui prints user-facing status lines.
//
// Output goes to stdout by default and is styled with lipgloss when the
// destination is a terminal. Diagnostics for developers belong in the
// logger, not here.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	mu           sync.Mutex
	out          io.Writer = os.Stdout
	colorEnabled           = true
	quiet        bool
)

// SetOutput redirects all status output to w
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// SetColorEnabled turns styling on or off. Styling is also skipped
// whenever the output is not a terminal.
func SetColorEnabled(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	colorEnabled = enabled
}

// SetQuietMode suppresses everything except errors
func SetQuietMode(q bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = q
}

// IsQuiet reports whether quiet mode is on
func IsQuiet() bool {
	mu.Lock()
	defer mu.Unlock()
	return quiet
}

// IsTerminal reports whether w is attached to a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func render(style lipgloss.Style, text string) string {
	if !colorEnabled || !IsTerminal(out) {
		return text
	}
	return style.Render(text)
}

func write(force bool, s string) {
	mu.Lock()
	defer mu.Unlock()
	if quiet && !force {
		return
	}
	fmt.Fprint(out, s)
}

func styled(force bool, style lipgloss.Style, s string) {
	mu.Lock()
	defer mu.Unlock()
	if quiet && !force {
		return
	}
	fmt.Fprintln(out, render(style, s))
}

// Printf writes an unstyled status line
func Printf(format string, args ...interface{}) {
	write(false, fmt.Sprintf(format, args...))
}

// Println writes an unstyled status line followed by a newline
func Println(msg string) {
	write(false, msg+"\n")
}

// PrintInfo prints a label and its value
func PrintInfo(label string, value string) {
	mu.Lock()
	defer mu.Unlock()
	if quiet {
		return
	}
	fmt.Fprintf(out, "%s: %s\n", render(labelStyle, label), render(valueStyle, value))
}

// PrintSuccess prints a success message in green
func PrintSuccess(msg string) {
	styled(false, successStyle, msg)
}

// PrintWarning prints a warning message in yellow
func PrintWarning(msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = msg + ": " + fmt.Sprintf("%v", args[0])
	}
	styled(false, warningStyle, msg)
}

// PrintError prints an error message in red. Errors are shown in quiet mode.
func PrintError(msg string, args ...interface{}) {
	if len(args) > 0 {
		msg = msg + ": " + fmt.Sprintf("%v", args[0])
	}
	styled(true, errorStyle, msg)
}

// PrintHighlight prints a highlighted message in magenta
func PrintHighlight(msg string) {
	styled(false, highlightStyle, msg)
}

// PrintDim prints secondary information
func PrintDim(msg string) {
	styled(false, dimStyle, msg)
}
