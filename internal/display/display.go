// Package display renders command output: status lines, tables, JSON and
// progress spinners. All human-oriented output goes to stdout; errors go
// to stderr so they survive piping.
package display

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

var (
	successMark = color.New(color.FgGreen, color.Bold).Sprint("✓")
	infoMark    = color.New(color.FgBlue, color.Bold).Sprint("ℹ")
	warnLabel   = color.New(color.FgYellow, color.Bold).Sprint("Warning:")
	errorLabel  = color.New(color.FgRed, color.Bold).Sprint("Error:")
)

// NewSpinner creates a spinner with the given message, writing to stderr
// so spinner frames never pollute piped output.
func NewSpinner(message string) *spinner.Spinner {
	sp := spinner.New(spinner.CharSets[14], 120*time.Millisecond, spinner.WithWriter(os.Stderr))
	sp.Suffix = " " + message
	return sp
}

// ShowSuccess prints a success line.
func ShowSuccess(message string) {
	fmt.Printf("%s %s\n", successMark, message)
}

// ShowInfo prints an informational line.
func ShowInfo(message string) {
	fmt.Printf("%s %s\n", infoMark, message)
}

// ShowWarning prints a warning line to stderr.
func ShowWarning(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", warnLabel, message)
}

// ShowError prints an error line to stderr.
func ShowError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorLabel, message)
}

// PrintJSON pretty-prints data as JSON on stdout.
func PrintJSON(data any) error {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
