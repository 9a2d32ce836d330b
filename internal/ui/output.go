package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
)

var out io.Writer = os.Stdout

// SetOutput redirects the print helpers and returns a func restoring the
// previous writer.
func SetOutput(w io.Writer) func() {
	prev := out
	out = w
	return func() { out = prev }
}

// Success prints a success message with checkmark
func Success(text string) {
	fmt.Fprintln(out, SuccessStyle.Render("✓ "+text))
}

// Error prints an error message
func Error(text string) {
	fmt.Fprintln(out, ErrorStyle.Render("✗ "+text))
}

// Warning prints a warning message
func Warning(text string) {
	fmt.Fprintln(out, WarningStyle.Render("! "+text))
}

// Dim prints indented secondary text
func Dim(text string) {
	fmt.Fprintln(out, DimStyle.Render("  "+text))
}

// Command prints a CLI command the user can run next
func Command(text string) {
	fmt.Fprintln(out, CommandStyle.Render(text))
}

func Bold(text string) {
	fmt.Fprintln(out, BoldStyle.Render(text))
}

func Line() {
	fmt.Fprintln(out)
}

func Print(text string) {
	fmt.Fprintln(out, text)
}

func Printf(format string, args ...any) {
	fmt.Fprintf(out, format, args...)
}

// Indent returns text with two spaces per level
func Indent(text string, level int) string {
	return strings.Repeat("  ", level) + text
}

// Render helpers style text without printing it.

func RenderError(text string) string {
	return ErrorStyle.Render(text)
}

func RenderDim(text string) string {
	return DimStyle.Render(text)
}

func RenderBold(text string) string {
	return BoldStyle.Render(text)
}

func RenderCode(text string) string {
	return CodeStyle.Render(text)
}
