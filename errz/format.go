package errz

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Formatter formats errors with optional colors and consistent styling.
type Formatter struct {
	// UseColor enables ANSI color codes in output.
	UseColor bool
}

// NewFormatter creates a new error formatter.
func NewFormatter(useColor bool) *Formatter {
	return &Formatter{UseColor: useColor}
}

// Colors used for error formatting
var (
	colorErrorBold = color.New(color.FgRed, color.Bold)
	colorError     = color.New(color.FgRed)
	colorLocation  = color.New(color.FgCyan)
	colorLineNum   = color.New(color.FgHiBlack)
	colorPipe      = color.New(color.FgHiBlack)
	colorCaret     = color.New(color.FgHiRed)
)

func (f *Formatter) paint(c *color.Color, s string) string {
	if !f.UseColor {
		return s
	}
	return c.Sprint(s)
}

// Format formats the error as a string using a consistent Rust-like style.
func (f *Formatter) Format(err *StructuredError) string {
	var b strings.Builder

	msg := err.Message
	if msg == "" && err.Cause != nil {
		msg = err.Cause.Error()
	}

	// Error header: "syntax error: message"
	b.WriteString(f.paint(colorErrorBold, err.Kind.String()))
	b.WriteString(f.paint(colorError, ": "))
	b.WriteString(msg)
	b.WriteString("\n")

	loc := err.Location
	if loc.IsZero() {
		return b.String()
	}

	// Calculate line number width for consistent alignment
	lineNumWidth := 2
	if loc.Line >= 100 {
		lineNumWidth = len(fmt.Sprintf("%d", loc.Line))
	}
	padding := strings.Repeat(" ", lineNumWidth)

	// Location arrow: "  --> file.go:10:5"
	b.WriteString(f.paint(colorLineNum, padding))
	b.WriteString(f.paint(colorLocation, "--> "))
	b.WriteString(f.paint(colorLocation, loc.String()))
	b.WriteString("\n")

	// Source context with line number and caret
	if loc.Source != "" {
		b.WriteString(f.paint(colorLineNum, padding))
		b.WriteString(f.paint(colorPipe, " |\n"))

		b.WriteString(f.paint(colorLineNum, fmt.Sprintf("%*d", lineNumWidth, loc.Line)))
		b.WriteString(f.paint(colorPipe, " | "))
		b.WriteString(loc.Source)
		b.WriteString("\n")

		if loc.Column > 0 {
			b.WriteString(f.paint(colorLineNum, padding))
			b.WriteString(f.paint(colorPipe, " | "))
			b.WriteString(strings.Repeat(" ", loc.Column-1))
			b.WriteString(f.paint(colorCaret, "^"))
			b.WriteString("\n")
		}
	}
	return b.String()
}
