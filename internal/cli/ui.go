package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan  = lipgloss.Color("36")  // Teal - headings
	colorRed   = lipgloss.Color("167") // Soft red - errors
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

var (
	// styleTitle for report headings.
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// styleNumber for citation counts.
	styleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// styleValue for entry keys.
	styleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// styleDim for secondary text (use/level lines).
	styleDim = lipgloss.NewStyle().Foreground(colorDim)

	styleIconError = lipgloss.NewStyle().Foreground(colorRed)
)

const iconError = "✗"

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}
