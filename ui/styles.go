package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	dimColor     = lipgloss.Color("7")
	accentColor  = lipgloss.Color("12")
	successColor = lipgloss.Color("10")
	warningColor = lipgloss.Color("11")
	dangerColor  = lipgloss.Color("9")

	// Candidate display name style
	NameStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	// Playable result style
	OKStyle = lipgloss.NewStyle().
		Foreground(successColor)

	// Rejected or rule-breaking result style
	InvalidStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	// Failure (parse error, timeout, transport) style
	ErrorStyle = lipgloss.NewStyle().
			Foreground(dangerColor)

	// Secondary text: stages, diagnostics, previews
	DimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	// Title style
	TitleStyle = lipgloss.NewStyle().
			Bold(true)

	// Winner banner style
	WinnerStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)
)

// FormatFooter formats a footer string with alternating keys and descriptions.
// Usage: FormatFooter("q", "Quit", "Enter", "Accept")
func FormatFooter(parts ...string) string {
	descStyle := lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	var result []string
	for i := 0; i < len(parts); i += 2 {
		if i+1 < len(parts) {
			result = append(result, parts[i]+" "+descStyle.Render(parts[i+1]))
		}
	}
	return strings.Join(result, "  ")
}
