// Package cli renders aggregation results and scan status as styled terminal
// output using lipgloss. It is the presentation collaborator: it consumes
// finished report structures and never reaches back into the pipeline.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#7AA2F7")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#9ECE6A")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#E0AF68")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#F7768E")
	// SubtleColor indicates less prominent output.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for report titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// TotalStyle highlights summed hour values.
	TotalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats parse failures and bad input.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats drill-down detail and counts.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BarStyle colors histogram bars.
	BarStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)
)
