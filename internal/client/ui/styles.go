// Package ui is the terminal storefront. It renders the catalog,
// subscription plans and cart, and drives every server exchange through
// the gateway client.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#101F38") // dark blue
	colorAccent  = lipgloss.Color("#8BC34A") // lime green
	colorMuted   = lipgloss.Color("#6b7280")
	colorError   = lipgloss.Color("#e53935")
	colorWarning = lipgloss.Color("#FFC107")
)

// Styles holds the styled components of the storefront view.
type Styles struct {
	Header   lipgloss.Style
	Tab      lipgloss.Style
	TabOn    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Price    lipgloss.Style
	Muted    lipgloss.Style
	Notice   lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Footer   lipgloss.Style
	Prompt   lipgloss.Style
}

// DefaultStyles returns the storefront color scheme.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(colorPrimary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),
		Tab:   lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1),
		TabOn: lipgloss.NewStyle().Foreground(colorAccent).Padding(0, 1).Bold(true).Underline(true),
		Item:  lipgloss.NewStyle().PaddingLeft(2),
		Selected: lipgloss.NewStyle().
			PaddingLeft(0).
			Foreground(colorAccent).
			Bold(true),
		Price:   lipgloss.NewStyle().Foreground(colorAccent),
		Muted:   lipgloss.NewStyle().Foreground(colorMuted),
		Notice:  lipgloss.NewStyle().Foreground(colorWarning),
		Error:   lipgloss.NewStyle().Foreground(colorError).Bold(true),
		Success: lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		Footer:  lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 2),
		Prompt:  lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
	}
}
