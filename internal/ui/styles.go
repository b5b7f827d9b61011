package ui

import "github.com/charmbracelet/lipgloss"

// Colors for the UI theme - Muted Professional Palette
var (
	ColorPrimary   = lipgloss.Color("#A78BFA") // Soft Purple (Lavender 400)
	ColorSecondary = lipgloss.Color("#22D3EE") // Bright Cyan (Cyan 400)
	ColorSuccess   = lipgloss.Color("#059669") // Emerald 600 (muted green)
	ColorWarning   = lipgloss.Color("#D97706") // Amber 600 (muted amber)
	ColorError     = lipgloss.Color("#DC2626") // Red 600 (muted red)
	ColorMuted     = lipgloss.Color("#9CA3AF") // Neutral Gray (Gray 400)
	ColorText      = lipgloss.Color("#F1F5F9") // Soft White (Slate 100)
	ColorBorder    = lipgloss.Color("#1E293B") // Subtle Slate Border
	ColorDim       = lipgloss.Color("#6B7280") // Gray 500
)

// MessageIcons provides consistent icons for different message types.
var MessageIcons = map[string]string{
	"success": "✓",
	"error":   "✗",
	"warning": "⚠",
	"info":    "ℹ",
	"loading": "◐",
}

// Styles holds all lipgloss styles used by the TUI.
type Styles struct {
	Title     lipgloss.Style
	UserLabel lipgloss.Style
	AuraLabel lipgloss.Style
	Clarify   lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	StatusBar lipgloss.Style
	Viewport  lipgloss.Style
	Input     lipgloss.Style
}

// NewStyles creates the default style set.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),
		UserLabel: lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true),
		AuraLabel: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),
		Clarify: lipgloss.NewStyle().
			Foreground(ColorWarning),
		Error: lipgloss.NewStyle().
			Foreground(ColorError),
		Muted: lipgloss.NewStyle().
			Foreground(ColorMuted),
		StatusBar: lipgloss.NewStyle().
			Foreground(ColorDim).
			BorderTop(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder),
		Viewport: lipgloss.NewStyle(),
		Input: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder),
	}
}
