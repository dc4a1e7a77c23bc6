package cli

import "github.com/charmbracelet/lipgloss"

// Stage light palette 🎚
// Shared colours for consistent branding across CLI and TUI
var (
	// Core colours (cool to warm)
	BarCyan    = lipgloss.Color("#00CED1") // Turquoise
	BarViolet  = lipgloss.Color("#8A2BE2") // Blue violet
	BarMagenta = lipgloss.Color("#FF00FF") // Magenta
	BarAmber   = lipgloss.Color("#F8B31D") // Brand yellow
	BarRed     = lipgloss.Color("#DC143C") // Crimson

	// Accent colours
	CoolGray = lipgloss.Color("#7B8A9A") // Slate for subtle text
)
