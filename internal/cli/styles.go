package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/avaforge-creator/subdrip/internal/core"
)

// Theme holds the styles for one appearance. The dark-mode preference
// picks between the two palettes.
type Theme struct {
	Dark    bool
	Title   lipgloss.Style
	Subtle  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Accent  lipgloss.Style
	Today   lipgloss.Style
	Payment lipgloss.Style
	Box     lipgloss.Style
}

var (
	// AccentColor is the app's blue, shared by both palettes.
	AccentColor  = lipgloss.Color("#007AFF")
	SuccessColor = lipgloss.Color("#30D158")
	WarningColor = lipgloss.Color("#FFD60A")
	ErrorColor   = lipgloss.Color("#FF453A")
	GrayColor    = lipgloss.Color("#8E8E93")
)

func NewTheme(dark bool) Theme {
	text := lipgloss.Color("#000000")
	card := lipgloss.Color("#E5E5EA")
	if dark {
		text = lipgloss.Color("#FFFFFF")
		card = lipgloss.Color("#1C1C1E")
	}

	return Theme{
		Dark: dark,
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(text),
		Subtle:  lipgloss.NewStyle().Foreground(GrayColor),
		Success: lipgloss.NewStyle().Foreground(SuccessColor),
		Warning: lipgloss.NewStyle().Foreground(WarningColor),
		Error:   lipgloss.NewStyle().Foreground(ErrorColor),
		Accent:  lipgloss.NewStyle().Bold(true).Foreground(AccentColor),
		Today: lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor),
		Payment: lipgloss.NewStyle().
			Bold(true).
			Foreground(ErrorColor),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(card).
			Padding(0, 1),
	}
}

// Category renders a category name in its own color.
func (t Theme) Category(c core.Category) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.ColorHex())).Render(c.String())
}

// Due highlights payments due today or tomorrow.
func (t Theme) Due(days int, label string) string {
	switch {
	case days == 0:
		return t.Error.Render(label)
	case days == 1:
		return t.Warning.Render(label)
	default:
		return label
	}
}
