package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	purple = lipgloss.Color("#7D56F4")
	green  = lipgloss.Color("#04B575")
	gray   = lipgloss.Color("#888888")
)

var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(purple).MarginBottom(1)

	// Project headers in the picker.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(purple).
			Padding(0, 1)

	SelectedStyle  = lipgloss.NewStyle().Foreground(purple).Bold(true)
	CheckedStyle   = lipgloss.NewStyle().Foreground(green).Bold(true)
	UncheckedStyle = lipgloss.NewStyle().Foreground(gray)
	HelpStyle      = lipgloss.NewStyle().Foreground(gray).MarginTop(1)
	DescStyle      = lipgloss.NewStyle().Foreground(gray).Italic(true)
)

// NewHuhTheme returns the form theme matching the styles above.
func NewHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(purple).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(gray)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(purple).SetString("› ")
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(purple).SetString("› ")
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(green)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(green).SetString("[✓] ")
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(gray).SetString("[ ] ")
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(lipgloss.Color("#FF0000"))

	t.Blurred = t.Focused
	t.Blurred.MultiSelectSelector = lipgloss.NewStyle().SetString("  ")
	t.Blurred.SelectSelector = lipgloss.NewStyle().SetString("  ")

	return t
}
