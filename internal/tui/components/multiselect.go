package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tlcsdm/eclipse-maven-view/internal/tui"
)

// Item is one selectable row.
type Item struct {
	Label string

	// Detail is rendered dimmed after the label.
	Detail string

	// Header rows group the items below them and cannot be selected.
	Header bool
}

// MultiSelectModel is a multi-select list component
type MultiSelectModel struct {
	items    []Item
	selected map[int]bool
	cursor   int
	done     bool
}

// NewMultiSelect creates a new multi-select component
func NewMultiSelect(items []Item) MultiSelectModel {
	m := MultiSelectModel{
		items:    items,
		selected: make(map[int]bool),
	}
	m.cursor = m.next(-1, 1)
	return m
}

// Init initializes the component
func (m MultiSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m MultiSelectModel) Update(msg tea.Msg) (MultiSelectModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			m.cursor = m.next(m.cursor, -1)
		case "down", "j":
			m.cursor = m.next(m.cursor, 1)
		case " ":
			// Toggle selection
			if m.selectable(m.cursor) {
				m.selected[m.cursor] = !m.selected[m.cursor]
			}
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "q", "esc":
			m.done = false
			m.selected = make(map[int]bool)
			return m, tea.Quit
		}
	}
	return m, nil
}

// next moves from i in direction dir to the closest selectable row, staying
// put at either end.
func (m MultiSelectModel) next(i, dir int) int {
	for j := i + dir; j >= 0 && j < len(m.items); j += dir {
		if m.selectable(j) {
			return j
		}
	}
	if i < 0 {
		return 0
	}
	return i
}

func (m MultiSelectModel) selectable(i int) bool {
	return i >= 0 && i < len(m.items) && !m.items[i].Header
}

// View renders the component
func (m MultiSelectModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	for i, item := range m.items {
		if item.Header {
			b.WriteString(tui.HeaderStyle.Render(item.Label))
			b.WriteString("\n")
			continue
		}

		cursor := " "
		if m.cursor == i {
			cursor = tui.SelectedStyle.Render("›")
		}

		var checkbox string
		if m.selected[i] {
			checkbox = tui.CheckedStyle.Render("[✓]")
		} else {
			checkbox = tui.UncheckedStyle.Render("[ ]")
		}

		itemStyle := lipgloss.NewStyle()
		if m.cursor == i {
			itemStyle = tui.SelectedStyle
		}

		line := fmt.Sprintf("%s %s %s", cursor, checkbox, itemStyle.Render(item.Label))
		if item.Detail != "" {
			line += " " + tui.DescStyle.Render(item.Detail)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(tui.HelpStyle.Render("↑/↓ move • space toggle • enter run • q cancel"))
	b.WriteString("\n")

	return b.String()
}

// SelectedIndexes returns the positions of the selected items in order.
func (m MultiSelectModel) SelectedIndexes() []int {
	var selected []int
	for i := range m.items {
		if m.selected[i] {
			selected = append(selected, i)
		}
	}
	return selected
}

// GetSelected returns the labels of the selected items
func (m MultiSelectModel) GetSelected() []string {
	var selected []string
	for _, i := range m.SelectedIndexes() {
		selected = append(selected, m.items[i].Label)
	}
	return selected
}

// SelectedCount returns the number of selected items
func (m MultiSelectModel) SelectedCount() int {
	return len(m.SelectedIndexes())
}

// IsDone returns whether the user finished selecting
func (m MultiSelectModel) IsDone() bool {
	return m.done
}
