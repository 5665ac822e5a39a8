package components

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tlcsdm/eclipse-maven-view/internal/tui"
)

// Picker is a full-screen program around MultiSelectModel.
type Picker struct {
	title string
	list  MultiSelectModel
}

// NewPicker creates a picker over items.
func NewPicker(title string, items []Item) Picker {
	return Picker{title: title, list: NewMultiSelect(items)}
}

func (p Picker) Init() tea.Cmd {
	return p.list.Init()
}

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	list, cmd := p.list.Update(msg)
	p.list = list
	return p, cmd
}

func (p Picker) View() string {
	if p.list.IsDone() {
		return ""
	}
	return tui.TitleStyle.Render(p.title) + "\n" + p.list.View()
}

// List returns the underlying list.
func (p Picker) List() MultiSelectModel {
	return p.list
}

// Pick runs a picker and returns the selected item positions. ok is false
// when the user cancelled.
func Pick(title string, items []Item, opts ...tea.ProgramOption) (selected []int, ok bool, err error) {
	final, err := tea.NewProgram(NewPicker(title, items), opts...).Run()
	if err != nil {
		return nil, false, fmt.Errorf("picker failed: %w", err)
	}

	picker, isPicker := final.(Picker)
	if !isPicker || !picker.list.IsDone() {
		return nil, false, nil
	}
	return picker.list.SelectedIndexes(), true, nil
}
