package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/tlcsdm/eclipse-maven-view/internal/models"
)

// ProfileOptions builds the form options for a project's profiles, marking
// activeByDefault ones.
func ProfileOptions(profiles []models.Profile, selected []string) []huh.Option[string] {
	isSelected := make(map[string]bool, len(selected))
	for _, id := range selected {
		isSelected[id] = true
	}

	opts := make([]huh.Option[string], 0, len(profiles))
	for _, p := range profiles {
		label := p.ID
		if p.ActiveByDefault {
			label += " (active by default)"
		}
		opts = append(opts, huh.NewOption(label, p.ID).Selected(isSelected[p.ID]))
	}
	return opts
}

// SelectProfiles asks which profiles of project to activate. ok is false
// when the user aborted.
func SelectProfiles(project string, profiles []models.Profile, selected []string) (ids []string, ok bool, err error) {
	if len(profiles) == 0 {
		return nil, false, fmt.Errorf("project %s declares no profiles", project)
	}

	values := append([]string{}, selected...)

	keyMap := huh.NewDefaultKeyMap()
	keyMap.MultiSelect.Filter.SetEnabled(false)
	keyMap.MultiSelect.Toggle.SetKeys(" ")
	keyMap.MultiSelect.Toggle.SetHelp("space", "toggle profile")
	keyMap.MultiSelect.Submit.SetKeys("enter")
	keyMap.MultiSelect.Submit.SetHelp("enter", "save")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Options(ProfileOptions(profiles, selected)...).
				Value(&values),
		).
			Title("Profiles").
			Description(fmt.Sprintf("Select the profiles used when building %s.", project)),
	).
		WithTheme(NewHuhTheme()).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen()).
		WithKeyMap(keyMap)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return values, true, nil
}
