package models

import "fmt"

// ProjectSelection decides which workspace projects are shown initially.
type ProjectSelection string

const (
	// SelectRootProjects shows projects that are not nested in another project
	SelectRootProjects ProjectSelection = "root-projects"

	// SelectAllProjects shows every project with a pom.xml
	SelectAllProjects ProjectSelection = "all-projects"
)

// IsValid checks if the selection is known
func (s ProjectSelection) IsValid() bool {
	switch s {
	case SelectRootProjects, SelectAllProjects:
		return true
	default:
		return false
	}
}

// String returns the string representation of ProjectSelection
func (s ProjectSelection) String() string {
	return string(s)
}

// ParseProjectSelection parses a string into a ProjectSelection
func ParseProjectSelection(s string) (ProjectSelection, error) {
	sel := ProjectSelection(s)
	if !sel.IsValid() {
		return "", fmt.Errorf("invalid project selection: %s (must be root-projects or all-projects)", s)
	}
	return sel, nil
}

// Matches reports whether the project is shown under this selection.
// The always and never lists take precedence, never winning over always.
func (s ProjectSelection) Matches(p *Project, always, never []string) bool {
	if contains(never, p.Name) {
		return false
	}
	if contains(always, p.Name) {
		return true
	}

	switch s {
	case SelectAllProjects:
		return true
	case SelectRootProjects:
		return p.IsRoot()
	default:
		return false
	}
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
