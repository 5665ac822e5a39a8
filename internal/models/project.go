package models

// Project represents a Maven project (a directory holding a pom.xml) in the workspace.
type Project struct {
	// Name is the project identifier (unique within the workspace)
	Name string

	// RootPath is the absolute path to the project directory
	RootPath string

	// PomPath is the path to the project descriptor (pom.xml)
	PomPath string

	// Parent is the name of the closest enclosing project, empty for root projects.
	Parent string
}

// NewProject creates a new Project instance
func NewProject(name, rootPath, pomPath string) *Project {
	return &Project{
		Name:     name,
		RootPath: rootPath,
		PomPath:  pomPath,
	}
}

// IsRoot reports whether no other workspace project encloses this one.
func (p *Project) IsRoot() bool {
	return p.Parent == ""
}
