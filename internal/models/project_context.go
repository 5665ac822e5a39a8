package models

// ProjectContext represents the context passed to commands via STDIN
// when executed through 'mavenview each'
type ProjectContext struct {
	// Project is the project name
	Project string `json:"project"`

	// ProjectPath is the absolute path to the project root
	ProjectPath string `json:"projectPath"`

	// PomPath is the path to the project's pom.xml
	PomPath string `json:"pomPath"`

	// Parent is the enclosing project, empty for root projects
	Parent string `json:"parent,omitempty"`

	// Profiles lists every declared profile id
	Profiles []string `json:"profiles"`

	// SelectedProfiles are the profiles used when building the project
	SelectedProfiles []string `json:"selectedProfiles"`

	// Plugins are the build plugin coordinates (groupId:artifactId[:version])
	Plugins []string `json:"plugins"`

	// RunConfigurations names the saved configurations of the project
	RunConfigurations []string `json:"runConfigurations"`

	SkipTests bool `json:"skipTests"`
}
