package models

import (
	"fmt"
	"strings"
)

// MavenLaunchType is the launch type id of Maven run configurations.
const MavenLaunchType = "org.eclipse.m2e.Maven2LaunchConfigurationType"

// RunConfiguration is a saved, named Maven invocation.
type RunConfiguration struct {
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	WorkingDirectory string   `json:"workingDirectory"`
	Goals            []string `json:"goals,omitempty"`
	Profiles         []string `json:"profiles,omitempty"`
	SkipTests        bool     `json:"skipTests,omitempty"`
	Description      string   `json:"description,omitempty"`

	// Source is the definition file the configuration was loaded from.
	Source string `json:"source,omitempty"`
}

// WorkspaceLocation is the working-directory form "${workspace_loc:/NAME}".
func WorkspaceLocation(project string) string {
	return fmt.Sprintf("${workspace_loc:/%s}", project)
}

// ProjectLocation is the working-directory form "${project_loc:NAME}".
func ProjectLocation(project string) string {
	return fmt.Sprintf("${project_loc:%s}", project)
}

// TargetsProject reports whether the working directory names the project
// through one of the two recognised variable forms.
func (rc RunConfiguration) TargetsProject(project string) bool {
	return rc.WorkingDirectory == WorkspaceLocation(project) ||
		rc.WorkingDirectory == ProjectLocation(project)
}

// ProjectName extracts the project name from a variable-form working directory.
func (rc RunConfiguration) ProjectName() (string, bool) {
	wd := strings.TrimSpace(rc.WorkingDirectory)
	if name, ok := strings.CutPrefix(wd, "${workspace_loc:/"); ok {
		return strings.TrimSuffix(name, "}"), strings.HasSuffix(name, "}")
	}
	if name, ok := strings.CutPrefix(wd, "${project_loc:"); ok {
		return strings.TrimSuffix(name, "}"), strings.HasSuffix(name, "}")
	}
	return "", false
}
