package workspace

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tlcsdm/eclipse-maven-view/internal/filesystem"
)

// WorkspaceBuilder helps create test workspaces
type WorkspaceBuilder struct {
	fs       *filesystem.MockFileSystem
	root     string
	projects []ProjectConfig
}

// ProjectConfig represents a project configuration
type ProjectConfig struct {
	Name string
	Path string
}

// NewWorkspaceBuilder creates a new WorkspaceBuilder
func NewWorkspaceBuilder(root string) *WorkspaceBuilder {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir(root)
	fs.AddDir(filepath.Join(root, StateDir))
	fs.SetCurrentDir(root)

	return &WorkspaceBuilder{
		fs:   fs,
		root: root,
	}
}

// Root returns the workspace root.
func (wb *WorkspaceBuilder) Root() string {
	return wb.root
}

// AddProject adds a project directory with the given pom.xml content.
// An empty path places the project at the workspace root.
func (wb *WorkspaceBuilder) AddProject(path, pom string) *WorkspaceBuilder {
	projectRoot := filepath.Join(wb.root, path)
	wb.projects = append(wb.projects, ProjectConfig{
		Name: filepath.Base(projectRoot),
		Path: path,
	})

	wb.fs.AddDir(projectRoot)
	wb.fs.AddFile(filepath.Join(projectRoot, PomFile), []byte(pom))

	return wb
}

// AddSimpleProject adds a project with a minimal pom.xml.
func (wb *WorkspaceBuilder) AddSimpleProject(path string) *WorkspaceBuilder {
	return wb.AddProject(path, POM(filepath.Base(filepath.Join(wb.root, path)), ""))
}

// AddLaunch adds a run-configuration file under .mavenview/launches.
func (wb *WorkspaceBuilder) AddLaunch(fileName, content string) *WorkspaceBuilder {
	wb.fs.AddFile(filepath.Join(wb.root, StateDir, "launches", fileName), []byte(content))
	return wb
}

// AddFile adds an arbitrary file relative to the workspace root.
func (wb *WorkspaceBuilder) AddFile(path, content string) *WorkspaceBuilder {
	wb.fs.AddFile(filepath.Join(wb.root, path), []byte(content))
	return wb
}

// Build finalizes the workspace and returns the filesystem
func (wb *WorkspaceBuilder) Build() *filesystem.MockFileSystem {
	return wb.fs
}

// FileSystem returns the mock filesystem
func (wb *WorkspaceBuilder) FileSystem() *filesystem.MockFileSystem {
	return wb.fs
}

// POM renders a minimal project descriptor; body is inserted before the
// closing project tag.
func POM(artifactID, body string) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<project xmlns=\"http://maven.apache.org/POM/4.0.0\">\n")
	b.WriteString("  <modelVersion>4.0.0</modelVersion>\n")
	fmt.Fprintf(&b, "  <groupId>com.example</groupId>\n  <artifactId>%s</artifactId>\n  <version>1.0.0</version>\n", artifactID)
	if body != "" {
		b.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			b.WriteString("\n")
		}
	}
	b.WriteString("</project>\n")
	return b.String()
}
