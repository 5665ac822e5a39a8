// Package pom decodes Maven project descriptors into a typed model and
// serves them to the extractor as resolved project models.
package pom

import (
	"encoding/xml"
	"strings"

	"github.com/tlcsdm/eclipse-maven-view/internal/extract"
	"github.com/tlcsdm/eclipse-maven-view/internal/models"
	"github.com/tlcsdm/eclipse-maven-view/internal/securexml"
)

type Project struct {
	XMLName              xml.Name              `xml:"project"`
	ModelVersion         string                `xml:"modelVersion"`
	GroupID              string                `xml:"groupId"`
	ArtifactID           string                `xml:"artifactId"`
	Version              string                `xml:"version"`
	Packaging            string                `xml:"packaging"`
	Name                 string                `xml:"name"`
	Parent               *Parent               `xml:"parent"`
	Modules              []string              `xml:"modules>module"`
	Dependencies         []Dependency          `xml:"dependencies>dependency"`
	DependencyManagement *DependencyManagement `xml:"dependencyManagement"`
	Build                *Build                `xml:"build"`
	Profiles             []Profile             `xml:"profiles>profile"`
}

type Parent struct {
	GroupID      string `xml:"groupId"`
	ArtifactID   string `xml:"artifactId"`
	Version      string `xml:"version"`
	RelativePath string `xml:"relativePath"`
}

type Dependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Type       string `xml:"type"`
	Classifier string `xml:"classifier"`
	Scope      string `xml:"scope"`
	Optional   string `xml:"optional"`
}

type DependencyManagement struct {
	Dependencies []Dependency `xml:"dependencies>dependency"`
}

type Build struct {
	DefaultGoal      string            `xml:"defaultGoal"`
	FinalName        string            `xml:"finalName"`
	Plugins          []Plugin          `xml:"plugins>plugin"`
	PluginManagement *PluginManagement `xml:"pluginManagement"`
}

type Plugin struct {
	GroupID      string            `xml:"groupId"`
	ArtifactID   string            `xml:"artifactId"`
	Version      string            `xml:"version"`
	Extensions   string            `xml:"extensions"`
	Dependencies []Dependency      `xml:"dependencies>dependency"`
	Executions   []PluginExecution `xml:"executions>execution"`
}

type PluginExecution struct {
	ID    string   `xml:"id"`
	Phase string   `xml:"phase"`
	Goals []string `xml:"goals>goal"`
}

type PluginManagement struct {
	Plugins []Plugin `xml:"plugins>plugin"`
}

type Profile struct {
	ID           string       `xml:"id"`
	Activation   *Activation  `xml:"activation"`
	Build        *Build       `xml:"build"`
	Modules      []string     `xml:"modules>module"`
	Dependencies []Dependency `xml:"dependencies>dependency"`
}

type Activation struct {
	ActiveByDefault string `xml:"activeByDefault"`
	JDK             string `xml:"jdk"`
}

// Decode parses a descriptor with the secure parser's restrictions.
func Decode(data []byte) (*Project, error) {
	var p Project
	if err := securexml.Decode(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Model adapts a decoded Project to extract.ProjectModel.
type Model struct {
	project *Project
}

var _ extract.ProjectModel = (*Model)(nil)

// NewModel wraps a decoded project.
func NewModel(p *Project) *Model {
	return &Model{project: p}
}

func (m *Model) Profiles() ([]models.Profile, error) {
	var profiles []models.Profile
	for _, p := range m.project.Profiles {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			continue
		}
		active := p.Activation != nil && strings.EqualFold(strings.TrimSpace(p.Activation.ActiveByDefault), "true")
		profiles = append(profiles, models.Profile{ID: id, ActiveByDefault: active})
	}
	return profiles, nil
}

func (m *Model) BuildPlugins() ([]models.Plugin, error) {
	var plugins []models.Plugin
	collect := func(b *Build) {
		if b == nil {
			return
		}
		for _, p := range b.Plugins {
			artifactID := strings.TrimSpace(p.ArtifactID)
			if artifactID == "" {
				continue
			}
			plugins = append(plugins, models.NewPlugin(strings.TrimSpace(p.GroupID), artifactID, strings.TrimSpace(p.Version)))
		}
	}

	collect(m.project.Build)
	for _, p := range m.project.Profiles {
		collect(p.Build)
	}
	return plugins, nil
}

func (m *Model) Dependencies() ([]models.Dependency, error) {
	var deps []models.Dependency
	collect := func(list []Dependency) {
		for _, d := range list {
			groupID, artifactID := strings.TrimSpace(d.GroupID), strings.TrimSpace(d.ArtifactID)
			if groupID == "" || artifactID == "" {
				continue
			}
			deps = append(deps, models.NewDependency(groupID, artifactID, strings.TrimSpace(d.Version), strings.TrimSpace(d.Scope)))
		}
	}

	collect(m.project.Dependencies)
	for _, p := range m.project.Profiles {
		collect(p.Dependencies)
	}
	return deps, nil
}
