package models

import (
	"fmt"
	"strings"
)

// DefaultPluginGroupID is assumed when a plugin declaration omits its groupId.
const DefaultPluginGroupID = "org.apache.maven.plugins"

// Plugin is a build plugin declared in a pom.xml.
type Plugin struct {
	GroupID    string `json:"groupId"`
	ArtifactID string `json:"artifactId"`
	Version    string `json:"version,omitempty"`

	// Prefix overrides the derived goal prefix when set.
	Prefix string `json:"prefix,omitempty"`
}

// NewPlugin creates a plugin, defaulting an empty groupId.
func NewPlugin(groupID, artifactID, version string) Plugin {
	if groupID == "" {
		groupID = DefaultPluginGroupID
	}
	return Plugin{GroupID: groupID, ArtifactID: artifactID, Version: version}
}

// GoalPrefix returns the prefix used to invoke the plugin's goals.
func (p Plugin) GoalPrefix() string {
	if p.Prefix != "" {
		return p.Prefix
	}
	return PluginPrefix(p.ArtifactID)
}

// Coordinates renders "(groupId:artifactId[:version])".
func (p Plugin) Coordinates() string {
	if p.Version == "" {
		return fmt.Sprintf("(%s:%s)", p.GroupID, p.ArtifactID)
	}
	return fmt.Sprintf("(%s:%s:%s)", p.GroupID, p.ArtifactID, p.Version)
}

// SameArtifact reports whether both declarations name the same plugin.
func (p Plugin) SameArtifact(other Plugin) bool {
	return p.GroupID == other.GroupID && p.ArtifactID == other.ArtifactID
}

// PluginPrefix derives the goal prefix from an artifactId:
// "X-maven-plugin" -> "X", "maven-X-plugin" -> "X", anything else unchanged.
func PluginPrefix(artifactID string) string {
	if strings.HasSuffix(artifactID, "-maven-plugin") {
		return strings.TrimSuffix(artifactID, "-maven-plugin")
	}
	if len(artifactID) > len("maven--plugin") &&
		strings.HasPrefix(artifactID, "maven-") && strings.HasSuffix(artifactID, "-plugin") {
		return artifactID[len("maven-") : len(artifactID)-len("-plugin")]
	}
	return artifactID
}

// PluginGoal is a single goal of a plugin.
type PluginGoal struct {
	Plugin Plugin `json:"plugin"`
	Goal   string `json:"goal"`
}

// Command is the "prefix:goal" form passed to Maven.
func (g PluginGoal) Command() string {
	return g.Plugin.GoalPrefix() + ":" + g.Goal
}
