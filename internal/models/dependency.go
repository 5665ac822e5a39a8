package models

import (
	"fmt"
	"strings"
)

// Dependency is a declared project dependency. Scope is nil when the
// declaration has no scope element.
type Dependency struct {
	GroupID    string  `json:"groupId"`
	ArtifactID string  `json:"artifactId"`
	Version    string  `json:"version"`
	Scope      *string `json:"scope,omitempty"`
}

// NewDependency creates a dependency; an empty scope is stored as absent.
func NewDependency(groupID, artifactID, version, scope string) Dependency {
	d := Dependency{GroupID: groupID, ArtifactID: artifactID, Version: version}
	if scope != "" {
		d.Scope = &scope
	}
	return d
}

// IsTestScope reports whether the scope is "test", ignoring case.
func (d Dependency) IsTestScope() bool {
	return d.Scope != nil && strings.EqualFold(*d.Scope, "test")
}

// ScopeName returns the scope or an empty string.
func (d Dependency) ScopeName() string {
	if d.Scope == nil {
		return ""
	}
	return *d.Scope
}

// Coordinates renders "groupId:artifactId:version".
func (d Dependency) Coordinates() string {
	return fmt.Sprintf("%s:%s:%s", d.GroupID, d.ArtifactID, d.Version)
}
