// Package config loads mavenview settings from defaults, mavenview.yaml,
// MAVENVIEW_ environment variables and command-line flags.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tlcsdm/eclipse-maven-view/internal/models"
)

// FileName is the configuration file searched upward from the working
// directory. Its directory is the workspace root.
const FileName = "mavenview.yaml"

// Config holds every setting.
type Config struct {
	Projects ProjectsConfig `koanf:"projects"`
	Phases   PhasesConfig   `koanf:"phases"`
	Maven    MavenConfig    `koanf:"maven"`
	Launches LaunchesConfig `koanf:"launches"`
	Prefs    PrefsConfig    `koanf:"prefs"`
	Dispatch DispatchConfig `koanf:"dispatch"`
	Log      LogConfig      `koanf:"log"`

	// Root is the workspace root the relative paths resolve against.
	Root string `koanf:"-"`

	// File is the configuration file that was loaded, if any.
	File string `koanf:"-"`
}

// ProjectsConfig controls which projects are displayed.
type ProjectsConfig struct {
	Selection string   `koanf:"selection"`
	Always    []string `koanf:"always"`
	Never     []string `koanf:"never"`
}

// PhasesConfig lists the lifecycle phases shown per project.
type PhasesConfig struct {
	Displayed []string `koanf:"displayed"`
}

// MavenConfig configures how Maven is invoked.
type MavenConfig struct {
	Executable   string   `koanf:"executable"`
	UseWrapper   bool     `koanf:"use_wrapper"`
	Offline      bool     `koanf:"offline"`
	Args         []string `koanf:"args"`
	EffectivePOM bool     `koanf:"effective_pom"`
}

type LaunchesConfig struct {
	Dir  string `koanf:"dir"`
	Type string `koanf:"type"`
}

type PrefsConfig struct {
	Backend string `koanf:"backend"`
	Path    string `koanf:"path"`
}

type DispatchConfig struct {
	Parallel int `koanf:"parallel"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Selection parses the initial project selection.
func (c *Config) Selection() (models.ProjectSelection, error) {
	return models.ParseProjectSelection(c.Projects.Selection)
}

// DisplayedPhases parses the displayed phases into canonical order.
func (c *Config) DisplayedPhases() ([]models.Phase, error) {
	phases, err := models.ParsePhases(c.Phases.Displayed)
	if err != nil {
		return nil, err
	}
	return models.SortPhases(phases), nil
}

// LaunchesDir is the absolute run-configuration directory.
func (c *Config) LaunchesDir() string {
	return resolvePathRelativeTo(c.Launches.Dir, c.Root)
}

// PrefsDir is the absolute preference storage directory.
func (c *Config) PrefsDir() string {
	return resolvePathRelativeTo(c.Prefs.Path, c.Root)
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if _, err := c.Selection(); err != nil {
		return fmt.Errorf("projects.selection: %w", err)
	}
	if _, err := c.DisplayedPhases(); err != nil {
		return fmt.Errorf("phases.displayed: %w", err)
	}
	switch c.Prefs.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("prefs.backend: unknown backend %q (expected file or sqlite)", c.Prefs.Backend)
	}
	if c.Dispatch.Parallel < 1 {
		return fmt.Errorf("dispatch.parallel must be at least 1, got %d", c.Dispatch.Parallel)
	}
	if c.Launches.Type == "" {
		return fmt.Errorf("launches.type is required")
	}
	return nil
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

// splitList flattens comma-separated entries, which is how lists arrive
// from environment variables.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
