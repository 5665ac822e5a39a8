package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/tlcsdm/eclipse-maven-view/internal/models"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nesting levels: MAVENVIEW_MAVEN__USE_WRAPPER sets maven.use_wrapper.
const EnvPrefix = "MAVENVIEW_"

// maxUpwardSearchLevels limits how far up the directory tree to search for the config file.
const maxUpwardSearchLevels = 10

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"selection":     "projects.selection",
	"always":        "projects.always",
	"never":         "projects.never",
	"phases":        "phases.displayed",
	"mvn":           "maven.executable",
	"wrapper":       "maven.use_wrapper",
	"offline":       "maven.offline",
	"maven-arg":     "maven.args",
	"effective-pom": "maven.effective_pom",
	"launches-dir":  "launches.dir",
	"prefs-backend": "prefs.backend",
	"prefs-path":    "prefs.path",
	"parallel":      "dispatch.parallel",
	"log-level":     "log.level",
	"log-format":    "log.format",
}

// Defaults returns the built-in settings.
func Defaults() map[string]interface{} {
	phases := make([]string, 0, len(models.Phases()))
	for _, p := range models.Phases() {
		phases = append(phases, string(p))
	}

	return map[string]interface{}{
		"projects.selection":  string(models.SelectRootProjects),
		"projects.always":     []string{},
		"projects.never":      []string{},
		"phases.displayed":    phases,
		"maven.executable":    "mvn",
		"maven.use_wrapper":   true,
		"maven.offline":       false,
		"maven.args":          []string{},
		"maven.effective_pom": true,
		"launches.dir":        ".mavenview/launches",
		"launches.type":       models.MavenLaunchType,
		"prefs.backend":       "file",
		"prefs.path":          ".mavenview",
		"dispatch.parallel":   1,
		"log.level":           "warn",
		"log.format":          "text",
	}
}

// Options control where Load looks.
type Options struct {
	// File is an explicit configuration file; it disables the upward search.
	File string

	// Dir is where the upward search starts. Defaults to the working directory.
	Dir string

	// Flags are applied last, but only those explicitly set.
	Flags *pflag.FlagSet
}

// Load builds the configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	startDir := opts.Dir
	if startDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		startDir = cwd
	}

	// 2. Config file
	cfgFile := opts.File
	root := startDir
	if cfgFile == "" {
		if dir := FindRoot(startDir); dir != "" {
			root = dir
			if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
				cfgFile = filepath.Join(dir, FileName)
			}
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
		if abs, err := filepath.Abs(cfgFile); err == nil {
			cfgFile = abs
		}
		root = filepath.Dir(cfgFile)
	}

	// 3. Environment (MAVENVIEW_ prefix)
	// Transform: MAVENVIEW_MAVEN__USE_WRAPPER -> maven.use_wrapper
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if opts.Flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(opts.Flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.Root = root
	cfg.File = cfgFile
	cfg.Projects.Always = splitList(cfg.Projects.Always)
	cfg.Projects.Never = splitList(cfg.Projects.Never)
	cfg.Phases.Displayed = splitList(cfg.Phases.Displayed)
	cfg.Maven.Args = splitList(cfg.Maven.Args)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// FlagKey returns the configuration key a flag maps to.
func FlagKey(flag string) (string, bool) {
	key, ok := flagKeys[flag]
	return key, ok
}

// StateDir is the per-workspace directory that also marks the root.
const StateDir = ".mavenview"

// FindRoot searches upward from startDir for a directory holding the config
// file or the state directory. Returns empty string if not found within
// maxUpwardSearchLevels.
func FindRoot(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return dir
		}
		if info, err := os.Stat(filepath.Join(dir, StateDir)); err == nil && info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
