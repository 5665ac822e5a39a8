// Package launch loads saved Maven run configurations, matches them to
// projects and launches them.
package launch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/tlcsdm/eclipse-maven-view/internal/filesystem"
	"github.com/tlcsdm/eclipse-maven-view/internal/logging"
	"github.com/tlcsdm/eclipse-maven-view/internal/models"
	"github.com/tlcsdm/eclipse-maven-view/internal/securexml"
	"gopkg.in/yaml.v3"
)

// ErrTypeNotRegistered is returned when configurations of an unknown type are requested.
var ErrTypeNotRegistered = errors.New("launch configuration type not registered")

// Registry enumerates saved run configurations.
type Registry interface {
	Types(ctx context.Context) ([]string, error)
	Configurations(ctx context.Context, typeID string) ([]models.RunConfiguration, error)
}

const (
	attrWorkingDirectory = "org.eclipse.jdt.launching.WORKING_DIRECTORY"
	attrGoals            = "M2_GOALS"
	attrProfiles         = "M2_PROFILES"
	attrSkipTests        = "M2_SKIP_TESTS"
)

// DirRegistry reads definitions from a directory: Eclipse ".launch" XML
// files and Markdown files with YAML front matter.
type DirRegistry struct {
	fs     filesystem.FileSystem
	dir    string
	types  []string
	logger *slog.Logger
}

var _ Registry = (*DirRegistry)(nil)

// NewDirRegistry creates a registry over dir. The Maven launch type is
// always registered; extra types may be passed.
func NewDirRegistry(fs filesystem.FileSystem, dir string, logger *slog.Logger, extraTypes ...string) *DirRegistry {
	types := []string{models.MavenLaunchType}
	for _, t := range extraTypes {
		if t != "" && t != models.MavenLaunchType {
			types = append(types, t)
		}
	}

	return &DirRegistry{
		fs:     fs,
		dir:    dir,
		types:  types,
		logger: logging.OrDiscard(logger),
	}
}

// Dir is the definitions directory.
func (r *DirRegistry) Dir() string {
	return r.dir
}

func (r *DirRegistry) Types(context.Context) ([]string, error) {
	return append([]string(nil), r.types...), nil
}

func (r *DirRegistry) Configurations(ctx context.Context, typeID string) ([]models.RunConfiguration, error) {
	if !r.registered(typeID) {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotRegistered, typeID)
	}

	all, err := r.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	var result []models.RunConfiguration
	for _, cfg := range all {
		if cfg.Type == typeID {
			result = append(result, cfg)
		}
	}
	return result, nil
}

func (r *DirRegistry) registered(typeID string) bool {
	for _, t := range r.types {
		if t == typeID {
			return true
		}
	}
	return false
}

// ReadAll reads every definition in the directory, sorted by name.
// Unreadable files are skipped with a warning.
func (r *DirRegistry) ReadAll(ctx context.Context) ([]models.RunConfiguration, error) {
	if !r.fs.Exists(r.dir) {
		return []models.RunConfiguration{}, nil
	}

	entries, err := r.fs.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read launch directory: %w", err)
	}

	var configs []models.RunConfiguration
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}

		ext := filepath.Ext(entry.Name())
		if ext != ".launch" && ext != ".md" {
			continue
		}

		path := filepath.Join(r.dir, entry.Name())
		cfg, err := r.Read(path)
		if err != nil {
			r.logger.Warn("skipping launch definition",
				slog.String("file", entry.Name()),
				slog.Any("error", err))
			continue
		}
		configs = append(configs, cfg)
	}

	sort.SliceStable(configs, func(i, j int) bool {
		return configs[i].Name < configs[j].Name
	})
	return configs, nil
}

// Read reads a single definition file.
func (r *DirRegistry) Read(path string) (models.RunConfiguration, error) {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		return models.RunConfiguration{}, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes a definition; the format follows the file extension.
func Parse(path string, data []byte) (models.RunConfiguration, error) {
	switch filepath.Ext(path) {
	case ".launch":
		return parseLaunchXML(path, data)
	case ".md":
		return parseMarkdown(path, data)
	default:
		return models.RunConfiguration{}, fmt.Errorf("unsupported launch definition: %s", filepath.Base(path))
	}
}

func parseLaunchXML(path string, data []byte) (models.RunConfiguration, error) {
	doc, err := securexml.ParseBytes(data)
	if err != nil {
		return models.RunConfiguration{}, err
	}
	if doc.Root.Name != "launchConfiguration" {
		return models.RunConfiguration{}, fmt.Errorf("unexpected root element %q", doc.Root.Name)
	}

	cfg := models.RunConfiguration{
		Name:   strings.TrimSuffix(filepath.Base(path), ".launch"),
		Source: path,
	}
	cfg.Type, _ = doc.Root.Attr("type")

	for _, attr := range doc.Root.Children {
		key, _ := attr.Attr("key")
		value, _ := attr.Attr("value")

		switch attr.Name {
		case "stringAttribute":
			switch key {
			case attrWorkingDirectory:
				cfg.WorkingDirectory = value
			case attrGoals:
				cfg.Goals = strings.Fields(value)
			case attrProfiles:
				cfg.Profiles = splitProfiles(value)
			}
		case "booleanAttribute":
			if key == attrSkipTests {
				cfg.SkipTests = strings.EqualFold(value, "true")
			}
		}
	}

	return cfg, nil
}

// definition is the front matter of a Markdown run configuration.
type definition struct {
	Name             string   `yaml:"name"`
	Type             string   `yaml:"type,omitempty"`
	WorkingDirectory string   `yaml:"workingDirectory"`
	Goals            []string `yaml:"goals"`
	Profiles         []string `yaml:"profiles,omitempty"`
	SkipTests        bool     `yaml:"skipTests,omitempty"`
}

func parseMarkdown(path string, data []byte) (models.RunConfiguration, error) {
	var def definition
	rest, err := frontmatter.Parse(bytes.NewReader(data), &def)
	if err != nil {
		return models.RunConfiguration{}, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	name := def.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), ".md")
	}
	typeID := def.Type
	if typeID == "" {
		typeID = models.MavenLaunchType
	}
	if def.WorkingDirectory == "" {
		return models.RunConfiguration{}, fmt.Errorf("launch definition %s has no workingDirectory", name)
	}

	return models.RunConfiguration{
		Name:             name,
		Type:             typeID,
		WorkingDirectory: def.WorkingDirectory,
		Goals:            def.Goals,
		Profiles:         def.Profiles,
		SkipTests:        def.SkipTests,
		Description:      strings.TrimSpace(string(rest)),
		Source:           path,
	}, nil
}

// Write saves cfg as a Markdown definition named after the configuration.
func (r *DirRegistry) Write(cfg *models.RunConfiguration) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("run configuration has no name")
	}

	if !r.fs.Exists(r.dir) {
		if err := r.fs.MkdirAll(r.dir, 0755); err != nil {
			return fmt.Errorf("failed to create launch directory: %w", err)
		}
	}

	matter, err := yaml.Marshal(definition{
		Name:             cfg.Name,
		Type:             cfg.Type,
		WorkingDirectory: cfg.WorkingDirectory,
		Goals:            cfg.Goals,
		Profiles:         cfg.Profiles,
		SkipTests:        cfg.SkipTests,
	})
	if err != nil {
		return fmt.Errorf("failed to encode run configuration: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(matter)
	buf.WriteString("---\n")
	if cfg.Description != "" {
		buf.WriteString("\n")
		buf.WriteString(cfg.Description)
		buf.WriteString("\n")
	}

	path := filepath.Join(r.dir, fileName(cfg.Name)+".md")
	if err := r.fs.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write run configuration: %w", err)
	}

	cfg.Source = path
	return nil
}

// Delete removes the definition file of cfg.
func (r *DirRegistry) Delete(cfg models.RunConfiguration) error {
	if cfg.Source == "" {
		return fmt.Errorf("run configuration has no source file")
	}
	if err := r.fs.Remove(cfg.Source); err != nil {
		return fmt.Errorf("failed to delete run configuration: %w", err)
	}
	return nil
}

func splitProfiles(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func fileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
}
