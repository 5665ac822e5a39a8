package workspace

import (
	"bytes"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/tlcsdm/eclipse-maven-view/internal/filesystem"
	"github.com/tlcsdm/eclipse-maven-view/internal/models"
)

// PomFile is the Maven project descriptor that marks a project directory.
const PomFile = "pom.xml"

// Root markers, checked from the working directory upward.
const (
	ConfigFile = "mavenview.yaml"
	StateDir   = ".mavenview"
)

// skippedDirs are never descended into.
var skippedDirs = map[string]struct{}{
	"target":       {},
	"node_modules": {},
}

// Workspace represents a directory tree containing Maven projects.
type Workspace struct {
	fs        filesystem.FileSystem
	RootPath  string
	Projects  []*models.Project
	selection models.ProjectSelection
	always    []string
	never     []string
}

// Option configures workspace behavior.
type Option func(*Workspace)

// WithRoot fixes the workspace root instead of detecting it.
func WithRoot(root string) Option {
	return func(w *Workspace) {
		w.RootPath = root
	}
}

// WithSelection sets which projects DisplayedProjects returns. Names in
// never are always hidden; names in always are shown even when the
// selection would hide them.
func WithSelection(selection models.ProjectSelection, always, never []string) Option {
	return func(w *Workspace) {
		w.selection = selection
		w.always = always
		w.never = never
	}
}

// New creates a new Workspace instance.
func New(fs filesystem.FileSystem, options ...Option) *Workspace {
	ws := &Workspace{
		fs:        fs,
		Projects:  []*models.Project{},
		selection: models.SelectRootProjects,
	}

	for _, option := range options {
		option(ws)
	}

	return ws
}

// Detect finds the workspace root and loads its projects.
func (w *Workspace) Detect() error {
	if w.RootPath == "" {
		root, err := w.findWorkspaceRoot()
		if err != nil {
			return err
		}
		w.RootPath = root
	}

	if err := w.loadProjects(); err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	return nil
}

// findWorkspaceRoot walks up from the working directory looking for a root
// marker and falls back to the working directory itself.
func (w *Workspace) findWorkspaceRoot() (string, error) {
	cwd, err := w.fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	if dir, found := findMarkerDir(w.fs, cwd, ConfigFile, StateDir); found {
		return dir, nil
	}
	return cwd, nil
}

func (w *Workspace) loadProjects() error {
	ignore, err := w.loadRootGitIgnore()
	if err != nil {
		return err
	}

	var projects []*models.Project
	if err := w.fs.WalkDir(w.RootPath, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if entry.IsDir() {
			if path == w.RootPath {
				return nil
			}
			if _, skip := skippedDirs[entry.Name()]; skip || strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
		}

		if path != w.RootPath && ignore != nil {
			rel, relErr := filepath.Rel(w.RootPath, path)
			if relErr != nil {
				return relErr
			}
			if match := ignore.Relative(filepath.ToSlash(rel), entry.IsDir()); match != nil && match.Ignore() {
				if entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if entry.IsDir() || entry.Name() != PomFile {
			return nil
		}

		projectRoot := filepath.Dir(path)
		projects = append(projects, models.NewProject(filepath.Base(projectRoot), projectRoot, path))
		return nil
	}); err != nil {
		return err
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].RootPath < projects[j].RootPath
	})
	w.Projects = dedupeProjectNames(projects)
	linkParents(w.Projects)
	return nil
}

// linkParents records the name of every project's closest enclosing project.
func linkParents(projects []*models.Project) {
	for _, p := range projects {
		var parent *models.Project
		for _, candidate := range projects {
			if candidate == p || !isUnder(p.RootPath, candidate.RootPath) {
				continue
			}
			if parent == nil || len(candidate.RootPath) > len(parent.RootPath) {
				parent = candidate
			}
		}
		if parent != nil {
			p.Parent = parent.Name
		}
	}
}

func isUnder(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// GetProject returns a project by name.
func (w *Workspace) GetProject(name string) (*models.Project, error) {
	if p, ok := w.Lookup(name); ok {
		return p, nil
	}
	return nil, fmt.Errorf("project %s not found in workspace", name)
}

// Lookup finds a project by name.
func (w *Workspace) Lookup(name string) (*models.Project, bool) {
	for _, p := range w.Projects {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// GetProjectNames returns a list of all project names.
func (w *Workspace) GetProjectNames() []string {
	names := make([]string, len(w.Projects))
	for i, p := range w.Projects {
		names[i] = p.Name
	}
	return names
}

// DisplayedProjects returns the projects shown under the configured selection.
func (w *Workspace) DisplayedProjects() []*models.Project {
	var shown []*models.Project
	for _, p := range w.Projects {
		if w.selection.Matches(p, w.always, w.never) {
			shown = append(shown, p)
		}
	}
	return shown
}

// StateDir returns the path to the .mavenview directory.
func (w *Workspace) StateDir() string {
	return filepath.Join(w.RootPath, StateDir)
}

func (w *Workspace) loadRootGitIgnore() (gitignore.GitIgnore, error) {
	ignorePath := filepath.Join(w.RootPath, ".gitignore")
	if !w.fs.Exists(ignorePath) {
		return nil, nil
	}

	data, err := w.fs.ReadFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .gitignore: %w", err)
	}

	return gitignore.New(bytes.NewReader(data), w.RootPath, nil), nil
}

// dedupeProjectNames suffixes repeated directory names with their parent
// directory, then with a counter if still ambiguous.
func dedupeProjectNames(projects []*models.Project) []*models.Project {
	counts := make(map[string]int)
	for _, p := range projects {
		counts[p.Name]++
	}

	used := make(map[string]int)
	for _, p := range projects {
		name := p.Name
		if counts[p.Name] > 1 {
			if parentDir := filepath.Base(filepath.Dir(p.RootPath)); parentDir != "" && parentDir != "." && parentDir != string(filepath.Separator) {
				name = fmt.Sprintf("%s-%s", p.Name, parentDir)
			}
		}

		if used[name] > 0 {
			name = fmt.Sprintf("%s-%d", name, used[name]+1)
		}

		used[name]++
		p.Name = name
	}

	return projects
}
