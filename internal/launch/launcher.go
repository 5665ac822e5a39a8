package launch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tlcsdm/eclipse-maven-view/internal/maven"
	"github.com/tlcsdm/eclipse-maven-view/internal/models"
)

// Launcher starts a saved run configuration.
type Launcher interface {
	Launch(ctx context.Context, cfg models.RunConfiguration) error
}

// ProjectLookup finds a workspace project by name.
type ProjectLookup func(name string) (*models.Project, bool)

// MavenLauncher runs a configuration through a maven.Invoker.
type MavenLauncher struct {
	invoker  maven.Invoker
	projects ProjectLookup
	baseDir  string
}

var _ Launcher = (*MavenLauncher)(nil)

// NewMavenLauncher creates a launcher. Relative working directories are
// resolved against baseDir.
func NewMavenLauncher(invoker maven.Invoker, projects ProjectLookup, baseDir string) *MavenLauncher {
	return &MavenLauncher{invoker: invoker, projects: projects, baseDir: baseDir}
}

func (l *MavenLauncher) Launch(ctx context.Context, cfg models.RunConfiguration) error {
	req, err := l.Request(cfg)
	if err != nil {
		return err
	}
	return l.invoker.Run(ctx, req)
}

// Request builds the Maven request a configuration launches.
func (l *MavenLauncher) Request(cfg models.RunConfiguration) (maven.Request, error) {
	if len(cfg.Goals) == 0 {
		return maven.Request{}, fmt.Errorf("run configuration %s has no goals", cfg.Name)
	}

	project, dir, err := l.workingDirectory(cfg)
	if err != nil {
		return maven.Request{}, err
	}

	return maven.Request{
		Project:    project,
		WorkingDir: dir,
		Goals:      append([]string(nil), cfg.Goals...),
		Profiles:   strings.Join(cfg.Profiles, ","),
		SkipTests:  cfg.SkipTests,
	}, nil
}

// workingDirectory expands ${workspace_loc:/NAME} and ${project_loc:NAME}
// to the project root; plain paths are used as they are.
func (l *MavenLauncher) workingDirectory(cfg models.RunConfiguration) (string, string, error) {
	if name, ok := cfg.ProjectName(); ok {
		if l.projects == nil {
			return "", "", fmt.Errorf("project %s not found for run configuration %s", name, cfg.Name)
		}
		project, found := l.projects(name)
		if !found {
			return "", "", fmt.Errorf("project %s not found for run configuration %s", name, cfg.Name)
		}
		return project.Name, project.RootPath, nil
	}

	dir := cfg.WorkingDirectory
	if strings.Contains(dir, "${") {
		return "", "", fmt.Errorf("unsupported working directory %q in run configuration %s", dir, cfg.Name)
	}
	if dir != "" && !filepath.IsAbs(dir) {
		dir = filepath.Join(l.baseDir, dir)
	}
	return cfg.Name, dir, nil
}
