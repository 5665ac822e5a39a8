package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tlcsdm/eclipse-maven-view/internal/models"
)

// contextEnv carries the JSON project context to commands run by 'each'.
const contextEnv = "PROJECT_CONTEXT"

// resolveProjectName takes the project from the arguments, then from a
// context piped on stdin, then from the environment 'each' sets.
func (rt *runtime) resolveProjectName(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}

	if ctx, err := readProjectContextFromStdin(rt.deps.Stdin); err == nil {
		return ctx.Project, nil
	}

	if ctx, err := readProjectContextFromEnv(); err == nil {
		return ctx.Project, nil
	}

	return "", fmt.Errorf("no project context available (pass a project name or run through 'mavenview each')")
}

// projectContext describes a project for commands run through 'each'.
func (a *app) projectContext(ctx context.Context, project *models.Project) *models.ProjectContext {
	pc := &models.ProjectContext{
		Project:           project.Name,
		ProjectPath:       project.RootPath,
		PomPath:           project.PomPath,
		Parent:            project.Parent,
		Profiles:          []string{},
		SelectedProfiles:  a.builder.ActiveProfiles(ctx, project),
		Plugins:           []string{},
		RunConfigurations: []string{},
		SkipTests:         a.skipTests,
	}

	for _, p := range a.extractor.Profiles(ctx, project) {
		pc.Profiles = append(pc.Profiles, p.ID)
	}
	for _, p := range a.extractor.Plugins(ctx, project) {
		pc.Plugins = append(pc.Plugins, p.GroupID+":"+p.ArtifactID)
	}
	for _, cfg := range a.resolver.Resolve(ctx, project) {
		pc.RunConfigurations = append(pc.RunConfigurations, cfg.Name)
	}
	return pc
}

// readProjectContextFromStdin attempts to read project context from STDIN
// Returns nil error if valid context found, error otherwise
//
// This function is used by commands to auto-detect when they're being
// executed via 'mavenview each' and receive project context via STDIN.
func readProjectContextFromStdin(stdin io.Reader) (*models.ProjectContext, error) {
	if stdin == nil {
		return nil, fmt.Errorf("no context on STDIN")
	}

	if f, ok := stdin.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("failed to stat STDIN: %w", err)
		}
		// STDIN is a terminal, no piped data
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			return nil, fmt.Errorf("no context on STDIN")
		}
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read STDIN: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty STDIN")
	}

	return parseProjectContext(data)
}

// readProjectContextFromEnv attempts to read project context from the
// PROJECT_CONTEXT environment variable.
func readProjectContextFromEnv() (*models.ProjectContext, error) {
	env := os.Getenv(contextEnv)
	if env == "" {
		return nil, fmt.Errorf("no context in %s env var", contextEnv)
	}
	return parseProjectContext([]byte(env))
}

func parseProjectContext(data []byte) (*models.ProjectContext, error) {
	var ctx models.ProjectContext
	if err := json.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("failed to parse context JSON: %w", err)
	}

	if ctx.Project == "" {
		return nil, fmt.Errorf("invalid context: project name is required")
	}

	return &ctx, nil
}
