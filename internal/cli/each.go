package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tlcsdm/eclipse-maven-view/internal/models"
)

const (
	filterAll          = "all"
	filterRoot         = "root"
	filterHasProfiles  = "has-profiles"
	filterHasLaunches  = "has-launches"
	filterHasSelection = "has-selection"
)

// EachCommand handles the each command
type EachCommand struct {
	rt           *runtime
	filters      []string
	projects     []string
	all          bool
	command      []string
	stdoutWriter io.Writer
}

// NewEachCommand creates a new each command
func NewEachCommand(rt *runtime) *cobra.Command {
	cmd := &EachCommand{rt: rt}

	cobraCmd := &cobra.Command{
		Use:   "each [flags] -- <command> [args...]",
		Short: "Run a command for each project matching filters",
		Long: `Run a command for each displayed project, passing project context as JSON via STDIN.

Filters:
  all            - All projects (default)
  root           - Projects not nested in another project
  has-profiles   - Projects declaring at least one profile
  has-launches   - Projects with saved run configurations
  has-selection  - Projects with selected profiles

The command receives a JSON object via STDIN with project context.
Environment variables are also set: PROJECT, PROJECT_PATH, POM_PATH,
SELECTED_PROFILES and PROJECT_CONTEXT.`,
		Example: `  # Print the path of every project
  mavenview each -- sh -c 'echo "$PROJECT: $PROJECT_PATH"'

  # Run a build with the selected profiles of each project
  mavenview each --filter has-selection -- sh -c 'cd "$PROJECT_PATH" && mvn -P "$SELECTED_PROFILES" verify'

  # List the plugins of each project
  mavenview each -- mavenview plugins`,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringSliceVar(&cmd.filters, "filter", []string{filterAll},
		"Filter projects (root, has-profiles, has-launches, has-selection, all)")
	cobraCmd.Flags().StringSliceVar(&cmd.projects, "project", nil, "Only these projects")
	cobraCmd.Flags().BoolVar(&cmd.all, "all", false, "Include projects that are not displayed")

	return cobraCmd
}

// Run executes the each command
func (c *EachCommand) Run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command specified (use -- before command)")
	}
	c.command = args

	for _, f := range c.filters {
		if !validFilter(f) {
			return fmt.Errorf("invalid filter: %s", f)
		}
	}

	ctx := cmd.Context()
	a, err := c.rt.open(ctx)
	if err != nil {
		return err
	}

	candidates := a.ws.DisplayedProjects()
	if c.all || len(c.projects) > 0 {
		candidates = a.ws.Projects
	}

	var contexts []*models.ProjectContext
	for _, project := range candidates {
		if len(c.projects) > 0 && !slices.Contains(c.projects, project.Name) {
			continue
		}
		pc := a.projectContext(ctx, project)
		if c.matches(pc) {
			contexts = append(contexts, pc)
		}
	}

	if len(contexts) == 0 {
		_, _ = fmt.Fprintln(c.out(), "No projects match the specified filters")
		return nil
	}

	return c.executeForContexts(ctx, contexts)
}

func (c *EachCommand) out() io.Writer {
	if c.stdoutWriter != nil {
		return c.stdoutWriter
	}
	return c.rt.stdout()
}

func validFilter(f string) bool {
	switch f {
	case filterAll, filterRoot, filterHasProfiles, filterHasLaunches, filterHasSelection:
		return true
	}
	return false
}

// matches applies AND logic across filters.
func (c *EachCommand) matches(pc *models.ProjectContext) bool {
	for _, f := range c.filters {
		switch f {
		case filterRoot:
			if pc.Parent != "" {
				return false
			}
		case filterHasProfiles:
			if len(pc.Profiles) == 0 {
				return false
			}
		case filterHasLaunches:
			if len(pc.RunConfigurations) == 0 {
				return false
			}
		case filterHasSelection:
			if len(pc.SelectedProfiles) == 0 {
				return false
			}
		}
	}
	return true
}

func (c *EachCommand) executeForContexts(ctx context.Context, contexts []*models.ProjectContext) error {
	w := c.out()
	_, _ = fmt.Fprintf(w, "Running command for %d project(s)...\n\n", len(contexts))

	var failed []string
	for i, pc := range contexts {
		if i > 0 {
			_, _ = fmt.Fprintln(w, "\n"+strings.Repeat("-", 60)+"\n")
		}

		_, _ = fmt.Fprintf(w, "📦 [%d/%d] %s\n", i+1, len(contexts), pc.Project)

		if err := c.executeForProject(ctx, pc); err != nil {
			_, _ = fmt.Fprintf(w, "❌ Failed: %v\n", err)
			failed = append(failed, pc.Project)
			continue
		}

		_, _ = fmt.Fprintf(w, "✓ Success\n")
	}

	if len(failed) > 0 {
		_, _ = fmt.Fprintf(w, "\n⚠️  %d project(s) failed: %s\n", len(failed), strings.Join(failed, ", "))
		return fmt.Errorf("some projects failed")
	}

	return nil
}

// executeForProject executes the command for a single project
func (c *EachCommand) executeForProject(ctx context.Context, pc *models.ProjectContext) error {
	jsonData, err := json.MarshalIndent(pc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal context: %w", err)
	}

	execCmd := exec.CommandContext(ctx, c.command[0], c.command[1:]...)
	execCmd.Stdin = bytes.NewReader(jsonData)
	execCmd.Stdout = c.out()
	execCmd.Stderr = c.rt.deps.Stderr

	execCmd.Env = append(os.Environ(),
		fmt.Sprintf("PROJECT=%s", pc.Project),
		fmt.Sprintf("PROJECT_PATH=%s", pc.ProjectPath),
		fmt.Sprintf("POM_PATH=%s", pc.PomPath),
		fmt.Sprintf("SELECTED_PROFILES=%s", strings.Join(pc.SelectedProfiles, ",")),
		fmt.Sprintf("%s=%s", contextEnv, string(jsonData)),
	)

	return execCmd.Run()
}
