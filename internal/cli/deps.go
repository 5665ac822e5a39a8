package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/tlcsdm/eclipse-maven-view/internal/models"
)

// DepsCommand handles the deps command
type DepsCommand struct {
	rt     *runtime
	scopes []string
	format string
}

// NewDepsCommand creates a new deps command
func NewDepsCommand(rt *runtime) *cobra.Command {
	cmd := &DepsCommand{rt: rt}

	cobraCmd := &cobra.Command{
		Use:   "deps [project]",
		Short: "List the declared dependencies of a project",
		Example: `  mavenview deps core
  mavenview deps core --scope test --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringSliceVar(&cmd.scopes, "scope", nil, "Only list dependencies with these scopes (\"none\" for unscoped)")
	cobraCmd.Flags().StringVar(&cmd.format, "format", formatText, "Output format: text or json")

	return cobraCmd
}

// Run executes the deps command
func (c *DepsCommand) Run(cmd *cobra.Command, args []string) error {
	if err := validateFormat(c.format); err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := c.rt.open(ctx)
	if err != nil {
		return err
	}
	name, err := c.rt.resolveProjectName(args)
	if err != nil {
		return err
	}
	project, err := a.project(name)
	if err != nil {
		return err
	}

	deps := c.filter(a.extractor.Dependencies(ctx, project))

	w := c.rt.stdout()
	if c.format == formatJSON {
		return writeJSON(w, deps)
	}

	rows := make([]table.Row, 0, len(deps))
	for _, d := range deps {
		rows = append(rows, table.Row{d.GroupID, d.ArtifactID, d.Version, d.ScopeName()})
	}
	renderTable(w, table.Row{"Group", "Artifact", "Version", "Scope"}, rows,
		fmt.Sprintf("Project %s declares no dependencies", project.Name))
	return nil
}

func (c *DepsCommand) filter(deps []models.Dependency) []models.Dependency {
	if len(c.scopes) == 0 {
		return deps
	}

	var kept []models.Dependency
	for _, d := range deps {
		for _, scope := range c.scopes {
			if strings.EqualFold(scope, d.ScopeName()) || (scope == "none" && d.Scope == nil) {
				kept = append(kept, d)
				break
			}
		}
	}
	return kept
}
