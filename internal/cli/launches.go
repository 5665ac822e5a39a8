package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/tlcsdm/eclipse-maven-view/internal/models"
)

// LaunchesCommand handles the launches subcommands
type LaunchesCommand struct {
	rt          *runtime
	format      string
	profiles    []string
	skipTests   bool
	description string
}

// NewLaunchesCommand creates the launches command group
func NewLaunchesCommand(rt *runtime) *cobra.Command {
	cmd := &LaunchesCommand{rt: rt}

	cobraCmd := &cobra.Command{
		Use:   "launches",
		Short: "Manage saved Maven run configurations",
		Long: `Manages the run configurations stored in the launches directory
(.mavenview/launches by default).

Eclipse .launch files and Markdown files with YAML front matter are read.
A configuration belongs to a project when its working directory is
${workspace_loc:/PROJECT} or ${project_loc:PROJECT}.`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every saved run configuration",
		Args:  cobra.NoArgs,
		RunE:  cmd.List,
	}
	listCmd.Flags().StringVar(&cmd.format, "format", formatText, "Output format: text or json")

	saveCmd := &cobra.Command{
		Use:   "save <name> <project> <goal>...",
		Short: "Save a run configuration for a project",
		Example: `  mavenview launches save "Core release" core clean deploy --profile release
  mavenview run core@"Core release"`,
		Args: cobra.MinimumNArgs(3),
		RunE: cmd.Save,
	}
	saveCmd.Flags().StringSliceVar(&cmd.profiles, "profile", nil, "Profiles activated by the configuration")
	saveCmd.Flags().BoolVar(&cmd.skipTests, "skip-tests", false, "Skip tests when launching")
	saveCmd.Flags().StringVar(&cmd.description, "description", "", "Free-form description")

	deleteCmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved run configuration",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.Delete,
	}

	cobraCmd.AddCommand(listCmd, saveCmd, deleteCmd)
	return cobraCmd
}

// List prints every run configuration in the launches directory.
func (c *LaunchesCommand) List(cmd *cobra.Command, args []string) error {
	if err := validateFormat(c.format); err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := c.rt.open(ctx)
	if err != nil {
		return err
	}

	configs, err := a.registry.ReadAll(ctx)
	if err != nil {
		return err
	}

	w := c.rt.stdout()
	if c.format == formatJSON {
		return writeJSON(w, configs)
	}

	rows := make([]table.Row, 0, len(configs))
	for _, cfg := range configs {
		project, ok := cfg.ProjectName()
		if !ok {
			project = cfg.WorkingDirectory
		}
		rows = append(rows, table.Row{
			cfg.Name,
			project,
			strings.Join(cfg.Goals, " "),
			strings.Join(cfg.Profiles, ","),
			filepath.Base(cfg.Source),
		})
	}
	renderTable(w, table.Row{"Name", "Project", "Goals", "Profiles", "File"}, rows,
		fmt.Sprintf("No run configurations in %s", a.registry.Dir()))
	return nil
}

// Save writes a new run configuration.
func (c *LaunchesCommand) Save(cmd *cobra.Command, args []string) error {
	a, err := c.rt.open(cmd.Context())
	if err != nil {
		return err
	}

	name := strings.TrimSpace(args[0])
	project, err := a.project(args[1])
	if err != nil {
		return err
	}

	cfg := &models.RunConfiguration{
		Name:             name,
		Type:             a.cfg.Launches.Type,
		WorkingDirectory: models.WorkspaceLocation(project.Name),
		Goals:            args[2:],
		Profiles:         c.profiles,
		SkipTests:        c.skipTests,
		Description:      c.description,
	}
	if err := a.registry.Write(cfg); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.rt.stdout(), "✓ Saved run configuration %q for %s (%s)\n", cfg.Name, project.Name, cfg.Source)
	return nil
}

// Delete removes a run configuration by name.
func (c *LaunchesCommand) Delete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := c.rt.open(ctx)
	if err != nil {
		return err
	}

	configs, err := a.registry.ReadAll(ctx)
	if err != nil {
		return err
	}

	for _, cfg := range configs {
		if cfg.Name != args[0] {
			continue
		}
		if err := a.registry.Delete(cfg); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(c.rt.stdout(), "✓ Deleted run configuration %q\n", cfg.Name)
		return nil
	}

	return fmt.Errorf("run configuration %q not found", args[0])
}
