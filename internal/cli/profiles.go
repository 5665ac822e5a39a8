package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/tlcsdm/eclipse-maven-view/internal/models"
)

// ProfilesCommand handles the profiles subcommands
type ProfilesCommand struct {
	rt     *runtime
	off    bool
	format string
}

// ProfileInfo is one row of the profiles output.
type ProfileInfo struct {
	ID              string `json:"id"`
	ActiveByDefault bool   `json:"activeByDefault"`
	Selected        bool   `json:"selected"`
}

// NewProfilesCommand creates the profiles command group
func NewProfilesCommand(rt *runtime) *cobra.Command {
	cmd := &ProfilesCommand{rt: rt}

	cobraCmd := &cobra.Command{
		Use:   "profiles",
		Short: "Show and change the profiles used when building a project",
		Long: `Shows and changes the profile selection of a project.

Selected profiles are passed to Maven with -P. When a project has no stored
selection, its activeByDefault profiles are selected the first time it is
shown.`,
	}

	listCmd := &cobra.Command{
		Use:   "list [project]",
		Short: "List the declared profiles",
		Args:  cobra.MaximumNArgs(1),
		RunE:  cmd.List,
	}
	listCmd.Flags().StringVar(&cmd.format, "format", formatText, "Output format: text or json")

	toggleCmd := &cobra.Command{
		Use:   "toggle <project> <profile>...",
		Short: "Select profiles (or deselect them with --off)",
		Example: `  # Select the release profile
  mavenview profiles toggle core release

  # Deselect it again
  mavenview profiles toggle core release --off`,
		Args: cobra.MinimumNArgs(2),
		RunE: cmd.Toggle,
	}
	toggleCmd.Flags().BoolVar(&cmd.off, "off", false, "Deselect instead of select")

	setCmd := &cobra.Command{
		Use:   "set <project> [profile...]",
		Short: "Replace the selection; no profiles clears it",
		Args:  cobra.MinimumNArgs(1),
		RunE:  cmd.Set,
	}

	selectCmd := &cobra.Command{
		Use:   "select <project>",
		Short: "Choose profiles interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.Select,
	}

	cobraCmd.AddCommand(listCmd, toggleCmd, setCmd, selectCmd)
	return cobraCmd
}

// List prints the profiles of a project and whether each is selected.
func (c *ProfilesCommand) List(cmd *cobra.Command, args []string) error {
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

	declared := a.extractor.Profiles(ctx, project)
	selected := a.builder.SelectedProfiles(ctx, project)

	infos := make([]ProfileInfo, 0, len(declared))
	for _, p := range declared {
		infos = append(infos, ProfileInfo{
			ID:              p.ID,
			ActiveByDefault: p.ActiveByDefault,
			Selected:        slices.Contains(selected, p.ID),
		})
	}

	w := c.rt.stdout()
	if c.format == formatJSON {
		return writeJSON(w, infos)
	}

	rows := make([]table.Row, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, table.Row{checkbox(info.Selected), info.ID, yesOrEmpty(info.ActiveByDefault)})
	}
	renderTable(w, table.Row{"", "Profile", "Active by default"}, rows,
		fmt.Sprintf("Project %s declares no profiles", project.Name))
	return nil
}

// Toggle selects or deselects individual profiles.
func (c *ProfilesCommand) Toggle(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := c.rt.open(ctx)
	if err != nil {
		return err
	}
	project, err := a.project(args[0])
	if err != nil {
		return err
	}

	declared := a.extractor.Profiles(ctx, project)
	a.builder.SelectedProfiles(ctx, project)

	w := c.rt.stdout()
	for _, id := range args[1:] {
		if !declaresProfile(declared, id) {
			_, _ = fmt.Fprintf(w, "⚠️  Warning: project %s does not declare profile %s\n", project.Name, id)
		}
		a.profiles.Toggle(project.Name, id, !c.off)
	}

	printSelection(w, project.Name, a.profiles.GetSelected(project.Name))
	return nil
}

// Set replaces the whole selection.
func (c *ProfilesCommand) Set(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := c.rt.open(ctx)
	if err != nil {
		return err
	}
	project, err := a.project(args[0])
	if err != nil {
		return err
	}

	declared := a.extractor.Profiles(ctx, project)
	w := c.rt.stdout()
	for _, id := range args[1:] {
		if !declaresProfile(declared, id) {
			_, _ = fmt.Fprintf(w, "⚠️  Warning: project %s does not declare profile %s\n", project.Name, id)
		}
	}

	a.profiles.Replace(project.Name, args[1:])
	printSelection(w, project.Name, a.profiles.GetSelected(project.Name))
	return nil
}

// Select opens the interactive profile chooser.
func (c *ProfilesCommand) Select(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := c.rt.open(ctx)
	if err != nil {
		return err
	}
	project, err := a.project(args[0])
	if err != nil {
		return err
	}

	declared := a.extractor.Profiles(ctx, project)
	selected := a.builder.SelectedProfiles(ctx, project)

	ids, ok, err := c.rt.deps.ProfileChooser(project.Name, declared, selected)
	if err != nil {
		return err
	}

	w := c.rt.stdout()
	if !ok {
		_, _ = fmt.Fprintln(w, "Cancelled; selection unchanged")
		return nil
	}

	a.profiles.Replace(project.Name, ids)
	printSelection(w, project.Name, a.profiles.GetSelected(project.Name))
	return nil
}

func declaresProfile(profiles []models.Profile, id string) bool {
	for _, p := range profiles {
		if p.ID == id {
			return true
		}
	}
	return false
}

func printSelection(w io.Writer, project string, selected []string) {
	if len(selected) == 0 {
		_, _ = fmt.Fprintf(w, "✓ %s: no profiles selected\n", project)
		return
	}
	_, _ = fmt.Fprintf(w, "✓ %s: %s\n", project, strings.Join(selected, ", "))
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

func yesOrEmpty(b bool) string {
	if b {
		return "yes"
	}
	return ""
}
