package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/tlcsdm/eclipse-maven-view/internal/catalog"
)

// PluginsCommand handles the plugins command
type PluginsCommand struct {
	rt     *runtime
	format string
}

// PluginInfo is one row of the plugins output.
type PluginInfo struct {
	Prefix     string   `json:"prefix"`
	GroupID    string   `json:"groupId"`
	ArtifactID string   `json:"artifactId"`
	Version    string   `json:"version,omitempty"`
	Goals      []string `json:"goals"`
}

// NewPluginsCommand creates a new plugins command
func NewPluginsCommand(rt *runtime) *cobra.Command {
	cmd := &PluginsCommand{rt: rt}

	cobraCmd := &cobra.Command{
		Use:   "plugins [project]",
		Short: "List the build plugins of a project and their goals",
		Long: `Lists the build plugins declared by a project and its profiles, one per
groupId:artifactId, with the goals that can be run as prefix:goal.`,
		Example: `  mavenview plugins core
  mavenview run core:compiler:compile`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.format, "format", formatText, "Output format: text or json")

	return cobraCmd
}

// Run executes the plugins command
func (c *PluginsCommand) Run(cmd *cobra.Command, args []string) error {
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

	plugins := a.extractor.Plugins(ctx, project)
	infos := make([]PluginInfo, 0, len(plugins))
	for _, p := range plugins {
		infos = append(infos, PluginInfo{
			Prefix:     p.GoalPrefix(),
			GroupID:    p.GroupID,
			ArtifactID: p.ArtifactID,
			Version:    p.Version,
			Goals:      catalog.Goals(p.ArtifactID),
		})
	}

	w := c.rt.stdout()
	if c.format == formatJSON {
		return writeJSON(w, infos)
	}

	rows := make([]table.Row, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, table.Row{
			info.Prefix,
			info.GroupID + ":" + info.ArtifactID,
			info.Version,
			strings.Join(info.Goals, ", "),
		})
	}
	renderTable(w, table.Row{"Prefix", "Plugin", "Version", "Goals"}, rows,
		fmt.Sprintf("Project %s declares no build plugins", project.Name))
	return nil
}
