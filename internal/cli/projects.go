package cli

import (
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/tlcsdm/eclipse-maven-view/internal/models"
)

// ProjectsCommand handles the projects command
type ProjectsCommand struct {
	rt     *runtime
	all    bool
	format string
}

// ProjectInfo is one row of the projects output.
type ProjectInfo struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Parent    string `json:"parent,omitempty"`
	Displayed bool   `json:"displayed"`
}

// NewProjectsCommand creates a new projects command
func NewProjectsCommand(rt *runtime) *cobra.Command {
	cmd := &ProjectsCommand{rt: rt}

	cobraCmd := &cobra.Command{
		Use:   "projects",
		Short: "List the Maven projects of the workspace",
		Long: `Lists the projects found below the workspace root.

By default only the displayed projects are listed: root projects, or every
project with --selection all-projects, adjusted by --always and --never.`,
		Example: `  # List displayed projects
  mavenview projects

  # Include nested modules
  mavenview projects --all`,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().BoolVar(&cmd.all, "all", false, "List every project, displayed or not")
	cobraCmd.Flags().StringVar(&cmd.format, "format", formatText, "Output format: text or json")

	return cobraCmd
}

// Run executes the projects command
func (c *ProjectsCommand) Run(cmd *cobra.Command, args []string) error {
	if err := validateFormat(c.format); err != nil {
		return err
	}

	a, err := c.rt.open(cmd.Context())
	if err != nil {
		return err
	}

	displayed := make(map[string]bool)
	for _, p := range a.ws.DisplayedProjects() {
		displayed[p.Name] = true
	}

	projects := a.ws.DisplayedProjects()
	if c.all {
		projects = a.ws.Projects
	}

	infos := make([]ProjectInfo, 0, len(projects))
	for _, p := range projects {
		infos = append(infos, ProjectInfo{
			Name:      p.Name,
			Path:      relativePath(a.ws.RootPath, p),
			Parent:    p.Parent,
			Displayed: displayed[p.Name],
		})
	}

	w := c.rt.stdout()
	if c.format == formatJSON {
		return writeJSON(w, infos)
	}

	rows := make([]table.Row, 0, len(infos))
	for _, info := range infos {
		shown := ""
		if info.Displayed {
			shown = "yes"
		}
		rows = append(rows, table.Row{info.Name, info.Path, info.Parent, shown})
	}
	renderTable(w, table.Row{"Project", "Path", "Parent", "Displayed"}, rows, "No Maven projects found")
	return nil
}

func relativePath(root string, p *models.Project) string {
	rel, err := filepath.Rel(root, p.RootPath)
	if err != nil {
		return p.RootPath
	}
	return rel
}
