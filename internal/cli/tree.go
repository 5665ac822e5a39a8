package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tlcsdm/eclipse-maven-view/internal/tree"
)

// TreeCommand handles the tree command
type TreeCommand struct {
	rt     *runtime
	format string
	depth  int
}

// TreeOutput represents the complete tree output
type TreeOutput struct {
	Root     string      `json:"root"`
	Projects []tree.View `json:"projects"`
}

// NewTreeCommand creates a new tree command
func NewTreeCommand(rt *runtime) *cobra.Command {
	cmd := &TreeCommand{rt: rt}

	cobraCmd := &cobra.Command{
		Use:   "tree [project...]",
		Short: "Show the project tree",
		Long: `Shows the displayed projects with their profiles, lifecycle phases,
build plugins and goals, run configurations and dependencies.

Selected profiles are marked [x]. Test-scoped dependencies and a skipped
test phase are dimmed on terminals.`,
		Example: `  # Show every project
  mavenview tree

  # Show one project, two levels deep
  mavenview tree core --depth 2

  # Output JSON for scripting
  mavenview tree --format json > tree.json`,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.format, "format", formatText, "Output format: text or json")
	cobraCmd.Flags().IntVar(&cmd.depth, "depth", -1, "Levels shown below each project (-1 for all)")

	return cobraCmd
}

// Run executes the tree command
func (c *TreeCommand) Run(cmd *cobra.Command, args []string) error {
	if err := validateFormat(c.format); err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := c.rt.open(ctx)
	if err != nil {
		return err
	}

	roots := a.builder.Roots(ctx)
	if len(args) > 0 {
		roots = roots[:0]
		for _, name := range args {
			project, err := a.project(name)
			if err != nil {
				return err
			}
			roots = append(roots, a.builder.ProjectNode(project))
		}
	}

	w := c.rt.stdout()
	if c.format == formatJSON {
		return writeJSON(w, TreeOutput{
			Root:     a.ws.RootPath,
			Projects: tree.Snapshot(ctx, roots, c.depth),
		})
	}

	if len(roots) == 0 {
		_, _ = fmt.Fprintln(w, "No Maven projects found")
		return nil
	}

	st := newStyles(w)
	for i, root := range roots {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintln(w, label(st, root))
		c.writeChildren(ctx, w, st, root, "", 1)
	}
	return nil
}

func (c *TreeCommand) writeChildren(ctx context.Context, w io.Writer, st styles, n tree.Node, indent string, level int) {
	if c.depth >= 0 && level > c.depth {
		return
	}

	children := tree.Children(ctx, n)
	for i, child := range children {
		branch, next := "├─", "│  "
		if i == len(children)-1 {
			branch, next = "└─", "   "
		}

		_, _ = fmt.Fprintf(w, "%s%s %s\n", indent, branch, label(st, child))
		c.writeChildren(ctx, w, st, child, indent+next, level+1)
	}
}

// label renders one node line.
func label(st styles, n tree.Node) string {
	name := n.DisplayName()

	switch n := n.(type) {
	case *tree.ProjectNode:
		name = st.project.Render(name)
	case *tree.ProfileNode:
		if n.Selected() {
			name = st.selected.Render("[x] " + name)
		} else {
			name = "[ ] " + name
		}
	case *tree.PhaseNode:
		if n.Icon() == tree.IconPhaseTestSkipped {
			name = st.muted.Render(name + " (skipped)")
		}
	case *tree.DependencyNode:
		if n.Icon() == tree.IconDependencyTest {
			name = st.muted.Render(name)
		}
	}

	if d, ok := n.(tree.Describer); ok {
		if detail := d.Detail(); detail != "" {
			name += " " + st.detail.Render(detail)
		}
	}
	return name
}
