package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tlcsdm/eclipse-maven-view/internal/config"
	"github.com/tlcsdm/eclipse-maven-view/internal/filesystem"
	"github.com/tlcsdm/eclipse-maven-view/internal/maven"
)

// Deps are the collaborators injected into the command tree.
type Deps struct {
	FS filesystem.FileSystem

	// Invoker runs Maven. When nil an OS invoker is built from the
	// configuration.
	Invoker maven.Invoker

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Interactive front ends; nil means the terminal UI.
	Picker         PickFunc
	ProfileChooser ProfileChooserFunc
}

// NewRootCommand creates the root command
func NewRootCommand(deps Deps) *cobra.Command {
	rt := newRuntime(deps)

	rootCmd := &cobra.Command{
		Use:   "mavenview",
		Short: "Browse and run Maven projects in a workspace",
		Long: `A CLI tool for browsing the Maven projects of a workspace.

Each project shows its profiles, lifecycle phases, build plugins with their
goals, saved run configurations and dependencies. Phases, goals and run
configurations can be run directly or picked interactively.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.load(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return rt.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to `mavenview tree` when no subcommand is provided.
			return (&TreeCommand{rt: rt, format: "text", depth: 1}).Run(cmd, args)
		},
	}
	rootCmd.SetIn(deps.Stdin)
	rootCmd.SetOut(deps.Stdout)
	rootCmd.SetErr(deps.Stderr)

	addGlobalFlags(rootCmd)

	rootCmd.AddCommand(NewTreeCommand(rt))
	rootCmd.AddCommand(NewProjectsCommand(rt))
	rootCmd.AddCommand(NewProfilesCommand(rt))
	rootCmd.AddCommand(NewPluginsCommand(rt))
	rootCmd.AddCommand(NewDepsCommand(rt))
	rootCmd.AddCommand(NewRunCommand(rt))
	rootCmd.AddCommand(NewLaunchesCommand(rt))
	rootCmd.AddCommand(NewSettingsCommand(rt))
	rootCmd.AddCommand(NewEachCommand(rt))

	return rootCmd
}

func addGlobalFlags(cmd *cobra.Command) {
	defaults := config.Defaults()
	f := cmd.PersistentFlags()

	f.String("config", "", "Path to mavenview.yaml (default: searched upward)")
	f.String("selection", "", "Initial project selection: root-projects or all-projects")
	f.StringSlice("always", nil, "Projects always displayed")
	f.StringSlice("never", nil, "Projects never displayed")
	f.StringSlice("phases", nil, "Lifecycle phases displayed per project")
	f.String("mvn", "", "Maven executable")
	f.Bool("wrapper", defaults["maven.use_wrapper"].(bool), "Prefer ./mvnw when present")
	f.Bool("offline", false, "Run Maven offline (-o)")
	f.StringSlice("maven-arg", nil, "Extra argument passed to every Maven invocation")
	f.Bool("effective-pom", defaults["maven.effective_pom"].(bool), "Resolve project models with help:effective-pom")
	f.String("launches-dir", "", "Directory holding run configurations")
	f.String("prefs-backend", "", "Preference storage: file or sqlite")
	f.String("prefs-path", "", "Directory holding preferences")
	f.Int("parallel", 1, "Maximum number of concurrent Maven invocations")
	f.String("log-level", "", "Log level: debug, info, warn or error")
	f.String("log-format", "", "Log format: text or json")
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand(Deps{
		FS:     filesystem.NewOSFileSystem(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
