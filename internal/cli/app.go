package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tlcsdm/eclipse-maven-view/internal/config"
	"github.com/tlcsdm/eclipse-maven-view/internal/dispatch"
	"github.com/tlcsdm/eclipse-maven-view/internal/events"
	"github.com/tlcsdm/eclipse-maven-view/internal/extract"
	"github.com/tlcsdm/eclipse-maven-view/internal/filesystem"
	"github.com/tlcsdm/eclipse-maven-view/internal/launch"
	"github.com/tlcsdm/eclipse-maven-view/internal/logging"
	"github.com/tlcsdm/eclipse-maven-view/internal/maven"
	"github.com/tlcsdm/eclipse-maven-view/internal/models"
	"github.com/tlcsdm/eclipse-maven-view/internal/pom"
	"github.com/tlcsdm/eclipse-maven-view/internal/prefs"
	"github.com/tlcsdm/eclipse-maven-view/internal/profiles"
	"github.com/tlcsdm/eclipse-maven-view/internal/tree"
	"github.com/tlcsdm/eclipse-maven-view/internal/tui"
	"github.com/tlcsdm/eclipse-maven-view/internal/tui/components"
	"github.com/tlcsdm/eclipse-maven-view/internal/workspace"
)

// skipTestsKey is the preference holding the skip-tests toggle.
const skipTestsKey = "skipTests"

// PickFunc lets the user choose items; ok is false when cancelled.
type PickFunc func(title string, items []components.Item) (selected []int, ok bool, err error)

// ProfileChooserFunc lets the user edit the profile selection of a project.
type ProfileChooserFunc func(project string, profiles []models.Profile, selected []string) (ids []string, ok bool, err error)

// runtime carries what every command shares: the injected dependencies,
// the loaded configuration and the lazily built application.
type runtime struct {
	deps   Deps
	cfg    *config.Config
	logger *slog.Logger
	app    *app
}

func newRuntime(deps Deps) *runtime {
	if deps.FS == nil {
		deps.FS = filesystem.NewOSFileSystem()
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Picker == nil {
		deps.Picker = func(title string, items []components.Item) ([]int, bool, error) {
			return components.Pick(title, items, tea.WithAltScreen())
		}
	}
	if deps.ProfileChooser == nil {
		deps.ProfileChooser = tui.SelectProfiles
	}
	return &runtime{deps: deps, logger: logging.Discard()}
}

// load reads the configuration and installs the logger in the command context.
func (rt *runtime) load(cmd *cobra.Command) error {
	cfgFile, _ := cmd.Flags().GetString("config")

	dir, err := rt.deps.FS.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.Load(config.Options{File: cfgFile, Dir: dir, Flags: cmd.Flags()})
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, rt.deps.Stderr)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	rt.cfg = cfg
	rt.logger = logger
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))

	logger.Debug("configuration loaded",
		slog.String("file", cfg.File),
		slog.String("root", cfg.Root))
	return nil
}

func (rt *runtime) close() error {
	if rt.app == nil {
		return nil
	}
	err := rt.app.store.Close()
	rt.app = nil
	return err
}

func (rt *runtime) stdout() io.Writer {
	return rt.deps.Stdout
}

// app is the wired object graph behind the commands.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	fs        filesystem.FileSystem
	ws        *workspace.Workspace
	store     prefs.Store
	profiles  *profiles.Manager
	extractor *extract.Extractor
	registry  *launch.DirRegistry
	resolver  *launch.Resolver
	launcher  *launch.MavenLauncher
	invoker   maven.Invoker
	settings  maven.Settings
	builder   *tree.Builder
	skipTests bool
}

// open builds the application on first use.
func (rt *runtime) open(ctx context.Context) (*app, error) {
	if rt.app != nil {
		return rt.app, nil
	}
	if rt.cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}

	cfg := rt.cfg
	logger := logging.FromContext(ctx)
	fs := rt.deps.FS

	selection, err := cfg.Selection()
	if err != nil {
		return nil, err
	}

	opts := []workspace.Option{
		workspace.WithSelection(selection, cfg.Projects.Always, cfg.Projects.Never),
	}
	if cfg.File != "" {
		opts = append(opts, workspace.WithRoot(filepath.Dir(cfg.File)))
	}
	ws := workspace.New(fs, opts...)
	if err := ws.Detect(); err != nil {
		return nil, fmt.Errorf("failed to detect workspace: %w", err)
	}
	cfg.Root = ws.RootPath

	logger.Debug("workspace detected",
		slog.String("root", ws.RootPath),
		slog.Int("projects", len(ws.Projects)))

	store, err := prefs.Open(fs, cfg.Prefs.Backend, cfg.PrefsDir(), prefs.DefaultNamespace, logger)
	if err != nil {
		logger.Warn("preferences unavailable, keeping them in memory", slog.Any("error", err))
		store = prefs.NewMemoryStore()
	}

	sink := events.NewLogSink(logger)
	manager := profiles.NewManager(store,
		profiles.WithSink(sink),
		profiles.WithLogger(logger))

	settings := maven.Settings{
		Executable: cfg.Maven.Executable,
		UseWrapper: cfg.Maven.UseWrapper,
		Offline:    cfg.Maven.Offline,
		Args:       cfg.Maven.Args,
	}

	invoker, modelInvoker := rt.deps.Invoker, rt.deps.Invoker
	if invoker == nil {
		invoker = maven.NewOSInvoker(fs, settings,
			maven.WithOutput(rt.deps.Stdout, rt.deps.Stderr),
			maven.WithLogger(logger))
		modelInvoker = maven.NewOSInvoker(fs, settings, maven.WithLogger(logger))
	}

	provider := pom.NewEffectiveModelProvider(fs, modelInvoker, cfg.Maven.EffectivePOM, logger, pom.WithChangeSink(sink))
	extractor := extract.New(fs, extract.WithModelProvider(provider), extract.WithLogger(logger))

	registry := launch.NewDirRegistry(fs, cfg.LaunchesDir(), logger, cfg.Launches.Type)
	resolver := launch.NewResolver(registry, cfg.Launches.Type, logger)
	launcher := launch.NewMavenLauncher(invoker, ws.Lookup, ws.RootPath)

	phases, err := cfg.DisplayedPhases()
	if err != nil {
		return nil, err
	}

	skipTests := false
	if v, ok := store.Get(skipTestsKey); ok {
		skipTests = v == "true"
	}

	builder := tree.NewBuilder(ws.DisplayedProjects(), extractor, manager,
		tree.WithRunConfigurations(resolver),
		tree.WithDisplayedPhases(phases),
		tree.WithSkipTests(skipTests),
		tree.WithLogger(logger))

	rt.app = &app{
		cfg:       cfg,
		logger:    logger,
		fs:        fs,
		ws:        ws,
		store:     store,
		profiles:  manager,
		extractor: extractor,
		registry:  registry,
		resolver:  resolver,
		launcher:  launcher,
		invoker:   invoker,
		settings:  settings,
		builder:   builder,
		skipTests: skipTests,
	}
	return rt.app, nil
}

// dispatcher creates a dispatcher reporting progress to w.
func (a *app) dispatcher(w io.Writer) *dispatch.Dispatcher {
	return dispatch.New(a.invoker, a.launcher, a.builder,
		dispatch.WithSkipTests(a.skipTests),
		dispatch.WithParallel(a.cfg.Dispatch.Parallel),
		dispatch.WithProgress(w),
		dispatch.WithLogger(a.logger))
}

// project finds any workspace project, displayed or not.
func (a *app) project(name string) (*models.Project, error) {
	project, err := a.ws.GetProject(name)
	if err != nil {
		return nil, fmt.Errorf("project not found: %w", err)
	}
	return project, nil
}

// setSkipTests persists the skip-tests toggle.
func (a *app) setSkipTests(skip bool) error {
	if skip {
		a.store.Set(skipTestsKey, "true")
	} else {
		a.store.Remove(skipTestsKey)
	}
	if err := a.store.Flush(); err != nil {
		return err
	}
	a.skipTests = skip
	return nil
}
