package e2e_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tlcsdm/eclipse-maven-view/internal/cli"
	"github.com/tlcsdm/eclipse-maven-view/internal/filesystem"
	"github.com/tlcsdm/eclipse-maven-view/internal/maven"
	"github.com/tlcsdm/eclipse-maven-view/internal/tree"
)

// kitchensink copies the sample workspace into a temporary directory so
// preferences and saved configurations never touch the repository.
func kitchensink(t *testing.T) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "kitchensink")
	require.NoError(t, os.CopyFS(dir, os.DirFS("../kitchensink")))
	return dir
}

type session struct {
	root    string
	invoker *maven.MockInvoker
}

func (s *session) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PROJECT_CONTEXT", "")

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCommand(cli.Deps{
		FS:      filesystem.NewOSFileSystem(),
		Invoker: s.invoker,
		Stdout:  &stdout,
		Stderr:  &stderr,
	})
	cmd.SetArgs(append([]string{
		"--config", filepath.Join(s.root, "mavenview.yaml"),
		"--effective-pom=false",
		"--log-level", "error",
	}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

func TestFullWorkflow(t *testing.T) {
	s := &session{root: kitchensink(t), invoker: maven.NewMockInvoker()}

	// Root projects only: the nested api module stays hidden.
	out, err := s.run(t, "tree", "--format", "json", "--depth", "1")
	require.NoError(t, err)

	var view cli.TreeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Equal(t, s.root, view.Root)

	var names []string
	for _, p := range view.Projects {
		names = append(names, p.Name)
	}
	require.Equal(t, []string{"core", "web"}, names)

	core := view.Projects[0]
	require.Equal(t, tree.KindProfileGroup, core.Children[0].Kind)

	// Profile plugins are part of the project's plugin list.
	out, err = s.run(t, "plugins", "core", "--format", "json")
	require.NoError(t, err)

	var plugins []cli.PluginInfo
	require.NoError(t, json.Unmarshal([]byte(out), &plugins))
	var prefixes []string
	for _, p := range plugins {
		prefixes = append(prefixes, p.Prefix)
	}
	require.Equal(t, []string{"compiler", "surefire", "source"}, prefixes)

	// The activeByDefault profile is selected on first use; toggling keeps it.
	out, err = s.run(t, "profiles", "toggle", "core", "release")
	require.NoError(t, err)
	require.Equal(t, "✓ core: dev, release\n", out)

	out, err = s.run(t, "run", "--dry-run", "core:install", "core:clean")
	require.NoError(t, err)
	require.Contains(t, out, "$ mvn --batch-mode -P dev,release clean install")
	require.Empty(t, s.invoker.Requests())

	_, err = s.run(t, "settings", "skip-tests", "on")
	require.NoError(t, err)

	_, err = s.run(t, "run", "core:install", "core:clean", "core@Core release")
	require.NoError(t, err)

	require.Equal(t, []maven.Request{
		{
			Project:    "core",
			WorkingDir: filepath.Join(s.root, "core"),
			Goals:      []string{"clean", "install"},
			Profiles:   "dev,release",
			SkipTests:  true,
		},
		{
			Project:    "core",
			WorkingDir: filepath.Join(s.root, "core"),
			Goals:      []string{"clean", "deploy"},
			Profiles:   "release",
		},
	}, s.invoker.Requests())
}

func TestNestedModuleLaunch(t *testing.T) {
	s := &session{root: kitchensink(t), invoker: maven.NewMockInvoker()}

	out, err := s.run(t, "projects", "--all", "--format", "json")
	require.NoError(t, err)

	var projects []cli.ProjectInfo
	require.NoError(t, json.Unmarshal([]byte(out), &projects))
	require.Len(t, projects, 3)
	require.Equal(t, cli.ProjectInfo{Name: "api", Path: filepath.Join("web", "api"), Parent: "web"}, projects[2])

	_, err = s.run(t, "--selection", "all-projects", "run", "api@api-run")
	require.NoError(t, err)

	require.Equal(t, []maven.Request{{
		Project:    "api",
		WorkingDir: filepath.Join(s.root, "web", "api"),
		Goals:      []string{"spring-boot:run"},
		SkipTests:  true,
	}}, s.invoker.Requests())
}

func TestSaveAndDeleteRunConfiguration(t *testing.T) {
	s := &session{root: kitchensink(t), invoker: maven.NewMockInvoker()}

	_, err := s.run(t, "launches", "save", "Web verify", "web", "verify", "--profile", "ci")
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(s.root, ".mavenview", "launches", "Web verify.md"))

	out, err := s.run(t, "launches", "list")
	require.NoError(t, err)
	require.Contains(t, out, "Web verify")
	require.Contains(t, out, "api-run.launch")

	_, err = s.run(t, "launches", "delete", "Web verify")
	require.NoError(t, err)
	require.NoFileExists(t, filepath.Join(s.root, ".mavenview", "launches", "Web verify.md"))
}
