package cli

import (
	"errors"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
	"github.com/tlcsdm/eclipse-maven-view/internal/dispatch"
	"github.com/tlcsdm/eclipse-maven-view/internal/maven"
)

func TestRun_GroupsPhasesPerProject(t *testing.T) {
	h := newHarness(sampleWorkspace(t))

	out, err := h.run(t, "run", "core:install", "core:clean", "web:package")
	require.NoError(t, err)

	require.Equal(t, []maven.Request{
		{
			Project:    "core",
			WorkingDir: testWorkspaceRoot + "/core",
			Goals:      []string{"clean", "install"},
			Profiles:   "dev",
		},
		{
			Project:    "web",
			WorkingDir: testWorkspaceRoot + "/web",
			Goals:      []string{"package"},
		},
	}, h.invoker.Requests())

	require.Contains(t, out, "📦 [1/2] core: clean install\n")
	require.Contains(t, out, "📦 [2/2] web: package\n")
	require.Contains(t, out, "\n2 succeeded\n")
}

func TestRun_GoalAndRunConfiguration(t *testing.T) {
	h := newHarness(sampleWorkspace(t))

	_, err := h.run(t, "run", "core@Core release", "core:compiler:compile")
	require.NoError(t, err)

	require.Equal(t, []maven.Request{
		{
			Project:    "core",
			WorkingDir: testWorkspaceRoot + "/core",
			Goals:      []string{"clean", "deploy"},
			Profiles:   "release",
		},
		{
			Project:    "core",
			WorkingDir: testWorkspaceRoot + "/core",
			Goals:      []string{"compiler:compile"},
		},
	}, h.invoker.Requests())
}

func TestRun_SkipTests(t *testing.T) {
	h := newHarness(sampleWorkspace(t))

	_, err := h.run(t, "settings", "skip-tests", "on")
	require.NoError(t, err)

	_, err = h.run(t, "run", "web:verify", "web:compiler:compile")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no plugin with prefix")

	_, err = h.run(t, "run", "web:verify")
	require.NoError(t, err)

	requests := h.invoker.Requests()
	require.Len(t, requests, 1)
	require.True(t, requests[0].SkipTests)
}

func TestRun_FailureDoesNotStopOthers(t *testing.T) {
	h := newHarness(sampleWorkspace(t))
	h.invoker.Errors["core"] = errors.New("exit status 1")

	out, err := h.run(t, "run", "core:install", "web:install")
	require.Error(t, err)
	require.Equal(t, "some invocations failed", err.Error())

	require.Len(t, h.invoker.Requests(), 2)
	require.Contains(t, out, "❌ Failed:")
	require.Contains(t, out, "✓ Success:")
	require.Contains(t, out, "1 succeeded, 1 failed")
}

func TestRun_DryRun(t *testing.T) {
	h := newHarness(sampleWorkspace(t))

	out, err := h.run(t, "run", "--dry-run", "core:install", "core:clean", "core@Core release")
	require.NoError(t, err)
	require.Empty(t, h.invoker.Requests())

	require.Contains(t, out, "Planned 2 invocation(s):")
	require.Contains(t, out, "$ mvn -P dev clean install\n   in /test-workspace/core")
	require.Contains(t, out, "$ mvn -P release clean deploy")

	snaps.MatchSnapshot(t, out)
}

func TestRun_DryRunTemplate(t *testing.T) {
	fs := sampleWorkspace(t)
	fs.AddFile(testWorkspaceRoot+"/plan.tmpl", []byte(`{{ range .Units }}{{ .Project }}={{ .Command }}{{ "\n" }}{{ end }}`))
	h := newHarness(fs)

	out, err := h.run(t, "run", "--dry-run", "--template", testWorkspaceRoot+"/plan.tmpl", "web:install")
	require.NoError(t, err)
	require.Equal(t, "web=mvn install\n", out)
}

func TestRun_NothingSelected(t *testing.T) {
	h := newHarness(sampleWorkspace(t))

	_, err := h.run(t, "run")
	require.ErrorIs(t, err, dispatch.ErrNothingSelected)
}

func TestRun_InvalidSelector(t *testing.T) {
	h := newHarness(sampleWorkspace(t))

	_, err := h.run(t, "run", "core:nonsense")
	require.Error(t, err)

	_, err = h.run(t, "run", "core@Missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), `no run configuration "Missing"`)

	require.Empty(t, h.invoker.Requests())
}

func TestRun_Pick(t *testing.T) {
	h := newHarness(sampleWorkspace(t))
	h.picker = pickLabels("clean", "compiler:testCompile", "Core release")

	_, err := h.run(t, "run", "--pick", "core")
	require.NoError(t, err)

	requests := h.invoker.Requests()
	require.Len(t, requests, 3)
	require.Equal(t, []string{"clean"}, requests[0].Goals)
	// Run configurations and goals keep their selection order.
	require.Equal(t, []string{"compiler:testCompile"}, requests[1].Goals)
	require.Equal(t, []string{"clean", "deploy"}, requests[2].Goals)
}

func TestRun_PickSkipsHeaders(t *testing.T) {
	h := newHarness(sampleWorkspace(t))
	// Index 0 is the project header.
	h.picker = pickIndexes(0)

	_, err := h.run(t, "run", "--pick", "web")
	require.ErrorIs(t, err, dispatch.ErrNothingSelected)
	require.Empty(t, h.invoker.Requests())
}

func TestRun_PickCancelled(t *testing.T) {
	h := newHarness(sampleWorkspace(t))
	h.picker = cancelledPick

	out, err := h.run(t, "run", "--pick")
	require.NoError(t, err)
	require.Equal(t, "Cancelled; nothing was run\n", out)
	require.Empty(t, h.invoker.Requests())
}
