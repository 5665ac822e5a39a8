package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
	"github.com/tlcsdm/eclipse-maven-view/internal/models"
)

func TestEach_AllDisplayedProjects(t *testing.T) {
	h := newHarness(sampleWorkspace(t))

	out, err := h.run(t, "each", "--", "sh", "-c", "echo $PROJECT:$PROJECT_PATH:$SELECTED_PROFILES")
	require.NoError(t, err)

	require.Contains(t, out, "Running command for 2 project(s)...")
	require.Contains(t, out, "📦 [1/2] core\ncore:/test-workspace/core:dev\n✓ Success\n")
	require.Contains(t, out, "📦 [2/2] web\nweb:/test-workspace/web:\n✓ Success\n")

	snaps.MatchSnapshot(t, out)
}

func TestEach_Filters(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{name: "has-profiles", args: []string{"--filter", "has-profiles"}, expected: []string{"core"}},
		{name: "has-launches", args: []string{"--filter", "has-launches"}, expected: []string{"core"}},
		{name: "all projects", args: []string{"--all"}, expected: []string{"core", "web", "api"}},
		{name: "root with all", args: []string{"--all", "--filter", "root"}, expected: []string{"core", "web"}},
		{name: "explicit project", args: []string{"--project", "api"}, expected: []string{"api"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(sampleWorkspace(t))

			args := append([]string{"each"}, tt.args...)
			args = append(args, "--", "sh", "-c", "echo \"name=$PROJECT\"")
			out, err := h.run(t, args...)
			require.NoError(t, err)

			var names []string
			for _, line := range strings.Split(out, "\n") {
				if name, ok := strings.CutPrefix(line, "name="); ok {
					names = append(names, name)
				}
			}
			require.Equal(t, tt.expected, names)
		})
	}
}

func TestEach_HasSelection(t *testing.T) {
	h := newHarness(sampleWorkspace(t))

	_, err := h.run(t, "profiles", "set", "core")
	require.NoError(t, err)

	// An explicit empty selection is kept for the rest of the session only,
	// so the next command applies the defaults again.
	out, err := h.run(t, "each", "--filter", "has-selection", "--", "sh", "-c", "echo $SELECTED_PROFILES")
	require.NoError(t, err)
	require.Contains(t, out, "📦 [1/1] core\ndev\n")
}

func TestEach_NoMatches(t *testing.T) {
	h := newHarness(sampleWorkspace(t))

	out, err := h.run(t, "each", "--project", "web", "--filter", "has-profiles", "--", "true")
	require.NoError(t, err)
	require.Equal(t, "No projects match the specified filters\n", out)
}

func TestEach_InvalidFilter(t *testing.T) {
	h := newHarness(sampleWorkspace(t))

	_, err := h.run(t, "each", "--filter", "has-modules", "--", "true")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid filter: has-modules")
}

func TestEach_NoCommand(t *testing.T) {
	h := newHarness(sampleWorkspace(t))

	_, err := h.run(t, "each")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no command specified")
}

func TestEach_FailingProject(t *testing.T) {
	h := newHarness(sampleWorkspace(t))

	out, err := h.run(t, "each", "--", "sh", "-c", "test \"$PROJECT\" = core")
	require.Error(t, err)
	require.Contains(t, err.Error(), "some projects failed")
	require.Contains(t, out, "❌ Failed: exit status 1")
	require.Contains(t, out, "⚠️  1 project(s) failed: web")
}

func TestEach_ContextOnStdin(t *testing.T) {
	h := newHarness(sampleWorkspace(t))

	out, err := h.run(t, "each", "--project", "core", "--", "cat")
	require.NoError(t, err)

	start := strings.Index(out, "{")
	end := strings.LastIndex(out, "}")
	require.True(t, start >= 0 && end > start)

	var pc models.ProjectContext
	require.NoError(t, json.Unmarshal([]byte(out[start:end+1]), &pc))
	require.Equal(t, models.ProjectContext{
		Project:           "core",
		ProjectPath:       "/test-workspace/core",
		PomPath:           "/test-workspace/core/pom.xml",
		Profiles:          []string{"dev", "release"},
		SelectedProfiles:  []string{"dev"},
		Plugins:           []string{"org.apache.maven.plugins:maven-compiler-plugin", "org.springframework.boot:spring-boot-maven-plugin"},
		RunConfigurations: []string{"Core release"},
	}, pc)
}
