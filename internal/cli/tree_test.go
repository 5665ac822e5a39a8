package cli

import (
	"encoding/json"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
	"github.com/tlcsdm/eclipse-maven-view/internal/tree"
	"github.com/tlcsdm/eclipse-maven-view/internal/workspace"
)

func TestTree_Text(t *testing.T) {
	h := newHarness(sampleWorkspace(t))

	out, err := h.run(t, "tree", "core")
	require.NoError(t, err)

	require.Contains(t, out, "core\n├─ Profiles\n│  ├─ [x] dev active by default\n│  └─ [ ] release\n├─ Phases\n")
	require.Contains(t, out, "├─ Plugins\n│  ├─ compiler (org.apache.maven.plugins:maven-compiler-plugin:3.11.0)\n│  │  ├─ compiler:compile\n")
	require.Contains(t, out, "│  └─ spring-boot (org.springframework.boot:spring-boot-maven-plugin)\n")
	require.Contains(t, out, "├─ Run Configurations\n│  └─ Core release clean deploy\n")
	require.Contains(t, out, "└─ Dependencies\n   ├─ com.google.guava:guava:33.0.0-jre\n   └─ junit:junit:4.13.2 test\n")

	snaps.MatchSnapshot(t, out)
}

func TestTree_DefaultShowsDisplayedProjects(t *testing.T) {
	h := newHarness(sampleWorkspace(t))

	out, err := h.run(t)
	require.NoError(t, err)

	require.Contains(t, out, "core\n├─ Profiles\n├─ Phases\n├─ Plugins\n├─ Run Configurations\n└─ Dependencies\n")
	// web has nothing but phases, so they are listed directly.
	require.Contains(t, out, "\nweb\n├─ clean\n")
	require.NotContains(t, out, "api")
}

func TestTree_SkippedTests(t *testing.T) {
	h := newHarness(sampleWorkspace(t))

	_, err := h.run(t, "settings", "skip-tests", "on")
	require.NoError(t, err)

	out, err := h.run(t, "tree", "web")
	require.NoError(t, err)
	require.Contains(t, out, "test (skipped)")
}

func TestTree_JSON(t *testing.T) {
	h := newHarness(sampleWorkspace(t))

	out, err := h.run(t, "tree", "--format", "json", "--depth", "1")
	require.NoError(t, err)

	var result TreeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Equal(t, testWorkspaceRoot, result.Root)
	require.Len(t, result.Projects, 2)

	core := result.Projects[0]
	require.Equal(t, "core", core.Name)
	require.Equal(t, tree.KindProject, core.Kind)

	var kinds []tree.Kind
	for _, child := range core.Children {
		kinds = append(kinds, child.Kind)
		require.Empty(t, child.Children)
	}
	require.Equal(t, []tree.Kind{
		tree.KindProfileGroup,
		tree.KindPhaseGroup,
		tree.KindPluginGroup,
		tree.KindRunConfigGroup,
		tree.KindDependencyGroup,
	}, kinds)

	require.Equal(t, "web", result.Projects[1].Name)
	require.Equal(t, tree.KindPhase, result.Projects[1].Children[0].Kind)
}

func TestTree_EmptyWorkspace(t *testing.T) {
	_, fs := buildWorkspace(t, nil)
	h := newHarness(fs)

	out, err := h.run(t, "tree")
	require.NoError(t, err)
	require.Equal(t, "No Maven projects found\n", out)
}

func TestTree_UnknownProject(t *testing.T) {
	h := newHarness(sampleWorkspace(t))

	_, err := h.run(t, "tree", "missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), "project not found")
}

func TestTree_InvalidFormat(t *testing.T) {
	h := newHarness(sampleWorkspace(t))

	_, err := h.run(t, "tree", "--format", "xml")
	require.Error(t, err)
}

func TestTree_SelectionAll(t *testing.T) {
	_, fs := buildWorkspace(t, func(wb *workspace.WorkspaceBuilder) {
		wb.AddSimpleProject("web")
		wb.AddSimpleProject("web/api")
	})
	h := newHarness(fs)

	out, err := h.run(t, "--selection", "all-projects", "tree", "--depth", "0")
	require.NoError(t, err)
	require.Equal(t, "web\n\napi\n", out)
}
