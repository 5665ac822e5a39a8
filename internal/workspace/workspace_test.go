package workspace

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tlcsdm/eclipse-maven-view/internal/filesystem"
	"github.com/tlcsdm/eclipse-maven-view/internal/models"
)

func projectNames(projects []*models.Project) []string {
	names := make([]string, 0, len(projects))
	for _, p := range projects {
		names = append(names, p.Name)
	}
	return names
}

func TestWorkspaceDetect_MultiModule(t *testing.T) {
	fs := NewWorkspaceBuilder("/workspace").
		AddSimpleProject("").
		AddSimpleProject("core").
		AddSimpleProject("web").
		AddSimpleProject("web/api").
		Build()

	ws := New(fs)
	require.NoError(t, ws.Detect())

	require.Equal(t, "/workspace", ws.RootPath)
	require.Equal(t, []string{"workspace", "core", "web", "api"}, projectNames(ws.Projects))

	api, err := ws.GetProject("api")
	require.NoError(t, err)
	require.Equal(t, "web", api.Parent)
	require.Equal(t, "/workspace/web/api/pom.xml", api.PomPath)

	core, _ := ws.GetProject("core")
	require.Equal(t, "workspace", core.Parent)

	root, _ := ws.GetProject("workspace")
	require.True(t, root.IsRoot())
}

func TestWorkspaceDetect_FindsMarkerUpward(t *testing.T) {
	fs := NewWorkspaceBuilder("/repo").
		AddSimpleProject("services/billing").
		AddFile(ConfigFile, "log:\n  level: debug\n").
		Build()
	fs.SetCurrentDir("/repo/services/billing")

	ws := New(fs)
	require.NoError(t, ws.Detect())

	require.Equal(t, "/repo", ws.RootPath)
	require.Equal(t, []string{"billing"}, projectNames(ws.Projects))
}

func TestFindMarkerDir_NearestWins(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/outer/"+ConfigFile, []byte("{}"))
	fs.AddDir("/outer/inner/" + StateDir)
	fs.AddDir("/outer/inner/module")

	dir, found := findMarkerDir(fs, "/outer/inner/module", ConfigFile, StateDir)
	require.True(t, found)
	require.Equal(t, "/outer/inner", dir)

	dir, found = findMarkerDir(fs, "/outer", ConfigFile, StateDir)
	require.True(t, found)
	require.Equal(t, "/outer", dir)

	_, found = findMarkerDir(fs, "/elsewhere", ConfigFile, StateDir)
	require.False(t, found)
}

func TestWorkspaceDetect_FallsBackToWorkingDirectory(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/src/app/pom.xml", []byte(POM("app", "")))
	fs.SetCurrentDir("/src/app")

	ws := New(fs)
	require.NoError(t, ws.Detect())

	require.Equal(t, "/src/app", ws.RootPath)
	require.Equal(t, []string{"app"}, projectNames(ws.Projects))
}

func TestWorkspaceDetect_SkipsBuildOutputHiddenAndIgnored(t *testing.T) {
	fs := NewWorkspaceBuilder("/workspace").
		AddSimpleProject("app").
		AddSimpleProject("app/target/classes/copied").
		AddSimpleProject("frontend/node_modules/pkg").
		AddSimpleProject(".idea/module").
		AddSimpleProject("sandbox/tmp").
		AddFile(".gitignore", "sandbox/\n").
		Build()

	ws := New(fs)
	require.NoError(t, ws.Detect())

	require.Equal(t, []string{"app"}, projectNames(ws.Projects))
}

func TestWorkspaceDetect_NameCollision(t *testing.T) {
	fs := NewWorkspaceBuilder("/workspace").
		AddSimpleProject("client/common").
		AddSimpleProject("server/common").
		Build()

	ws := New(fs)
	require.NoError(t, ws.Detect())

	require.Equal(t, []string{"common-client", "common-server"}, projectNames(ws.Projects))
}

func TestWorkspaceDetect_EmptyWorkspace(t *testing.T) {
	fs := NewWorkspaceBuilder("/workspace").Build()

	ws := New(fs)
	require.NoError(t, ws.Detect())
	require.Empty(t, ws.Projects)
}

func TestWorkspaceDetect_ExplicitRoot(t *testing.T) {
	fs := NewWorkspaceBuilder("/workspace").
		AddSimpleProject("a").
		Build()
	fs.SetCurrentDir("/elsewhere")

	ws := New(fs, WithRoot("/workspace"))
	require.NoError(t, ws.Detect())
	require.Equal(t, []string{"a"}, projectNames(ws.Projects))
}

func TestDisplayedProjects(t *testing.T) {
	build := func() *filesystem.MockFileSystem {
		return NewWorkspaceBuilder("/workspace").
			AddSimpleProject("parent").
			AddSimpleProject("parent/child").
			AddSimpleProject("tools").
			Build()
	}

	tests := []struct {
		name      string
		selection models.ProjectSelection
		always    []string
		never     []string
		want      []string
	}{
		{"root projects", models.SelectRootProjects, nil, nil, []string{"parent", "tools"}},
		{"all projects", models.SelectAllProjects, nil, nil, []string{"parent", "child", "tools"}},
		{"always shows nested", models.SelectRootProjects, []string{"child"}, nil, []string{"parent", "child", "tools"}},
		{"never hides", models.SelectAllProjects, nil, []string{"tools"}, []string{"parent", "child"}},
		{"never beats always", models.SelectAllProjects, []string{"tools"}, []string{"tools"}, []string{"parent", "child"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := New(build(), WithSelection(tt.selection, tt.always, tt.never))
			require.NoError(t, ws.Detect())
			require.Equal(t, tt.want, projectNames(ws.DisplayedProjects()))
		})
	}
}

func TestLookup(t *testing.T) {
	fs := NewWorkspaceBuilder("/workspace").AddSimpleProject("a").Build()
	ws := New(fs)
	require.NoError(t, ws.Detect())

	p, ok := ws.Lookup("a")
	require.True(t, ok)
	require.Equal(t, "/workspace/a", p.RootPath)

	_, ok = ws.Lookup("b")
	require.False(t, ok)
	_, err := ws.GetProject("b")
	require.Error(t, err)
	require.Equal(t, "/workspace/.mavenview", ws.StateDir())
}
