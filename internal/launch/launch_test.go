package launch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tlcsdm/eclipse-maven-view/internal/filesystem"
	"github.com/tlcsdm/eclipse-maven-view/internal/maven"
	"github.com/tlcsdm/eclipse-maven-view/internal/models"
	"github.com/tlcsdm/eclipse-maven-view/internal/testutil"
)

const launchDir = "/ws/.mavenview/launches"

const coreLaunch = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<launchConfiguration type="org.eclipse.m2e.Maven2LaunchConfigurationType">
    <booleanAttribute key="M2_SKIP_TESTS" value="true"/>
    <stringAttribute key="M2_GOALS" value="clean  install"/>
    <stringAttribute key="M2_PROFILES" value="dev, ci"/>
    <stringAttribute key="org.eclipse.jdt.launching.WORKING_DIRECTORY" value="${workspace_loc:/core}"/>
</launchConfiguration>`

const apiMarkdown = `---
name: api quick build
workingDirectory: ${project_loc:api}
goals: [package]
profiles: [fast]
---

Packages the API without the slow checks.
`

func setupRegistry(t *testing.T) (*DirRegistry, *filesystem.MockFileSystem) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile(launchDir+"/core build.launch", []byte(coreLaunch))
	fs.AddFile(launchDir+"/api.md", []byte(apiMarkdown))
	fs.AddFile(launchDir+"/other-type.launch", []byte(`<launchConfiguration type="org.eclipse.jdt.launching.localJavaApplication">
  <stringAttribute key="org.eclipse.jdt.launching.WORKING_DIRECTORY" value="${workspace_loc:/core}"/>
</launchConfiguration>`))
	fs.AddFile(launchDir+"/broken.launch", []byte(`<!DOCTYPE x><launchConfiguration/>`))
	fs.AddFile(launchDir+"/notes.txt", []byte("ignored"))

	return NewDirRegistry(fs, launchDir, testutil.NewTestLogger(t)), fs
}

func TestDirRegistry_ReadAll(t *testing.T) {
	reg, _ := setupRegistry(t)

	configs, err := reg.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, configs, 3)

	require.Equal(t, "api quick build", configs[0].Name)
	require.Equal(t, models.MavenLaunchType, configs[0].Type)
	require.Equal(t, []string{"package"}, configs[0].Goals)
	require.Equal(t, "Packages the API without the slow checks.", configs[0].Description)

	core := configs[1]
	require.Equal(t, "core build", core.Name)
	require.Equal(t, []string{"clean", "install"}, core.Goals)
	require.Equal(t, []string{"dev", "ci"}, core.Profiles)
	require.True(t, core.SkipTests)
	require.Equal(t, "${workspace_loc:/core}", core.WorkingDirectory)
}

func TestDirRegistry_MissingDirectory(t *testing.T) {
	reg := NewDirRegistry(filesystem.NewMockFileSystem(), launchDir, nil)
	configs, err := reg.ReadAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, configs)
}

func TestDirRegistry_UnregisteredType(t *testing.T) {
	reg, _ := setupRegistry(t)
	_, err := reg.Configurations(context.Background(), "org.example.Unknown")
	require.ErrorIs(t, err, ErrTypeNotRegistered)

	types, err := reg.Types(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{models.MavenLaunchType}, types)
}

func TestResolver_MatchesWorkingDirectoryExactly(t *testing.T) {
	reg, fs := setupRegistry(t)
	fs.AddFile(launchDir+"/near-miss.launch", []byte(`<launchConfiguration type="org.eclipse.m2e.Maven2LaunchConfigurationType">
  <stringAttribute key="M2_GOALS" value="verify"/>
  <stringAttribute key="org.eclipse.jdt.launching.WORKING_DIRECTORY" value="${workspace_loc:/core}/sub"/>
</launchConfiguration>`))

	resolver := NewResolver(reg, "", testutil.NewTestLogger(t))

	core := resolver.Resolve(context.Background(), models.NewProject("core", "/ws/core", "/ws/core/pom.xml"))
	require.Len(t, core, 1)
	require.Equal(t, "core build", core[0].Name)

	api := resolver.Resolve(context.Background(), models.NewProject("api", "/ws/api", "/ws/api/pom.xml"))
	require.Len(t, api, 1)

	require.Empty(t, resolver.Resolve(context.Background(), models.NewProject("web", "/ws/web", "/ws/web/pom.xml")))
}

func TestResolver_UnregisteredTypeYieldsNothing(t *testing.T) {
	reg, _ := setupRegistry(t)
	resolver := NewResolver(reg, "org.example.Unknown", testutil.NewTestLogger(t))
	require.Empty(t, resolver.Resolve(context.Background(), models.NewProject("core", "/ws/core", "/ws/core/pom.xml")))
}

func TestDirRegistry_WriteAndDelete(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	reg := NewDirRegistry(fs, launchDir, nil)

	cfg := &models.RunConfiguration{
		Name:             "web: release",
		Type:             models.MavenLaunchType,
		WorkingDirectory: models.WorkspaceLocation("web"),
		Goals:            []string{"clean", "deploy"},
		Profiles:         []string{"release"},
		SkipTests:        true,
		Description:      "Release build",
	}
	require.NoError(t, reg.Write(cfg))
	require.Equal(t, launchDir+"/web_ release.md", cfg.Source)

	configs, err := reg.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, configs, 1)
	require.Equal(t, *cfg, configs[0])

	require.NoError(t, reg.Delete(configs[0]))
	require.False(t, fs.Exists(cfg.Source))
}

func TestMavenLauncher(t *testing.T) {
	inv := maven.NewMockInvoker()
	projects := map[string]*models.Project{
		"core": models.NewProject("core", "/ws/core", "/ws/core/pom.xml"),
	}
	launcher := NewMavenLauncher(inv, func(name string) (*models.Project, bool) {
		p, ok := projects[name]
		return p, ok
	}, "/ws")

	err := launcher.Launch(context.Background(), models.RunConfiguration{
		Name:             "core build",
		WorkingDirectory: "${workspace_loc:/core}",
		Goals:            []string{"clean", "install"},
		Profiles:         []string{"dev", "ci"},
		SkipTests:        true,
	})
	require.NoError(t, err)
	require.Equal(t, []maven.Request{{
		Project:    "core",
		WorkingDir: "/ws/core",
		Goals:      []string{"clean", "install"},
		Profiles:   "dev,ci",
		SkipTests:  true,
	}}, inv.Requests())

	err = launcher.Launch(context.Background(), models.RunConfiguration{
		Name:             "ghost",
		WorkingDirectory: "${project_loc:ghost}",
		Goals:            []string{"verify"},
	})
	require.ErrorContains(t, err, "project ghost not found")

	err = launcher.Launch(context.Background(), models.RunConfiguration{Name: "empty", WorkingDirectory: "sub"})
	require.ErrorContains(t, err, "has no goals")

	req, err := launcher.Request(models.RunConfiguration{Name: "rel", WorkingDirectory: "tools", Goals: []string{"verify"}})
	require.NoError(t, err)
	require.Equal(t, "/ws/tools", req.WorkingDir)
}
