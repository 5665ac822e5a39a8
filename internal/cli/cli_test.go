package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tlcsdm/eclipse-maven-view/internal/filesystem"
	"github.com/tlcsdm/eclipse-maven-view/internal/maven"
	"github.com/tlcsdm/eclipse-maven-view/internal/models"
	"github.com/tlcsdm/eclipse-maven-view/internal/tui/components"
	"github.com/tlcsdm/eclipse-maven-view/internal/workspace"
)

const testWorkspaceRoot = "/test-workspace"

const coreBody = `  <profiles>
    <profile>
      <id>dev</id>
      <activation><activeByDefault>true</activeByDefault></activation>
    </profile>
    <profile>
      <id>release</id>
    </profile>
  </profiles>
  <build>
    <plugins>
      <plugin>
        <artifactId>maven-compiler-plugin</artifactId>
        <version>3.11.0</version>
      </plugin>
      <plugin>
        <groupId>org.springframework.boot</groupId>
        <artifactId>spring-boot-maven-plugin</artifactId>
      </plugin>
    </plugins>
  </build>
  <dependencies>
    <dependency>
      <groupId>com.google.guava</groupId>
      <artifactId>guava</artifactId>
      <version>33.0.0-jre</version>
    </dependency>
    <dependency>
      <groupId>junit</groupId>
      <artifactId>junit</artifactId>
      <version>4.13.2</version>
      <scope>test</scope>
    </dependency>
  </dependencies>`

const coreLaunch = `---
name: Core release
type: org.eclipse.m2e.Maven2LaunchConfigurationType
workingDirectory: "${workspace_loc:/core}"
goals: [clean, deploy]
profiles: [release]
---

Publishes the core artifacts.
`

func buildWorkspace(t *testing.T, setup func(*workspace.WorkspaceBuilder)) (*workspace.Workspace, *filesystem.MockFileSystem) {
	t.Helper()

	wb := workspace.NewWorkspaceBuilder(testWorkspaceRoot)
	if setup != nil {
		setup(wb)
	}

	fs := wb.Build()
	ws := workspace.New(fs)
	require.NoError(t, ws.Detect())

	return ws, fs
}

// sampleWorkspace has two root projects, core and web, and a nested module
// web/api.
func sampleWorkspace(t *testing.T) *filesystem.MockFileSystem {
	t.Helper()

	_, fs := buildWorkspace(t, func(wb *workspace.WorkspaceBuilder) {
		wb.AddProject("core", workspace.POM("core", coreBody))
		wb.AddSimpleProject("web")
		wb.AddSimpleProject("web/api")
		wb.AddLaunch("core-release.md", coreLaunch)
	})
	return fs
}

type harness struct {
	fs      *filesystem.MockFileSystem
	invoker *maven.MockInvoker

	picker  PickFunc
	chooser ProfileChooserFunc
}

func newHarness(fs *filesystem.MockFileSystem) *harness {
	return &harness{fs: fs, invoker: maven.NewMockInvoker()}
}

// run executes the command line against the mock workspace. The project
// model is always read from pom.xml.
func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(contextEnv, "")

	var stdout, stderr bytes.Buffer
	root := NewRootCommand(Deps{
		FS:             h.fs,
		Invoker:        h.invoker,
		Stdout:         &stdout,
		Stderr:         &stderr,
		Picker:         h.picker,
		ProfileChooser: h.chooser,
	})
	root.SetArgs(append([]string{"--effective-pom=false"}, args...))

	err := root.Execute()
	return stdout.String(), err
}

func pickIndexes(indexes ...int) PickFunc {
	return func(string, []components.Item) ([]int, bool, error) {
		return indexes, true, nil
	}
}

// pickLabels selects the non-header rows with the given labels.
func pickLabels(labels ...string) PickFunc {
	return func(_ string, items []components.Item) ([]int, bool, error) {
		var indexes []int
		for i, item := range items {
			if item.Header {
				continue
			}
			for _, l := range labels {
				if item.Label == l {
					indexes = append(indexes, i)
				}
			}
		}
		return indexes, true, nil
	}
}

func cancelledPick(string, []components.Item) ([]int, bool, error) {
	return nil, false, nil
}

func chooseProfiles(ids ...string) ProfileChooserFunc {
	return func(string, []models.Profile, []string) ([]string, bool, error) {
		return ids, true, nil
	}
}
