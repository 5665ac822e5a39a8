package extract

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tlcsdm/eclipse-maven-view/internal/filesystem"
	"github.com/tlcsdm/eclipse-maven-view/internal/models"
	"github.com/tlcsdm/eclipse-maven-view/internal/testutil"
)

const fullPom = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <modelVersion>4.0.0</modelVersion>
  <groupId>com.example</groupId>
  <artifactId>core</artifactId>
  <version>1.0.0</version>
  <dependencyManagement>
    <dependencies>
      <dependency><groupId>managed</groupId><artifactId>bom</artifactId><version>2</version></dependency>
    </dependencies>
  </dependencyManagement>
  <dependencies>
    <dependency><groupId>org.slf4j</groupId><artifactId>slf4j-api</artifactId><version>2.0.9</version></dependency>
    <dependency><groupId>junit</groupId><artifactId>junit</artifactId><version>4.13.2</version><scope>Test</scope></dependency>
    <dependency><artifactId>missing-group</artifactId></dependency>
  </dependencies>
  <build>
    <pluginManagement>
      <plugins>
        <plugin><artifactId>maven-site-plugin</artifactId></plugin>
      </plugins>
    </pluginManagement>
    <plugins>
      <plugin>
        <artifactId>maven-compiler-plugin</artifactId>
        <version>3.11.0</version>
        <dependencies>
          <dependency><groupId>plugin</groupId><artifactId>dep</artifactId></dependency>
        </dependencies>
      </plugin>
      <plugin><groupId>org.springframework.boot</groupId><artifactId>spring-boot-maven-plugin</artifactId></plugin>
      <plugin><groupId>no.artifact</groupId></plugin>
    </plugins>
  </build>
  <profiles>
    <profile>
      <id>dev</id>
      <activation><activeByDefault>True</activeByDefault></activation>
      <dependencies>
        <dependency><groupId>com.h2database</groupId><artifactId>h2</artifactId></dependency>
      </dependencies>
    </profile>
    <profile>
      <id>release</id>
      <build>
        <plugins>
          <plugin><artifactId>maven-compiler-plugin</artifactId><version>9.9</version></plugin>
          <plugin><artifactId>maven-gpg-plugin</artifactId></plugin>
        </plugins>
      </build>
    </profile>
    <profile>
      <id>  </id>
    </profile>
  </profiles>
</project>`

func newProject(fs *filesystem.MockFileSystem, name, pom string) *models.Project {
	root := "/ws/" + name
	fs.AddFile(root+"/pom.xml", []byte(pom))
	return models.NewProject(name, root, root+"/pom.xml")
}

func TestFallback_Profiles(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	project := newProject(fs, "core", fullPom)

	ex := New(fs, WithLogger(testutil.NewTestLogger(t)))
	profiles := ex.Profiles(context.Background(), project)

	require.Equal(t, []models.Profile{
		{ID: "dev", ActiveByDefault: true},
		{ID: "release"},
	}, profiles)
}

func TestFallback_Plugins(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	project := newProject(fs, "core", fullPom)

	ex := New(fs)
	plugins := ex.Plugins(context.Background(), project)

	require.Equal(t, []models.Plugin{
		{GroupID: "org.apache.maven.plugins", ArtifactID: "maven-compiler-plugin", Version: "3.11.0"},
		{GroupID: "org.springframework.boot", ArtifactID: "spring-boot-maven-plugin"},
		{GroupID: "org.apache.maven.plugins", ArtifactID: "maven-gpg-plugin"},
	}, plugins)
}

func TestFallback_Dependencies(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	project := newProject(fs, "core", fullPom)

	ex := New(fs)
	deps := ex.Dependencies(context.Background(), project)

	require.Len(t, deps, 3)
	require.Equal(t, "org.slf4j:slf4j-api:2.0.9", deps[0].Coordinates())
	require.Nil(t, deps[0].Scope)
	require.True(t, deps[1].IsTestScope())
	require.Equal(t, "com.h2database:h2:", deps[2].Coordinates())
}

func TestFallback_DoctypeYieldsEmpty(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	project := newProject(fs, "evil", `<?xml version="1.0"?>
<!DOCTYPE project [<!ENTITY x SYSTEM "file:///etc/passwd">]>
<project><profiles><profile><id>&x;</id></profile></profiles></project>`)

	ex := New(fs, WithLogger(testutil.NewTestLogger(t)))
	require.Empty(t, ex.Profiles(context.Background(), project))
	require.Empty(t, ex.Plugins(context.Background(), project))
	require.Empty(t, ex.Dependencies(context.Background(), project))
}

func TestFallback_MissingPom(t *testing.T) {
	ex := New(filesystem.NewMockFileSystem())
	project := models.NewProject("ghost", "/ws/ghost", "/ws/ghost/pom.xml")

	profiles := ex.Profiles(context.Background(), project)
	require.NotNil(t, profiles)
	require.Empty(t, profiles)
}

type fakeModel struct {
	profiles    []models.Profile
	plugins     []models.Plugin
	deps        []models.Dependency
	profilesErr error
	pluginsErr  error
	depsErr     error
}

func (m *fakeModel) Profiles() ([]models.Profile, error)        { return m.profiles, m.profilesErr }
func (m *fakeModel) BuildPlugins() ([]models.Plugin, error)     { return m.plugins, m.pluginsErr }
func (m *fakeModel) Dependencies() ([]models.Dependency, error) { return m.deps, m.depsErr }

type fakeProvider struct {
	model ProjectModel
	err   error
	calls atomic.Int32
}

func (p *fakeProvider) Model(context.Context, *models.Project) (ProjectModel, error) {
	p.calls.Add(1)
	return p.model, p.err
}

func TestPrimary_ModelWins(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	project := newProject(fs, "core", fullPom)

	provider := &fakeProvider{model: &fakeModel{
		profiles: []models.Profile{{ID: "from-model"}},
		plugins: []models.Plugin{
			models.NewPlugin("", "maven-jar-plugin", ""),
			models.NewPlugin("", "maven-jar-plugin", "3.0"),
		},
	}}

	ex := New(fs, WithModelProvider(provider))
	require.Equal(t, []models.Profile{{ID: "from-model"}}, ex.Profiles(context.Background(), project))

	plugins := ex.Plugins(context.Background(), project)
	require.Len(t, plugins, 1)
	require.Empty(t, plugins[0].Version)
}

func TestPrimary_CapabilityAbsentFallsBack(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	project := newProject(fs, "core", fullPom)

	provider := &fakeProvider{model: &fakeModel{
		profiles: []models.Profile{{ID: "from-model"}},
		depsErr:  ErrCapabilityAbsent,
	}}

	ex := New(fs, WithModelProvider(provider), WithLogger(testutil.NewTestLogger(t)))
	require.Equal(t, []models.Profile{{ID: "from-model"}}, ex.Profiles(context.Background(), project))
	require.Len(t, ex.Dependencies(context.Background(), project), 3)
}

func TestPrimary_ProviderErrorFallsBack(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	project := newProject(fs, "core", fullPom)

	for _, err := range []error{ErrModelUnavailable, errors.New("maven crashed")} {
		ex := New(fs, WithModelProvider(&fakeProvider{err: err}))
		require.Len(t, ex.Profiles(context.Background(), project), 2)
	}
}

func TestExtractor_ConcurrentCallersShareResult(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	project := newProject(fs, "core", fullPom)

	provider := &fakeProvider{err: ErrModelUnavailable}
	ex := New(fs, WithModelProvider(provider))

	var wg sync.WaitGroup
	results := make([][]models.Plugin, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = ex.Plugins(context.Background(), project)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.Equal(t, results[0], r)
	}
	require.LessOrEqual(t, int(provider.calls.Load()), len(results))

	// Callers get independent copies.
	results[0][0].ArtifactID = "mutated"
	require.Equal(t, "maven-compiler-plugin", ex.Plugins(context.Background(), project)[0].ArtifactID)
}

func TestExtractor_CancelledContext(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	project := newProject(fs, "core", fullPom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ex := New(fs)
	// Either the extraction finished first or it was abandoned; never a panic or nil slice.
	require.NotNil(t, ex.Profiles(ctx, project))
}
