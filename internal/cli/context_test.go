package cli

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tlcsdm/eclipse-maven-view/internal/models"
)

func TestReadProjectContextFromStdin(t *testing.T) {
	t.Run("valid JSON context", func(t *testing.T) {
		ctx := &models.ProjectContext{
			Project:          "core",
			ProjectPath:      "/workspace/core",
			PomPath:          "/workspace/core/pom.xml",
			SelectedProfiles: []string{"dev"},
		}
		data, err := json.Marshal(ctx)
		require.NoError(t, err)

		err = runWithStdin(string(data), func(stdin *os.File) error {
			actual, err := readProjectContextFromStdin(stdin)
			if err != nil {
				return err
			}
			require.Equal(t, ctx.Project, actual.Project)
			require.Equal(t, ctx.ProjectPath, actual.ProjectPath)
			require.Equal(t, ctx.SelectedProfiles, actual.SelectedProfiles)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("plain reader", func(t *testing.T) {
		actual, err := readProjectContextFromStdin(strings.NewReader(`{"project":"web"}`))
		require.NoError(t, err)
		require.Equal(t, "web", actual.Project)
	})

	t.Run("missing project name", func(t *testing.T) {
		err := runWithStdin(`{"projectPath":"/workspace/core"}`, func(stdin *os.File) error {
			_, err := readProjectContextFromStdin(stdin)
			return err
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "project name is required")
	})

	t.Run("invalid JSON", func(t *testing.T) {
		err := runWithStdin("not valid json", func(stdin *os.File) error {
			_, err := readProjectContextFromStdin(stdin)
			return err
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to parse context JSON")
	})

	t.Run("empty stdin", func(t *testing.T) {
		err := runWithStdin("", func(stdin *os.File) error {
			_, err := readProjectContextFromStdin(stdin)
			return err
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "empty STDIN")
	})

	t.Run("terminal detection", func(t *testing.T) {
		nullDev, err := os.Open(os.DevNull)
		require.NoError(t, err)
		defer nullDev.Close()

		_, err = readProjectContextFromStdin(nullDev)
		require.Error(t, err)
		require.Contains(t, err.Error(), "no context on STDIN")
	})

	t.Run("no stdin", func(t *testing.T) {
		_, err := readProjectContextFromStdin(nil)
		require.Error(t, err)
	})
}

func TestReadProjectContextFromEnv(t *testing.T) {
	t.Run("valid JSON context", func(t *testing.T) {
		t.Setenv(contextEnv, `{"project":"core","projectPath":"/workspace/core"}`)

		actual, err := readProjectContextFromEnv()
		require.NoError(t, err)
		require.Equal(t, "core", actual.Project)
		require.Equal(t, "/workspace/core", actual.ProjectPath)
	})

	t.Run("missing env var", func(t *testing.T) {
		t.Setenv(contextEnv, "")

		_, err := readProjectContextFromEnv()
		require.Error(t, err)
		require.Contains(t, err.Error(), "no context in PROJECT_CONTEXT env var")
	})

	t.Run("invalid JSON", func(t *testing.T) {
		t.Setenv(contextEnv, "not valid json")

		_, err := readProjectContextFromEnv()
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to parse context JSON")
	})
}

func TestResolveProjectName(t *testing.T) {
	t.Setenv(contextEnv, "")

	rt := newRuntime(Deps{Stdin: strings.NewReader(`{"project":"from-stdin"}`)})
	name, err := rt.resolveProjectName([]string{"explicit"})
	require.NoError(t, err)
	require.Equal(t, "explicit", name)

	name, err = rt.resolveProjectName(nil)
	require.NoError(t, err)
	require.Equal(t, "from-stdin", name)

	t.Setenv(contextEnv, `{"project":"from-env"}`)
	rt = newRuntime(Deps{Stdin: strings.NewReader("")})
	name, err = rt.resolveProjectName(nil)
	require.NoError(t, err)
	require.Equal(t, "from-env", name)

	t.Setenv(contextEnv, "")
	rt = newRuntime(Deps{})
	_, err = rt.resolveProjectName(nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no project context available")
}

func runWithStdin(input string, fn func(stdin *os.File) error) error {
	r, w, err := os.Pipe()
	if err != nil {
		return err
	}
	defer r.Close()

	if _, err := w.Write([]byte(input)); err != nil {
		w.Close()
		return err
	}
	w.Close() // signal EOF

	return fn(r)
}
