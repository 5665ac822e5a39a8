package maven

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tlcsdm/eclipse-maven-view/internal/filesystem"
)

func TestSettings_Arguments(t *testing.T) {
	settings := Settings{Executable: "mvn", Offline: true, Args: []string{"-B"}}
	req := Request{
		Goals:     []string{"clean", "install"},
		Profiles:  "dev,fast",
		SkipTests: true,
	}

	require.Equal(t,
		[]string{"-B", "-P", "dev,fast", "-DskipTests", "-o", "clean", "install"},
		settings.Arguments(req))
	require.Equal(t, "mvn -B -P dev,fast -DskipTests -o clean install", settings.CommandLine(req))
}

func TestSettings_ArgumentsOmitEmptyProfiles(t *testing.T) {
	settings := Settings{}
	req := Request{Goals: []string{"compiler:compile"}, Profiles: "  "}
	require.Equal(t, []string{"compiler:compile"}, settings.Arguments(req))
	require.Equal(t, "mvn compiler:compile", settings.CommandLine(req))
}

func TestOSInvoker_PrefersWrapper(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/ws/core/mvnw", []byte("#!/bin/sh\n"))

	inv := NewOSInvoker(fs, Settings{UseWrapper: true})
	inv.lookPath = func(string) (string, error) { return "", exec.ErrNotFound }

	exe, err := inv.resolveExecutable("/ws/core")
	require.NoError(t, err)
	require.Equal(t, "/ws/core/mvnw", exe)

	_, err = inv.resolveExecutable("/ws/api")
	require.ErrorIs(t, err, ErrExecutableNotFound)
}

func TestOSInvoker_WrapperDisabled(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/ws/core/mvnw", []byte("#!/bin/sh\n"))

	inv := NewOSInvoker(fs, Settings{Executable: "mvn"})
	inv.lookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }

	exe, err := inv.resolveExecutable("/ws/core")
	require.NoError(t, err)
	require.Equal(t, "/usr/bin/mvn", exe)
}

func TestOSInvoker_RunAttachesStderrTail(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	var stdout bytes.Buffer
	inv := NewOSInvoker(filesystem.NewOSFileSystem(), Settings{Executable: "sh"}, WithOutput(&stdout, nil))

	err := inv.Run(context.Background(), Request{
		Project:    "core",
		WorkingDir: t.TempDir(),
		Goals:      []string{"-c", "echo building; echo boom >&2; exit 3"},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")
	require.Contains(t, stdout.String(), "building")

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, 3, exitErr.ExitCode())
}

func TestLastLines(t *testing.T) {
	require.Equal(t, "c\nd", lastLines("a\nb\nc\nd\n", 2))
	require.Equal(t, "", lastLines("", 2))
}

func TestMockInvoker(t *testing.T) {
	mock := NewMockInvoker()
	mock.Errors["bad"] = errors.New("build failure")

	require.NoError(t, mock.Run(context.Background(), Request{Project: "good"}))
	require.Error(t, mock.Run(context.Background(), Request{Project: "bad"}))
	require.Len(t, mock.Requests(), 2)
}
