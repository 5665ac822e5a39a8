package maven

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/tlcsdm/eclipse-maven-view/internal/filesystem"
	"github.com/tlcsdm/eclipse-maven-view/internal/logging"
)

const (
	wrapperScript = "mvnw"
	stderrTail    = 20
)

// OSInvoker implements Invoker by running the Maven executable.
type OSInvoker struct {
	fs       filesystem.FileSystem
	settings Settings
	stdout   io.Writer
	stderr   io.Writer
	logger   *slog.Logger
	lookPath func(string) (string, error)
}

var _ Invoker = (*OSInvoker)(nil)

// Option configures an OSInvoker.
type Option func(*OSInvoker)

// WithOutput streams Maven's stdout and stderr to the given writers.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(i *OSInvoker) {
		if stdout != nil {
			i.stdout = stdout
		}
		if stderr != nil {
			i.stderr = stderr
		}
	}
}

// WithLogger sets the logger used for invocation tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(i *OSInvoker) {
		i.logger = logging.OrDiscard(logger)
	}
}

// NewOSInvoker creates a new OSInvoker
func NewOSInvoker(fs filesystem.FileSystem, settings Settings, opts ...Option) *OSInvoker {
	if settings.Executable == "" {
		settings.Executable = "mvn"
	}

	inv := &OSInvoker{
		fs:       fs,
		settings: settings,
		stdout:   io.Discard,
		stderr:   io.Discard,
		logger:   logging.Discard(),
		lookPath: exec.LookPath,
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Settings returns the invocation settings.
func (i *OSInvoker) Settings() Settings {
	return i.settings
}

// Run executes Maven in the request's working directory.
func (i *OSInvoker) Run(ctx context.Context, req Request) error {
	exe, err := i.resolveExecutable(req.WorkingDir)
	if err != nil {
		return err
	}

	args := i.settings.Arguments(req)
	i.logger.Debug("running maven",
		slog.String("project", req.Project),
		slog.String("dir", req.WorkingDir),
		slog.String("command", exe+" "+strings.Join(args, " ")))

	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Dir = req.WorkingDir

	var stderr bytes.Buffer
	cmd.Stdout = i.stdout
	cmd.Stderr = io.MultiWriter(i.stderr, &stderr)

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("maven cancelled: %w", ctx.Err())
		}
		if tail := lastLines(stderr.String(), stderrTail); tail != "" {
			return fmt.Errorf("maven %s failed: %w: %s", strings.Join(req.Goals, " "), err, tail)
		}
		return fmt.Errorf("maven %s failed: %w", strings.Join(req.Goals, " "), err)
	}

	return nil
}

// resolveExecutable prefers the project's wrapper script when enabled.
func (i *OSInvoker) resolveExecutable(dir string) (string, error) {
	if i.settings.UseWrapper && dir != "" {
		wrapper := filepath.Join(dir, wrapperScript)
		if i.fs.Exists(wrapper) {
			return wrapper, nil
		}
	}

	path, err := i.lookPath(i.settings.Executable)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrExecutableNotFound, i.settings.Executable)
		}
		return "", fmt.Errorf("failed to locate %s: %w", i.settings.Executable, err)
	}
	return path, nil
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
