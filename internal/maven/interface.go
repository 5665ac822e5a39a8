// Package maven runs the Maven build tool.
package maven

import (
	"context"
	"errors"
	"strings"
)

// ErrExecutableNotFound is returned when neither the wrapper nor the
// configured executable can be located.
var ErrExecutableNotFound = errors.New("maven executable not found")

// Request is one Maven invocation.
type Request struct {
	// Project is the workspace project name, used for reporting.
	Project string

	// WorkingDir is the directory Maven runs in (the project root).
	WorkingDir string

	// Goals are phases or prefix:goal strings, passed in order.
	Goals []string

	// Profiles is the comma-joined profile list for -P; empty omits the flag.
	Profiles string

	SkipTests bool

	// Args are extra arguments placed before the profile flag.
	Args []string
}

// Invoker abstracts Maven execution for testability.
type Invoker interface {
	Run(ctx context.Context, req Request) error
}

// Settings are the invocation options shared by every request.
type Settings struct {
	Executable string
	UseWrapper bool
	Offline    bool
	Args       []string
}

// Arguments builds the argument list (without the executable) for a request.
func (s Settings) Arguments(req Request) []string {
	var args []string
	args = append(args, s.Args...)
	args = append(args, req.Args...)
	if strings.TrimSpace(req.Profiles) != "" {
		args = append(args, "-P", req.Profiles)
	}
	if req.SkipTests {
		args = append(args, "-DskipTests")
	}
	if s.Offline {
		args = append(args, "-o")
	}
	return append(args, req.Goals...)
}

// CommandLine renders the full command for display, e.g. in dry runs.
func (s Settings) CommandLine(req Request) string {
	exe := s.Executable
	if exe == "" {
		exe = "mvn"
	}
	return strings.Join(append([]string{exe}, s.Arguments(req)...), " ")
}
