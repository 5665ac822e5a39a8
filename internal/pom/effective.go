package pom

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tlcsdm/eclipse-maven-view/internal/events"
	"github.com/tlcsdm/eclipse-maven-view/internal/extract"
	"github.com/tlcsdm/eclipse-maven-view/internal/filesystem"
	"github.com/tlcsdm/eclipse-maven-view/internal/logging"
	"github.com/tlcsdm/eclipse-maven-view/internal/maven"
	"github.com/tlcsdm/eclipse-maven-view/internal/models"
)

const effectivePomFile = "mavenview-effective-pom.xml"

// EffectiveModelProvider resolves a project's model by running
// help:effective-pom and caches the result per pom.xml modification time.
// Failures are cached too, so an unchanged broken pom is not resolved again.
type EffectiveModelProvider struct {
	fs      filesystem.FileSystem
	invoker maven.Invoker
	enabled bool
	logger  *slog.Logger
	sink    events.Sink

	group singleflight.Group
	mu    sync.Mutex
	cache map[string]cachedModel
}

type cachedModel struct {
	modTime time.Time
	model   *Model
	err     error
}

var _ extract.ModelProvider = (*EffectiveModelProvider)(nil)

// ProviderOption configures an EffectiveModelProvider.
type ProviderOption func(*EffectiveModelProvider)

// WithChangeSink reports projects whose cached model went stale.
func WithChangeSink(sink events.Sink) ProviderOption {
	return func(p *EffectiveModelProvider) {
		if sink != nil {
			p.sink = sink
		}
	}
}

// NewEffectiveModelProvider creates a provider; when enabled is false every
// request reports extract.ErrModelUnavailable.
func NewEffectiveModelProvider(fs filesystem.FileSystem, invoker maven.Invoker, enabled bool, logger *slog.Logger, opts ...ProviderOption) *EffectiveModelProvider {
	p := &EffectiveModelProvider{
		fs:      fs,
		invoker: invoker,
		enabled: enabled,
		logger:  logging.OrDiscard(logger),
		sink:    events.Nop{},
		cache:   make(map[string]cachedModel),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *EffectiveModelProvider) Model(ctx context.Context, project *models.Project) (extract.ProjectModel, error) {
	if !p.enabled || p.invoker == nil {
		return nil, extract.ErrModelUnavailable
	}

	info, err := p.fs.Stat(project.PomPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", extract.ErrModelUnavailable, err)
	}
	modTime := info.ModTime()

	if cached, ok := p.lookup(project.PomPath, modTime); ok {
		return cached.result()
	}

	// All kinds of one project share a single help:effective-pom run and
	// its output file.
	v, err, _ := p.group.Do(project.PomPath, func() (any, error) {
		if cached, ok := p.lookup(project.PomPath, modTime); ok {
			return cached.model, cached.cachedErr()
		}

		model, err := p.resolve(ctx, project)
		if ctx.Err() != nil {
			return model, err
		}

		p.mu.Lock()
		_, stale := p.cache[project.PomPath]
		p.cache[project.PomPath] = cachedModel{modTime: modTime, model: model, err: err}
		p.mu.Unlock()

		// A stale entry means pom.xml was edited since the last resolution.
		if stale {
			p.sink.ProjectChanged(project.Name)
		}
		return model, err
	})
	if err != nil {
		return nil, err
	}
	return v.(*Model), nil
}

func (p *EffectiveModelProvider) lookup(pomPath string, modTime time.Time) (cachedModel, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	cached, ok := p.cache[pomPath]
	if !ok || !cached.modTime.Equal(modTime) {
		return cachedModel{}, false
	}
	return cached, true
}

// cachedErr reports an earlier failure as ErrModelUnavailable.
func (c cachedModel) cachedErr() error {
	if c.err == nil {
		return nil
	}
	if errors.Is(c.err, extract.ErrModelUnavailable) {
		return c.err
	}
	return fmt.Errorf("%w: %v", extract.ErrModelUnavailable, c.err)
}

func (c cachedModel) result() (extract.ProjectModel, error) {
	if err := c.cachedErr(); err != nil {
		return nil, err
	}
	return c.model, nil
}

func (p *EffectiveModelProvider) resolve(ctx context.Context, project *models.Project) (*Model, error) {
	targetDir := filepath.Join(project.RootPath, "target")
	output := filepath.Join(targetDir, effectivePomFile)

	if err := p.fs.MkdirAll(targetDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", targetDir, err)
	}

	err := p.invoker.Run(ctx, maven.Request{
		Project:    project.Name,
		WorkingDir: project.RootPath,
		Goals:      []string{"help:effective-pom"},
		Args:       []string{"-q", "-N", "-Doutput=" + output},
	})
	if err != nil {
		if errors.Is(err, maven.ErrExecutableNotFound) {
			return nil, fmt.Errorf("%w: %v", extract.ErrModelUnavailable, err)
		}
		return nil, fmt.Errorf("failed to compute effective pom for %s: %w", project.Name, err)
	}
	defer func() {
		if err := p.fs.Remove(output); err != nil {
			p.logger.Debug("failed to remove effective pom", slog.String("path", output), slog.Any("error", err))
		}
	}()

	data, err := p.fs.ReadFile(output)
	if err != nil {
		return nil, fmt.Errorf("failed to read effective pom: %w", err)
	}

	decoded, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode effective pom: %w", err)
	}

	p.logger.Debug("resolved effective pom", slog.String("project", project.Name))
	return NewModel(decoded), nil
}
