// Package extract reads profiles, build plugins and dependencies of a Maven
// project. The resolved project model is consulted first; when it is
// missing or incomplete the raw pom.xml is parsed instead.
package extract

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/tlcsdm/eclipse-maven-view/internal/filesystem"
	"github.com/tlcsdm/eclipse-maven-view/internal/logging"
	"github.com/tlcsdm/eclipse-maven-view/internal/models"
	"github.com/tlcsdm/eclipse-maven-view/internal/securexml"
	"golang.org/x/sync/singleflight"
)

// Extractor never returns errors: failures are logged and yield an empty result.
type Extractor struct {
	fs       filesystem.FileSystem
	provider ModelProvider
	logger   *slog.Logger
	group    singleflight.Group
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithModelProvider sets the primary model source.
func WithModelProvider(p ModelProvider) Option {
	return func(e *Extractor) {
		if p != nil {
			e.provider = p
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logging.OrDiscard(logger)
	}
}

// New creates an Extractor reading descriptors through fs.
func New(fs filesystem.FileSystem, opts ...Option) *Extractor {
	e := &Extractor{
		fs:       fs,
		provider: NoModelProvider{},
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

const (
	kindProfiles     = "profiles"
	kindPlugins      = "plugins"
	kindDependencies = "dependencies"
)

// Profiles returns the profiles declared by the project.
func (e *Extractor) Profiles(ctx context.Context, project *models.Project) []models.Profile {
	v := e.do(ctx, project, kindProfiles, func() any {
		if model, ok := e.model(ctx, project); ok {
			profiles, err := model.Profiles()
			if err == nil {
				return profiles
			}
			e.warnFallback(project, kindProfiles, err)
		}
		if doc, ok := e.document(project); ok {
			return profilesFromDocument(doc)
		}
		return []models.Profile(nil)
	})
	return append([]models.Profile{}, v.([]models.Profile)...)
}

// Plugins returns the build plugins of the project and its profiles, one
// entry per groupId:artifactId.
func (e *Extractor) Plugins(ctx context.Context, project *models.Project) []models.Plugin {
	v := e.do(ctx, project, kindPlugins, func() any {
		if model, ok := e.model(ctx, project); ok {
			plugins, err := model.BuildPlugins()
			if err == nil {
				return dedupePlugins(plugins)
			}
			e.warnFallback(project, kindPlugins, err)
		}
		if doc, ok := e.document(project); ok {
			return pluginsFromDocument(doc)
		}
		return []models.Plugin(nil)
	})
	return append([]models.Plugin{}, v.([]models.Plugin)...)
}

// Dependencies returns the declared dependencies of the project and its profiles.
func (e *Extractor) Dependencies(ctx context.Context, project *models.Project) []models.Dependency {
	v := e.do(ctx, project, kindDependencies, func() any {
		if model, ok := e.model(ctx, project); ok {
			deps, err := model.Dependencies()
			if err == nil {
				return deps
			}
			e.warnFallback(project, kindDependencies, err)
		}
		if doc, ok := e.document(project); ok {
			return dependenciesFromDocument(doc)
		}
		return []models.Dependency(nil)
	})
	return append([]models.Dependency{}, v.([]models.Dependency)...)
}

// do runs fn at most once concurrently per project and kind.
func (e *Extractor) do(ctx context.Context, project *models.Project, kind string, fn func() any) any {
	key := project.Name + "\x00" + kind
	ch := e.group.DoChan(key, func() (any, error) {
		return fn(), nil
	})

	select {
	case res := <-ch:
		return res.Val
	case <-ctx.Done():
		e.logger.Debug("extraction abandoned",
			slog.String("project", project.Name),
			slog.String("kind", kind),
			slog.Any("error", ctx.Err()))
		return zeroFor(kind)
	}
}

func zeroFor(kind string) any {
	switch kind {
	case kindProfiles:
		return []models.Profile(nil)
	case kindPlugins:
		return []models.Plugin(nil)
	default:
		return []models.Dependency(nil)
	}
}

func (e *Extractor) model(ctx context.Context, project *models.Project) (ProjectModel, bool) {
	model, err := e.provider.Model(ctx, project)
	switch {
	case err == nil && model != nil:
		return model, true
	case err == nil, errors.Is(err, ErrModelUnavailable):
		e.logger.Debug("project model unavailable, reading pom.xml",
			slog.String("project", project.Name))
	default:
		e.logger.Warn("failed to load project model, reading pom.xml",
			slog.String("project", project.Name),
			slog.Any("error", err))
	}
	return nil, false
}

func (e *Extractor) warnFallback(project *models.Project, kind string, err error) {
	e.logger.Warn("project model incomplete, reading pom.xml",
		slog.String("project", project.Name),
		slog.String("kind", kind),
		slog.Any("error", err))
}

func (e *Extractor) document(project *models.Project) (*securexml.Document, bool) {
	data, err := e.fs.ReadFile(project.PomPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			e.logger.Debug("pom.xml not found", slog.String("project", project.Name))
		} else {
			e.logger.Error("failed to read pom.xml",
				slog.String("project", project.Name),
				slog.Any("error", err))
		}
		return nil, false
	}

	doc, err := securexml.ParseBytes(data)
	if err != nil {
		e.logger.Error("failed to parse pom.xml",
			slog.String("project", project.Name),
			slog.String("path", project.PomPath),
			slog.Any("error", err))
		return nil, false
	}
	return doc, true
}
