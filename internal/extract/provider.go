package extract

import (
	"context"
	"errors"

	"github.com/tlcsdm/eclipse-maven-view/internal/models"
)

var (
	// ErrModelUnavailable means no structured model exists for the project;
	// the extractor falls back to reading pom.xml.
	ErrModelUnavailable = errors.New("project model unavailable")

	// ErrCapabilityAbsent is returned by a ProjectModel accessor the
	// underlying model cannot serve.
	ErrCapabilityAbsent = errors.New("project model capability absent")
)

// ModelProvider supplies the structured (resolved) model of a project.
type ModelProvider interface {
	Model(ctx context.Context, project *models.Project) (ProjectModel, error)
}

// ProjectModel exposes the parts of a resolved model the extractor reads.
// Each accessor may fail independently.
type ProjectModel interface {
	Profiles() ([]models.Profile, error)
	BuildPlugins() ([]models.Plugin, error)
	Dependencies() ([]models.Dependency, error)
}

// NoModelProvider never has a model, so every extraction uses the fallback.
type NoModelProvider struct{}

var _ ModelProvider = NoModelProvider{}

func (NoModelProvider) Model(context.Context, *models.Project) (ProjectModel, error) {
	return nil, ErrModelUnavailable
}
