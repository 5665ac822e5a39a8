package pom

import (
	"context"

	"github.com/tlcsdm/eclipse-maven-view/internal/extract"
	"github.com/tlcsdm/eclipse-maven-view/internal/models"
)

// StaticModelProvider serves fixed models by project name.
type StaticModelProvider struct {
	Models map[string]*Project
}

var _ extract.ModelProvider = (*StaticModelProvider)(nil)

func (p *StaticModelProvider) Model(_ context.Context, project *models.Project) (extract.ProjectModel, error) {
	decoded, ok := p.Models[project.Name]
	if !ok {
		return nil, extract.ErrModelUnavailable
	}
	return NewModel(decoded), nil
}
