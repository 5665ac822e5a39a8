package launch

import (
	"context"
	"log/slog"

	"github.com/tlcsdm/eclipse-maven-view/internal/logging"
	"github.com/tlcsdm/eclipse-maven-view/internal/models"
)

// Resolver finds the run configurations that belong to a project.
type Resolver struct {
	registry Registry
	typeID   string
	logger   *slog.Logger
}

// NewResolver creates a Resolver asking the registry for typeID
// configurations (the Maven type when empty).
func NewResolver(registry Registry, typeID string, logger *slog.Logger) *Resolver {
	if typeID == "" {
		typeID = models.MavenLaunchType
	}
	return &Resolver{
		registry: registry,
		typeID:   typeID,
		logger:   logging.OrDiscard(logger),
	}
}

// Resolve returns the configurations whose working directory names the
// project exactly. Registry failures are logged and yield no configurations.
func (r *Resolver) Resolve(ctx context.Context, project *models.Project) []models.RunConfiguration {
	if r == nil || r.registry == nil {
		return nil
	}

	configs, err := r.registry.Configurations(ctx, r.typeID)
	if err != nil {
		r.logger.Warn("failed to enumerate run configurations",
			slog.String("project", project.Name),
			slog.String("type", r.typeID),
			slog.Any("error", err))
		return nil
	}

	var result []models.RunConfiguration
	for _, cfg := range configs {
		if cfg.TargetsProject(project.Name) {
			result = append(result, cfg)
		}
	}
	return result
}
