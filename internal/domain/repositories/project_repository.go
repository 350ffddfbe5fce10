package repositories

import (
	"context"

	"github.com/google/uuid"
	"teamboard.backend/internal/domain/entities"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *entities.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error)
	GetByTeamAndKey(ctx context.Context, teamID uuid.UUID, key string) (*entities.Project, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.Project, error)
}
