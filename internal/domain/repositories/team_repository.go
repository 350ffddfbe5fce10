package repositories

import (
	"context"

	"github.com/google/uuid"
	"teamboard.backend/internal/domain/entities"
)

type TeamRepository interface {
	Create(ctx context.Context, team *entities.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Team, error)
	GetBySlug(ctx context.Context, slug string) (*entities.Team, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}
