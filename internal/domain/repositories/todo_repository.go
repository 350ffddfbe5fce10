package repositories

import (
	"context"

	"github.com/google/uuid"
	"teamboard.backend/internal/domain/entities"
)

type TodoRepository interface {
	Create(ctx context.Context, todo *entities.Todo) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Todo, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID, filter entities.TodoFilter) ([]*entities.Todo, error)
	ListByOwner(ctx context.Context, ownerUserID string, filter entities.TodoFilter) ([]*entities.Todo, error)
	ListByTeamStatus(ctx context.Context, teamID uuid.UUID, status entities.TodoStatus) ([]*entities.Todo, error)
	ListByOwnerStatus(ctx context.Context, ownerUserID string, status entities.TodoStatus) ([]*entities.Todo, error)
	Update(ctx context.Context, todo *entities.Todo) error
	Delete(ctx context.Context, id uuid.UUID) error
}
