package repositories

import (
	"context"

	"github.com/google/uuid"
	"teamboard.backend/internal/domain/entities"
)

type IssueRepository interface {
	Create(ctx context.Context, issue *entities.Issue) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Issue, error)
	// List applies the filter with AND semantics; rows come back in
	// creation order, the caller sorts by effective order where needed.
	List(ctx context.Context, teamID uuid.UUID, filter entities.IssueFilter) ([]*entities.Issue, error)
	// ListByStatus returns the (team, status) partition in creation order.
	ListByStatus(ctx context.Context, teamID uuid.UUID, status entities.IssueStatus) ([]*entities.Issue, error)
	Update(ctx context.Context, issue *entities.Issue) error
	Delete(ctx context.Context, id uuid.UUID) error
}
