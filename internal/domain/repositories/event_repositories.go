package repositories

import (
	"context"

	"github.com/google/uuid"
	"teamboard.backend/internal/domain/entities"
)

// TeamEventRepository is append-only: events are never updated or deleted.
type TeamEventRepository interface {
	Create(ctx context.Context, event *entities.TeamEvent) error
	// List pages the team feed reverse-chronologically over the
	// (team, createdAt) index and returns the total row count.
	List(ctx context.Context, teamID uuid.UUID, limit, offset int) ([]*entities.TeamEvent, int64, error)
	ListRecent(ctx context.Context, teamID uuid.UUID, limit int) ([]*entities.TeamEvent, error)
}

// IssueEventRepository is the per-issue history stream, same contract.
type IssueEventRepository interface {
	Create(ctx context.Context, event *entities.IssueEvent) error
	ListByIssue(ctx context.Context, issueID uuid.UUID) ([]*entities.IssueEvent, error)
}
