package repositories

import (
	"context"

	"github.com/google/uuid"
	"teamboard.backend/internal/domain/entities"
)

type LabelRepository interface {
	Create(ctx context.Context, label *entities.Label) error
	GetByTeamAndName(ctx context.Context, teamID uuid.UUID, name string) (*entities.Label, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.Label, error)
}

type IssueLabelRepository interface {
	Create(ctx context.Context, link *entities.IssueLabel) error
	Get(ctx context.Context, issueID, labelID uuid.UUID) (*entities.IssueLabel, error)
	ListByIssue(ctx context.Context, issueID uuid.UUID) ([]*entities.IssueLabel, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.IssueLabel, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByIssue(ctx context.Context, issueID uuid.UUID) error
}
