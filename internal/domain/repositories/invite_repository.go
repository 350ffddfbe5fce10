package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"teamboard.backend/internal/domain/entities"
)

type InviteRepository interface {
	Create(ctx context.Context, invite *entities.TeamInvite) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.TeamInvite, error)
	GetByTokenHash(ctx context.Context, tokenHash string) (*entities.TeamInvite, error)
	// ListPending returns invites that are neither accepted nor expired at now.
	ListPending(ctx context.Context, teamID uuid.UUID, now time.Time) ([]*entities.TeamInvite, error)
	MarkAccepted(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}
