package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"teamboard.backend/internal/domain/entities"
)

type PresenceRepository interface {
	// Upsert merges the patch into the caller's (team, user) row and
	// bumps lastSeen; absent patch fields keep their stored values.
	Upsert(ctx context.Context, teamID uuid.UUID, userID string, patch entities.PresencePatch, seenAt time.Time) error
	// ListSince returns rows with lastSeen >= cutoff, most recent first.
	ListSince(ctx context.Context, teamID uuid.UUID, cutoff time.Time) ([]*entities.Presence, error)
}
