package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"teamboard.backend/internal/domain/entities"
	"teamboard.backend/internal/domain/repositories"
)

// PresenceUsecase tracks who is active in a team right now. Heartbeats
// overwrite a single row per (team, user); liveness is a read-time
// window over lastSeen, so there is nothing to sweep and a crashed
// client simply ages out.
type PresenceUsecase struct {
	presenceRepo repositories.PresenceRepository
	memberRepo   repositories.MemberRepository
	authz        *AuthzUsecase
	window       time.Duration
}

// NewPresenceUsecase creates a new presence usecase
func NewPresenceUsecase(
	presenceRepo repositories.PresenceRepository,
	memberRepo repositories.MemberRepository,
	authz *AuthzUsecase,
	window time.Duration,
) *PresenceUsecase {
	if window <= 0 {
		window = 60 * time.Second
	}
	return &PresenceUsecase{
		presenceRepo: presenceRepo,
		memberRepo:   memberRepo,
		authz:        authz,
		window:       window,
	}
}

// Heartbeat merges the patch into the caller's presence row and bumps
// lastSeen. Fields the client did not send keep their stored values, so
// a cursor stream and an activity stream can beat independently.
func (u *PresenceUsecase) Heartbeat(ctx context.Context, identity entities.Identity, teamID uuid.UUID, patch entities.PresencePatch) error {
	member, err := u.authz.RequireTeamMember(ctx, identity, teamID)
	if err != nil {
		return err
	}
	return u.presenceRepo.Upsert(ctx, teamID, member.UserID, patch, time.Now())
}

// ListActive returns members seen within the window, joined with their
// roster display info, most recent first. A non-positive window uses
// the configured default.
func (u *PresenceUsecase) ListActive(ctx context.Context, identity entities.Identity, teamID uuid.UUID, window time.Duration) ([]*entities.ActivePresence, error) {
	if _, err := u.authz.RequireTeamMember(ctx, identity, teamID); err != nil {
		return nil, err
	}
	if window <= 0 {
		window = u.window
	}

	rows, err := u.presenceRepo.ListSince(ctx, teamID, time.Now().Add(-window))
	if err != nil {
		return nil, err
	}

	members, err := u.memberRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	roster := make(map[string]*entities.TeamMember, len(members))
	for _, m := range members {
		roster[m.UserID] = m
	}

	active := make([]*entities.ActivePresence, 0, len(rows))
	for _, row := range rows {
		ap := &entities.ActivePresence{Presence: *row}
		if m, ok := roster[row.UserID]; ok {
			ap.FullName = m.FullName
			ap.AvatarURL = m.AvatarURL
			ap.Role = m.Role
		}
		active = append(active, ap)
	}
	return active, nil
}
