package repositories

import (
	"context"

	"github.com/google/uuid"
	"teamboard.backend/internal/domain/entities"
)

type MemberRepository interface {
	Create(ctx context.Context, member *entities.TeamMember) error
	GetByTeamAndUser(ctx context.Context, teamID uuid.UUID, userID string) (*entities.TeamMember, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.TeamMember, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.TeamMember, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role entities.Role) error
	UpdateProfile(ctx context.Context, id uuid.UUID, fullName, avatarURL string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
