package usecases

import (
	"context"

	"github.com/google/uuid"
	"teamboard.backend/internal/domain/entities"
	domainerrors "teamboard.backend/internal/domain/errors"
	"teamboard.backend/internal/domain/repositories"
)

// AuthzUsecase is the role gate every team-scoped operation routes
// through before touching persisted state.
type AuthzUsecase struct {
	memberRepo repositories.MemberRepository
}

// NewAuthzUsecase creates a new authz usecase
func NewAuthzUsecase(memberRepo repositories.MemberRepository) *AuthzUsecase {
	return &AuthzUsecase{memberRepo: memberRepo}
}

// RequireTeamMember resolves the caller's membership row for the team.
// Fails with ErrUnauthenticated when no identity is attached and
// ErrNotTeamMember when the identity has no membership row. Used by
// queries; mutations go through RequireRole.
func (u *AuthzUsecase) RequireTeamMember(ctx context.Context, identity entities.Identity, teamID uuid.UUID) (*entities.TeamMember, error) {
	if identity.UserID == "" {
		return nil, domainerrors.ErrUnauthenticated
	}

	member, err := u.memberRepo.GetByTeamAndUser(ctx, teamID, identity.UserID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.ErrNotTeamMember
		}
		return nil, err
	}
	return member, nil
}

// RequireRole is the mutation-path gate: membership plus a minimum role
// rank. It also opportunistically syncs the member's cached display
// name/avatar from the identity claims when they drift, so no extra
// round trip is needed.
func (u *AuthzUsecase) RequireRole(ctx context.Context, identity entities.Identity, teamID uuid.UUID, minimum entities.Role) (*entities.TeamMember, error) {
	member, err := u.RequireTeamMember(ctx, identity, teamID)
	if err != nil {
		return nil, err
	}

	if !member.Role.AtLeast(minimum) {
		return nil, domainerrors.ErrInsufficientRole
	}

	if member.FullName.String != identity.FullName || member.AvatarURL.String != identity.AvatarURL {
		if err := u.memberRepo.UpdateProfile(ctx, member.ID, identity.FullName, identity.AvatarURL); err != nil {
			return nil, err
		}
		member.FullName.SetValid(identity.FullName)
		member.AvatarURL.SetValid(identity.AvatarURL)
	}

	return member, nil
}
