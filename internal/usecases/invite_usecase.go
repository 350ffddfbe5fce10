package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"teamboard.backend/internal/domain/entities"
	domainerrors "teamboard.backend/internal/domain/errors"
	"teamboard.backend/internal/domain/repositories"
	"teamboard.backend/pkg/crypto"
	"teamboard.backend/pkg/utils"
)

// InviteUsecase handles invite issuance and redemption. Tokens are
// stored hashed only; validate and accept return status values rather
// than errors so every outcome renders as a distinct client message.
type InviteUsecase struct {
	inviteRepo repositories.InviteRepository
	teamRepo   repositories.TeamRepository
	memberRepo repositories.MemberRepository
	authz      *AuthzUsecase
	uow        repositories.UnitOfWork
	ttl        time.Duration
}

// NewInviteUsecase creates a new invite usecase
func NewInviteUsecase(
	inviteRepo repositories.InviteRepository,
	teamRepo repositories.TeamRepository,
	memberRepo repositories.MemberRepository,
	authz *AuthzUsecase,
	uow repositories.UnitOfWork,
	ttl time.Duration,
) *InviteUsecase {
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}
	return &InviteUsecase{
		inviteRepo: inviteRepo,
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
		authz:      authz,
		uow:        uow,
		ttl:        ttl,
	}
}

// Create mints a single-use invite token. ADMIN or above; OWNER cannot
// be granted by invite.
func (u *InviteUsecase) Create(ctx context.Context, identity entities.Identity, teamID uuid.UUID, input entities.CreateInviteInput) (*entities.CreateInviteResult, error) {
	if _, err := u.authz.RequireRole(ctx, identity, teamID, entities.RoleAdmin); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, domainerrors.BadRequest("email is required")
	}
	if !input.Role.Valid() || input.Role == entities.RoleOwner {
		return nil, domainerrors.BadRequest("invite role must be ADMIN, MEMBER or VIEWER")
	}

	token, err := crypto.GenerateInviteToken()
	if err != nil {
		return nil, err
	}

	invite := &entities.TeamInvite{
		ID:              utils.GenerateUUIDv7(),
		TeamID:          teamID,
		Email:           email,
		Role:            input.Role,
		TokenHash:       crypto.HashToken(token),
		ExpiresAt:       time.Now().Add(u.ttl),
		CreatedByUserID: identity.UserID,
		CreatedAt:       time.Now(),
	}
	if err := u.inviteRepo.Create(ctx, invite); err != nil {
		return nil, err
	}

	return &entities.CreateInviteResult{Token: token, ExpiresAt: invite.ExpiresAt}, nil
}

// Validate checks a presented token without consuming it. Unknown and
// expired tokens both come back as invalid results, not errors.
func (u *InviteUsecase) Validate(ctx context.Context, token string) (*entities.InviteValidation, error) {
	invite, err := u.inviteRepo.GetByTokenHash(ctx, crypto.HashToken(token))
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return &entities.InviteValidation{Valid: false, Reason: entities.InviteStatusInvalid}, nil
		}
		return nil, err
	}
	if invite.AcceptedAt.Valid {
		return &entities.InviteValidation{Valid: false, Reason: entities.InviteStatusAccepted}, nil
	}
	if time.Now().After(invite.ExpiresAt) {
		return &entities.InviteValidation{Valid: false, Reason: entities.InviteStatusExpired}, nil
	}

	team, err := u.teamRepo.GetByID(ctx, invite.TeamID)
	if err != nil {
		return nil, err
	}
	return &entities.InviteValidation{
		Valid:     true,
		TeamID:    team.ID,
		TeamSlug:  team.Slug,
		TeamName:  team.Name,
		Email:     invite.Email,
		Role:      invite.Role,
		ExpiresAt: invite.ExpiresAt,
	}, nil
}

// Accept redeems a token for the authenticated caller. Redeeming as an
// existing member is a no-op success, so double-clicking an invite link
// never errors.
func (u *InviteUsecase) Accept(ctx context.Context, identity entities.Identity, token string) (*entities.AcceptInviteResult, error) {
	if identity.UserID == "" {
		return nil, domainerrors.Unauthenticated("authentication required")
	}

	invite, err := u.inviteRepo.GetByTokenHash(ctx, crypto.HashToken(token))
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return &entities.AcceptInviteResult{Status: entities.InviteStatusInvalid}, nil
		}
		return nil, err
	}
	if invite.AcceptedAt.Valid {
		// re-accepting a consumed token is a no-op success, so a
		// double-clicked invite link still lands on the team
		team, err := u.teamRepo.GetByID(ctx, invite.TeamID)
		if err != nil {
			return nil, err
		}
		return &entities.AcceptInviteResult{
			Status:   entities.InviteStatusAccepted,
			TeamID:   team.ID,
			TeamSlug: team.Slug,
		}, nil
	}
	if time.Now().After(invite.ExpiresAt) {
		return &entities.AcceptInviteResult{Status: entities.InviteStatusExpired}, nil
	}

	team, err := u.teamRepo.GetByID(ctx, invite.TeamID)
	if err != nil {
		return nil, err
	}

	existing, err := u.memberRepo.GetByTeamAndUser(ctx, invite.TeamID, identity.UserID)
	if err != nil && err != domainerrors.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		// consume the token anyway so it cannot be replayed later
		if err := u.inviteRepo.MarkAccepted(ctx, invite.ID, time.Now()); err != nil {
			return nil, err
		}
		return &entities.AcceptInviteResult{
			Status:   entities.InviteStatusAlreadyMember,
			TeamID:   team.ID,
			TeamSlug: team.Slug,
		}, nil
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		member := &entities.TeamMember{
			ID:       utils.GenerateUUIDv7(),
			TeamID:   invite.TeamID,
			UserID:   identity.UserID,
			Role:     invite.Role,
			JoinedAt: time.Now(),
		}
		if identity.FullName != "" {
			member.FullName = null.StringFrom(identity.FullName)
		}
		if identity.AvatarURL != "" {
			member.AvatarURL = null.StringFrom(identity.AvatarURL)
		}
		if err := u.memberRepo.Create(ctx, member); err != nil {
			return err
		}
		return u.inviteRepo.MarkAccepted(ctx, invite.ID, time.Now())
	})
	if err != nil {
		// a concurrent accept created the membership first
		if err == domainerrors.ErrConflict {
			return &entities.AcceptInviteResult{
				Status:   entities.InviteStatusAlreadyMember,
				TeamID:   team.ID,
				TeamSlug: team.Slug,
			}, nil
		}
		return nil, err
	}

	return &entities.AcceptInviteResult{
		Status:   entities.InviteStatusAccepted,
		TeamID:   team.ID,
		TeamSlug: team.Slug,
	}, nil
}

// ListPending returns open invites for the team. ADMIN or above.
func (u *InviteUsecase) ListPending(ctx context.Context, identity entities.Identity, teamID uuid.UUID) ([]*entities.TeamInvite, error) {
	if _, err := u.authz.RequireRole(ctx, identity, teamID, entities.RoleAdmin); err != nil {
		return nil, err
	}
	return u.inviteRepo.ListPending(ctx, teamID, time.Now())
}

// Cancel revokes a pending invite. ADMIN or above in the invite's team.
func (u *InviteUsecase) Cancel(ctx context.Context, identity entities.Identity, inviteID uuid.UUID) error {
	invite, err := u.inviteRepo.GetByID(ctx, inviteID)
	if err != nil {
		return err
	}
	if _, err := u.authz.RequireRole(ctx, identity, invite.TeamID, entities.RoleAdmin); err != nil {
		return err
	}
	if invite.AcceptedAt.Valid {
		return domainerrors.Conflict("invite already accepted")
	}
	return u.inviteRepo.Delete(ctx, invite.ID)
}
