package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"teamboard.backend/internal/domain/entities"
	domainerrors "teamboard.backend/internal/domain/errors"
	"teamboard.backend/internal/domain/repositories"
	"teamboard.backend/pkg/utils"
)

// TeamUsecase handles team and membership business logic
type TeamUsecase struct {
	teamRepo   repositories.TeamRepository
	memberRepo repositories.MemberRepository
	authz      *AuthzUsecase
	uow        repositories.UnitOfWork
}

// NewTeamUsecase creates a new team usecase
func NewTeamUsecase(
	teamRepo repositories.TeamRepository,
	memberRepo repositories.MemberRepository,
	authz *AuthzUsecase,
	uow repositories.UnitOfWork,
) *TeamUsecase {
	return &TeamUsecase{
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
		authz:      authz,
		uow:        uow,
	}
}

// Create provisions a team with the caller as OWNER. The slug is derived
// from the name; collisions get a numeric suffix.
func (u *TeamUsecase) Create(ctx context.Context, identity entities.Identity, input entities.CreateTeamInput) (*entities.Team, error) {
	if identity.UserID == "" {
		return nil, domainerrors.Unauthenticated("authentication required")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.BadRequest("team name is required")
	}

	slug, err := u.availableSlug(ctx, name)
	if err != nil {
		return nil, err
	}

	team := &entities.Team{
		ID:          utils.GenerateUUIDv7(),
		Name:        name,
		Slug:        slug,
		OwnerUserID: identity.UserID,
		CreatedAt:   time.Now(),
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.teamRepo.Create(ctx, team); err != nil {
			return err
		}
		member := &entities.TeamMember{
			ID:       utils.GenerateUUIDv7(),
			TeamID:   team.ID,
			UserID:   identity.UserID,
			Role:     entities.RoleOwner,
			JoinedAt: time.Now(),
		}
		if identity.FullName != "" {
			member.FullName = null.StringFrom(identity.FullName)
		}
		if identity.AvatarURL != "" {
			member.AvatarURL = null.StringFrom(identity.AvatarURL)
		}
		return u.memberRepo.Create(ctx, member)
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (u *TeamUsecase) availableSlug(ctx context.Context, name string) (string, error) {
	base := utils.Slugify(name)
	if base == "" {
		base = "team"
	}
	slug := base
	for i := 2; ; i++ {
		exists, err := u.teamRepo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// ListForUser returns every team the caller belongs to, with their role.
func (u *TeamUsecase) ListForUser(ctx context.Context, identity entities.Identity) ([]*entities.TeamMembership, error) {
	if identity.UserID == "" {
		return nil, domainerrors.Unauthenticated("authentication required")
	}

	members, err := u.memberRepo.ListByUser(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	memberships := make([]*entities.TeamMembership, 0, len(members))
	for _, m := range members {
		team, err := u.teamRepo.GetByID(ctx, m.TeamID)
		if err != nil {
			if err == domainerrors.ErrNotFound {
				continue
			}
			return nil, err
		}
		memberships = append(memberships, &entities.TeamMembership{Team: team, Role: m.Role})
	}
	return memberships, nil
}

// GetBySlug resolves a team by slug, visible to members only.
func (u *TeamUsecase) GetBySlug(ctx context.Context, identity entities.Identity, slug string) (*entities.TeamMembership, error) {
	team, err := u.teamRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	member, err := u.authz.RequireTeamMember(ctx, identity, team.ID)
	if err != nil {
		return nil, err
	}
	return &entities.TeamMembership{Team: team, Role: member.Role}, nil
}

// Get resolves a team by id, visible to members only.
func (u *TeamUsecase) Get(ctx context.Context, identity entities.Identity, teamID uuid.UUID) (*entities.Team, error) {
	if _, err := u.authz.RequireTeamMember(ctx, identity, teamID); err != nil {
		return nil, err
	}
	return u.teamRepo.GetByID(ctx, teamID)
}

// GetMyRole returns the caller's role in the team.
func (u *TeamUsecase) GetMyRole(ctx context.Context, identity entities.Identity, teamID uuid.UUID) (entities.Role, error) {
	member, err := u.authz.RequireTeamMember(ctx, identity, teamID)
	if err != nil {
		return "", err
	}
	return member.Role, nil
}

// ListMembers returns the team roster, visible to any member.
func (u *TeamUsecase) ListMembers(ctx context.Context, identity entities.Identity, teamID uuid.UUID) ([]*entities.TeamMember, error) {
	if _, err := u.authz.RequireTeamMember(ctx, identity, teamID); err != nil {
		return nil, err
	}
	return u.memberRepo.ListByTeam(ctx, teamID)
}

// UpdateMemberRole changes a member's role. Only the OWNER may do this,
// and the owner's own row is immutable.
func (u *TeamUsecase) UpdateMemberRole(ctx context.Context, identity entities.Identity, teamID uuid.UUID, targetUserID string, role entities.Role) (*entities.TeamMember, error) {
	if !role.Valid() {
		return nil, domainerrors.BadRequest("unknown role")
	}
	if role == entities.RoleOwner {
		return nil, domainerrors.BadRequest("ownership is not transferable")
	}

	if _, err := u.authz.RequireRole(ctx, identity, teamID, entities.RoleOwner); err != nil {
		return nil, err
	}

	member, err := u.memberRepo.GetByTeamAndUser(ctx, teamID, targetUserID)
	if err != nil {
		return nil, err
	}
	if member.Role == entities.RoleOwner {
		return nil, domainerrors.BadRequest("the owner's role cannot be changed")
	}

	if err := u.memberRepo.UpdateRole(ctx, member.ID, role); err != nil {
		return nil, err
	}
	member.Role = role
	return member, nil
}

// RemoveMember removes a member from the team. ADMIN or above; the
// owner can never be removed.
func (u *TeamUsecase) RemoveMember(ctx context.Context, identity entities.Identity, teamID uuid.UUID, targetUserID string) error {
	if _, err := u.authz.RequireRole(ctx, identity, teamID, entities.RoleAdmin); err != nil {
		return err
	}

	member, err := u.memberRepo.GetByTeamAndUser(ctx, teamID, targetUserID)
	if err != nil {
		return err
	}
	if member.Role == entities.RoleOwner {
		return domainerrors.BadRequest("the owner cannot be removed")
	}
	return u.memberRepo.Delete(ctx, member.ID)
}
