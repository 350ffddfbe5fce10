package usecases

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"teamboard.backend/internal/domain/entities"
	domainerrors "teamboard.backend/internal/domain/errors"
	"teamboard.backend/internal/domain/repositories"
	"teamboard.backend/pkg/utils"
)

// LabelUsecase handles labels and their issue links.
type LabelUsecase struct {
	labelRepo      repositories.LabelRepository
	issueLabelRepo repositories.IssueLabelRepository
	issueRepo      repositories.IssueRepository
	authz          *AuthzUsecase
}

// NewLabelUsecase creates a new label usecase
func NewLabelUsecase(
	labelRepo repositories.LabelRepository,
	issueLabelRepo repositories.IssueLabelRepository,
	issueRepo repositories.IssueRepository,
	authz *AuthzUsecase,
) *LabelUsecase {
	return &LabelUsecase{
		labelRepo:      labelRepo,
		issueLabelRepo: issueLabelRepo,
		issueRepo:      issueRepo,
		authz:          authz,
	}
}

// List returns the team's labels.
func (u *LabelUsecase) List(ctx context.Context, identity entities.Identity, teamID uuid.UUID) ([]*entities.Label, error) {
	if _, err := u.authz.RequireTeamMember(ctx, identity, teamID); err != nil {
		return nil, err
	}
	return u.labelRepo.ListByTeam(ctx, teamID)
}

// Create adds a label. Names are unique per team, case preserved.
func (u *LabelUsecase) Create(ctx context.Context, identity entities.Identity, teamID uuid.UUID, input entities.CreateLabelInput) (*entities.Label, error) {
	if _, err := u.authz.RequireRole(ctx, identity, teamID, entities.RoleMember); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.BadRequest("label name is required")
	}
	if _, err := u.labelRepo.GetByTeamAndName(ctx, teamID, name); err == nil {
		return nil, domainerrors.Conflict("label already exists")
	} else if err != domainerrors.ErrNotFound {
		return nil, err
	}

	label := &entities.Label{
		ID:     utils.GenerateUUIDv7(),
		TeamID: teamID,
		Name:   name,
		Color:  input.Color,
	}
	if err := u.labelRepo.Create(ctx, label); err != nil {
		return nil, err
	}
	return label, nil
}

// Toggle links the label to the issue, or unlinks it when the link
// already exists. Returns whether the label is linked afterwards.
func (u *LabelUsecase) Toggle(ctx context.Context, identity entities.Identity, issueID, labelID uuid.UUID) (bool, error) {
	issue, err := u.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return false, err
	}
	if _, err := u.authz.RequireRole(ctx, identity, issue.TeamID, entities.RoleMember); err != nil {
		return false, err
	}

	existing, err := u.issueLabelRepo.Get(ctx, issueID, labelID)
	if err != nil && err != domainerrors.ErrNotFound {
		return false, err
	}
	if existing != nil {
		return false, u.issueLabelRepo.Delete(ctx, existing.ID)
	}

	err = u.issueLabelRepo.Create(ctx, &entities.IssueLabel{
		ID:      utils.GenerateUUIDv7(),
		TeamID:  issue.TeamID,
		IssueID: issueID,
		LabelID: labelID,
	})
	if err != nil {
		// lost a race against another toggle; the link exists, report it
		if err == domainerrors.ErrConflict {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// ListIssueLinks returns every (issue, label) link in the team, for
// clients assembling board chips in one query.
func (u *LabelUsecase) ListIssueLinks(ctx context.Context, identity entities.Identity, teamID uuid.UUID) ([]*entities.IssueLabel, error) {
	if _, err := u.authz.RequireTeamMember(ctx, identity, teamID); err != nil {
		return nil, err
	}
	return u.issueLabelRepo.ListByTeam(ctx, teamID)
}

// ListForIssue returns the links on one issue.
func (u *LabelUsecase) ListForIssue(ctx context.Context, identity entities.Identity, issueID uuid.UUID) ([]*entities.IssueLabel, error) {
	issue, err := u.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if _, err := u.authz.RequireTeamMember(ctx, identity, issue.TeamID); err != nil {
		return nil, err
	}
	return u.issueLabelRepo.ListByIssue(ctx, issueID)
}
