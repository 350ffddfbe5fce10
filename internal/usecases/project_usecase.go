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
	"teamboard.backend/internal/realtime"
	"teamboard.backend/pkg/utils"
)

// ProjectUsecase handles project grouping within a team.
type ProjectUsecase struct {
	projectRepo   repositories.ProjectRepository
	teamEventRepo repositories.TeamEventRepository
	authz         *AuthzUsecase
	uow           repositories.UnitOfWork
	bus           *realtime.Bus
}

// NewProjectUsecase creates a new project usecase
func NewProjectUsecase(
	projectRepo repositories.ProjectRepository,
	teamEventRepo repositories.TeamEventRepository,
	authz *AuthzUsecase,
	uow repositories.UnitOfWork,
	bus *realtime.Bus,
) *ProjectUsecase {
	return &ProjectUsecase{
		projectRepo:   projectRepo,
		teamEventRepo: teamEventRepo,
		authz:         authz,
		uow:           uow,
		bus:           bus,
	}
}

// List returns the team's projects.
func (u *ProjectUsecase) List(ctx context.Context, identity entities.Identity, teamID uuid.UUID) ([]*entities.Project, error) {
	if _, err := u.authz.RequireTeamMember(ctx, identity, teamID); err != nil {
		return nil, err
	}
	return u.projectRepo.ListByTeam(ctx, teamID)
}

// Create adds a project. ADMIN or above; keys are uppercased and unique
// per team.
func (u *ProjectUsecase) Create(ctx context.Context, identity entities.Identity, teamID uuid.UUID, input entities.CreateProjectInput) (*entities.Project, error) {
	member, err := u.authz.RequireRole(ctx, identity, teamID, entities.RoleAdmin)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	key := strings.ToUpper(strings.TrimSpace(input.Key))
	if name == "" || key == "" {
		return nil, domainerrors.BadRequest("project name and key are required")
	}

	if _, err := u.projectRepo.GetByTeamAndKey(ctx, teamID, key); err == nil {
		return nil, domainerrors.Conflict("project key already in use")
	} else if err != domainerrors.ErrNotFound {
		return nil, err
	}

	project := &entities.Project{
		ID:        utils.GenerateUUIDv7(),
		TeamID:    teamID,
		Name:      name,
		Key:       key,
		CreatedAt: time.Now(),
	}

	var teamEvent *entities.TeamEvent
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.projectRepo.Create(ctx, project); err != nil {
			return err
		}
		teamEvent = &entities.TeamEvent{
			ID:      utils.GenerateUUIDv7(),
			TeamID:  teamID,
			ActorID: null.StringFrom(member.UserID),
			Type:    entities.EventProjectCreated,
			Payload: map[string]any{
				"projectId": project.ID.String(),
				"name":      project.Name,
				"key":       project.Key,
			},
			CreatedAt: time.Now(),
		}
		return u.teamEventRepo.Create(ctx, teamEvent)
	})
	if err != nil {
		return nil, err
	}

	u.bus.Publish(teamEvent)
	return project, nil
}
