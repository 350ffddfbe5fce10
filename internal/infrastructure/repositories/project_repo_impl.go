package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"teamboard.backend/internal/domain/entities"
	domainerrors "teamboard.backend/internal/domain/errors"
	"teamboard.backend/internal/infrastructure/models"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *entities.Project) error {
	m := r.toModel(project)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrConflict
		}
		return err
	}
	project.CreatedAt = m.CreatedAt
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	var m models.Project
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *ProjectRepository) GetByTeamAndKey(ctx context.Context, teamID uuid.UUID, key string) (*entities.Project, error) {
	var m models.Project
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ? AND key = ?", teamID, key).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *ProjectRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.Project, error) {
	var ms []models.Project
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.Project, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *ProjectRepository) toEntity(m *models.Project) *entities.Project {
	return &entities.Project{
		ID:        m.ID,
		TeamID:    m.TeamID,
		Name:      m.Name,
		Key:       m.Key,
		CreatedAt: m.CreatedAt,
	}
}

func (r *ProjectRepository) toModel(e *entities.Project) *models.Project {
	return &models.Project{
		ID:        e.ID,
		TeamID:    e.TeamID,
		Name:      e.Name,
		Key:       e.Key,
		CreatedAt: e.CreatedAt,
	}
}
