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

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, team *entities.Team) error {
	m := r.toModel(team)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrConflict
		}
		return err
	}
	team.CreatedAt = m.CreatedAt
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	var m models.Team
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *TeamRepository) GetBySlug(ctx context.Context, slug string) (*entities.Team, error) {
	var m models.Team
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("slug = ?", slug).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *TeamRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Team{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *TeamRepository) toEntity(m *models.Team) *entities.Team {
	return &entities.Team{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		OwnerUserID: m.OwnerUserID,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *TeamRepository) toModel(e *entities.Team) *models.Team {
	return &models.Team{
		ID:          e.ID,
		Name:        e.Name,
		Slug:        e.Slug,
		OwnerUserID: e.OwnerUserID,
		CreatedAt:   e.CreatedAt,
	}
}
