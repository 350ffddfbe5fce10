package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"teamboard.backend/internal/domain/entities"
	domainerrors "teamboard.backend/internal/domain/errors"
	"teamboard.backend/internal/infrastructure/models"
)

type InviteRepository struct {
	db *gorm.DB
}

func NewInviteRepository(db *gorm.DB) *InviteRepository {
	return &InviteRepository{db: db}
}

func (r *InviteRepository) Create(ctx context.Context, invite *entities.TeamInvite) error {
	m := r.toModel(invite)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	invite.CreatedAt = m.CreatedAt
	return nil
}

func (r *InviteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.TeamInvite, error) {
	var m models.TeamInvite
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *InviteRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*entities.TeamInvite, error) {
	var m models.TeamInvite
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("token_hash = ?", tokenHash).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *InviteRepository) ListPending(ctx context.Context, teamID uuid.UUID, now time.Time) ([]*entities.TeamInvite, error) {
	var ms []models.TeamInvite
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ? AND accepted_at IS NULL AND expires_at > ?", teamID, now).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.TeamInvite, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *InviteRepository) MarkAccepted(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.TeamInvite{}).
		Where("id = ?", id).
		Update("accepted_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *InviteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.TeamInvite{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *InviteRepository) toEntity(m *models.TeamInvite) *entities.TeamInvite {
	return &entities.TeamInvite{
		ID:              m.ID,
		TeamID:          m.TeamID,
		Email:           m.Email,
		Role:            entities.Role(m.Role),
		TokenHash:       m.TokenHash,
		ExpiresAt:       m.ExpiresAt,
		AcceptedAt:      m.AcceptedAt,
		CreatedByUserID: m.CreatedByUserID,
		CreatedAt:       m.CreatedAt,
	}
}

func (r *InviteRepository) toModel(e *entities.TeamInvite) *models.TeamInvite {
	return &models.TeamInvite{
		ID:              e.ID,
		TeamID:          e.TeamID,
		Email:           e.Email,
		Role:            string(e.Role),
		TokenHash:       e.TokenHash,
		ExpiresAt:       e.ExpiresAt,
		AcceptedAt:      null.TimeFromPtr(e.AcceptedAt.Ptr()),
		CreatedByUserID: e.CreatedByUserID,
		CreatedAt:       e.CreatedAt,
	}
}
