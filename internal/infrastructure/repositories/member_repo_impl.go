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

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Create(ctx context.Context, member *entities.TeamMember) error {
	m := r.toModel(member)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrConflict
		}
		return err
	}
	member.JoinedAt = m.JoinedAt
	return nil
}

func (r *MemberRepository) GetByTeamAndUser(ctx context.Context, teamID uuid.UUID, userID string) (*entities.TeamMember, error) {
	var m models.TeamMember
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *MemberRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.TeamMember, error) {
	var ms []models.TeamMember
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("joined_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.TeamMember, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *MemberRepository) ListByUser(ctx context.Context, userID string) ([]*entities.TeamMember, error) {
	var ms []models.TeamMember
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("joined_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.TeamMember, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *MemberRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entities.Role) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.TeamMember{}).
		Where("id = ?", id).
		Update("role", string(role))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *MemberRepository) UpdateProfile(ctx context.Context, id uuid.UUID, fullName, avatarURL string) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.TeamMember{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"full_name":  fullName,
			"avatar_url": avatarURL,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *MemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.TeamMember{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *MemberRepository) toEntity(m *models.TeamMember) *entities.TeamMember {
	return &entities.TeamMember{
		ID:        m.ID,
		TeamID:    m.TeamID,
		UserID:    m.UserID,
		Role:      entities.Role(m.Role),
		FullName:  m.FullName,
		AvatarURL: m.AvatarURL,
		JoinedAt:  m.JoinedAt,
	}
}

func (r *MemberRepository) toModel(e *entities.TeamMember) *models.TeamMember {
	return &models.TeamMember{
		ID:        e.ID,
		TeamID:    e.TeamID,
		UserID:    e.UserID,
		Role:      string(e.Role),
		FullName:  e.FullName,
		AvatarURL: e.AvatarURL,
		JoinedAt:  e.JoinedAt,
	}
}
