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

type LabelRepository struct {
	db *gorm.DB
}

func NewLabelRepository(db *gorm.DB) *LabelRepository {
	return &LabelRepository{db: db}
}

func (r *LabelRepository) Create(ctx context.Context, label *entities.Label) error {
	m := &models.Label{
		ID:     label.ID,
		TeamID: label.TeamID,
		Name:   label.Name,
		Color:  label.Color,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrConflict
		}
		return err
	}
	return nil
}

func (r *LabelRepository) GetByTeamAndName(ctx context.Context, teamID uuid.UUID, name string) (*entities.Label, error) {
	var m models.Label
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ? AND name = ?", teamID, name).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return labelToEntity(&m), nil
}

func (r *LabelRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.Label, error) {
	var ms []models.Label
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("name ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.Label, 0, len(ms))
	for i := range ms {
		items = append(items, labelToEntity(&ms[i]))
	}
	return items, nil
}

func labelToEntity(m *models.Label) *entities.Label {
	return &entities.Label{
		ID:     m.ID,
		TeamID: m.TeamID,
		Name:   m.Name,
		Color:  m.Color,
	}
}

type IssueLabelRepository struct {
	db *gorm.DB
}

func NewIssueLabelRepository(db *gorm.DB) *IssueLabelRepository {
	return &IssueLabelRepository{db: db}
}

func (r *IssueLabelRepository) Create(ctx context.Context, link *entities.IssueLabel) error {
	m := &models.IssueLabel{
		ID:      link.ID,
		TeamID:  link.TeamID,
		IssueID: link.IssueID,
		LabelID: link.LabelID,
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrConflict
		}
		return err
	}
	return nil
}

func (r *IssueLabelRepository) Get(ctx context.Context, issueID, labelID uuid.UUID) (*entities.IssueLabel, error) {
	var m models.IssueLabel
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("issue_id = ? AND label_id = ?", issueID, labelID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return issueLabelToEntity(&m), nil
}

func (r *IssueLabelRepository) ListByIssue(ctx context.Context, issueID uuid.UUID) ([]*entities.IssueLabel, error) {
	var ms []models.IssueLabel
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("issue_id = ?", issueID).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.IssueLabel, 0, len(ms))
	for i := range ms {
		items = append(items, issueLabelToEntity(&ms[i]))
	}
	return items, nil
}

func (r *IssueLabelRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.IssueLabel, error) {
	var ms []models.IssueLabel
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ?", teamID).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.IssueLabel, 0, len(ms))
	for i := range ms {
		items = append(items, issueLabelToEntity(&ms[i]))
	}
	return items, nil
}

func (r *IssueLabelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.IssueLabel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *IssueLabelRepository) DeleteByIssue(ctx context.Context, issueID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).
		Delete(&models.IssueLabel{}, "issue_id = ?", issueID).Error
}

func issueLabelToEntity(m *models.IssueLabel) *entities.IssueLabel {
	return &entities.IssueLabel{
		ID:      m.ID,
		TeamID:  m.TeamID,
		IssueID: m.IssueID,
		LabelID: m.LabelID,
	}
}
