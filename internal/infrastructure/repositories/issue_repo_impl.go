package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"teamboard.backend/internal/domain/entities"
	domainerrors "teamboard.backend/internal/domain/errors"
	"teamboard.backend/internal/infrastructure/models"
)

type IssueRepository struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) *IssueRepository {
	return &IssueRepository{db: db}
}

func (r *IssueRepository) Create(ctx context.Context, issue *entities.Issue) error {
	m := r.toModel(issue)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	issue.CreatedAt = m.CreatedAt
	issue.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *IssueRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Issue, error) {
	var m models.Issue
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *IssueRepository) List(ctx context.Context, teamID uuid.UUID, filter entities.IssueFilter) ([]*entities.Issue, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Issue{}).
		Where("team_id = ?", teamID)

	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.ProjectID.Valid {
		query = query.Where("project_id = ?", filter.ProjectID.UUID)
	}
	if filter.AssigneeID != "" {
		query = query.Where("assignee_id = ?", filter.AssigneeID)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", string(*filter.Priority))
	}
	if filter.LabelID.Valid {
		query = query.Where(
			"id IN (?)",
			GetDB(ctx, r.db).Model(&models.IssueLabel{}).
				Select("issue_id").
				Where("label_id = ?", filter.LabelID.UUID),
		)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(term)+"%")
	}

	var ms []models.Issue
	if err := query.Order("created_at ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.Issue, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *IssueRepository) ListByStatus(ctx context.Context, teamID uuid.UUID, status entities.IssueStatus) ([]*entities.Issue, error) {
	var ms []models.Issue
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ? AND status = ?", teamID, string(status)).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.Issue, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *IssueRepository) Update(ctx context.Context, issue *entities.Issue) error {
	updates := map[string]interface{}{
		"project_id":      issue.ProjectID,
		"title":           issue.Title,
		"status":          string(issue.Status),
		"priority":        string(issue.Priority),
		"type":            issue.Type,
		"assignee_id":     issue.AssigneeID,
		"sort_order":      issue.SortOrder,
		"summary_doc":     issue.SummaryDoc,
		"details_doc":     issue.DetailsDoc,
		"impact_doc":      issue.ImpactDoc,
		"steps_taken_doc": issue.StepsTakenDoc,
		"next_steps_doc":  issue.NextStepsDoc,
		"updated_at":      time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Issue{}).
		Where("id = ?", issue.ID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *IssueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Issue{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *IssueRepository) toEntity(m *models.Issue) *entities.Issue {
	return &entities.Issue{
		ID:            m.ID,
		TeamID:        m.TeamID,
		ProjectID:     m.ProjectID,
		Title:         m.Title,
		Status:        entities.IssueStatus(m.Status),
		Priority:      entities.IssuePriority(m.Priority),
		Type:          m.Type,
		AssigneeID:    m.AssigneeID,
		ReporterID:    m.ReporterID,
		SortOrder:     m.SortOrder,
		SummaryDoc:    m.SummaryDoc,
		DetailsDoc:    m.DetailsDoc,
		ImpactDoc:     m.ImpactDoc,
		StepsTakenDoc: m.StepsTakenDoc,
		NextStepsDoc:  m.NextStepsDoc,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (r *IssueRepository) toModel(e *entities.Issue) *models.Issue {
	return &models.Issue{
		ID:            e.ID,
		TeamID:        e.TeamID,
		ProjectID:     e.ProjectID,
		Title:         e.Title,
		Status:        string(e.Status),
		Priority:      string(e.Priority),
		Type:          e.Type,
		AssigneeID:    e.AssigneeID,
		ReporterID:    e.ReporterID,
		SortOrder:     e.SortOrder,
		SummaryDoc:    e.SummaryDoc,
		DetailsDoc:    e.DetailsDoc,
		ImpactDoc:     e.ImpactDoc,
		StepsTakenDoc: e.StepsTakenDoc,
		NextStepsDoc:  e.NextStepsDoc,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
