package repositories

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"teamboard.backend/internal/domain/entities"
	"teamboard.backend/internal/infrastructure/models"
)

// TeamEventRepository implements the append-only team audit stream.
type TeamEventRepository struct {
	db *gorm.DB
}

func NewTeamEventRepository(db *gorm.DB) *TeamEventRepository {
	return &TeamEventRepository{db: db}
}

func (r *TeamEventRepository) Create(ctx context.Context, event *entities.TeamEvent) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}
	m := &models.TeamEvent{
		ID:        event.ID,
		TeamID:    event.TeamID,
		ActorID:   event.ActorID,
		Type:      event.Type,
		Payload:   string(payload),
		CreatedAt: event.CreatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

func (r *TeamEventRepository) List(ctx context.Context, teamID uuid.UUID, limit, offset int) ([]*entities.TeamEvent, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var total int64
	if err := db.Model(&models.TeamEvent{}).
		Where("team_id = ?", teamID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.Where("team_id = ?", teamID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var ms []models.TeamEvent
	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.TeamEvent, 0, len(ms))
	for i := range ms {
		items = append(items, teamEventToEntity(&ms[i]))
	}
	return items, total, nil
}

func (r *TeamEventRepository) ListRecent(ctx context.Context, teamID uuid.UUID, limit int) ([]*entities.TeamEvent, error) {
	var ms []models.TeamEvent
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at DESC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.TeamEvent, 0, len(ms))
	for i := range ms {
		items = append(items, teamEventToEntity(&ms[i]))
	}
	return items, nil
}

func teamEventToEntity(m *models.TeamEvent) *entities.TeamEvent {
	var payload map[string]any
	// Payload rows are written by this package; unmarshal failures mean
	// hand-edited data, surfaced as an empty payload rather than an error.
	_ = json.Unmarshal([]byte(m.Payload), &payload)
	return &entities.TeamEvent{
		ID:        m.ID,
		TeamID:    m.TeamID,
		ActorID:   m.ActorID,
		Type:      m.Type,
		Payload:   payload,
		CreatedAt: m.CreatedAt,
	}
}

// IssueEventRepository implements the per-issue history stream.
type IssueEventRepository struct {
	db *gorm.DB
}

func NewIssueEventRepository(db *gorm.DB) *IssueEventRepository {
	return &IssueEventRepository{db: db}
}

func (r *IssueEventRepository) Create(ctx context.Context, event *entities.IssueEvent) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}
	m := &models.IssueEvent{
		ID:        event.ID,
		TeamID:    event.TeamID,
		IssueID:   event.IssueID,
		ActorID:   event.ActorID,
		Type:      event.Type,
		Payload:   string(payload),
		CreatedAt: event.CreatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

func (r *IssueEventRepository) ListByIssue(ctx context.Context, issueID uuid.UUID) ([]*entities.IssueEvent, error) {
	var ms []models.IssueEvent
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("issue_id = ?", issueID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.IssueEvent, 0, len(ms))
	for i := range ms {
		var payload map[string]any
		_ = json.Unmarshal([]byte(ms[i].Payload), &payload)
		items = append(items, &entities.IssueEvent{
			ID:        ms[i].ID,
			TeamID:    ms[i].TeamID,
			IssueID:   ms[i].IssueID,
			ActorID:   ms[i].ActorID,
			Type:      ms[i].Type,
			Payload:   payload,
			CreatedAt: ms[i].CreatedAt,
		})
	}
	return items, nil
}
