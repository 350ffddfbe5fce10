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

type TodoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(ctx context.Context, todo *entities.Todo) error {
	m := r.toModel(todo)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	todo.CreatedAt = m.CreatedAt
	todo.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *TodoRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Todo, error) {
	var m models.Todo
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *TodoRepository) ListByTeam(ctx context.Context, teamID uuid.UUID, filter entities.TodoFilter) ([]*entities.Todo, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Todo{}).
		Where("scope = ? AND team_id = ?", string(entities.TodoScopeTeam), teamID)
	return r.list(applyTodoFilter(query, filter))
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerUserID string, filter entities.TodoFilter) ([]*entities.Todo, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Todo{}).
		Where("scope = ? AND owner_user_id = ?", string(entities.TodoScopePersonal), ownerUserID)
	return r.list(applyTodoFilter(query, filter))
}

func (r *TodoRepository) ListByTeamStatus(ctx context.Context, teamID uuid.UUID, status entities.TodoStatus) ([]*entities.Todo, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Todo{}).
		Where("scope = ? AND team_id = ? AND status = ?",
			string(entities.TodoScopeTeam), teamID, string(status))
	return r.list(query)
}

func (r *TodoRepository) ListByOwnerStatus(ctx context.Context, ownerUserID string, status entities.TodoStatus) ([]*entities.Todo, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Todo{}).
		Where("scope = ? AND owner_user_id = ? AND status = ?",
			string(entities.TodoScopePersonal), ownerUserID, string(status))
	return r.list(query)
}

func applyTodoFilter(query *gorm.DB, filter entities.TodoFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	// "unassigned" is a reserved filter value matching todos with no assignee.
	if filter.AssigneeID == "unassigned" {
		query = query.Where("assignee_id IS NULL")
	} else if filter.AssigneeID != "" {
		query = query.Where("assignee_id = ?", filter.AssigneeID)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(term)+"%")
	}
	return query
}

func (r *TodoRepository) list(query *gorm.DB) ([]*entities.Todo, error) {
	var ms []models.Todo
	if err := query.Order("created_at ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.Todo, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *TodoRepository) Update(ctx context.Context, todo *entities.Todo) error {
	updates := map[string]interface{}{
		"title":       todo.Title,
		"status":      string(todo.Status),
		"assignee_id": todo.AssigneeID,
		"due_date":    todo.DueDate,
		"sort_order":  todo.SortOrder,
		"updated_at":  time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Todo{}).
		Where("id = ?", todo.ID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Todo{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *TodoRepository) toEntity(m *models.Todo) *entities.Todo {
	return &entities.Todo{
		ID:              m.ID,
		Scope:           entities.TodoScope(m.Scope),
		TeamID:          m.TeamID,
		OwnerUserID:     m.OwnerUserID,
		Title:           m.Title,
		Status:          entities.TodoStatus(m.Status),
		AssigneeID:      m.AssigneeID,
		DueDate:         m.DueDate,
		SortOrder:       m.SortOrder,
		CreatedByUserID: m.CreatedByUserID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func (r *TodoRepository) toModel(e *entities.Todo) *models.Todo {
	return &models.Todo{
		ID:              e.ID,
		Scope:           string(e.Scope),
		TeamID:          e.TeamID,
		OwnerUserID:     e.OwnerUserID,
		Title:           e.Title,
		Status:          string(e.Status),
		AssigneeID:      e.AssigneeID,
		DueDate:         e.DueDate,
		SortOrder:       e.SortOrder,
		CreatedByUserID: e.CreatedByUserID,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}
