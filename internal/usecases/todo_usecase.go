package usecases

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"teamboard.backend/internal/domain/entities"
	domainerrors "teamboard.backend/internal/domain/errors"
	"teamboard.backend/internal/domain/repositories"
	"teamboard.backend/internal/realtime"
	"teamboard.backend/pkg/utils"
)

// TodoUsecase handles team and personal todo lists. Team todos feed the
// team event log; personal todos are private to their owner and emit
// nothing.
type TodoUsecase struct {
	todoRepo      repositories.TodoRepository
	teamEventRepo repositories.TeamEventRepository
	authz         *AuthzUsecase
	uow           repositories.UnitOfWork
	bus           *realtime.Bus
}

// NewTodoUsecase creates a new todo usecase
func NewTodoUsecase(
	todoRepo repositories.TodoRepository,
	teamEventRepo repositories.TeamEventRepository,
	authz *AuthzUsecase,
	uow repositories.UnitOfWork,
	bus *realtime.Bus,
) *TodoUsecase {
	return &TodoUsecase{
		todoRepo:      todoRepo,
		teamEventRepo: teamEventRepo,
		authz:         authz,
		uow:           uow,
		bus:           bus,
	}
}

// ListTeam returns the team's todos matching the filter, sorted by
// effective order within each status.
func (u *TodoUsecase) ListTeam(ctx context.Context, identity entities.Identity, teamID uuid.UUID, filter entities.TodoFilter) ([]*entities.Todo, error) {
	if _, err := u.authz.RequireTeamMember(ctx, identity, teamID); err != nil {
		return nil, err
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, domainerrors.BadRequest("unknown status")
	}
	todos, err := u.todoRepo.ListByTeam(ctx, teamID, filter)
	if err != nil {
		return nil, err
	}
	sortTodos(todos)
	return todos, nil
}

// ListPersonal returns the caller's own todos.
func (u *TodoUsecase) ListPersonal(ctx context.Context, identity entities.Identity, filter entities.TodoFilter) ([]*entities.Todo, error) {
	if identity.UserID == "" {
		return nil, domainerrors.Unauthenticated("authentication required")
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, domainerrors.BadRequest("unknown status")
	}
	todos, err := u.todoRepo.ListByOwner(ctx, identity.UserID, filter)
	if err != nil {
		return nil, err
	}
	sortTodos(todos)
	return todos, nil
}

// CreateTeam adds a team todo. MEMBER role or above.
func (u *TodoUsecase) CreateTeam(ctx context.Context, identity entities.Identity, teamID uuid.UUID, input entities.CreateTodoInput) (*entities.Todo, error) {
	member, err := u.authz.RequireRole(ctx, identity, teamID, entities.RoleMember)
	if err != nil {
		return nil, err
	}
	todo, err := newTodo(input, member.UserID)
	if err != nil {
		return nil, err
	}
	todo.Scope = entities.TodoScopeTeam
	todo.TeamID = uuid.NullUUID{UUID: teamID, Valid: true}

	var teamEvent *entities.TeamEvent
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.todoRepo.Create(ctx, todo); err != nil {
			return err
		}
		teamEvent = newTodoEvent(teamID, member.UserID, entities.EventTodoCreated, map[string]any{
			"todoId": todo.ID.String(),
			"title":  todo.Title,
			"status": string(todo.Status),
		})
		return u.teamEventRepo.Create(ctx, teamEvent)
	})
	if err != nil {
		return nil, err
	}
	u.bus.Publish(teamEvent)
	return todo, nil
}

// CreatePersonal adds a todo to the caller's private list.
func (u *TodoUsecase) CreatePersonal(ctx context.Context, identity entities.Identity, input entities.CreateTodoInput) (*entities.Todo, error) {
	if identity.UserID == "" {
		return nil, domainerrors.Unauthenticated("authentication required")
	}
	todo, err := newTodo(input, identity.UserID)
	if err != nil {
		return nil, err
	}
	todo.Scope = entities.TodoScopePersonal
	todo.OwnerUserID = null.StringFrom(identity.UserID)

	if err := u.todoRepo.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func newTodo(input entities.CreateTodoInput, createdBy string) (*entities.Todo, error) {
	if input.Title == "" {
		return nil, domainerrors.BadRequest("title is required")
	}
	status := input.Status
	if status == "" {
		status = entities.TodoStatusTodo
	}
	if !status.Valid() {
		return nil, domainerrors.BadRequest("unknown status")
	}
	now := time.Now()
	return &entities.Todo{
		ID:              utils.GenerateUUIDv7(),
		Title:           input.Title,
		Status:          status,
		AssigneeID:      input.AssigneeID,
		DueDate:         input.DueDate,
		CreatedByUserID: createdBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Update applies a partial patch. Team todos emit UPDATED for non-status
// changes and STATUS_CHANGED with the from/to pair when status moved;
// both can come out of a single patch.
func (u *TodoUsecase) Update(ctx context.Context, identity entities.Identity, todoID uuid.UUID, patch entities.TodoPatch) (*entities.Todo, error) {
	todo, member, err := u.requireWritable(ctx, identity, todoID)
	if err != nil {
		return nil, err
	}

	var changed []string
	if patch.Title != nil && *patch.Title != todo.Title {
		if *patch.Title == "" {
			return nil, domainerrors.BadRequest("title cannot be empty")
		}
		todo.Title = *patch.Title
		changed = append(changed, "title")
	}
	if patch.AssigneeID != nil && null.StringFromPtr(nilIfEmpty(*patch.AssigneeID)) != todo.AssigneeID {
		todo.AssigneeID = null.StringFromPtr(nilIfEmpty(*patch.AssigneeID))
		changed = append(changed, "assignee")
	}
	if patch.DueDate != nil && !patch.DueDate.Equal(todo.DueDate.Time) {
		if patch.DueDate.IsZero() {
			todo.DueDate = null.Time{}
		} else {
			todo.DueDate = null.TimeFrom(*patch.DueDate)
		}
		changed = append(changed, "dueDate")
	}

	statusFrom := ""
	if patch.Status != nil && *patch.Status != todo.Status {
		if !patch.Status.Valid() {
			return nil, domainerrors.BadRequest("unknown status")
		}
		statusFrom = string(todo.Status)
		todo.Status = *patch.Status
	}

	if len(changed) == 0 && statusFrom == "" {
		return todo, nil
	}
	return u.persistTodoChange(ctx, todo, member, changed, statusFrom)
}

// ToggleStatus advances the todo one stage, wrapping Done back to Todo.
func (u *TodoUsecase) ToggleStatus(ctx context.Context, identity entities.Identity, todoID uuid.UUID) (*entities.Todo, error) {
	todo, member, err := u.requireWritable(ctx, identity, todoID)
	if err != nil {
		return nil, err
	}
	statusFrom := string(todo.Status)
	todo.Status = todo.Status.Next()
	return u.persistTodoChange(ctx, todo, member, nil, statusFrom)
}

// Reorder places the todo ahead of beforeID within the given status
// partition, emitting STATUS_CHANGED only when the partition changed.
func (u *TodoUsecase) Reorder(ctx context.Context, identity entities.Identity, todoID uuid.UUID, status entities.TodoStatus, beforeID uuid.UUID) (*entities.Todo, error) {
	todo, member, err := u.requireWritable(ctx, identity, todoID)
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domainerrors.BadRequest("unknown status")
	}

	var siblings []*entities.Todo
	if todo.Scope == entities.TodoScopeTeam {
		siblings, err = u.todoRepo.ListByTeamStatus(ctx, todo.TeamID.UUID, status)
	} else {
		siblings, err = u.todoRepo.ListByOwnerStatus(ctx, todo.OwnerUserID.String, status)
	}
	if err != nil {
		return nil, err
	}
	refs := make([]OrderRef, 0, len(siblings))
	for _, s := range siblings {
		if s.ID == todo.ID {
			continue
		}
		refs = append(refs, OrderRef{ID: s.ID, Key: s.EffectiveOrder()})
	}

	statusFrom := ""
	if todo.Status != status {
		statusFrom = string(todo.Status)
		todo.Status = status
	}
	todo.SortOrder = null.Float64From(ComputeOrder(refs, beforeID, time.Now()))
	return u.persistTodoChange(ctx, todo, member, nil, statusFrom)
}

// Delete removes a todo. No audit event is recorded.
func (u *TodoUsecase) Delete(ctx context.Context, identity entities.Identity, todoID uuid.UUID) error {
	todo, _, err := u.requireWritable(ctx, identity, todoID)
	if err != nil {
		return err
	}
	return u.todoRepo.Delete(ctx, todo.ID)
}

// requireWritable resolves the todo and checks write access: MEMBER role
// for team todos, strict ownership for personal ones. The returned
// member is nil for personal todos.
func (u *TodoUsecase) requireWritable(ctx context.Context, identity entities.Identity, todoID uuid.UUID) (*entities.Todo, *entities.TeamMember, error) {
	if identity.UserID == "" {
		return nil, nil, domainerrors.Unauthenticated("authentication required")
	}
	todo, err := u.todoRepo.GetByID(ctx, todoID)
	if err != nil {
		return nil, nil, err
	}
	if todo.Scope == entities.TodoScopeTeam {
		member, err := u.authz.RequireRole(ctx, identity, todo.TeamID.UUID, entities.RoleMember)
		if err != nil {
			return nil, nil, err
		}
		return todo, member, nil
	}
	if todo.OwnerUserID.String != identity.UserID {
		return nil, nil, domainerrors.Unauthorized("not your todo")
	}
	return todo, nil, nil
}

func (u *TodoUsecase) persistTodoChange(ctx context.Context, todo *entities.Todo, member *entities.TeamMember, changed []string, statusFrom string) (*entities.Todo, error) {
	todo.UpdatedAt = time.Now()

	// personal todos have no audience beyond their owner
	if todo.Scope != entities.TodoScopeTeam {
		if err := u.todoRepo.Update(ctx, todo); err != nil {
			return nil, err
		}
		return todo, nil
	}

	var teamEvents []*entities.TeamEvent
	err := u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.todoRepo.Update(ctx, todo); err != nil {
			return err
		}
		if len(changed) > 0 {
			ev := newTodoEvent(todo.TeamID.UUID, member.UserID, entities.EventTodoUpdated, map[string]any{
				"todoId":        todo.ID.String(),
				"title":         todo.Title,
				"changedFields": changed,
			})
			if err := u.teamEventRepo.Create(ctx, ev); err != nil {
				return err
			}
			teamEvents = append(teamEvents, ev)
		}
		if statusFrom != "" {
			ev := newTodoEvent(todo.TeamID.UUID, member.UserID, entities.EventTodoStatusChanged, map[string]any{
				"todoId": todo.ID.String(),
				"title":  todo.Title,
				"from":   statusFrom,
				"to":     string(todo.Status),
			})
			if err := u.teamEventRepo.Create(ctx, ev); err != nil {
				return err
			}
			teamEvents = append(teamEvents, ev)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, ev := range teamEvents {
		u.bus.Publish(ev)
	}
	return todo, nil
}

func newTodoEvent(teamID uuid.UUID, actorID string, eventType string, payload map[string]any) *entities.TeamEvent {
	return &entities.TeamEvent{
		ID:        utils.GenerateUUIDv7(),
		TeamID:    teamID,
		ActorID:   null.StringFrom(actorID),
		Type:      eventType,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
}

func sortTodos(todos []*entities.Todo) {
	sort.SliceStable(todos, func(i, j int) bool {
		return todos[i].EffectiveOrder() < todos[j].EffectiveOrder()
	})
}
