package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TodoScope separates team boards from personal lists
type TodoScope string

const (
	TodoScopeTeam     TodoScope = "TEAM"
	TodoScopePersonal TodoScope = "PERSONAL"
)

// TodoStatus represents the 3-stage todo workflow
type TodoStatus string

const (
	TodoStatusTodo       TodoStatus = "Todo"
	TodoStatusInProgress TodoStatus = "In Progress"
	TodoStatusDone       TodoStatus = "Done"
)

func (s TodoStatus) Valid() bool {
	switch s {
	case TodoStatusTodo, TodoStatusInProgress, TodoStatusDone:
		return true
	}
	return false
}

// Next advances cyclically: Todo -> In Progress -> Done -> Todo.
func (s TodoStatus) Next() TodoStatus {
	switch s {
	case TodoStatusTodo:
		return TodoStatusInProgress
	case TodoStatusInProgress:
		return TodoStatusDone
	default:
		return TodoStatusTodo
	}
}

// Todo is either team-scoped (TeamID set) or personal (OwnerUserID set);
// the two are mutually exclusive.
type Todo struct {
	ID              uuid.UUID     `json:"id"`
	Scope           TodoScope     `json:"scope"`
	TeamID          uuid.NullUUID `json:"teamId,omitempty"`
	OwnerUserID     null.String   `json:"ownerUserId,omitempty"`
	Title           string        `json:"title"`
	Status          TodoStatus    `json:"status"`
	AssigneeID      null.String   `json:"assigneeId,omitempty"`
	DueDate         null.Time     `json:"dueDate,omitempty"`
	SortOrder       null.Float64  `json:"order,omitempty"`
	CreatedByUserID string        `json:"createdByUserId"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

func (t *Todo) EffectiveOrder() float64 {
	if t.SortOrder.Valid {
		return t.SortOrder.Float64
	}
	return float64(t.CreatedAt.UnixMilli())
}

// CreateTodoInput represents input for creating a todo
type CreateTodoInput struct {
	Title      string      `json:"title" binding:"required,min=1,max=500"`
	Status     TodoStatus  `json:"status"`
	AssigneeID null.String `json:"assigneeId"`
	DueDate    null.Time   `json:"dueDate"`
}

// TodoPatch holds the optional fields an update may change.
type TodoPatch struct {
	Title      *string     `json:"title"`
	Status     *TodoStatus `json:"status"`
	AssigneeID *string     `json:"assigneeId"`
	DueDate    *time.Time  `json:"dueDate"`
}

// TodoFilter composes list constraints with AND semantics. AssigneeID
// accepts the literal "unassigned" to match todos with no assignee.
type TodoFilter struct {
	Status     *TodoStatus
	AssigneeID string
	Search     string
}
