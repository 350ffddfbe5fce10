package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// IssueStatus represents a kanban workflow stage
type IssueStatus string

const (
	IssueStatusUntriaged  IssueStatus = "Untriaged"
	IssueStatusBacklog    IssueStatus = "Backlog"
	IssueStatusOpen       IssueStatus = "Open"
	IssueStatusInProgress IssueStatus = "In Progress"
	IssueStatusTesting    IssueStatus = "Testing"
	IssueStatusInReview   IssueStatus = "In Review"
	IssueStatusWontFix    IssueStatus = "Won't Fix"
	IssueStatusResolved   IssueStatus = "Resolved"
)

// IssueStatuses lists all workflow stages in board column order.
var IssueStatuses = []IssueStatus{
	IssueStatusUntriaged,
	IssueStatusBacklog,
	IssueStatusOpen,
	IssueStatusInProgress,
	IssueStatusTesting,
	IssueStatusInReview,
	IssueStatusWontFix,
	IssueStatusResolved,
}

func (s IssueStatus) Valid() bool {
	for _, v := range IssueStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IssuePriority represents issue priority
type IssuePriority string

const (
	PriorityLow    IssuePriority = "Low"
	PriorityMedium IssuePriority = "Medium"
	PriorityHigh   IssuePriority = "High"
	PriorityUrgent IssuePriority = "Urgent"
)

func (p IssuePriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Issue represents a tracked issue. SortOrder is the fractional ordering
// key within the (team, status) partition; rows without one sort by
// creation time.
type Issue struct {
	ID            uuid.UUID     `json:"id"`
	TeamID        uuid.UUID     `json:"teamId"`
	ProjectID     uuid.NullUUID `json:"projectId,omitempty"`
	Title         string        `json:"title"`
	Status        IssueStatus   `json:"status"`
	Priority      IssuePriority `json:"priority"`
	Type          null.String   `json:"type,omitempty"`
	AssigneeID    null.String   `json:"assigneeId,omitempty"`
	ReporterID    string        `json:"reporterId"`
	SortOrder     null.Float64  `json:"order,omitempty"`
	SummaryDoc    null.JSON     `json:"summaryDoc,omitempty"`
	DetailsDoc    null.JSON     `json:"detailsDoc,omitempty"`
	ImpactDoc     null.JSON     `json:"impactDoc,omitempty"`
	StepsTakenDoc null.JSON     `json:"stepsTakenDoc,omitempty"`
	NextStepsDoc  null.JSON     `json:"nextStepsDoc,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// EffectiveOrder is the single place the order-or-createdAt fallback lives.
func (i *Issue) EffectiveOrder() float64 {
	if i.SortOrder.Valid {
		return i.SortOrder.Float64
	}
	return float64(i.CreatedAt.UnixMilli())
}

// CreateIssueInput represents input for creating an issue
type CreateIssueInput struct {
	ProjectID  uuid.NullUUID `json:"projectId"`
	Title      string        `json:"title" binding:"required,min=1,max=500"`
	Status     IssueStatus   `json:"status"`
	Priority   IssuePriority `json:"priority"`
	AssigneeID null.String   `json:"assigneeId"`
}

// IssuePatch holds the optional fields an update may change. Nil (or
// unset null.*) fields are left untouched.
type IssuePatch struct {
	Title         *string        `json:"title"`
	Status        *IssueStatus   `json:"status"`
	Priority      *IssuePriority `json:"priority"`
	Type          *string        `json:"type"`
	AssigneeID    *string        `json:"assigneeId"`
	ProjectID     *uuid.UUID     `json:"projectId"`
	SummaryDoc    null.JSON      `json:"summaryDoc"`
	DetailsDoc    null.JSON      `json:"detailsDoc"`
	ImpactDoc     null.JSON      `json:"impactDoc"`
	StepsTakenDoc null.JSON      `json:"stepsTakenDoc"`
	NextStepsDoc  null.JSON      `json:"nextStepsDoc"`
}

// IssueFilter composes list constraints with AND semantics; zero values
// mean "no constraint".
type IssueFilter struct {
	Status     *IssueStatus
	ProjectID  uuid.NullUUID
	AssigneeID string
	Priority   *IssuePriority
	LabelID    uuid.NullUUID
	Search     string
}
