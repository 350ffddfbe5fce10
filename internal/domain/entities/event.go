package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Team-wide audit event types.
const (
	EventIssueCreated       = "ISSUE_CREATED"
	EventIssueUpdated       = "ISSUE_UPDATED"
	EventIssueStatusChanged = "ISSUE_STATUS_CHANGED"
	EventIssueCommented     = "ISSUE_COMMENTED"
	EventTodoCreated        = "TODO_CREATED"
	EventTodoUpdated        = "TODO_UPDATED"
	EventTodoStatusChanged  = "TODO_STATUS_CHANGED"
	EventProjectCreated     = "PROJECT_CREATED"
	EventPageView           = "PAGE_VIEW"
)

// Per-issue event stream types.
const (
	IssueEventCreated       = "CREATED"
	IssueEventUpdated       = "UPDATED"
	IssueEventStatusChanged = "STATUS_CHANGED"
)

// TeamEvent is an append-only audit row; never mutated or deleted.
type TeamEvent struct {
	ID        uuid.UUID      `json:"id"`
	TeamID    uuid.UUID      `json:"teamId"`
	ActorID   null.String    `json:"actorId,omitempty"`
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"createdAt"`
}

// IssueEvent is the per-issue history stream, same immutability contract.
type IssueEvent struct {
	ID        uuid.UUID      `json:"id"`
	TeamID    uuid.UUID      `json:"teamId"`
	IssueID   uuid.UUID      `json:"issueId"`
	ActorID   null.String    `json:"actorId,omitempty"`
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"createdAt"`
}

// EventActor is the actor's live membership info resolved at read time,
// so renamed users show current display data in old events.
type EventActor struct {
	UserID    string      `json:"userId"`
	FullName  null.String `json:"fullName,omitempty"`
	AvatarURL null.String `json:"avatarUrl,omitempty"`
	Role      Role        `json:"role"`
}

// EventEntity describes what the event happened to. ID is empty when the
// referenced entity has since been deleted; Title then falls back to the
// payload's cached title.
type EventEntity struct {
	Type  string `json:"type"`
	ID    string `json:"id,omitempty"`
	Title string `json:"title,omitempty"`
	Key   string `json:"key,omitempty"`
}

// EventChange is the extracted "what changed": either a from/to pair or
// a changed-field list, depending on the event type.
type EventChange struct {
	Label  string   `json:"label,omitempty"`
	From   string   `json:"from,omitempty"`
	To     string   `json:"to,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

// EnrichedTeamEvent is a feed row after read-time enrichment.
type EnrichedTeamEvent struct {
	*TeamEvent
	Actor  *EventActor  `json:"actor"`
	Entity *EventEntity `json:"entity"`
	Change *EventChange `json:"change"`
}
