package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Presence is the single row per (team, user), overwritten in place by
// heartbeats. Liveness is purely time-window-based; stale rows age out
// of active views without any disconnect event.
type Presence struct {
	TeamID        uuid.UUID    `json:"teamId"`
	UserID        string       `json:"userId"`
	LastSeen      time.Time    `json:"lastSeen"`
	Activity      null.String  `json:"activity,omitempty"`
	Location      null.String  `json:"location,omitempty"`
	CursorX       null.Float64 `json:"cursorX,omitempty"`
	CursorY       null.Float64 `json:"cursorY,omitempty"`
	IsEditing     null.Bool    `json:"isEditing,omitempty"`
	EditingTarget null.String  `json:"editingTarget,omitempty"`
}

// PresencePatch carries only the signals a heartbeat chose to send; nil
// fields leave the stored value untouched so independent signal sources
// do not clobber each other.
type PresencePatch struct {
	Activity      *string  `json:"activity"`
	Location      *string  `json:"location"`
	CursorX       *float64 `json:"cursorX"`
	CursorY       *float64 `json:"cursorY"`
	IsEditing     *bool    `json:"isEditing"`
	EditingTarget *string  `json:"editingTarget"`
}

// ActivePresence is a presence row joined with live member display info.
type ActivePresence struct {
	Presence
	FullName  null.String `json:"fullName,omitempty"`
	AvatarURL null.String `json:"avatarUrl,omitempty"`
	Role      Role        `json:"role,omitempty"`
}
