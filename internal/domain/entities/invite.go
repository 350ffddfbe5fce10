package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// InviteStatus is returned by validate/accept as a value instead of an
// error so the client can render a specific message per outcome.
type InviteStatus string

const (
	InviteStatusInvalid       InviteStatus = "invalid"
	InviteStatusExpired       InviteStatus = "expired"
	InviteStatusAccepted      InviteStatus = "accepted"
	InviteStatusAlreadyMember InviteStatus = "already_member"
)

// TeamInvite stores only the SHA-256 hash of the single-use token; the
// plaintext token leaves the server exactly once, at creation.
type TeamInvite struct {
	ID              uuid.UUID `json:"id"`
	TeamID          uuid.UUID `json:"teamId"`
	Email           string    `json:"email"`
	Role            Role      `json:"role"`
	TokenHash       string    `json:"-"`
	ExpiresAt       time.Time `json:"expiresAt"`
	AcceptedAt      null.Time `json:"acceptedAt,omitempty"`
	CreatedByUserID string    `json:"createdByUserId"`
	CreatedAt       time.Time `json:"createdAt"`
}

// CreateInviteInput represents input for creating an invite
type CreateInviteInput struct {
	Email string `json:"email" binding:"required,email"`
	Role  Role   `json:"role" binding:"required"`
}

// CreateInviteResult carries the one-time plaintext token back to the caller.
type CreateInviteResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// InviteValidation is the status-valued result of checking a token.
type InviteValidation struct {
	Valid     bool         `json:"valid"`
	Reason    InviteStatus `json:"reason,omitempty"`
	TeamID    uuid.UUID    `json:"teamId,omitempty"`
	TeamSlug  string       `json:"teamSlug,omitempty"`
	TeamName  string       `json:"teamName,omitempty"`
	Email     string       `json:"email,omitempty"`
	Role      Role         `json:"role,omitempty"`
	ExpiresAt time.Time    `json:"expiresAt,omitempty"`
}

// AcceptInviteResult is the status-valued result of redeeming a token.
type AcceptInviteResult struct {
	Status   InviteStatus `json:"status"`
	TeamID   uuid.UUID    `json:"teamId,omitempty"`
	TeamSlug string       `json:"teamSlug,omitempty"`
}
