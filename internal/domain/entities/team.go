package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type Team struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	OwnerUserID string    `json:"ownerUserId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TeamMember is the (team, user) membership row. FullName and AvatarURL
// are cached from the identity provider and refreshed by the role gate.
type TeamMember struct {
	ID        uuid.UUID   `json:"id"`
	TeamID    uuid.UUID   `json:"teamId"`
	UserID    string      `json:"userId"`
	Role      Role        `json:"role"`
	FullName  null.String `json:"fullName,omitempty"`
	AvatarURL null.String `json:"avatarUrl,omitempty"`
	JoinedAt  time.Time   `json:"joinedAt"`
}

// TeamMembership pairs a team with the caller's role in it.
type TeamMembership struct {
	Team *Team `json:"team"`
	Role Role  `json:"role"`
}

// CreateTeamInput represents input for creating a team
type CreateTeamInput struct {
	Name string `json:"name" binding:"required,min=2,max=120"`
}
