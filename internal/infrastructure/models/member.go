package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type TeamMember struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	TeamID    uuid.UUID   `gorm:"type:uuid;not null;index;uniqueIndex:idx_team_members_team_user"`
	UserID    string      `gorm:"type:varchar(128);not null;index;uniqueIndex:idx_team_members_team_user"`
	Role      string      `gorm:"type:varchar(16);not null"`
	FullName  null.String `gorm:"type:varchar(200)"`
	AvatarURL null.String `gorm:"type:text"`
	JoinedAt  time.Time
}
