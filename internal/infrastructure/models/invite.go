package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type TeamInvite struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	TeamID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Email           string    `gorm:"type:varchar(254);not null;index:idx_team_invites_email_team"`
	Role            string    `gorm:"type:varchar(16);not null"`
	TokenHash       string    `gorm:"type:char(64);not null;uniqueIndex"`
	ExpiresAt       time.Time `gorm:"not null"`
	AcceptedAt      null.Time
	CreatedByUserID string `gorm:"type:varchar(128);not null"`
	CreatedAt       time.Time
}
