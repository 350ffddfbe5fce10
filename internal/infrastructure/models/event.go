package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type TeamEvent struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	TeamID    uuid.UUID   `gorm:"type:uuid;not null;index:idx_team_events_team_created"`
	ActorID   null.String `gorm:"type:varchar(128)"`
	Type      string      `gorm:"type:varchar(40);not null"`
	Payload   string      `gorm:"type:text;not null"`
	CreatedAt time.Time   `gorm:"index:idx_team_events_team_created"`
}

type IssueEvent struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	TeamID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	IssueID   uuid.UUID   `gorm:"type:uuid;not null;index"`
	ActorID   null.String `gorm:"type:varchar(128)"`
	Type      string      `gorm:"type:varchar(40);not null"`
	Payload   string      `gorm:"type:text;not null"`
	CreatedAt time.Time
}
