package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type Todo struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Scope           string        `gorm:"type:varchar(16);not null"`
	TeamID          uuid.NullUUID `gorm:"type:uuid;index;index:idx_todos_team_status"`
	OwnerUserID     null.String   `gorm:"type:varchar(128);index;index:idx_todos_owner_status"`
	Title           string        `gorm:"type:varchar(500);not null"`
	Status          string        `gorm:"type:varchar(32);not null;index:idx_todos_team_status;index:idx_todos_owner_status"`
	AssigneeID      null.String   `gorm:"type:varchar(128)"`
	DueDate         null.Time
	SortOrder       null.Float64 `gorm:"column:sort_order"`
	CreatedByUserID string       `gorm:"type:varchar(128);not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
