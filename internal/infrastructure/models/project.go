package models

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TeamID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_projects_team_key"`
	Name      string    `gorm:"type:varchar(120);not null"`
	Key       string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_projects_team_key"`
	CreatedAt time.Time
}
