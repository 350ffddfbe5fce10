package models

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(120);not null"`
	Slug        string    `gorm:"type:varchar(140);not null;uniqueIndex"`
	OwnerUserID string    `gorm:"type:varchar(128);not null"`
	CreatedAt   time.Time
}
