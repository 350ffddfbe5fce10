package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type Issue struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey"`
	TeamID        uuid.UUID     `gorm:"type:uuid;not null;index;index:idx_issues_team_status"`
	ProjectID     uuid.NullUUID `gorm:"type:uuid;index"`
	Title         string        `gorm:"type:varchar(500);not null"`
	Status        string        `gorm:"type:varchar(32);not null;index:idx_issues_team_status"`
	Priority      string        `gorm:"type:varchar(16);not null"`
	Type          null.String   `gorm:"type:varchar(60)"`
	AssigneeID    null.String   `gorm:"type:varchar(128);index"`
	ReporterID    string        `gorm:"type:varchar(128);not null"`
	SortOrder     null.Float64  `gorm:"column:sort_order"`
	SummaryDoc    null.JSON     `gorm:"type:text"`
	DetailsDoc    null.JSON     `gorm:"type:text"`
	ImpactDoc     null.JSON     `gorm:"type:text"`
	StepsTakenDoc null.JSON     `gorm:"type:text"`
	NextStepsDoc  null.JSON     `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
