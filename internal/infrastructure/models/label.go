package models

import (
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type Label struct {
	ID     uuid.UUID   `gorm:"type:uuid;primaryKey"`
	TeamID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_labels_team_name"`
	Name   string      `gorm:"type:varchar(60);not null;uniqueIndex:idx_labels_team_name"`
	Color  null.String `gorm:"type:varchar(32)"`
}

type IssueLabel struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	TeamID  uuid.UUID `gorm:"type:uuid;not null;index"`
	IssueID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_issue_labels_issue_label"`
	LabelID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_issue_labels_issue_label"`
}
