package entities

import (
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

type Label struct {
	ID     uuid.UUID   `json:"id"`
	TeamID uuid.UUID   `json:"teamId"`
	Name   string      `json:"name"`
	Color  null.String `json:"color,omitempty"`
}

// IssueLabel is the many-to-many join row, unique per (issue, label).
type IssueLabel struct {
	ID      uuid.UUID `json:"id"`
	TeamID  uuid.UUID `json:"teamId"`
	IssueID uuid.UUID `json:"issueId"`
	LabelID uuid.UUID `json:"labelId"`
}

// CreateLabelInput represents input for creating a label
type CreateLabelInput struct {
	Name  string      `json:"name" binding:"required,min=1,max=60"`
	Color null.String `json:"color"`
}
