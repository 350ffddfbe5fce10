package entities

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID        uuid.UUID `json:"id"`
	TeamID    uuid.UUID `json:"teamId"`
	Name      string    `json:"name"`
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name string `json:"name" binding:"required,min=1,max=120"`
	Key  string `json:"key" binding:"required,min=1,max=10"`
}
