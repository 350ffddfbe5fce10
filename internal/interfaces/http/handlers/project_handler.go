package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"teamboard.backend/internal/domain/entities"
	"teamboard.backend/internal/interfaces/http/middleware"
	"teamboard.backend/internal/interfaces/http/response"
	"teamboard.backend/internal/usecases"
)

// ProjectHandler handles project endpoints
type ProjectHandler struct {
	projectUsecase *usecases.ProjectUsecase
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectUsecase *usecases.ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{projectUsecase: projectUsecase}
}

// ListProjects lists the team's projects
// GET /api/v1/teams/:teamId/projects
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "teamId")
	if !ok {
		return
	}
	projects, err := h.projectUsecase.List(c.Request.Context(), middleware.GetIdentity(c), teamID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, projects)
}

// CreateProject adds a project
// POST /api/v1/teams/:teamId/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "teamId")
	if !ok {
		return
	}

	var input entities.CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectUsecase.Create(c.Request.Context(), middleware.GetIdentity(c), teamID, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, project)
}
