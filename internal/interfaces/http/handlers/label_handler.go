package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"teamboard.backend/internal/domain/entities"
	"teamboard.backend/internal/interfaces/http/middleware"
	"teamboard.backend/internal/interfaces/http/response"
	"teamboard.backend/internal/usecases"
)

// LabelHandler handles label endpoints
type LabelHandler struct {
	labelUsecase *usecases.LabelUsecase
}

// NewLabelHandler creates a new label handler
func NewLabelHandler(labelUsecase *usecases.LabelUsecase) *LabelHandler {
	return &LabelHandler{labelUsecase: labelUsecase}
}

// ListLabels lists the team's labels
// GET /api/v1/teams/:teamId/labels
func (h *LabelHandler) ListLabels(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "teamId")
	if !ok {
		return
	}
	labels, err := h.labelUsecase.List(c.Request.Context(), middleware.GetIdentity(c), teamID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, labels)
}

// CreateLabel adds a label
// POST /api/v1/teams/:teamId/labels
func (h *LabelHandler) CreateLabel(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "teamId")
	if !ok {
		return
	}

	var input entities.CreateLabelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	label, err := h.labelUsecase.Create(c.Request.Context(), middleware.GetIdentity(c), teamID, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, label)
}

// ToggleIssueLabel links or unlinks a label on an issue
// POST /api/v1/issues/:issueId/labels/:labelId
func (h *LabelHandler) ToggleIssueLabel(c *gin.Context) {
	issueID, ok := parseUUIDParam(c, "issueId")
	if !ok {
		return
	}
	labelID, ok := parseUUIDParam(c, "labelId")
	if !ok {
		return
	}

	linked, err := h.labelUsecase.Toggle(c.Request.Context(), middleware.GetIdentity(c), issueID, labelID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"linked": linked})
}

// ListIssueLabels returns the label links on one issue
// GET /api/v1/issues/:issueId/labels
func (h *LabelHandler) ListIssueLabels(c *gin.Context) {
	issueID, ok := parseUUIDParam(c, "issueId")
	if !ok {
		return
	}
	links, err := h.labelUsecase.ListForIssue(c.Request.Context(), middleware.GetIdentity(c), issueID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, links)
}

// ListTeamIssueLabels returns every issue-label link in the team
// GET /api/v1/teams/:teamId/issue-labels
func (h *LabelHandler) ListTeamIssueLabels(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "teamId")
	if !ok {
		return
	}
	links, err := h.labelUsecase.ListIssueLinks(c.Request.Context(), middleware.GetIdentity(c), teamID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, links)
}
