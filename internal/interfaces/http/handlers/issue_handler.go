package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"teamboard.backend/internal/domain/entities"
	"teamboard.backend/internal/interfaces/http/middleware"
	"teamboard.backend/internal/interfaces/http/response"
	"teamboard.backend/internal/usecases"
)

// IssueHandler handles issue board endpoints
type IssueHandler struct {
	issueUsecase *usecases.IssueUsecase
}

// NewIssueHandler creates a new issue handler
func NewIssueHandler(issueUsecase *usecases.IssueUsecase) *IssueHandler {
	return &IssueHandler{issueUsecase: issueUsecase}
}

// ListIssues lists a team's issues with optional filters
// GET /api/v1/teams/:teamId/issues?status=&projectId=&assigneeId=&priority=&labelId=&search=
func (h *IssueHandler) ListIssues(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "teamId")
	if !ok {
		return
	}

	var filter entities.IssueFilter
	if v := c.Query("status"); v != "" {
		status := entities.IssueStatus(v)
		filter.Status = &status
	}
	if v := c.Query("priority"); v != "" {
		priority := entities.IssuePriority(v)
		filter.Priority = &priority
	}
	if v := c.Query("projectId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid projectId"})
			return
		}
		filter.ProjectID = uuid.NullUUID{UUID: id, Valid: true}
	}
	if v := c.Query("labelId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid labelId"})
			return
		}
		filter.LabelID = uuid.NullUUID{UUID: id, Valid: true}
	}
	filter.AssigneeID = c.Query("assigneeId")
	filter.Search = c.Query("search")

	issues, err := h.issueUsecase.List(c.Request.Context(), middleware.GetIdentity(c), teamID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, issues)
}

// GetIssue returns one issue
// GET /api/v1/issues/:issueId
func (h *IssueHandler) GetIssue(c *gin.Context) {
	issueID, ok := parseUUIDParam(c, "issueId")
	if !ok {
		return
	}
	issue, err := h.issueUsecase.Get(c.Request.Context(), middleware.GetIdentity(c), issueID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, issue)
}

// CreateIssue adds an issue to the team board
// POST /api/v1/teams/:teamId/issues
func (h *IssueHandler) CreateIssue(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "teamId")
	if !ok {
		return
	}

	var input entities.CreateIssueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := h.issueUsecase.Create(c.Request.Context(), middleware.GetIdentity(c), teamID, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, issue)
}

// UpdateIssue applies a partial patch
// PATCH /api/v1/issues/:issueId
func (h *IssueHandler) UpdateIssue(c *gin.Context) {
	issueID, ok := parseUUIDParam(c, "issueId")
	if !ok {
		return
	}

	var patch entities.IssuePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := h.issueUsecase.Update(c.Request.Context(), middleware.GetIdentity(c), issueID, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, issue)
}

// MoveIssue drops the issue at the end of another status column
// POST /api/v1/issues/:issueId/move
func (h *IssueHandler) MoveIssue(c *gin.Context) {
	issueID, ok := parseUUIDParam(c, "issueId")
	if !ok {
		return
	}

	var input struct {
		Status entities.IssueStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := h.issueUsecase.Move(c.Request.Context(), middleware.GetIdentity(c), issueID, input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, issue)
}

// ReorderIssue places the issue ahead of another within a column
// POST /api/v1/issues/:issueId/reorder
func (h *IssueHandler) ReorderIssue(c *gin.Context) {
	issueID, ok := parseUUIDParam(c, "issueId")
	if !ok {
		return
	}

	var input struct {
		Status   entities.IssueStatus `json:"status" binding:"required"`
		BeforeID *uuid.UUID           `json:"beforeId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	beforeID := uuid.Nil
	if input.BeforeID != nil {
		beforeID = *input.BeforeID
	}

	issue, err := h.issueUsecase.Reorder(c.Request.Context(), middleware.GetIdentity(c), issueID, input.Status, beforeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, issue)
}

// DeleteIssue removes an issue
// DELETE /api/v1/issues/:issueId
func (h *IssueHandler) DeleteIssue(c *gin.Context) {
	issueID, ok := parseUUIDParam(c, "issueId")
	if !ok {
		return
	}
	if err := h.issueUsecase.Delete(c.Request.Context(), middleware.GetIdentity(c), issueID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListIssueEvents returns the issue's history stream
// GET /api/v1/issues/:issueId/events
func (h *IssueHandler) ListIssueEvents(c *gin.Context) {
	issueID, ok := parseUUIDParam(c, "issueId")
	if !ok {
		return
	}
	events, err := h.issueUsecase.ListEvents(c.Request.Context(), middleware.GetIdentity(c), issueID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, events)
}
