package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"teamboard.backend/internal/domain/entities"
	"teamboard.backend/internal/interfaces/http/middleware"
	"teamboard.backend/internal/interfaces/http/response"
	"teamboard.backend/internal/usecases"
)

// InviteHandler handles invite endpoints
type InviteHandler struct {
	inviteUsecase *usecases.InviteUsecase
}

// NewInviteHandler creates a new invite handler
func NewInviteHandler(inviteUsecase *usecases.InviteUsecase) *InviteHandler {
	return &InviteHandler{inviteUsecase: inviteUsecase}
}

// CreateInvite mints a single-use invite token
// POST /api/v1/teams/:teamId/invites
func (h *InviteHandler) CreateInvite(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "teamId")
	if !ok {
		return
	}

	var input entities.CreateInviteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.inviteUsecase.Create(c.Request.Context(), middleware.GetIdentity(c), teamID, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// ListInvites lists the team's open invites
// GET /api/v1/teams/:teamId/invites
func (h *InviteHandler) ListInvites(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "teamId")
	if !ok {
		return
	}
	invites, err := h.inviteUsecase.ListPending(c.Request.Context(), middleware.GetIdentity(c), teamID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, invites)
}

// ValidateInvite checks a token without consuming it (public)
// GET /api/v1/invites/validate?token=
func (h *InviteHandler) ValidateInvite(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}
	validation, err := h.inviteUsecase.Validate(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, validation)
}

// AcceptInvite redeems a token for the authenticated caller
// POST /api/v1/invites/accept
func (h *InviteHandler) AcceptInvite(c *gin.Context) {
	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.inviteUsecase.Accept(c.Request.Context(), middleware.GetIdentity(c), input.Token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// CancelInvite revokes a pending invite
// DELETE /api/v1/invites/:inviteId
func (h *InviteHandler) CancelInvite(c *gin.Context) {
	inviteID, ok := parseUUIDParam(c, "inviteId")
	if !ok {
		return
	}
	if err := h.inviteUsecase.Cancel(c.Request.Context(), middleware.GetIdentity(c), inviteID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
