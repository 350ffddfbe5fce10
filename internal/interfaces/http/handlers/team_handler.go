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

// TeamHandler handles team and membership endpoints
type TeamHandler struct {
	teamUsecase *usecases.TeamUsecase
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamUsecase *usecases.TeamUsecase) *TeamHandler {
	return &TeamHandler{teamUsecase: teamUsecase}
}

// CreateTeam handles team creation
// POST /api/v1/teams
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var input entities.CreateTeamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teamUsecase.Create(c.Request.Context(), middleware.GetIdentity(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, team)
}

// ListMyTeams lists the caller's teams with their role in each
// GET /api/v1/teams
func (h *TeamHandler) ListMyTeams(c *gin.Context) {
	memberships, err := h.teamUsecase.ListForUser(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, memberships)
}

// GetTeamBySlug resolves a team by its URL slug
// GET /api/v1/teams/by-slug/:slug
func (h *TeamHandler) GetTeamBySlug(c *gin.Context) {
	membership, err := h.teamUsecase.GetBySlug(c.Request.Context(), middleware.GetIdentity(c), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, membership)
}

// GetTeam returns one team
// GET /api/v1/teams/:teamId
func (h *TeamHandler) GetTeam(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "teamId")
	if !ok {
		return
	}
	team, err := h.teamUsecase.Get(c.Request.Context(), middleware.GetIdentity(c), teamID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, team)
}

// ListMembers returns the team roster
// GET /api/v1/teams/:teamId/members
func (h *TeamHandler) ListMembers(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "teamId")
	if !ok {
		return
	}
	members, err := h.teamUsecase.ListMembers(c.Request.Context(), middleware.GetIdentity(c), teamID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, members)
}

// GetMyRole returns the caller's role in the team
// GET /api/v1/teams/:teamId/members/me/role
func (h *TeamHandler) GetMyRole(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "teamId")
	if !ok {
		return
	}
	role, err := h.teamUsecase.GetMyRole(c.Request.Context(), middleware.GetIdentity(c), teamID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"role": role})
}

// UpdateMemberRole changes a member's role
// PUT /api/v1/teams/:teamId/members/:userId/role
func (h *TeamHandler) UpdateMemberRole(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "teamId")
	if !ok {
		return
	}

	var input struct {
		Role entities.Role `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.teamUsecase.UpdateMemberRole(c.Request.Context(), middleware.GetIdentity(c), teamID, c.Param("userId"), input.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, member)
}

// RemoveMember removes a member from the team
// DELETE /api/v1/teams/:teamId/members/:userId
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "teamId")
	if !ok {
		return
	}
	if err := h.teamUsecase.RemoveMember(c.Request.Context(), middleware.GetIdentity(c), teamID, c.Param("userId")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
