package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"teamboard.backend/internal/domain/entities"
	"teamboard.backend/internal/interfaces/http/middleware"
	"teamboard.backend/internal/interfaces/http/response"
	"teamboard.backend/internal/usecases"
)

// PresenceHandler handles presence endpoints
type PresenceHandler struct {
	presenceUsecase *usecases.PresenceUsecase
}

// NewPresenceHandler creates a new presence handler
func NewPresenceHandler(presenceUsecase *usecases.PresenceUsecase) *PresenceHandler {
	return &PresenceHandler{presenceUsecase: presenceUsecase}
}

// Heartbeat merges the caller's presence signals and bumps lastSeen
// POST /api/v1/teams/:teamId/presence/heartbeat
func (h *PresenceHandler) Heartbeat(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "teamId")
	if !ok {
		return
	}

	var patch entities.PresencePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.presenceUsecase.Heartbeat(c.Request.Context(), middleware.GetIdentity(c), teamID, patch); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListActive returns members seen within the window
// GET /api/v1/teams/:teamId/presence?sinceMs=
func (h *PresenceHandler) ListActive(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "teamId")
	if !ok {
		return
	}

	var window time.Duration
	if v := c.Query("sinceMs"); v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil || ms <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sinceMs"})
			return
		}
		window = time.Duration(ms) * time.Millisecond
	}

	active, err := h.presenceUsecase.ListActive(c.Request.Context(), middleware.GetIdentity(c), teamID, window)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, active)
}
