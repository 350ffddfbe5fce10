package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"teamboard.backend/internal/interfaces/http/middleware"
	"teamboard.backend/internal/interfaces/http/response"
	"teamboard.backend/internal/realtime"
	"teamboard.backend/internal/usecases"
)

// ActivityHandler handles activity feed endpoints
type ActivityHandler struct {
	activityUsecase *usecases.ActivityUsecase
	bus             *realtime.Bus
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityUsecase *usecases.ActivityUsecase, bus *realtime.Bus) *ActivityHandler {
	return &ActivityHandler{activityUsecase: activityUsecase, bus: bus}
}

// ListActivity pages the enriched team feed
// GET /api/v1/teams/:teamId/activity?page=&limit=&pageViews=&groupByDay=
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "teamId")
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	includePageViews := c.Query("pageViews") == "true"

	feed, err := h.activityUsecase.List(c.Request.Context(), middleware.GetIdentity(c), teamID, page, limit, includePageViews)
	if err != nil {
		response.Error(c, err)
		return
	}

	if c.Query("groupByDay") == "true" {
		response.Success(c, http.StatusOK, gin.H{
			"days": usecases.GroupByDay(feed.Events),
			"meta": feed.Meta,
		})
		return
	}
	response.Success(c, http.StatusOK, feed)
}

// ListRecentActivity returns the latest entries for sidebars
// GET /api/v1/teams/:teamId/activity/recent?limit=
func (h *ActivityHandler) ListRecentActivity(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "teamId")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	events, err := h.activityUsecase.ListRecent(c.Request.Context(), middleware.GetIdentity(c), teamID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, events)
}

// LogActivity appends a client-logged event, typically a PAGE_VIEW with
// a page payload
// POST /api/v1/teams/:teamId/activity
func (h *ActivityHandler) LogActivity(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "teamId")
	if !ok {
		return
	}

	var input struct {
		Type    string         `json:"type" binding:"required"`
		Payload map[string]any `json:"payload"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.activityUsecase.LogEvent(c.Request.Context(), middleware.GetIdentity(c), teamID, input.Type, input.Payload); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// StreamActivity serves the team's live event stream over SSE
// GET /api/v1/teams/:teamId/activity/stream
func (h *ActivityHandler) StreamActivity(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "teamId")
	if !ok {
		return
	}

	// membership gate before holding a connection open
	if err := h.activityUsecase.RequireMember(c.Request.Context(), middleware.GetIdentity(c), teamID); err != nil {
		response.Error(c, err)
		return
	}

	h.bus.ServeSSE(c.Writer, c.Request, teamID)
}
