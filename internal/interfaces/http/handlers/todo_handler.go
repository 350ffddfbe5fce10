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

// TodoHandler handles team and personal todo endpoints
type TodoHandler struct {
	todoUsecase *usecases.TodoUsecase
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(todoUsecase *usecases.TodoUsecase) *TodoHandler {
	return &TodoHandler{todoUsecase: todoUsecase}
}

func todoFilterFromQuery(c *gin.Context) entities.TodoFilter {
	var filter entities.TodoFilter
	if v := c.Query("status"); v != "" {
		status := entities.TodoStatus(v)
		filter.Status = &status
	}
	filter.AssigneeID = c.Query("assigneeId")
	filter.Search = c.Query("search")
	return filter
}

// ListTeamTodos lists a team's todos
// GET /api/v1/teams/:teamId/todos?status=&assigneeId=&search=
func (h *TodoHandler) ListTeamTodos(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "teamId")
	if !ok {
		return
	}
	todos, err := h.todoUsecase.ListTeam(c.Request.Context(), middleware.GetIdentity(c), teamID, todoFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, todos)
}

// ListPersonalTodos lists the caller's own todos
// GET /api/v1/todos
func (h *TodoHandler) ListPersonalTodos(c *gin.Context) {
	todos, err := h.todoUsecase.ListPersonal(c.Request.Context(), middleware.GetIdentity(c), todoFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, todos)
}

// CreateTeamTodo adds a team todo
// POST /api/v1/teams/:teamId/todos
func (h *TodoHandler) CreateTeamTodo(c *gin.Context) {
	teamID, ok := parseUUIDParam(c, "teamId")
	if !ok {
		return
	}

	var input entities.CreateTodoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := h.todoUsecase.CreateTeam(c.Request.Context(), middleware.GetIdentity(c), teamID, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, todo)
}

// CreatePersonalTodo adds a todo to the caller's private list
// POST /api/v1/todos
func (h *TodoHandler) CreatePersonalTodo(c *gin.Context) {
	var input entities.CreateTodoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := h.todoUsecase.CreatePersonal(c.Request.Context(), middleware.GetIdentity(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, todo)
}

// UpdateTodo applies a partial patch
// PATCH /api/v1/todos/:todoId
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	todoID, ok := parseUUIDParam(c, "todoId")
	if !ok {
		return
	}

	var patch entities.TodoPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := h.todoUsecase.Update(c.Request.Context(), middleware.GetIdentity(c), todoID, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, todo)
}

// ToggleTodoStatus advances the todo one workflow stage
// POST /api/v1/todos/:todoId/toggle
func (h *TodoHandler) ToggleTodoStatus(c *gin.Context) {
	todoID, ok := parseUUIDParam(c, "todoId")
	if !ok {
		return
	}
	todo, err := h.todoUsecase.ToggleStatus(c.Request.Context(), middleware.GetIdentity(c), todoID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, todo)
}

// ReorderTodo places the todo ahead of another within a status partition
// POST /api/v1/todos/:todoId/reorder
func (h *TodoHandler) ReorderTodo(c *gin.Context) {
	todoID, ok := parseUUIDParam(c, "todoId")
	if !ok {
		return
	}

	var input struct {
		Status   entities.TodoStatus `json:"status" binding:"required"`
		BeforeID *uuid.UUID          `json:"beforeId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	beforeID := uuid.Nil
	if input.BeforeID != nil {
		beforeID = *input.BeforeID
	}

	todo, err := h.todoUsecase.Reorder(c.Request.Context(), middleware.GetIdentity(c), todoID, input.Status, beforeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, todo)
}

// DeleteTodo removes a todo
// DELETE /api/v1/todos/:todoId
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	todoID, ok := parseUUIDParam(c, "todoId")
	if !ok {
		return
	}
	if err := h.todoUsecase.Delete(c.Request.Context(), middleware.GetIdentity(c), todoID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
