package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"teamboard.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	teamHandler     *handlers.TeamHandler
	inviteHandler   *handlers.InviteHandler
	issueHandler    *handlers.IssueHandler
	todoHandler     *handlers.TodoHandler
	labelHandler    *handlers.LabelHandler
	projectHandler  *handlers.ProjectHandler
	activityHandler *handlers.ActivityHandler
	presenceHandler *handlers.PresenceHandler
	authMiddleware  gin.HandlerFunc
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Invite validation is the only public endpoint: the invitee is
		// not authenticated yet when they open the link.
		v1.GET("/invites/validate", d.inviteHandler.ValidateInvite)
		v1.POST("/invites/accept", d.authMiddleware, d.inviteHandler.AcceptInvite)
		v1.DELETE("/invites/:inviteId", d.authMiddleware, d.inviteHandler.CancelInvite)

		// Team routes (protected)
		teams := v1.Group("/teams")
		teams.Use(d.authMiddleware)
		{
			teams.POST("", d.teamHandler.CreateTeam)
			teams.GET("", d.teamHandler.ListMyTeams)
			teams.GET("/by-slug/:slug", d.teamHandler.GetTeamBySlug)
			teams.GET("/:teamId", d.teamHandler.GetTeam)

			teams.GET("/:teamId/members", d.teamHandler.ListMembers)
			teams.GET("/:teamId/members/me/role", d.teamHandler.GetMyRole)
			teams.PUT("/:teamId/members/:userId/role", d.teamHandler.UpdateMemberRole)
			teams.DELETE("/:teamId/members/:userId", d.teamHandler.RemoveMember)

			teams.POST("/:teamId/invites", d.inviteHandler.CreateInvite)
			teams.GET("/:teamId/invites", d.inviteHandler.ListInvites)

			teams.GET("/:teamId/issues", d.issueHandler.ListIssues)
			teams.POST("/:teamId/issues", d.issueHandler.CreateIssue)
			teams.GET("/:teamId/issue-labels", d.labelHandler.ListTeamIssueLabels)

			teams.GET("/:teamId/labels", d.labelHandler.ListLabels)
			teams.POST("/:teamId/labels", d.labelHandler.CreateLabel)

			teams.GET("/:teamId/projects", d.projectHandler.ListProjects)
			teams.POST("/:teamId/projects", d.projectHandler.CreateProject)

			teams.GET("/:teamId/todos", d.todoHandler.ListTeamTodos)
			teams.POST("/:teamId/todos", d.todoHandler.CreateTeamTodo)

			teams.GET("/:teamId/activity", d.activityHandler.ListActivity)
			teams.GET("/:teamId/activity/recent", d.activityHandler.ListRecentActivity)
			teams.POST("/:teamId/activity", d.activityHandler.LogActivity)
			teams.GET("/:teamId/activity/stream", d.activityHandler.StreamActivity)

			teams.POST("/:teamId/presence/heartbeat", d.presenceHandler.Heartbeat)
			teams.GET("/:teamId/presence", d.presenceHandler.ListActive)
		}

		// Issue routes (protected, team resolved from the issue)
		issues := v1.Group("/issues")
		issues.Use(d.authMiddleware)
		{
			issues.GET("/:issueId", d.issueHandler.GetIssue)
			issues.PATCH("/:issueId", d.issueHandler.UpdateIssue)
			issues.POST("/:issueId/move", d.issueHandler.MoveIssue)
			issues.POST("/:issueId/reorder", d.issueHandler.ReorderIssue)
			issues.DELETE("/:issueId", d.issueHandler.DeleteIssue)
			issues.GET("/:issueId/events", d.issueHandler.ListIssueEvents)
			issues.GET("/:issueId/labels", d.labelHandler.ListIssueLabels)
			issues.POST("/:issueId/labels/:labelId", d.labelHandler.ToggleIssueLabel)
		}

		// Todo routes (protected, team or owner resolved from the todo)
		todos := v1.Group("/todos")
		todos.Use(d.authMiddleware)
		{
			todos.GET("", d.todoHandler.ListPersonalTodos)
			todos.POST("", d.todoHandler.CreatePersonalTodo)
			todos.PATCH("/:todoId", d.todoHandler.UpdateTodo)
			todos.POST("/:todoId/toggle", d.todoHandler.ToggleTodoStatus)
			todos.POST("/:todoId/reorder", d.todoHandler.ReorderTodo)
			todos.DELETE("/:todoId", d.todoHandler.DeleteTodo)
		}
	}
}
