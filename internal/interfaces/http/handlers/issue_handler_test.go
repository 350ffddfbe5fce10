package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"teamboard.backend/internal/domain/entities"
	"teamboard.backend/internal/realtime"
	"teamboard.backend/internal/usecases"
	"teamboard.backend/pkg/utils"
)

type issueTestEnv struct {
	teamRepo   *teamRepoStub
	memberRepo *memberRepoStub
	issueRepo  *issueRepoStub
	uc         *usecases.IssueUsecase
	team       entities.Team
}

func newIssueTestEnv(t *testing.T) *issueTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &issueTestEnv{
		teamRepo:   newTeamRepoStub(),
		memberRepo: newMemberRepoStub(),
		issueRepo:  newIssueRepoStub(),
	}
	authz := usecases.NewAuthzUsecase(env.memberRepo)
	env.uc = usecases.NewIssueUsecase(
		env.issueRepo,
		newIssueEventRepoStub(),
		newTeamEventRepoStub(),
		newProjectRepoStub(),
		authz,
		uowStub{},
		realtime.NewBus(),
	)

	env.team = entities.Team{
		ID:          utils.GenerateUUIDv7(),
		Name:        "Acme",
		Slug:        "acme",
		OwnerUserID: "user_owner",
		CreatedAt:   time.Now(),
	}
	if err := env.teamRepo.Create(context.Background(), &env.team); err != nil {
		t.Fatalf("seed team: %v", err)
	}
	return env
}

func (env *issueTestEnv) addMember(t *testing.T, userID string, role entities.Role) {
	t.Helper()
	if err := env.memberRepo.Create(context.Background(), &entities.TeamMember{
		ID:       utils.GenerateUUIDv7(),
		TeamID:   env.team.ID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now(),
	}); err != nil {
		t.Fatalf("seed member %s: %v", userID, err)
	}
}

func (env *issueTestEnv) routerFor(userID string) *gin.Engine {
	h := NewIssueHandler(env.uc)
	r := gin.New()
	r.Use(identityMiddleware(entities.Identity{UserID: userID}))
	r.GET("/teams/:teamId/issues", h.ListIssues)
	r.POST("/teams/:teamId/issues", h.CreateIssue)
	r.GET("/issues/:issueId", h.GetIssue)
	r.PATCH("/issues/:issueId", h.UpdateIssue)
	r.POST("/issues/:issueId/move", h.MoveIssue)
	r.POST("/issues/:issueId/reorder", h.ReorderIssue)
	r.DELETE("/issues/:issueId", h.DeleteIssue)
	r.GET("/issues/:issueId/events", h.ListIssueEvents)
	return r
}

func TestIssueHandler_BoardColumnFlow(t *testing.T) {
	env := newIssueTestEnv(t)
	env.addMember(t, "user_owner", entities.RoleOwner)
	r := env.routerFor("user_owner")
	teamID := env.team.ID.String()

	createIssue := func(title string) entities.Issue {
		rec := doJSON(r, http.MethodPost, "/teams/"+teamID+"/issues", map[string]any{"title": title})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %s: expected 201, got %d body=%s", title, rec.Code, rec.Body.String())
		}
		var issue entities.Issue
		if err := json.Unmarshal(rec.Body.Bytes(), &issue); err != nil {
			t.Fatalf("unmarshal issue: %v", err)
		}
		return issue
	}

	a := createIssue("A")
	b := createIssue("B")
	if a.Status != entities.IssueStatusBacklog || a.Priority != entities.PriorityMedium {
		t.Fatalf("unexpected defaults: status=%s priority=%s", a.Status, a.Priority)
	}

	rec := doJSON(r, http.MethodPost, "/issues/"+a.ID.String()+"/move", map[string]any{"status": "Open"})
	if rec.Code != http.StatusOK {
		t.Fatalf("move A: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(r, http.MethodPost, "/issues/"+b.ID.String()+"/reorder", map[string]any{
		"status":   "Open",
		"beforeId": a.ID.String(),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("reorder B: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(r, http.MethodGet, "/teams/"+teamID+"/issues?status=Open", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list Open: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var column []entities.Issue
	if err := json.Unmarshal(rec.Body.Bytes(), &column); err != nil {
		t.Fatalf("unmarshal column: %v", err)
	}
	if len(column) != 2 {
		t.Fatalf("expected 2 issues in Open, got %d", len(column))
	}
	if column[0].Title != "B" || column[1].Title != "A" {
		t.Fatalf("expected column [B A], got [%s %s]", column[0].Title, column[1].Title)
	}

	rec = doJSON(r, http.MethodPost, "/issues/"+a.ID.String()+"/move", map[string]any{"status": "Parked"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(r, http.MethodPost, "/issues/not-a-uuid/reorder", map[string]any{"status": "Open"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestIssueHandler_RoleGateFlow(t *testing.T) {
	env := newIssueTestEnv(t)
	env.addMember(t, "user_owner", entities.RoleOwner)
	env.addMember(t, "user_viewer", entities.RoleViewer)

	ownerRouter := env.routerFor("user_owner")
	viewerRouter := env.routerFor("user_viewer")
	teamID := env.team.ID.String()

	rec := doJSON(ownerRouter, http.MethodPost, "/teams/"+teamID+"/issues", map[string]any{"title": "Fix login"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	var issue entities.Issue
	if err := json.Unmarshal(rec.Body.Bytes(), &issue); err != nil {
		t.Fatalf("unmarshal issue: %v", err)
	}

	// viewers can read the board
	rec = doJSON(viewerRouter, http.MethodGet, "/teams/"+teamID+"/issues", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("viewer list: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	// but not write to it
	rec = doJSON(viewerRouter, http.MethodPatch, "/issues/"+issue.ID.String(), map[string]any{"title": "Renamed"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("viewer patch: expected 403, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "insufficient role") {
		t.Fatalf("expected insufficient role message, got %s", rec.Body.String())
	}

	// promotion lifts the gate
	authz := usecases.NewAuthzUsecase(env.memberRepo)
	teamUC := usecases.NewTeamUsecase(env.teamRepo, env.memberRepo, authz, uowStub{})
	teamHandler := NewTeamHandler(teamUC)
	teamRouter := gin.New()
	teamRouter.Use(identityMiddleware(entities.Identity{UserID: "user_owner"}))
	teamRouter.PUT("/teams/:teamId/members/:userId/role", teamHandler.UpdateMemberRole)

	rec = doJSON(teamRouter, http.MethodPut, "/teams/"+teamID+"/members/user_viewer/role", map[string]any{"role": "MEMBER"})
	if rec.Code != http.StatusOK {
		t.Fatalf("promote: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(viewerRouter, http.MethodPatch, "/issues/"+issue.ID.String(), map[string]any{"title": "Renamed"})
	if rec.Code != http.StatusOK {
		t.Fatalf("member patch: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var renamed entities.Issue
	if err := json.Unmarshal(rec.Body.Bytes(), &renamed); err != nil {
		t.Fatalf("unmarshal patched issue: %v", err)
	}
	if renamed.Title != "Renamed" {
		t.Fatalf("expected renamed title, got %s", renamed.Title)
	}
}
