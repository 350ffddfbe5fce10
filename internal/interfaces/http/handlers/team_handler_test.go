package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"teamboard.backend/internal/domain/entities"
	"teamboard.backend/internal/usecases"
	"teamboard.backend/pkg/utils"
)

func newTeamRouter(teamRepo *teamRepoStub, memberRepo *memberRepoStub, identity entities.Identity) *gin.Engine {
	authz := usecases.NewAuthzUsecase(memberRepo)
	uc := usecases.NewTeamUsecase(teamRepo, memberRepo, authz, uowStub{})
	h := NewTeamHandler(uc)

	r := gin.New()
	r.Use(identityMiddleware(identity))
	r.POST("/teams", h.CreateTeam)
	r.GET("/teams", h.ListMyTeams)
	r.GET("/teams/by-slug/:slug", h.GetTeamBySlug)
	r.GET("/teams/:teamId", h.GetTeam)
	r.GET("/teams/:teamId/members", h.ListMembers)
	r.GET("/teams/:teamId/members/me/role", h.GetMyRole)
	r.PUT("/teams/:teamId/members/:userId/role", h.UpdateMemberRole)
	r.DELETE("/teams/:teamId/members/:userId", h.RemoveMember)
	return r
}

func doJSON(r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestTeamHandler_FullFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	teamRepo := newTeamRepoStub()
	memberRepo := newMemberRepoStub()
	owner := entities.Identity{UserID: "user_owner", Email: "owner@example.com", FullName: "Olive Owner"}
	r := newTeamRouter(teamRepo, memberRepo, owner)

	rec := doJSON(r, http.MethodPost, "/teams", map[string]any{"name": "Acme Rockets"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	var team entities.Team
	if err := json.Unmarshal(rec.Body.Bytes(), &team); err != nil {
		t.Fatalf("unmarshal create response: %v", err)
	}
	if team.Slug != "acme-rockets" {
		t.Fatalf("unexpected slug: %s", team.Slug)
	}
	if team.OwnerUserID != "user_owner" {
		t.Fatalf("unexpected owner: %s", team.OwnerUserID)
	}

	rec = doJSON(r, http.MethodGet, "/teams/by-slug/acme-rockets", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 by slug, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(r, http.MethodGet, "/teams/"+team.ID.String()+"/members/me/role", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 my role, got %d body=%s", rec.Code, rec.Body.String())
	}
	var roleResp struct {
		Role entities.Role `json:"role"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &roleResp); err != nil {
		t.Fatalf("unmarshal role response: %v", err)
	}
	if roleResp.Role != entities.RoleOwner {
		t.Fatalf("expected OWNER, got %s", roleResp.Role)
	}

	// second member joins out of band, owner promotes them
	if err := memberRepo.Create(context.Background(), &entities.TeamMember{
		ID:       utils.GenerateUUIDv7(),
		TeamID:   team.ID,
		UserID:   "user_2",
		Role:     entities.RoleViewer,
		JoinedAt: time.Now(),
	}); err != nil {
		t.Fatalf("seed member: %v", err)
	}

	rec = doJSON(r, http.MethodPut, "/teams/"+team.ID.String()+"/members/user_2/role", map[string]any{"role": "MEMBER"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 role update, got %d body=%s", rec.Code, rec.Body.String())
	}
	var updated entities.TeamMember
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("unmarshal member response: %v", err)
	}
	if updated.Role != entities.RoleMember {
		t.Fatalf("expected MEMBER after update, got %s", updated.Role)
	}

	rec = doJSON(r, http.MethodGet, "/teams/"+team.ID.String()+"/members", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 members, got %d body=%s", rec.Code, rec.Body.String())
	}
	var members []entities.TeamMember
	if err := json.Unmarshal(rec.Body.Bytes(), &members); err != nil {
		t.Fatalf("unmarshal members: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}

	rec = doJSON(r, http.MethodDelete, "/teams/"+team.ID.String()+"/members/user_2", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 remove, got %d body=%s", rec.Code, rec.Body.String())
	}

	// outsiders cannot see the team at all
	rec = doJSON(r, http.MethodGet, "/teams/"+uuid.New().String(), nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for unknown team, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(r, http.MethodGet, "/teams/not-a-uuid", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestTeamHandler_CreateRequiresIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := newTeamRouter(newTeamRepoStub(), newMemberRepoStub(), entities.Identity{})

	rec := doJSON(r, http.MethodPost, "/teams", map[string]any{"name": "Ghost Team"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}
