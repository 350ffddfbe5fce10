package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"teamboard.backend/internal/domain/entities"
	"teamboard.backend/internal/domain/repositories"
	"teamboard.backend/pkg/utils"
)

// ActivityUsecase is the read side of the team event log. Events are
// stored with minimal payloads; actor and entity details are resolved at
// read time so the feed always shows current display data.
type ActivityUsecase struct {
	teamEventRepo repositories.TeamEventRepository
	memberRepo    repositories.MemberRepository
	issueRepo     repositories.IssueRepository
	todoRepo      repositories.TodoRepository
	projectRepo   repositories.ProjectRepository
	authz         *AuthzUsecase
}

// NewActivityUsecase creates a new activity usecase
func NewActivityUsecase(
	teamEventRepo repositories.TeamEventRepository,
	memberRepo repositories.MemberRepository,
	issueRepo repositories.IssueRepository,
	todoRepo repositories.TodoRepository,
	projectRepo repositories.ProjectRepository,
	authz *AuthzUsecase,
) *ActivityUsecase {
	return &ActivityUsecase{
		teamEventRepo: teamEventRepo,
		memberRepo:    memberRepo,
		issueRepo:     issueRepo,
		todoRepo:      todoRepo,
		projectRepo:   projectRepo,
		authz:         authz,
	}
}

// ActivityPage is one page of the enriched feed.
type ActivityPage struct {
	Events []*entities.EnrichedTeamEvent `json:"events"`
	Meta   utils.PaginationMeta          `json:"meta"`
}

// List pages the enriched feed reverse-chronologically. Page views are
// part of the log but excluded from the feed by default.
func (u *ActivityUsecase) List(ctx context.Context, identity entities.Identity, teamID uuid.UUID, page, limit int, includePageViews bool) (*ActivityPage, error) {
	if _, err := u.authz.RequireTeamMember(ctx, identity, teamID); err != nil {
		return nil, err
	}

	params := utils.GetPaginationParams(page, limit)
	events, total, err := u.teamEventRepo.List(ctx, teamID, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, err
	}

	if !includePageViews {
		filtered := events[:0]
		for _, ev := range events {
			if ev.Type != entities.EventPageView {
				filtered = append(filtered, ev)
			}
		}
		events = filtered
	}

	enriched, err := u.enrich(ctx, teamID, events)
	if err != nil {
		return nil, err
	}
	return &ActivityPage{
		Events: enriched,
		Meta:   utils.CalculateMeta(total, params.Page, params.Limit),
	}, nil
}

// ListRecent returns the latest non-page-view entries for sidebars.
func (u *ActivityUsecase) ListRecent(ctx context.Context, identity entities.Identity, teamID uuid.UUID, limit int) ([]*entities.EnrichedTeamEvent, error) {
	if _, err := u.authz.RequireTeamMember(ctx, identity, teamID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	// over-fetch to survive page-view rows in the window
	events, err := u.teamEventRepo.ListRecent(ctx, teamID, limit*2)
	if err != nil {
		return nil, err
	}
	kept := make([]*entities.TeamEvent, 0, limit)
	for _, ev := range events {
		if ev.Type == entities.EventPageView {
			continue
		}
		kept = append(kept, ev)
		if len(kept) == limit {
			break
		}
	}
	return u.enrich(ctx, teamID, kept)
}

// LastEdited returns the most recent mutation event, or nil when the
// team has none yet.
func (u *ActivityUsecase) LastEdited(ctx context.Context, identity entities.Identity, teamID uuid.UUID) (*entities.EnrichedTeamEvent, error) {
	recent, err := u.ListRecent(ctx, identity, teamID, 1)
	if err != nil {
		return nil, err
	}
	if len(recent) == 0 {
		return nil, nil
	}
	return recent[0], nil
}

// RequireMember exposes the membership gate for transports that hold a
// connection open before any usecase call, like the SSE stream.
func (u *ActivityUsecase) RequireMember(ctx context.Context, identity entities.Identity, teamID uuid.UUID) error {
	_, err := u.authz.RequireTeamMember(ctx, identity, teamID)
	return err
}

// LogEvent appends a free-form entry to the team feed. Any member may
// log; entries written here never reach the realtime bus.
func (u *ActivityUsecase) LogEvent(ctx context.Context, identity entities.Identity, teamID uuid.UUID, eventType string, payload map[string]any) error {
	member, err := u.authz.RequireTeamMember(ctx, identity, teamID)
	if err != nil {
		return err
	}
	if payload == nil {
		payload = map[string]any{}
	}
	return u.teamEventRepo.Create(ctx, &entities.TeamEvent{
		ID:        utils.GenerateUUIDv7(),
		TeamID:    teamID,
		ActorID:   null.StringFrom(member.UserID),
		Type:      eventType,
		Payload:   payload,
		CreatedAt: time.Now(),
	})
}

// LogPageView records the most common client-logged event.
func (u *ActivityUsecase) LogPageView(ctx context.Context, identity entities.Identity, teamID uuid.UUID, page string) error {
	return u.LogEvent(ctx, identity, teamID, entities.EventPageView, map[string]any{"page": page})
}

// DayGroup is a feed section: one calendar day of events, newest day first.
type DayGroup struct {
	Day    string                        `json:"day"`
	Events []*entities.EnrichedTeamEvent `json:"events"`
}

// GroupByDay sections an already-ordered feed by calendar day.
func GroupByDay(events []*entities.EnrichedTeamEvent) []DayGroup {
	var groups []DayGroup
	for _, ev := range events {
		day := ev.CreatedAt.Format("2006-01-02")
		if len(groups) == 0 || groups[len(groups)-1].Day != day {
			groups = append(groups, DayGroup{Day: day})
		}
		groups[len(groups)-1].Events = append(groups[len(groups)-1].Events, ev)
	}
	return groups
}

// enrich joins each event with live actor info and resolves the target
// entity. Deleted entities render from the payload's cached title
// instead of failing the whole feed.
func (u *ActivityUsecase) enrich(ctx context.Context, teamID uuid.UUID, events []*entities.TeamEvent) ([]*entities.EnrichedTeamEvent, error) {
	members, err := u.memberRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	roster := make(map[string]*entities.TeamMember, len(members))
	for _, m := range members {
		roster[m.UserID] = m
	}

	enriched := make([]*entities.EnrichedTeamEvent, 0, len(events))
	for _, ev := range events {
		row := &entities.EnrichedTeamEvent{TeamEvent: ev}
		if ev.ActorID.Valid {
			if m, ok := roster[ev.ActorID.String]; ok {
				row.Actor = &entities.EventActor{
					UserID:    m.UserID,
					FullName:  m.FullName,
					AvatarURL: m.AvatarURL,
					Role:      m.Role,
				}
			} else {
				// actor left the team; keep the bare id
				row.Actor = &entities.EventActor{UserID: ev.ActorID.String}
			}
		}
		row.Entity = u.resolveEntity(ctx, ev)
		row.Change = extractChange(ev)
		enriched = append(enriched, row)
	}
	return enriched, nil
}

func (u *ActivityUsecase) resolveEntity(ctx context.Context, ev *entities.TeamEvent) *entities.EventEntity {
	switch ev.Type {
	case entities.EventIssueCreated, entities.EventIssueUpdated,
		entities.EventIssueStatusChanged, entities.EventIssueCommented:
		return u.resolveIssue(ctx, ev)
	case entities.EventTodoCreated, entities.EventTodoUpdated, entities.EventTodoStatusChanged:
		return u.resolveTodo(ctx, ev)
	case entities.EventProjectCreated:
		return u.resolveProject(ctx, ev)
	case entities.EventPageView:
		return &entities.EventEntity{Type: "page", Title: payloadString(ev.Payload, "page")}
	default:
		return &entities.EventEntity{Type: "unknown"}
	}
}

func (u *ActivityUsecase) resolveIssue(ctx context.Context, ev *entities.TeamEvent) *entities.EventEntity {
	entity := &entities.EventEntity{Type: "issue", Title: payloadString(ev.Payload, "title")}
	id, err := uuid.Parse(payloadString(ev.Payload, "issueId"))
	if err != nil {
		return entity
	}
	issue, err := u.issueRepo.GetByID(ctx, id)
	if err != nil {
		return entity
	}
	entity.ID = issue.ID.String()
	entity.Title = issue.Title
	return entity
}

func (u *ActivityUsecase) resolveTodo(ctx context.Context, ev *entities.TeamEvent) *entities.EventEntity {
	entity := &entities.EventEntity{Type: "todo", Title: payloadString(ev.Payload, "title")}
	id, err := uuid.Parse(payloadString(ev.Payload, "todoId"))
	if err != nil {
		return entity
	}
	todo, err := u.todoRepo.GetByID(ctx, id)
	if err != nil {
		return entity
	}
	entity.ID = todo.ID.String()
	entity.Title = todo.Title
	return entity
}

func (u *ActivityUsecase) resolveProject(ctx context.Context, ev *entities.TeamEvent) *entities.EventEntity {
	entity := &entities.EventEntity{
		Type:  "project",
		Title: payloadString(ev.Payload, "name"),
		Key:   payloadString(ev.Payload, "key"),
	}
	id, err := uuid.Parse(payloadString(ev.Payload, "projectId"))
	if err != nil {
		return entity
	}
	project, err := u.projectRepo.GetByID(ctx, id)
	if err != nil {
		return entity
	}
	entity.ID = project.ID.String()
	entity.Title = project.Name
	entity.Key = project.Key
	return entity
}

func extractChange(ev *entities.TeamEvent) *entities.EventChange {
	switch ev.Type {
	case entities.EventIssueStatusChanged, entities.EventTodoStatusChanged:
		return &entities.EventChange{
			Label: "Status",
			From:  payloadString(ev.Payload, "from"),
			To:    payloadString(ev.Payload, "to"),
		}
	case entities.EventIssueUpdated, entities.EventTodoUpdated:
		return &entities.EventChange{Fields: payloadStrings(ev.Payload, "changedFields")}
	default:
		return nil
	}
}

func payloadString(payload map[string]any, key string) string {
	if s, ok := payload[key].(string); ok {
		return s
	}
	return ""
}

func payloadStrings(payload map[string]any, key string) []string {
	var out []string
	switch v := payload[key].(type) {
	case []string:
		out = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}
