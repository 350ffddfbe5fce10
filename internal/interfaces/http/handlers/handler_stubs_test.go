package handlers

import (
	"context"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"teamboard.backend/internal/domain/entities"
	domainerrors "teamboard.backend/internal/domain/errors"
	"teamboard.backend/internal/interfaces/http/middleware"
)

// identityMiddleware stands in for the auth layer: it pins the caller's
// identity for every request the test router serves.
func identityMiddleware(identity entities.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.IdentityKey, identity)
		c.Next()
	}
}

type teamRepoStub struct {
	items map[uuid.UUID]*entities.Team
}

func newTeamRepoStub() *teamRepoStub {
	return &teamRepoStub{items: map[uuid.UUID]*entities.Team{}}
}

func (s *teamRepoStub) Create(_ context.Context, team *entities.Team) error {
	s.items[team.ID] = team
	return nil
}

func (s *teamRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Team, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return item, nil
}

func (s *teamRepoStub) GetBySlug(_ context.Context, slug string) (*entities.Team, error) {
	for _, item := range s.items {
		if item.Slug == slug {
			return item, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *teamRepoStub) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, item := range s.items {
		if item.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

type memberRepoStub struct {
	items map[uuid.UUID]*entities.TeamMember
}

func newMemberRepoStub() *memberRepoStub {
	return &memberRepoStub{items: map[uuid.UUID]*entities.TeamMember{}}
}

func (s *memberRepoStub) Create(_ context.Context, member *entities.TeamMember) error {
	for _, item := range s.items {
		if item.TeamID == member.TeamID && item.UserID == member.UserID {
			return domainerrors.ErrConflict
		}
	}
	s.items[member.ID] = member
	return nil
}

func (s *memberRepoStub) GetByTeamAndUser(_ context.Context, teamID uuid.UUID, userID string) (*entities.TeamMember, error) {
	for _, item := range s.items {
		if item.TeamID == teamID && item.UserID == userID {
			return item, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *memberRepoStub) ListByTeam(_ context.Context, teamID uuid.UUID) ([]*entities.TeamMember, error) {
	out := make([]*entities.TeamMember, 0)
	for _, item := range s.items {
		if item.TeamID == teamID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JoinedAt.Before(out[j].JoinedAt) })
	return out, nil
}

func (s *memberRepoStub) ListByUser(_ context.Context, userID string) ([]*entities.TeamMember, error) {
	out := make([]*entities.TeamMember, 0)
	for _, item := range s.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *memberRepoStub) UpdateRole(_ context.Context, id uuid.UUID, role entities.Role) error {
	item, ok := s.items[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	item.Role = role
	return nil
}

func (s *memberRepoStub) UpdateProfile(_ context.Context, id uuid.UUID, fullName, avatarURL string) error {
	item, ok := s.items[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	item.FullName = null.StringFrom(fullName)
	item.AvatarURL = null.StringFrom(avatarURL)
	return nil
}

func (s *memberRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.items[id]; !ok {
		return domainerrors.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

type issueRepoStub struct {
	items []*entities.Issue
}

func newIssueRepoStub() *issueRepoStub {
	return &issueRepoStub{items: []*entities.Issue{}}
}

func (s *issueRepoStub) Create(_ context.Context, issue *entities.Issue) error {
	s.items = append(s.items, issue)
	return nil
}

func (s *issueRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Issue, error) {
	for _, item := range s.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *issueRepoStub) List(_ context.Context, teamID uuid.UUID, filter entities.IssueFilter) ([]*entities.Issue, error) {
	out := make([]*entities.Issue, 0)
	for _, item := range s.items {
		if item.TeamID != teamID {
			continue
		}
		if filter.Status != nil && item.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && item.Priority != *filter.Priority {
			continue
		}
		if filter.ProjectID.Valid && item.ProjectID != filter.ProjectID {
			continue
		}
		if filter.AssigneeID != "" && item.AssigneeID.String != filter.AssigneeID {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(item.Title), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *issueRepoStub) ListByStatus(_ context.Context, teamID uuid.UUID, status entities.IssueStatus) ([]*entities.Issue, error) {
	out := make([]*entities.Issue, 0)
	for _, item := range s.items {
		if item.TeamID == teamID && item.Status == status {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *issueRepoStub) Update(_ context.Context, issue *entities.Issue) error {
	for i, item := range s.items {
		if item.ID == issue.ID {
			s.items[i] = issue
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

func (s *issueRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

type issueEventRepoStub struct {
	items []*entities.IssueEvent
}

func newIssueEventRepoStub() *issueEventRepoStub {
	return &issueEventRepoStub{items: []*entities.IssueEvent{}}
}

func (s *issueEventRepoStub) Create(_ context.Context, event *entities.IssueEvent) error {
	s.items = append(s.items, event)
	return nil
}

func (s *issueEventRepoStub) ListByIssue(_ context.Context, issueID uuid.UUID) ([]*entities.IssueEvent, error) {
	out := make([]*entities.IssueEvent, 0)
	for _, item := range s.items {
		if item.IssueID == issueID {
			out = append(out, item)
		}
	}
	return out, nil
}

type teamEventRepoStub struct {
	items []*entities.TeamEvent
}

func newTeamEventRepoStub() *teamEventRepoStub {
	return &teamEventRepoStub{items: []*entities.TeamEvent{}}
}

func (s *teamEventRepoStub) Create(_ context.Context, event *entities.TeamEvent) error {
	s.items = append(s.items, event)
	return nil
}

func (s *teamEventRepoStub) List(_ context.Context, teamID uuid.UUID, limit, offset int) ([]*entities.TeamEvent, int64, error) {
	matched := make([]*entities.TeamEvent, 0)
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].TeamID == teamID {
			matched = append(matched, s.items[i])
		}
	}
	total := int64(len(matched))
	if offset > len(matched) {
		offset = len(matched)
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (s *teamEventRepoStub) ListRecent(_ context.Context, teamID uuid.UUID, limit int) ([]*entities.TeamEvent, error) {
	out, _, err := s.List(context.Background(), teamID, limit, 0)
	return out, err
}

type projectRepoStub struct {
	items map[uuid.UUID]*entities.Project
}

func newProjectRepoStub() *projectRepoStub {
	return &projectRepoStub{items: map[uuid.UUID]*entities.Project{}}
}

func (s *projectRepoStub) Create(_ context.Context, project *entities.Project) error {
	s.items[project.ID] = project
	return nil
}

func (s *projectRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Project, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return item, nil
}

func (s *projectRepoStub) GetByTeamAndKey(_ context.Context, teamID uuid.UUID, key string) (*entities.Project, error) {
	for _, item := range s.items {
		if item.TeamID == teamID && item.Key == key {
			return item, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *projectRepoStub) ListByTeam(_ context.Context, teamID uuid.UUID) ([]*entities.Project, error) {
	out := make([]*entities.Project, 0)
	for _, item := range s.items {
		if item.TeamID == teamID {
			out = append(out, item)
		}
	}
	return out, nil
}

// uowStub runs the unit inline; handler tests have no transaction to join.
type uowStub struct{}

func (uowStub) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
