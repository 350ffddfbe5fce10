package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"teamboard.backend/internal/domain/entities"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock TeamRepository
type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) Create(ctx context.Context, team *entities.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *MockTeamRepository) GetBySlug(ctx context.Context, slug string) (*entities.Team, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *MockTeamRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

// Mock MemberRepository
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Create(ctx context.Context, member *entities.TeamMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) GetByTeamAndUser(ctx context.Context, teamID uuid.UUID, userID string) (*entities.TeamMember, error) {
	args := m.Called(ctx, teamID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TeamMember), args.Error(1)
}

func (m *MockMemberRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.TeamMember, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TeamMember), args.Error(1)
}

func (m *MockMemberRepository) ListByUser(ctx context.Context, userID string) ([]*entities.TeamMember, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TeamMember), args.Error(1)
}

func (m *MockMemberRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entities.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockMemberRepository) UpdateProfile(ctx context.Context, id uuid.UUID, fullName, avatarURL string) error {
	args := m.Called(ctx, id, fullName, avatarURL)
	return args.Error(0)
}

func (m *MockMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock InviteRepository
type MockInviteRepository struct {
	mock.Mock
}

func (m *MockInviteRepository) Create(ctx context.Context, invite *entities.TeamInvite) error {
	args := m.Called(ctx, invite)
	return args.Error(0)
}

func (m *MockInviteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.TeamInvite, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TeamInvite), args.Error(1)
}

func (m *MockInviteRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*entities.TeamInvite, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TeamInvite), args.Error(1)
}

func (m *MockInviteRepository) ListPending(ctx context.Context, teamID uuid.UUID, now time.Time) ([]*entities.TeamInvite, error) {
	args := m.Called(ctx, teamID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TeamInvite), args.Error(1)
}

func (m *MockInviteRepository) MarkAccepted(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockInviteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock IssueRepository
type MockIssueRepository struct {
	mock.Mock
}

func (m *MockIssueRepository) Create(ctx context.Context, issue *entities.Issue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *MockIssueRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Issue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Issue), args.Error(1)
}

func (m *MockIssueRepository) List(ctx context.Context, teamID uuid.UUID, filter entities.IssueFilter) ([]*entities.Issue, error) {
	args := m.Called(ctx, teamID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Issue), args.Error(1)
}

func (m *MockIssueRepository) ListByStatus(ctx context.Context, teamID uuid.UUID, status entities.IssueStatus) ([]*entities.Issue, error) {
	args := m.Called(ctx, teamID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Issue), args.Error(1)
}

func (m *MockIssueRepository) Update(ctx context.Context, issue *entities.Issue) error {
	args := m.Called(ctx, issue)
	return args.Error(0)
}

func (m *MockIssueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock TodoRepository
type MockTodoRepository struct {
	mock.Mock
}

func (m *MockTodoRepository) Create(ctx context.Context, todo *entities.Todo) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

func (m *MockTodoRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Todo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Todo), args.Error(1)
}

func (m *MockTodoRepository) ListByTeam(ctx context.Context, teamID uuid.UUID, filter entities.TodoFilter) ([]*entities.Todo, error) {
	args := m.Called(ctx, teamID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Todo), args.Error(1)
}

func (m *MockTodoRepository) ListByOwner(ctx context.Context, ownerUserID string, filter entities.TodoFilter) ([]*entities.Todo, error) {
	args := m.Called(ctx, ownerUserID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Todo), args.Error(1)
}

func (m *MockTodoRepository) ListByTeamStatus(ctx context.Context, teamID uuid.UUID, status entities.TodoStatus) ([]*entities.Todo, error) {
	args := m.Called(ctx, teamID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Todo), args.Error(1)
}

func (m *MockTodoRepository) ListByOwnerStatus(ctx context.Context, ownerUserID string, status entities.TodoStatus) ([]*entities.Todo, error) {
	args := m.Called(ctx, ownerUserID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Todo), args.Error(1)
}

func (m *MockTodoRepository) Update(ctx context.Context, todo *entities.Todo) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

func (m *MockTodoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock LabelRepository
type MockLabelRepository struct {
	mock.Mock
}

func (m *MockLabelRepository) Create(ctx context.Context, label *entities.Label) error {
	args := m.Called(ctx, label)
	return args.Error(0)
}

func (m *MockLabelRepository) GetByTeamAndName(ctx context.Context, teamID uuid.UUID, name string) (*entities.Label, error) {
	args := m.Called(ctx, teamID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Label), args.Error(1)
}

func (m *MockLabelRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.Label, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Label), args.Error(1)
}

// Mock IssueLabelRepository
type MockIssueLabelRepository struct {
	mock.Mock
}

func (m *MockIssueLabelRepository) Create(ctx context.Context, link *entities.IssueLabel) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockIssueLabelRepository) Get(ctx context.Context, issueID, labelID uuid.UUID) (*entities.IssueLabel, error) {
	args := m.Called(ctx, issueID, labelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.IssueLabel), args.Error(1)
}

func (m *MockIssueLabelRepository) ListByIssue(ctx context.Context, issueID uuid.UUID) ([]*entities.IssueLabel, error) {
	args := m.Called(ctx, issueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.IssueLabel), args.Error(1)
}

func (m *MockIssueLabelRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.IssueLabel, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.IssueLabel), args.Error(1)
}

func (m *MockIssueLabelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockIssueLabelRepository) DeleteByIssue(ctx context.Context, issueID uuid.UUID) error {
	args := m.Called(ctx, issueID)
	return args.Error(0)
}

// Mock ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *entities.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Project), args.Error(1)
}

func (m *MockProjectRepository) GetByTeamAndKey(ctx context.Context, teamID uuid.UUID, key string) (*entities.Project, error) {
	args := m.Called(ctx, teamID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Project), args.Error(1)
}

func (m *MockProjectRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.Project, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Project), args.Error(1)
}

// Mock TeamEventRepository
type MockTeamEventRepository struct {
	mock.Mock
}

func (m *MockTeamEventRepository) Create(ctx context.Context, event *entities.TeamEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockTeamEventRepository) List(ctx context.Context, teamID uuid.UUID, limit, offset int) ([]*entities.TeamEvent, int64, error) {
	args := m.Called(ctx, teamID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entities.TeamEvent), args.Get(1).(int64), args.Error(2)
}

func (m *MockTeamEventRepository) ListRecent(ctx context.Context, teamID uuid.UUID, limit int) ([]*entities.TeamEvent, error) {
	args := m.Called(ctx, teamID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TeamEvent), args.Error(1)
}

// Mock IssueEventRepository
type MockIssueEventRepository struct {
	mock.Mock
}

func (m *MockIssueEventRepository) Create(ctx context.Context, event *entities.IssueEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockIssueEventRepository) ListByIssue(ctx context.Context, issueID uuid.UUID) ([]*entities.IssueEvent, error) {
	args := m.Called(ctx, issueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.IssueEvent), args.Error(1)
}

// Mock PresenceRepository
type MockPresenceRepository struct {
	mock.Mock
}

func (m *MockPresenceRepository) Upsert(ctx context.Context, teamID uuid.UUID, userID string, patch entities.PresencePatch, seenAt time.Time) error {
	args := m.Called(ctx, teamID, userID, patch, seenAt)
	return args.Error(0)
}

func (m *MockPresenceRepository) ListSince(ctx context.Context, teamID uuid.UUID, cutoff time.Time) ([]*entities.Presence, error) {
	args := m.Called(ctx, teamID, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Presence), args.Error(1)
}
