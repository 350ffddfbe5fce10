package usecases

import (
	"bytes"
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"teamboard.backend/internal/domain/entities"
	domainerrors "teamboard.backend/internal/domain/errors"
	"teamboard.backend/internal/domain/repositories"
	"teamboard.backend/internal/realtime"
	"teamboard.backend/pkg/utils"
)

// IssueUsecase handles issue board business logic. Every mutation runs
// its state write together with its audit events in one transaction,
// then publishes to the realtime bus after commit.
type IssueUsecase struct {
	issueRepo      repositories.IssueRepository
	issueEventRepo repositories.IssueEventRepository
	teamEventRepo  repositories.TeamEventRepository
	projectRepo    repositories.ProjectRepository
	authz          *AuthzUsecase
	uow            repositories.UnitOfWork
	bus            *realtime.Bus
}

// NewIssueUsecase creates a new issue usecase
func NewIssueUsecase(
	issueRepo repositories.IssueRepository,
	issueEventRepo repositories.IssueEventRepository,
	teamEventRepo repositories.TeamEventRepository,
	projectRepo repositories.ProjectRepository,
	authz *AuthzUsecase,
	uow repositories.UnitOfWork,
	bus *realtime.Bus,
) *IssueUsecase {
	return &IssueUsecase{
		issueRepo:      issueRepo,
		issueEventRepo: issueEventRepo,
		teamEventRepo:  teamEventRepo,
		projectRepo:    projectRepo,
		authz:          authz,
		uow:            uow,
		bus:            bus,
	}
}

// List returns the team's issues matching the filter, sorted by
// effective order within each status.
func (u *IssueUsecase) List(ctx context.Context, identity entities.Identity, teamID uuid.UUID, filter entities.IssueFilter) ([]*entities.Issue, error) {
	if _, err := u.authz.RequireTeamMember(ctx, identity, teamID); err != nil {
		return nil, err
	}
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, domainerrors.BadRequest("unknown status")
	}
	if filter.Priority != nil && !filter.Priority.Valid() {
		return nil, domainerrors.BadRequest("unknown priority")
	}

	issues, err := u.issueRepo.List(ctx, teamID, filter)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].EffectiveOrder() < issues[j].EffectiveOrder()
	})
	return issues, nil
}

// Get returns one issue, visible to team members.
func (u *IssueUsecase) Get(ctx context.Context, identity entities.Identity, issueID uuid.UUID) (*entities.Issue, error) {
	issue, err := u.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if _, err := u.authz.RequireTeamMember(ctx, identity, issue.TeamID); err != nil {
		return nil, err
	}
	return issue, nil
}

// Create adds an issue with MEMBER role or above. Status defaults to
// Backlog and priority to Medium; the sort key is left unset so the
// issue orders by creation time until first dragged.
func (u *IssueUsecase) Create(ctx context.Context, identity entities.Identity, teamID uuid.UUID, input entities.CreateIssueInput) (*entities.Issue, error) {
	member, err := u.authz.RequireRole(ctx, identity, teamID, entities.RoleMember)
	if err != nil {
		return nil, err
	}

	if input.Title == "" {
		return nil, domainerrors.BadRequest("title is required")
	}
	status := input.Status
	if status == "" {
		status = entities.IssueStatusBacklog
	}
	if !status.Valid() {
		return nil, domainerrors.BadRequest("unknown status")
	}
	priority := input.Priority
	if priority == "" {
		priority = entities.PriorityMedium
	}
	if !priority.Valid() {
		return nil, domainerrors.BadRequest("unknown priority")
	}
	if input.ProjectID.Valid {
		project, err := u.projectRepo.GetByID(ctx, input.ProjectID.UUID)
		if err != nil {
			return nil, err
		}
		if project.TeamID != teamID {
			return nil, domainerrors.NotFound("project not found")
		}
	}

	now := time.Now()
	issue := &entities.Issue{
		ID:         utils.GenerateUUIDv7(),
		TeamID:     teamID,
		ProjectID:  input.ProjectID,
		Title:      input.Title,
		Status:     status,
		Priority:   priority,
		AssigneeID: input.AssigneeID,
		ReporterID: member.UserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var teamEvent *entities.TeamEvent
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.issueRepo.Create(ctx, issue); err != nil {
			return err
		}
		if err := u.issueEventRepo.Create(ctx, &entities.IssueEvent{
			ID:        utils.GenerateUUIDv7(),
			TeamID:    teamID,
			IssueID:   issue.ID,
			ActorID:   null.StringFrom(member.UserID),
			Type:      entities.IssueEventCreated,
			Payload:   map[string]any{"title": issue.Title, "status": string(issue.Status)},
			CreatedAt: time.Now(),
		}); err != nil {
			return err
		}
		teamEvent = u.newTeamEvent(teamID, member.UserID, entities.EventIssueCreated, map[string]any{
			"issueId": issue.ID.String(),
			"title":   issue.Title,
			"status":  string(issue.Status),
		})
		return u.teamEventRepo.Create(ctx, teamEvent)
	})
	if err != nil {
		return nil, err
	}

	u.bus.Publish(teamEvent)
	return issue, nil
}

// Update applies a partial patch. Non-status field changes emit one
// UPDATED event listing the changed fields; a status change emits its
// own STATUS_CHANGED event with the from/to pair. A patch that changes
// nothing emits nothing.
func (u *IssueUsecase) Update(ctx context.Context, identity entities.Identity, issueID uuid.UUID, patch entities.IssuePatch) (*entities.Issue, error) {
	issue, err := u.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	member, err := u.authz.RequireRole(ctx, identity, issue.TeamID, entities.RoleMember)
	if err != nil {
		return nil, err
	}

	changed, statusFrom, err := u.applyPatch(ctx, issue, patch)
	if err != nil {
		return nil, err
	}
	statusChanged := statusFrom != ""
	if len(changed) == 0 && !statusChanged {
		return issue, nil
	}

	issue.UpdatedAt = time.Now()
	var teamEvents []*entities.TeamEvent
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.issueRepo.Update(ctx, issue); err != nil {
			return err
		}
		if len(changed) > 0 {
			if err := u.issueEventRepo.Create(ctx, &entities.IssueEvent{
				ID:        utils.GenerateUUIDv7(),
				TeamID:    issue.TeamID,
				IssueID:   issue.ID,
				ActorID:   null.StringFrom(member.UserID),
				Type:      entities.IssueEventUpdated,
				Payload:   map[string]any{"changedFields": changed, "title": issue.Title},
				CreatedAt: time.Now(),
			}); err != nil {
				return err
			}
			ev := u.newTeamEvent(issue.TeamID, member.UserID, entities.EventIssueUpdated, map[string]any{
				"issueId":       issue.ID.String(),
				"title":         issue.Title,
				"changedFields": changed,
			})
			if err := u.teamEventRepo.Create(ctx, ev); err != nil {
				return err
			}
			teamEvents = append(teamEvents, ev)
		}
		if statusChanged {
			if err := u.issueEventRepo.Create(ctx, &entities.IssueEvent{
				ID:        utils.GenerateUUIDv7(),
				TeamID:    issue.TeamID,
				IssueID:   issue.ID,
				ActorID:   null.StringFrom(member.UserID),
				Type:      entities.IssueEventStatusChanged,
				Payload:   map[string]any{"from": statusFrom, "to": string(issue.Status), "title": issue.Title},
				CreatedAt: time.Now(),
			}); err != nil {
				return err
			}
			ev := u.newTeamEvent(issue.TeamID, member.UserID, entities.EventIssueStatusChanged, map[string]any{
				"issueId": issue.ID.String(),
				"title":   issue.Title,
				"from":    statusFrom,
				"to":      string(issue.Status),
			})
			if err := u.teamEventRepo.Create(ctx, ev); err != nil {
				return err
			}
			teamEvents = append(teamEvents, ev)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, ev := range teamEvents {
		u.bus.Publish(ev)
	}
	return issue, nil
}

// applyPatch mutates the issue in place and returns the list of changed
// non-status field names plus the previous status when it changed.
func (u *IssueUsecase) applyPatch(ctx context.Context, issue *entities.Issue, patch entities.IssuePatch) ([]string, string, error) {
	var changed []string
	var statusFrom string

	if patch.Title != nil && *patch.Title != issue.Title {
		if *patch.Title == "" {
			return nil, "", domainerrors.BadRequest("title cannot be empty")
		}
		issue.Title = *patch.Title
		changed = append(changed, "title")
	}
	if patch.Priority != nil && *patch.Priority != issue.Priority {
		if !patch.Priority.Valid() {
			return nil, "", domainerrors.BadRequest("unknown priority")
		}
		issue.Priority = *patch.Priority
		changed = append(changed, "priority")
	}
	if patch.AssigneeID != nil && null.StringFromPtr(nilIfEmpty(*patch.AssigneeID)) != issue.AssigneeID {
		issue.AssigneeID = null.StringFromPtr(nilIfEmpty(*patch.AssigneeID))
		changed = append(changed, "assignee")
	}
	if patch.Type != nil && null.StringFromPtr(nilIfEmpty(*patch.Type)) != issue.Type {
		issue.Type = null.StringFromPtr(nilIfEmpty(*patch.Type))
		changed = append(changed, "type")
	}
	if patch.ProjectID != nil {
		next := uuid.NullUUID{UUID: *patch.ProjectID, Valid: *patch.ProjectID != uuid.Nil}
		if next != issue.ProjectID {
			if next.Valid {
				project, err := u.projectRepo.GetByID(ctx, next.UUID)
				if err != nil {
					return nil, "", err
				}
				if project.TeamID != issue.TeamID {
					return nil, "", domainerrors.NotFound("project not found")
				}
			}
			issue.ProjectID = next
			changed = append(changed, "project")
		}
	}
	if patch.SummaryDoc.Valid && !jsonEqual(patch.SummaryDoc, issue.SummaryDoc) {
		issue.SummaryDoc = patch.SummaryDoc
		changed = append(changed, "summary")
	}
	if patch.DetailsDoc.Valid && !jsonEqual(patch.DetailsDoc, issue.DetailsDoc) {
		issue.DetailsDoc = patch.DetailsDoc
		changed = append(changed, "details")
	}
	if patch.ImpactDoc.Valid && !jsonEqual(patch.ImpactDoc, issue.ImpactDoc) {
		issue.ImpactDoc = patch.ImpactDoc
		changed = append(changed, "impact")
	}
	if patch.StepsTakenDoc.Valid && !jsonEqual(patch.StepsTakenDoc, issue.StepsTakenDoc) {
		issue.StepsTakenDoc = patch.StepsTakenDoc
		changed = append(changed, "stepsTaken")
	}
	if patch.NextStepsDoc.Valid && !jsonEqual(patch.NextStepsDoc, issue.NextStepsDoc) {
		issue.NextStepsDoc = patch.NextStepsDoc
		changed = append(changed, "nextSteps")
	}

	if patch.Status != nil && *patch.Status != issue.Status {
		if !patch.Status.Valid() {
			return nil, "", domainerrors.BadRequest("unknown status")
		}
		statusFrom = string(issue.Status)
		issue.Status = *patch.Status
	}

	return changed, statusFrom, nil
}

// Move drops the issue at the end of another status column. Moving to
// the column it is already in changes nothing and emits nothing.
func (u *IssueUsecase) Move(ctx context.Context, identity entities.Identity, issueID uuid.UUID, status entities.IssueStatus) (*entities.Issue, error) {
	return u.reposition(ctx, identity, issueID, status, uuid.Nil, true)
}

// Reorder places the issue ahead of beforeID within the given status
// column, recomputing its fractional key. A beforeID the column no
// longer contains degrades to an end-of-column drop.
func (u *IssueUsecase) Reorder(ctx context.Context, identity entities.Identity, issueID uuid.UUID, status entities.IssueStatus, beforeID uuid.UUID) (*entities.Issue, error) {
	return u.reposition(ctx, identity, issueID, status, beforeID, false)
}

func (u *IssueUsecase) reposition(ctx context.Context, identity entities.Identity, issueID uuid.UUID, status entities.IssueStatus, beforeID uuid.UUID, skipSameColumn bool) (*entities.Issue, error) {
	if !status.Valid() {
		return nil, domainerrors.BadRequest("unknown status")
	}

	issue, err := u.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	member, err := u.authz.RequireRole(ctx, identity, issue.TeamID, entities.RoleMember)
	if err != nil {
		return nil, err
	}
	if skipSameColumn && issue.Status == status {
		return issue, nil
	}

	siblings, err := u.issueRepo.ListByStatus(ctx, issue.TeamID, status)
	if err != nil {
		return nil, err
	}
	refs := make([]OrderRef, 0, len(siblings))
	for _, s := range siblings {
		if s.ID == issue.ID {
			continue
		}
		refs = append(refs, OrderRef{ID: s.ID, Key: s.EffectiveOrder()})
	}

	statusFrom := ""
	if issue.Status != status {
		statusFrom = string(issue.Status)
		issue.Status = status
	}
	issue.SortOrder = null.Float64From(ComputeOrder(refs, beforeID, time.Now()))
	issue.UpdatedAt = time.Now()

	var teamEvent *entities.TeamEvent
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.issueRepo.Update(ctx, issue); err != nil {
			return err
		}
		if statusFrom == "" {
			return nil
		}
		if err := u.issueEventRepo.Create(ctx, &entities.IssueEvent{
			ID:        utils.GenerateUUIDv7(),
			TeamID:    issue.TeamID,
			IssueID:   issue.ID,
			ActorID:   null.StringFrom(member.UserID),
			Type:      entities.IssueEventStatusChanged,
			Payload:   map[string]any{"from": statusFrom, "to": string(issue.Status), "title": issue.Title},
			CreatedAt: time.Now(),
		}); err != nil {
			return err
		}
		teamEvent = u.newTeamEvent(issue.TeamID, member.UserID, entities.EventIssueStatusChanged, map[string]any{
			"issueId": issue.ID.String(),
			"title":   issue.Title,
			"from":    statusFrom,
			"to":      string(issue.Status),
		})
		return u.teamEventRepo.Create(ctx, teamEvent)
	})
	if err != nil {
		return nil, err
	}

	if teamEvent != nil {
		u.bus.Publish(teamEvent)
	}
	return issue, nil
}

// Delete removes an issue. MEMBER or above; the event log keeps the
// issue's past events but records no deletion entry.
func (u *IssueUsecase) Delete(ctx context.Context, identity entities.Identity, issueID uuid.UUID) error {
	issue, err := u.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return err
	}
	if _, err := u.authz.RequireRole(ctx, identity, issue.TeamID, entities.RoleMember); err != nil {
		return err
	}
	return u.issueRepo.Delete(ctx, issue.ID)
}

// ListEvents returns the issue's own history stream, oldest first.
func (u *IssueUsecase) ListEvents(ctx context.Context, identity entities.Identity, issueID uuid.UUID) ([]*entities.IssueEvent, error) {
	issue, err := u.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if _, err := u.authz.RequireTeamMember(ctx, identity, issue.TeamID); err != nil {
		return nil, err
	}
	return u.issueEventRepo.ListByIssue(ctx, issue.ID)
}

func (u *IssueUsecase) newTeamEvent(teamID uuid.UUID, actorID string, eventType string, payload map[string]any) *entities.TeamEvent {
	return &entities.TeamEvent{
		ID:        utils.GenerateUUIDv7(),
		TeamID:    teamID,
		ActorID:   null.StringFrom(actorID),
		Type:      eventType,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func jsonEqual(a, b null.JSON) bool {
	if a.Valid != b.Valid {
		return false
	}
	return bytes.Equal(a.JSON, b.JSON)
}
