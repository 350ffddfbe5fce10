package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"teamboard.backend/internal/domain/entities"
)

func newTestPresenceRepo(t *testing.T) *PresenceRepository {
	t.Helper()
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("miniredis unavailable: %v", err)
	}
	t.Cleanup(srv.Close)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewPresenceRepository(client)
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool      { return &b }

func TestPresenceRepository_UpsertAndListSince(t *testing.T) {
	repo := newTestPresenceRepo(t)
	ctx := context.Background()

	teamID := uuid.New()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Upsert(ctx, teamID, "user_1", entities.PresencePatch{
		Activity: strPtr("viewing board"),
		Location: strPtr("/board"),
	}, now.Add(-10*time.Second)))
	require.NoError(t, repo.Upsert(ctx, teamID, "user_2", entities.PresencePatch{
		CursorX: f64Ptr(120.5),
		CursorY: f64Ptr(48),
	}, now))
	// stale row, outside any reasonable window
	require.NoError(t, repo.Upsert(ctx, teamID, "user_3", entities.PresencePatch{}, now.Add(-time.Hour)))

	rows, err := repo.ListSince(ctx, teamID, now.Add(-90*time.Second))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// most recent first
	require.Equal(t, "user_2", rows[0].UserID)
	require.Equal(t, "user_1", rows[1].UserID)
	require.Equal(t, 120.5, rows[0].CursorX.Float64)
	require.Equal(t, "viewing board", rows[1].Activity.String)
	require.Equal(t, now.UnixMilli(), rows[0].LastSeen.UnixMilli())
}

func TestPresenceRepository_PartialHeartbeatPreservesFields(t *testing.T) {
	repo := newTestPresenceRepo(t)
	ctx := context.Background()

	teamID := uuid.New()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Upsert(ctx, teamID, "user_1", entities.PresencePatch{
		IsEditing:     boolPtr(true),
		EditingTarget: strPtr("issue:abc"),
	}, now.Add(-5*time.Second)))

	// cursor-only heartbeat must not clobber the editing flag
	require.NoError(t, repo.Upsert(ctx, teamID, "user_1", entities.PresencePatch{
		CursorX: f64Ptr(10),
		CursorY: f64Ptr(20),
	}, now))

	rows, err := repo.ListSince(ctx, teamID, now.Add(-90*time.Second))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	got := rows[0]
	require.True(t, got.IsEditing.Bool)
	require.Equal(t, "issue:abc", got.EditingTarget.String)
	require.Equal(t, 10.0, got.CursorX.Float64)
	require.Equal(t, now.UnixMilli(), got.LastSeen.UnixMilli())
}

func TestPresenceRepository_TeamsAreIsolated(t *testing.T) {
	repo := newTestPresenceRepo(t)
	ctx := context.Background()

	now := time.Now()
	teamA := uuid.New()
	teamB := uuid.New()
	require.NoError(t, repo.Upsert(ctx, teamA, "user_1", entities.PresencePatch{}, now))
	require.NoError(t, repo.Upsert(ctx, teamB, "user_2", entities.PresencePatch{}, now))

	rows, err := repo.ListSince(ctx, teamA, now.Add(-time.Minute))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "user_1", rows[0].UserID)
	require.Equal(t, teamA, rows[0].TeamID)
}

func TestPresenceRepository_EmptyWindow(t *testing.T) {
	repo := newTestPresenceRepo(t)

	rows, err := repo.ListSince(context.Background(), uuid.New(), time.Now().Add(-90*time.Second))
	require.NoError(t, err)
	require.Empty(t, rows)
}
