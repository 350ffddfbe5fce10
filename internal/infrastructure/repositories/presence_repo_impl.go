package repositories

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/volatiletech/null/v8"
	"teamboard.backend/internal/domain/entities"
)

// PresenceRepository keeps presence rows in Redis: one hash per
// (team, user) plus a per-team sorted set scored by lastSeen millis.
// Rows are overwritten in place; liveness comes from the score window,
// no sweep ever runs.
type PresenceRepository struct {
	client *goredis.Client
}

func NewPresenceRepository(client *goredis.Client) *PresenceRepository {
	return &PresenceRepository{client: client}
}

func presenceKey(teamID uuid.UUID, userID string) string {
	return fmt.Sprintf("presence:%s:%s", teamID, userID)
}

func presenceIndexKey(teamID uuid.UUID) string {
	return "presence:index:" + teamID.String()
}

// Upsert writes only the fields the heartbeat carried plus last_seen, so
// a cursor-only heartbeat cannot clobber a previously stored editing flag.
func (r *PresenceRepository) Upsert(ctx context.Context, teamID uuid.UUID, userID string, patch entities.PresencePatch, seenAt time.Time) error {
	fields := map[string]interface{}{
		"last_seen": seenAt.UnixMilli(),
	}
	if patch.Activity != nil {
		fields["activity"] = *patch.Activity
	}
	if patch.Location != nil {
		fields["location"] = *patch.Location
	}
	if patch.CursorX != nil {
		fields["cursor_x"] = strconv.FormatFloat(*patch.CursorX, 'f', -1, 64)
	}
	if patch.CursorY != nil {
		fields["cursor_y"] = strconv.FormatFloat(*patch.CursorY, 'f', -1, 64)
	}
	if patch.IsEditing != nil {
		fields["is_editing"] = strconv.FormatBool(*patch.IsEditing)
	}
	if patch.EditingTarget != nil {
		fields["editing_target"] = *patch.EditingTarget
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, presenceKey(teamID, userID), fields)
	pipe.ZAdd(ctx, presenceIndexKey(teamID), goredis.Z{
		Score:  float64(seenAt.UnixMilli()),
		Member: userID,
	})
	_, err := pipe.Exec(ctx)
	return err
}

func (r *PresenceRepository) ListSince(ctx context.Context, teamID uuid.UUID, cutoff time.Time) ([]*entities.Presence, error) {
	userIDs, err := r.client.ZRangeByScore(ctx, presenceIndexKey(teamID), &goredis.ZRangeBy{
		Min: strconv.FormatInt(cutoff.UnixMilli(), 10),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, err
	}

	rows := make([]*entities.Presence, 0, len(userIDs))
	for _, userID := range userIDs {
		raw, err := r.client.HGetAll(ctx, presenceKey(teamID, userID)).Result()
		if err != nil {
			return nil, err
		}
		if len(raw) == 0 {
			continue
		}
		rows = append(rows, parsePresence(teamID, userID, raw))
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].LastSeen.After(rows[j].LastSeen)
	})
	return rows, nil
}

func parsePresence(teamID uuid.UUID, userID string, raw map[string]string) *entities.Presence {
	p := &entities.Presence{
		TeamID: teamID,
		UserID: userID,
	}
	if v, ok := raw["last_seen"]; ok {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
			p.LastSeen = time.UnixMilli(ms)
		}
	}
	if v, ok := raw["activity"]; ok {
		p.Activity = null.StringFrom(v)
	}
	if v, ok := raw["location"]; ok {
		p.Location = null.StringFrom(v)
	}
	if v, ok := raw["cursor_x"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			p.CursorX = null.Float64From(f)
		}
	}
	if v, ok := raw["cursor_y"]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			p.CursorY = null.Float64From(f)
		}
	}
	if v, ok := raw["is_editing"]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			p.IsEditing = null.BoolFrom(b)
		}
	}
	if v, ok := raw["editing_target"]; ok {
		p.EditingTarget = null.StringFrom(v)
	}
	return p
}
