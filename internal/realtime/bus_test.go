package realtime_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"teamboard.backend/internal/domain/entities"
	"teamboard.backend/internal/realtime"
)

func TestBus_PublishReachesTeamSubscribers(t *testing.T) {
	bus := realtime.NewBus()
	teamID := uuid.New()

	ch, cancel := bus.Subscribe(teamID)
	defer cancel()

	event := &entities.TeamEvent{
		ID:        uuid.New(),
		TeamID:    teamID,
		Type:      entities.EventIssueCreated,
		Payload:   map[string]any{"title": "x"},
		CreatedAt: time.Now(),
	}
	bus.Publish(event)

	select {
	case data := <-ch:
		var got entities.TeamEvent
		assert.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, event.ID, got.ID)
		assert.Equal(t, entities.EventIssueCreated, got.Type)
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestBus_OtherTeamsDoNotReceive(t *testing.T) {
	bus := realtime.NewBus()

	ch, cancel := bus.Subscribe(uuid.New())
	defer cancel()

	bus.Publish(&entities.TeamEvent{ID: uuid.New(), TeamID: uuid.New(), Type: entities.EventIssueCreated})

	select {
	case <-ch:
		t.Fatal("event crossed team boundary")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBus_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	bus := realtime.NewBus()
	teamID := uuid.New()

	_, cancel := bus.Subscribe(teamID)
	defer cancel()

	done := make(chan struct{})
	go func() {
		// well past the channel buffer; must not block
		for i := 0; i < 100; i++ {
			bus.Publish(&entities.TeamEvent{ID: uuid.New(), TeamID: teamID, Type: entities.EventIssueUpdated})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher blocked on slow subscriber")
	}
}

func TestBus_CancelRemovesSubscription(t *testing.T) {
	bus := realtime.NewBus()
	teamID := uuid.New()

	ch, cancel := bus.Subscribe(teamID)
	cancel()

	// publish after cancel must not panic on the closed channel
	bus.Publish(&entities.TeamEvent{ID: uuid.New(), TeamID: teamID, Type: entities.EventIssueCreated})

	_, open := <-ch
	assert.False(t, open)
}

// lockedRecorder makes the recorder safe to read while ServeSSE is
// still writing from its own goroutine.
type lockedRecorder struct {
	mu  sync.Mutex
	rec *httptest.ResponseRecorder
}

func (l *lockedRecorder) Header() http.Header {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rec.Header()
}

func (l *lockedRecorder) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rec.Write(p)
}

func (l *lockedRecorder) WriteHeader(code int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rec.WriteHeader(code)
}

func (l *lockedRecorder) Flush() {}

func (l *lockedRecorder) body() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rec.Body.String()
}

func TestServeSSE_WritesPreambleAndEvents(t *testing.T) {
	bus := realtime.NewBus()
	teamID := uuid.New()

	ctx, stop := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/stream", nil).WithContext(ctx)
	rec := &lockedRecorder{rec: httptest.NewRecorder()}

	served := make(chan struct{})
	go func() {
		bus.ServeSSE(rec, req, teamID)
		close(served)
	}()

	// wait for the subscription to land before publishing
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(rec.body(), ": connected") {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	bus.Publish(&entities.TeamEvent{ID: uuid.New(), TeamID: teamID, Type: entities.EventTodoCreated})

	deadline = time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(rec.body(), "data: ") {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	stop()
	<-served

	body := rec.body()
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, ": connected\n\n")
	assert.Contains(t, body, "data: ")
	assert.Contains(t, body, entities.EventTodoCreated)
}
