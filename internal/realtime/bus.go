package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"teamboard.backend/internal/domain/entities"
)

// Bus fans committed team events out to subscribed clients, keyed by
// team id. Mutations publish after their transaction commits; a slow
// subscriber drops messages rather than blocking the publisher.
type Bus struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[chan []byte]struct{}
}

func NewBus() *Bus {
	return &Bus{subs: make(map[uuid.UUID]map[chan []byte]struct{})}
}

func (b *Bus) Subscribe(teamID uuid.UUID) (ch chan []byte, cancel func()) {
	ch = make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[teamID] == nil {
		b.subs[teamID] = make(map[chan []byte]struct{})
	}
	b.subs[teamID][ch] = struct{}{}
	b.mu.Unlock()
	return ch, func() {
		b.mu.Lock()
		if subs, ok := b.subs[teamID]; ok {
			delete(subs, ch)
			if len(subs) == 0 {
				delete(b.subs, teamID)
			}
		}
		b.mu.Unlock()
		close(ch)
	}
}

func (b *Bus) Publish(event *entities.TeamEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	b.mu.RLock()
	for ch := range b.subs[event.TeamID] {
		select {
		case ch <- data:
		default: // drop if slow
		}
	}
	b.mu.RUnlock()
}

// ServeSSE serves a single event-stream connection for the given team.
func (b *Bus) ServeSSE(w http.ResponseWriter, r *http.Request, teamID uuid.UUID) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "stream unsupported", http.StatusInternalServerError)
		return
	}

	ch, cancel := b.Subscribe(teamID)
	defer cancel()

	_, _ = w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	// keep-alive comments so proxies do not cut the stream
	ticker := time.NewTicker(25 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			_, _ = w.Write([]byte(": ping\n\n"))
			flusher.Flush()
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write([]byte("data: "))
			_, _ = w.Write(msg)
			_, _ = w.Write([]byte("\n\n"))
			flusher.Flush()
		}
	}
}
