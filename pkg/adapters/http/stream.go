package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/arushahmd/compass-voice"
	"github.com/arushahmd/compass-voice/internal/logging"
	"github.com/arushahmd/compass-voice/pkg/domain"
)

// StreamManager fans session diffs out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // SessionID -> Set of Channels
	logger      *slog.Logger
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logger,
	}
}

func (sm *StreamManager) Subscribe(sessionID string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[sessionID]; !ok {
		sm.subscribers[sessionID] = make(map[chan<- string]struct{})
	}
	sm.subscribers[sessionID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[sessionID]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, sessionID)
			}
		}
	}
}

func (sm *StreamManager) Broadcast(sessionID string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[sessionID] {
		select {
		case ch <- msg:
		default:
			// Slow client.
			sm.logger.Warn("sse buffer full, dropping message", "session_id", sessionID)
		}
	}
}

// Publish broadcasts the diff carried by a reply. It matches the signature
// expected by compass.WithReplyObserver.
func (sm *StreamManager) Publish(_ context.Context, reply compass.Reply) {
	if reply.Diff == nil {
		return
	}
	data, err := json.Marshal(reply.Diff)
	if err != nil {
		sm.logger.Error("failed to encode diff", "session_id", reply.SessionID, "err", err)
		return
	}
	sm.Broadcast(reply.SessionID, string(data))
}

// Subscribers returns the number of open streams for a session.
func (sm *StreamManager) Subscribers(sessionID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[sessionID])
}

// matchesWatch reports whether a diff touches any of the watched fields.
// An empty list matches everything.
func matchesWatch(msg string, watch []string) bool {
	if len(watch) == 0 {
		return true
	}
	var diff domain.SessionDiff
	if err := json.Unmarshal([]byte(msg), &diff); err != nil {
		return true
	}
	for _, field := range watch {
		switch field {
		case "state":
			if diff.State != nil {
				return true
			}
		case "context":
			if len(diff.Context) > 0 {
				return true
			}
		case "cart":
			if diff.Cart != nil {
				return true
			}
		}
	}
	return false
}
