package exchange

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Hub tracks live sessions for broadcast.
type Hub struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[uuid.UUID]*Session)}
}

func (h *Hub) Add(s *Session) {
	h.mu.Lock()
	h.sessions[s.ID()] = s
	h.mu.Unlock()
}

func (h *Hub) Remove(s *Session) {
	h.mu.Lock()
	delete(h.sessions, s.ID())
	h.mu.Unlock()
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

func (h *Hub) snapshot() []*Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		out = append(out, s)
	}
	return out
}

// Broadcast sends one message to every session and returns how many
// accepted it. Failures from individual sessions are joined.
func (h *Hub) Broadcast(msgType, version uint32, payload []byte) (int, error) {
	var (
		sent int
		errs []error
	)
	for _, s := range h.snapshot() {
		if err := s.Send(msgType, version, payload); err != nil {
			errs = append(errs, fmt.Errorf("session %s: %w", s.ID(), err))
			continue
		}
		sent++
	}
	return sent, errors.Join(errs...)
}
