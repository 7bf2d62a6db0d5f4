package server

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fenggwsx/GeoChat/internal/chat"
	"github.com/fenggwsx/GeoChat/internal/protocol"
)

var (
	errUnknownSession = errors.New("unknown session")
	errSendBufferFull = errors.New("send buffer full")
)

// SessionHub maps connection ids to their outbound queues. It is the
// chat.Transport used by the Controller.
type SessionHub struct {
	mu       sync.RWMutex
	sessions map[chat.ConnectionID]chan []byte
	log      *slog.Logger
}

// NewSessionHub initializes an empty hub.
func NewSessionHub(log *slog.Logger) *SessionHub {
	return &SessionHub{
		sessions: make(map[chat.ConnectionID]chan []byte),
		log:      log,
	}
}

// Register attaches the outbound queue of a new connection.
func (h *SessionHub) Register(id chat.ConnectionID, ch chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[id] = ch
}

// Unregister detaches id and closes its queue so the write loop can finish.
func (h *SessionHub) Unregister(id chat.ConnectionID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.sessions[id]; ok {
		delete(h.sessions, id)
		close(ch)
	}
}

// CloseAll detaches every connection.
func (h *SessionHub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.sessions {
		delete(h.sessions, id)
		close(ch)
	}
}

// Len reports how many connections are attached.
func (h *SessionHub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Emit queues one server event for id without blocking.
func (h *SessionHub) Emit(id chat.ConnectionID, event string, payload any) error {
	return h.Push(id, protocol.NewEvent(event, payload))
}

// Push queues an envelope for id. A full queue drops the frame for this
// recipient only.
func (h *SessionHub) Push(id chat.ConnectionID, env protocol.Envelope) error {
	data, err := protocol.Encode(env)
	if err != nil {
		return fmt.Errorf("encode %s: %w", env.Type, err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	ch, ok := h.sessions[id]
	if !ok {
		return errUnknownSession
	}
	select {
	case ch <- data:
		return nil
	default:
		return errSendBufferFull
	}
}
