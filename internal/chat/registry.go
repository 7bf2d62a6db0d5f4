package chat

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

// Registry owns every Participant, keyed by connection and kept in join order.
// Only the Dispatcher goroutine mutates it; the lock keeps HTTP reads consistent.
type Registry struct {
	mu    sync.RWMutex
	byID  map[ConnectionID]Participant
	order []ConnectionID
	now   func() time.Time
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[ConnectionID]Participant),
		now:  time.Now,
	}
}

// Add registers a participant. It fails without changing state when the
// connection has already joined, the name or room is blank, or another member
// of the room already uses the name (case-insensitively).
func (r *Registry) Add(id ConnectionID, displayName, room string) (Participant, error) {
	displayName = strings.TrimSpace(displayName)
	room = NormalizeRoom(room)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; ok {
		return Participant{}, reject(ErrDuplicateConnection, "You have already joined a room!")
	}
	if displayName == "" || room == "" {
		return Participant{}, reject(ErrInvalidJoin, "Username and room are required!")
	}
	for _, existing := range r.byID {
		if existing.Room == room && strings.EqualFold(existing.DisplayName, displayName) {
			return Participant{}, reject(ErrNameTaken, "Username is in use!")
		}
	}

	p := Participant{ID: id, DisplayName: displayName, Room: room, JoinedAt: r.now()}
	r.byID[id] = p
	r.order = append(r.order, id)
	return p, nil
}

// Remove deletes the participant if present.
func (r *Registry) Remove(id ConnectionID) (Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return Participant{}, false
	}
	delete(r.byID, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return p, true
}

// Get looks up a participant by connection.
func (r *Registry) Get(id ConnectionID) (Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	return p, ok
}

// Len is the number of joined connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Snapshot copies all participants in join order.
func (r *Registry) Snapshot() []Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Map(r.order, func(id ConnectionID, _ int) Participant {
		return r.byID[id]
	})
}

// Rooms lists the rooms that currently have members, in order of first join.
func (r *Registry) Rooms() []string {
	return lo.Uniq(lo.Map(r.Snapshot(), func(p Participant, _ int) string {
		return p.Room
	}))
}

// NormalizeRoom trims and lowercases a room name.
func NormalizeRoom(room string) string {
	return strings.ToLower(strings.TrimSpace(room))
}
