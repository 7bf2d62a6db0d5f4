package chat

import "github.com/samber/lo"

// Directory answers room membership queries by filtering the Registry on
// every call. It stores nothing of its own.
type Directory struct {
	registry *Registry
}

// NewDirectory returns a view over registry.
func NewDirectory(registry *Registry) *Directory {
	return &Directory{registry: registry}
}

// ListMembers returns the room's participants in join order; empty when the
// room has no members.
func (d *Directory) ListMembers(room string) []Participant {
	room = NormalizeRoom(room)
	return lo.Filter(d.registry.Snapshot(), func(p Participant, _ int) bool {
		return p.Room == room
	})
}

// Roster builds the roomData payload for room.
func (d *Directory) Roster(room string) Roster {
	return Roster{Room: NormalizeRoom(room), Users: d.ListMembers(room)}
}

// Rooms lists every room with at least one member.
func (d *Directory) Rooms() []string {
	return d.registry.Rooms()
}
