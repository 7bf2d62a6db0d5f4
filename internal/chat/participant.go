package chat

import "time"

// ConnectionID identifies one live transport session.
type ConnectionID string

// Participant is a connection that has joined a room. Entries are replaced,
// never mutated.
type Participant struct {
	ID          ConnectionID `json:"id"`
	DisplayName string       `json:"username"`
	Room        string       `json:"room"`
	JoinedAt    time.Time    `json:"-"`
}

// Roster is the roomData payload: the members of one room in join order.
type Roster struct {
	Room  string        `json:"room"`
	Users []Participant `json:"users"`
}

// Names lists the display names of the roster in order.
func (r Roster) Names() []string {
	names := make([]string, len(r.Users))
	for i, user := range r.Users {
		names[i] = user.DisplayName
	}
	return names
}
