package chat

import (
	"log/slog"
	"time"
)

const (
	EventMessage         = "message"
	EventLocationMessage = "locationMessage"
	EventRoomData        = "roomData"

	// AdminName signs server-generated announcements.
	AdminName = "Admin"
)

// Message is a chat or location event. Exactly one of Text and URL is set.
type Message struct {
	Username  string `json:"username"`
	Text      string `json:"text,omitempty"`
	URL       string `json:"url,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

// Relay formats messages and fans them out to the members of a room.
type Relay struct {
	directory *Directory
	transport Transport
	log       *slog.Logger
	now       func() time.Time
}

// NewRelay returns a relay delivering through transport.
func NewRelay(directory *Directory, transport Transport, log *slog.Logger) *Relay {
	return &Relay{
		directory: directory,
		transport: transport,
		log:       log,
		now:       time.Now,
	}
}

// FormatTextMessage stamps a text message from sender.
func (r *Relay) FormatTextMessage(sender, body string) Message {
	return Message{Username: sender, Text: body, CreatedAt: r.now().UnixMilli()}
}

// FormatLocationMessage stamps a map-link message from sender.
func (r *Relay) FormatLocationMessage(sender, url string) Message {
	return Message{Username: sender, URL: url, CreatedAt: r.now().UnixMilli()}
}

// Send delivers to a single connection and reports whether it succeeded.
func (r *Relay) Send(id ConnectionID, event string, payload any) bool {
	if err := r.transport.Emit(id, event, payload); err != nil {
		r.log.Warn("Emit failed", "connection", id, "event", event, "error", err)
		return false
	}
	return true
}

// BroadcastToRoom delivers to every member of room at call time, skipping
// exclude when it is non-empty. A failed recipient is logged and skipped.
// It returns the number of successful deliveries.
func (r *Relay) BroadcastToRoom(room, event string, payload any, exclude ConnectionID) int {
	delivered := 0
	for _, member := range r.directory.ListMembers(room) {
		if exclude != "" && member.ID == exclude {
			continue
		}
		if r.Send(member.ID, event, payload) {
			delivered++
		}
	}
	r.log.Debug("Broadcast", "room", room, "event", event, "delivered", delivered)
	return delivered
}
