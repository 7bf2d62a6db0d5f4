package protocol

import (
	"time"

	"github.com/google/uuid"

	"github.com/fenggwsx/GeoChat/internal/chat"
	"github.com/fenggwsx/GeoChat/internal/geo"
)

// MessageType enumerates high-level protocol intents.
type MessageType string

const (
	MessageTypeEvent MessageType = "event"
	MessageTypeAck   MessageType = "ack"
)

// Client events.
const (
	EventJoin         = "join"
	EventSendMessage  = "sendMessage"
	EventSendLocation = "sendLocation"
)

// Server events.
const (
	EventMessage         = chat.EventMessage
	EventLocationMessage = chat.EventLocationMessage
	EventRoomData        = chat.EventRoomData
)

const (
	AckStatusOK    = "ok"
	AckStatusError = "error"
)

// Envelope wraps every frame sent over the socket.
type Envelope struct {
	ID        string      `json:"id"`
	Type      MessageType `json:"type"`
	Event     string      `json:"event,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// AckPayload answers one client event.
type AckPayload struct {
	ReferenceID string `json:"reference_id"`
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
}

// JoinRequest carries the display name, room and client coordinates.
type JoinRequest = chat.JoinRequest

// SendMessageRequest carries one chat line.
type SendMessageRequest struct {
	Text string `json:"text" validate:"required,max=1024"`
}

// SendLocationRequest carries the coordinates to share.
type SendLocationRequest = geo.Coordinates

// MessagePayload is the body of message and locationMessage events.
type MessagePayload = chat.Message

// RoomDataPayload is the body of roomData events.
type RoomDataPayload = chat.Roster

// NewEvent stamps an event envelope.
func NewEvent(event string, payload interface{}) Envelope {
	return Envelope{
		ID:        uuid.NewString(),
		Type:      MessageTypeEvent,
		Event:     event,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// NewAck stamps an acknowledgement of the envelope with referenceID.
func NewAck(referenceID, status, reason string) Envelope {
	return Envelope{
		ID:        uuid.NewString(),
		Type:      MessageTypeAck,
		Timestamp: time.Now(),
		Payload: AckPayload{
			ReferenceID: referenceID,
			Status:      status,
			Reason:      reason,
		},
	}
}
