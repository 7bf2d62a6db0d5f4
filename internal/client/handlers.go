package client

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fenggwsx/GeoChat/internal/chat"
	"github.com/fenggwsx/GeoChat/internal/protocol"
)

func (a *App) handleSessionEnvelope(env protocol.Envelope) tea.Cmd {
	a.appendPipeEntry(pipeDirectionIn, env)
	switch env.Type {
	case protocol.MessageTypeAck:
		a.handleAckEnvelope(env)
	case protocol.MessageTypeEvent:
		a.handleEventEnvelope(env)
	default:
		a.logErrorf("Received %s message", string(env.Type))
	}
	return nil
}

func (a *App) handleAckEnvelope(env protocol.Envelope) {
	ack, err := protocol.DecodePayload[protocol.AckPayload](env.Payload)
	if err != nil {
		a.logErrorf("Failed to decode ack: %v", err)
		return
	}

	pending, ok := a.pendingRequests[ack.ReferenceID]
	if !ok {
		if ack.Reason != "" {
			a.logf("Server response: %s", ack.Reason)
		}
		return
	}
	delete(a.pendingRequests, ack.ReferenceID)

	if ack.Status == protocol.AckStatusOK {
		switch pending.event {
		case protocol.EventJoin:
			a.username = pending.username
			a.room = chat.NormalizeRoom(pending.room)
			a.logf("Joined room %s as %s", a.room, a.username)
		case protocol.EventSendLocation:
			a.logf("Location shared with %s", pending.room)
		case protocol.EventSendMessage:
			a.logf("Message delivered to %s", pending.room)
		default:
			a.logf("Event %s acknowledged", pending.event)
		}
		return
	}

	reason := strings.TrimSpace(ack.Reason)
	if reason == "" {
		reason = "unknown error"
	}
	switch pending.event {
	case protocol.EventJoin:
		a.logErrorf("Join failed: %s", reason)
	case protocol.EventSendLocation:
		a.logErrorf("Location failed: %s", reason)
	case protocol.EventSendMessage:
		a.logErrorf("Message failed: %s", reason)
	default:
		a.logErrorf("Event %s failed: %s", pending.event, reason)
	}
}

func (a *App) handleEventEnvelope(env protocol.Envelope) {
	switch env.Event {
	case protocol.EventMessage, protocol.EventLocationMessage:
		msg, err := protocol.DecodePayload[protocol.MessagePayload](env.Payload)
		if err != nil {
			a.logErrorf("Failed to decode %s: %v", env.Event, err)
			return
		}
		a.appendChatLine(a.formatChatMessage(msg))
	case protocol.EventRoomData:
		roster, err := protocol.DecodePayload[protocol.RoomDataPayload](env.Payload)
		if err != nil {
			a.logErrorf("Failed to decode room data: %v", err)
			return
		}
		a.members = roster.Names()
		if roster.Room != "" {
			a.room = roster.Room
		}
	default:
		a.logErrorf("Unhandled event: %s", env.Event)
	}
}

func (a *App) appendChatLine(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	a.chatHistory = append(a.chatHistory, line)
	if a.view == viewChat {
		a.updateViewportContent()
		a.viewport.GotoBottom()
	}
}

func (a *App) appendPipeEntry(direction pipeDirection, env protocol.Envelope) {
	if a.pipeHistory == nil {
		a.pipeHistory = make([]pipeEntry, 0, pipeHistoryLimit)
	}
	bodyBytes, err := json.MarshalIndent(env, "", "  ")
	entry := pipeEntry{
		direction:   direction,
		messageType: string(env.Type),
		timestamp:   time.Now(),
		body:        string(bodyBytes),
	}
	if err != nil {
		entry.body = fmt.Sprintf(`{"marshal_error":%q}`, err.Error())
	}
	if len(a.pipeHistory) >= pipeHistoryLimit {
		a.pipeHistory = append(a.pipeHistory[1:], entry)
	} else {
		a.pipeHistory = append(a.pipeHistory, entry)
	}
	if a.view == viewPipe {
		a.updateViewportContent()
	}
}

func (a *App) formatChatMessage(msg protocol.MessagePayload) string {
	username := strings.TrimSpace(msg.Username)
	if username == "" {
		username = "unknown"
	}
	if username == chat.AdminName {
		username = a.styles.admin.Render(username)
	}
	body := msg.Text
	if msg.URL != "" {
		body = "shared a location: " + msg.URL
	}
	if msg.CreatedAt > 0 {
		timestamp := time.UnixMilli(msg.CreatedAt).Local().Format("15:04:05")
		return fmt.Sprintf("[%s] %s: %s", timestamp, username, body)
	}
	return fmt.Sprintf("%s: %s", username, body)
}
