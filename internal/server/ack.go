package server

import (
	"errors"

	"github.com/fenggwsx/GeoChat/internal/chat"
	"github.com/fenggwsx/GeoChat/internal/protocol"
)

var (
	errInvalidPayload = errors.New("invalid payload")
	errRateLimited    = errors.New("rate limited")
)

func (a *App) sendAck(session *clientSession, referenceID string, err error) {
	ack := protocol.NewAck(referenceID, protocol.AckStatusOK, "")
	if err != nil {
		ack = protocol.NewAck(referenceID, protocol.AckStatusError, ackReason(err))
	}
	if pushErr := a.hub.Push(session.id, ack); pushErr != nil {
		session.log.Warn("Send ack failed", "reference", referenceID, "error", pushErr)
	}
}

func ackReason(err error) string {
	switch {
	case errors.Is(err, errInvalidPayload):
		return "Invalid payload!"
	case errors.Is(err, errUnsupportedEvent):
		return "Unsupported event!"
	case errors.Is(err, errRateLimited):
		return "Too many messages!"
	default:
		return chat.Reason(err)
	}
}
