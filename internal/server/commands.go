package server

import (
	"context"
	"errors"

	"github.com/fenggwsx/GeoChat/internal/protocol"
)

var errUnsupportedEvent = errors.New("unsupported event")

// routeFrame decodes one client frame and hands it to the dispatcher. Every
// event is answered with an ack carrying the outcome, including events
// refused by the rate limiter.
func (a *App) routeFrame(ctx context.Context, session *clientSession, data []byte, allowed bool) {
	env, err := protocol.Decode(data)
	if err != nil {
		session.log.Debug("Dropping malformed frame", "error", err)
		return
	}
	if !allowed {
		session.log.Warn("Rate limit exceeded", "event", env.Event, "burst", session.cfg.RateBurst, "interval", session.cfg.RateInterval)
		a.sendAck(session, env.ID, errRateLimited)
		return
	}
	if env.Type != protocol.MessageTypeEvent {
		a.sendAck(session, env.ID, errUnsupportedEvent)
		return
	}

	switch env.Event {
	case protocol.EventJoin:
		err = a.handleJoin(ctx, session, env)
	case protocol.EventSendMessage:
		err = a.handleSendMessage(ctx, session, env)
	case protocol.EventSendLocation:
		err = a.handleSendLocation(ctx, session, env)
	default:
		err = errUnsupportedEvent
	}
	a.sendAck(session, env.ID, err)
}

func (a *App) handleJoin(ctx context.Context, session *clientSession, env protocol.Envelope) error {
	req, err := protocol.DecodePayload[protocol.JoinRequest](env.Payload)
	if err != nil {
		return errInvalidPayload
	}
	// Blank fields are left to the registry so the geo gate answers first.
	if a.validate.Var(req.Username, "max=32") != nil || a.validate.Var(req.Room, "max=64") != nil {
		return errInvalidPayload
	}
	return a.dispatcher.Join(ctx, session.id, req)
}

func (a *App) handleSendMessage(ctx context.Context, session *clientSession, env protocol.Envelope) error {
	req, err := protocol.DecodePayload[protocol.SendMessageRequest](env.Payload)
	if err != nil {
		return errInvalidPayload
	}
	if err := a.validate.Struct(req); err != nil {
		return errInvalidPayload
	}
	return a.dispatcher.SendMessage(ctx, session.id, req.Text)
}

func (a *App) handleSendLocation(ctx context.Context, session *clientSession, env protocol.Envelope) error {
	req, err := protocol.DecodePayload[protocol.SendLocationRequest](env.Payload)
	if err != nil {
		return errInvalidPayload
	}
	return a.dispatcher.SendLocation(ctx, session.id, req)
}
