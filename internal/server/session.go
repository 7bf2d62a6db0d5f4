package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/fenggwsx/GeoChat/internal/chat"
	"github.com/fenggwsx/GeoChat/internal/config"
)

// clientSession tracks per-connection state and outbound delivery.
type clientSession struct {
	id      chat.ConnectionID
	app     *App
	conn    *websocket.Conn
	sendCh  chan []byte
	limiter *rate.Limiter
	cfg     config.TransportConfig
	log     *slog.Logger
}

func newClientSession(app *App, conn *websocket.Conn) *clientSession {
	id := chat.ConnectionID(uuid.NewString())
	cfg := app.cfg.Transport
	conn.SetReadLimit(cfg.MaxMessageBytes)
	return &clientSession{
		id:      id,
		app:     app,
		conn:    conn,
		sendCh:  make(chan []byte, cfg.SendBuffer),
		limiter: newRateLimiter(cfg.RateBurst, cfg.RateInterval),
		cfg:     cfg,
		log:     app.log.With("connection", id, "remote", conn.RemoteAddr().String()),
	}
}

// readLoop decodes client frames until the socket fails. The connection is
// detached from the room state when it returns.
func (s *clientSession) readLoop(ctx context.Context) {
	defer func() {
		s.app.dispatcher.Disconnect(s.id)
		s.app.hub.Unregister(s.id)
		if err := s.conn.Close(); err != nil && !isExpectedCloseError(err) {
			s.log.Debug("Close after read", "error", err)
		}
	}()

	_ = s.conn.SetReadDeadline(time.Now().Add(s.cfg.PongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.cfg.PongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.logReadError(err)
			return
		}
		s.app.routeFrame(ctx, s, data, s.limiter.Allow())
	}
}

func (s *clientSession) logReadError(err error) {
	switch {
	case errors.Is(err, websocket.ErrReadLimit):
		s.log.Warn("Frame exceeded maximum size", "limit", s.cfg.MaxMessageBytes)
	case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived):
		s.log.Info("Client disconnected")
	case errors.Is(err, io.EOF), isExpectedCloseError(err):
		s.log.Info("Connection closed", "error", err)
	default:
		s.log.Warn("WebSocket read error", "error", err)
	}
}

// writeLoop drains the outbound queue and keeps the connection alive with
// pings. It ends when the queue is closed or a write fails.
func (s *clientSession) writeLoop() {
	ticker := time.NewTicker(s.cfg.PingPeriod())
	defer func() {
		ticker.Stop()
		if err := s.conn.Close(); err != nil && !isExpectedCloseError(err) {
			s.log.Debug("Close after write", "error", err)
		}
	}()

	for {
		select {
		case data, ok := <-s.sendCh:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				if !isExpectedCloseError(err) {
					s.log.Warn("Write failed", "error", err)
				}
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func isExpectedCloseError(err error) bool {
	if err == nil || errors.Is(err, websocket.ErrCloseSent) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "use of closed network connection") || strings.Contains(msg, "broken pipe")
}
