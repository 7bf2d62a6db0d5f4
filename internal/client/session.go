package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/fenggwsx/GeoChat/internal/config"
	"github.com/fenggwsx/GeoChat/internal/protocol"
)

var errNotConnected = errors.New("session not connected")

const writeWait = 5 * time.Second

// Session manages the client side of one WebSocket connection.
type Session struct {
	cfg      config.ClientConfig
	conn     *websocket.Conn
	messages chan protocol.Envelope
	done     chan struct{}
	writeMu  sync.Mutex
	closeMu  sync.Once
}

// NewSession initializes a session with configuration.
func NewSession(cfg config.ClientConfig) *Session {
	return &Session{cfg: cfg, messages: make(chan protocol.Envelope, 64), done: make(chan struct{})}
}

// Connect dials the server and starts the read loop.
func (s *Session) Connect(ctx context.Context) error {
	if s.cfg.ServerURL == "" {
		return errNotConnected
	}
	header := http.Header{}
	if s.cfg.Origin != "" {
		header.Set("Origin", s.cfg.Origin)
	}
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, s.cfg.ServerURL, header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return err
	}
	s.conn = conn
	go s.readLoop()
	return nil
}

// Messages yields every decoded server frame. It is closed when the
// connection ends.
func (s *Session) Messages() <-chan protocol.Envelope {
	return s.messages
}

// Send writes one envelope, stamping the id and timestamp when missing.
func (s *Session) Send(ctx context.Context, env protocol.Envelope) error {
	if s.conn == nil {
		return errNotConnected
	}
	if env.ID == "" {
		env.ID = uuid.NewString()
	}
	if env.Timestamp.IsZero() {
		env.Timestamp = time.Now()
	}
	data, err := protocol.Encode(env)
	if err != nil {
		return err
	}

	deadline := time.Now().Add(writeWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Close sends a close frame and terminates the session.
func (s *Session) Close() error {
	if s.conn == nil {
		return nil
	}
	var err error
	s.closeMu.Do(func() {
		close(s.done)
		s.writeMu.Lock()
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		s.writeMu.Unlock()
		err = s.conn.Close()
	})
	return err
}

func (s *Session) readLoop() {
	defer close(s.messages)
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		env, err := protocol.Decode(data)
		if err != nil {
			continue
		}
		select {
		case s.messages <- env:
		case <-s.done:
			return
		}
	}
}
