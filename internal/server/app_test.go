package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/fenggwsx/GeoChat/internal/auth"
	"github.com/fenggwsx/GeoChat/internal/chat"
	"github.com/fenggwsx/GeoChat/internal/config"
	"github.com/fenggwsx/GeoChat/internal/currencies"
	"github.com/fenggwsx/GeoChat/internal/geo"
	"github.com/fenggwsx/GeoChat/internal/moderation"
	"github.com/fenggwsx/GeoChat/internal/protocol"
	"github.com/fenggwsx/GeoChat/internal/rates"
	"github.com/fenggwsx/GeoChat/internal/storage/sqlite"
)

type testServer struct {
	url      string
	registry *chat.Registry
	hub      *SessionHub
}

func testConfig(t *testing.T, ratesURL string) config.ServerConfig {
	t.Helper()
	return config.ServerConfig{
		ListenAddr: "127.0.0.1:0",
		LogLevel:   "DEBUG",
		Database:   config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "server.db")},
		JWT:        config.JWTConfig{Secret: "test-secret", Issuer: "geochat-test", Expiration: time.Hour},
		Transport: config.TransportConfig{
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			IdleTimeout:     5 * time.Second,
			PongWait:        5 * time.Second,
			WriteWait:       time.Second,
			MaxMessageBytes: 1024,
			SendBuffer:      64,
			RateBurst:       50,
			RateInterval:    time.Second,
		},
		Rates: config.RatesConfig{BaseURL: ratesURL, Base: "USD", Timeout: time.Second},
	}
}

func newTestServer(t *testing.T, ratesURL string, customize func(*config.ServerConfig)) testServer {
	t.Helper()
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	cfg := testConfig(t, ratesURL)
	if customize != nil {
		customize(&cfg)
	}

	store, err := sqlite.NewStore(cfg.Database)
	req.NoError(err)
	req.NoError(store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })

	filter, err := moderation.NewModerator([]string{"badger"}, moderation.DefaultSentinels, log)
	req.NoError(err)

	hub := NewSessionHub(log)
	registry := chat.NewRegistry()
	controller := chat.NewController(registry, geo.NewGate(geo.Sweden), filter, hub, log)
	dispatcher := chat.NewDispatcher(controller, 16, log)

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = dispatcher.Run(ctx) }()

	app := NewApp(cfg, Deps{
		Dispatcher: dispatcher,
		Hub:        hub,
		Auth:       auth.NewService(store, cfg.JWT, log),
		Currencies: currencies.NewService(store, log),
		Importer:   rates.NewImporter(store, store, rates.NewFetcher(cfg.Rates), log),
	}, log)

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(func() {
		hub.CloseAll()
		srv.Close()
		cancel()
	})
	return testServer{url: srv.URL, registry: registry, hub: hub}
}

func (s testServer) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(s.url, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, event string, payload any) string {
	t.Helper()
	env := protocol.NewEvent(event, payload)
	data, err := protocol.Encode(env)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))
	return env.ID
}

func read(t *testing.T, conn *websocket.Conn) protocol.Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	env, err := protocol.Decode(data)
	require.NoError(t, err)
	return env
}

// readUntil returns every frame up to and including the first one accepted
// by match.
func readUntil(t *testing.T, conn *websocket.Conn, match func(protocol.Envelope) bool) []protocol.Envelope {
	t.Helper()
	var frames []protocol.Envelope
	for {
		env := read(t, conn)
		frames = append(frames, env)
		if match(env) {
			return frames
		}
	}
}

func ackFor(id string) func(protocol.Envelope) bool {
	return func(env protocol.Envelope) bool {
		if env.Type != protocol.MessageTypeAck {
			return false
		}
		ack, err := protocol.DecodePayload[protocol.AckPayload](env.Payload)
		return err == nil && ack.ReferenceID == id
	}
}

func lastAck(t *testing.T, frames []protocol.Envelope) protocol.AckPayload {
	t.Helper()
	ack, err := protocol.DecodePayload[protocol.AckPayload](frames[len(frames)-1].Payload)
	require.NoError(t, err)
	return ack
}

func messageTexts(t *testing.T, frames []protocol.Envelope) []string {
	t.Helper()
	return lo.FilterMap(frames, func(env protocol.Envelope, _ int) (string, bool) {
		if env.Event != protocol.EventMessage {
			return "", false
		}
		msg, err := protocol.DecodePayload[protocol.MessagePayload](env.Payload)
		require.NoError(t, err)
		return msg.Username + ": " + msg.Text, true
	})
}

func join(name, room string) protocol.JoinRequest {
	return protocol.JoinRequest{Username: name, Room: room, Latitude: lo.ToPtr(59.33), Longitude: lo.ToPtr(18.06)}
}

func TestWebSocket_JoinChatAndLeave(t *testing.T) {
	req := require.New(t)
	srv := newTestServer(t, "", nil)

	// Given alice joined the lobby
	alice := srv.dial(t)
	id := send(t, alice, protocol.EventJoin, join("alice", "Lobby"))
	frames := readUntil(t, alice, ackFor(id))
	req.Equal(protocol.AckStatusOK, lastAck(t, frames).Status)
	req.Equal([]string{"Admin: Welcome!"}, messageTexts(t, frames))

	// When bob joins the same room
	bob := srv.dial(t)
	id = send(t, bob, protocol.EventJoin, join("bob", "lobby"))
	frames = readUntil(t, bob, ackFor(id))
	req.Equal(protocol.AckStatusOK, lastAck(t, frames).Status)

	// Then alice is told and receives the new roster
	frames = readUntil(t, alice, func(env protocol.Envelope) bool { return env.Event == protocol.EventRoomData })
	req.Equal([]string{"Admin: bob has joined!"}, messageTexts(t, frames))
	roster, err := protocol.DecodePayload[protocol.RoomDataPayload](frames[len(frames)-1].Payload)
	req.NoError(err)
	req.Equal("lobby", roster.Room)
	req.Equal([]string{"alice", "bob"}, roster.Names())

	// When bob chats, both members receive it and bob gets an ack
	id = send(t, bob, protocol.EventSendMessage, protocol.SendMessageRequest{Text: "hej"})
	frames = readUntil(t, bob, ackFor(id))
	req.Contains(messageTexts(t, frames), "bob: hej")
	frames = readUntil(t, alice, func(env protocol.Envelope) bool { return env.Event == protocol.EventMessage })
	req.Equal([]string{"bob: hej"}, messageTexts(t, frames))

	// When bob disconnects, alice hears about it
	req.NoError(bob.Close())
	frames = readUntil(t, alice, func(env protocol.Envelope) bool { return env.Event == protocol.EventRoomData })
	req.Equal([]string{"Admin: bob has left!"}, messageTexts(t, frames))
	req.Eventually(func() bool { return srv.registry.Len() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWebSocket_Rejections(t *testing.T) {
	srv := newTestServer(t, "", nil)
	conn := srv.dial(t)

	// Given a joined connection for the message cases
	id := send(t, conn, protocol.EventJoin, join("carol", "room"))
	require.Equal(t, protocol.AckStatusOK, lastAck(t, readUntil(t, conn, ackFor(id))).Status)

	tests := []struct {
		name    string
		event   string
		payload any
		reason  string
	}{
		{name: "Sentinel in message", event: protocol.EventSendMessage, payload: protocol.SendMessageRequest{Text: "NULL"}, reason: "NULL is not allowed!"},
		{name: "Profanity in message", event: protocol.EventSendMessage, payload: protocol.SendMessageRequest{Text: "b4dger"}, reason: "Profanity is not allowed!"},
		{name: "Second join", event: protocol.EventJoin, payload: join("carol", "other"), reason: "You have already joined a room!"},
		{name: "Location out of range", event: protocol.EventSendLocation, payload: protocol.SendLocationRequest{Latitude: 91, Longitude: 0}, reason: "Invalid coordinates!"},
		{name: "Unknown event", event: "dance", payload: map[string]string{}, reason: "Unsupported event!"},
		{name: "Missing payload", event: protocol.EventSendMessage, payload: nil, reason: "Invalid payload!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := send(t, conn, tt.event, tt.payload)
			ack := lastAck(t, readUntil(t, conn, ackFor(id)))
			require.Equal(t, protocol.AckStatusError, ack.Status)
			require.Equal(t, tt.reason, ack.Reason)
		})
	}
}

func TestWebSocket_GeoRejectionAndUnjoinedMessage(t *testing.T) {
	req := require.New(t)
	srv := newTestServer(t, "", nil)
	conn := srv.dial(t)

	// When a client in Paris tries to join
	id := send(t, conn, protocol.EventJoin, protocol.JoinRequest{
		Username: "dave", Room: "room", Latitude: lo.ToPtr(48.85), Longitude: lo.ToPtr(2.35),
	})

	// Then it is refused and nothing else is sent
	frames := readUntil(t, conn, ackFor(id))
	req.Len(frames, 1)
	req.Equal("You are not in Sweden, cannot access the chat!", lastAck(t, frames).Reason)
	req.Zero(srv.registry.Len())

	// And it cannot chat before joining
	id = send(t, conn, protocol.EventSendMessage, protocol.SendMessageRequest{Text: "hello"})
	req.Equal("Join a room first!", lastAck(t, readUntil(t, conn, ackFor(id))).Reason)
}

func TestWebSocket_LocationMessage(t *testing.T) {
	req := require.New(t)
	srv := newTestServer(t, "", nil)
	conn := srv.dial(t)

	id := send(t, conn, protocol.EventJoin, join("erin", "maps"))
	readUntil(t, conn, ackFor(id))

	id = send(t, conn, protocol.EventSendLocation, protocol.SendLocationRequest{Latitude: 59.33, Longitude: 18.06})
	frames := readUntil(t, conn, ackFor(id))
	location, ok := lo.Find(frames, func(env protocol.Envelope) bool { return env.Event == protocol.EventLocationMessage })
	req.True(ok)
	msg, err := protocol.DecodePayload[protocol.MessagePayload](location.Payload)
	req.NoError(err)
	req.Equal("erin", msg.Username)
	req.Equal(geo.MapsURL(59.33, 18.06), msg.URL)
}

func TestWebSocket_RateLimitedEventsAreAcked(t *testing.T) {
	req := require.New(t)
	srv := newTestServer(t, "", func(cfg *config.ServerConfig) {
		cfg.Transport.RateBurst = 1
		cfg.Transport.RateInterval = time.Hour
	})
	conn := srv.dial(t)

	// Given the only token is spent on a successful join
	id := send(t, conn, protocol.EventJoin, join("gus", "room"))
	req.Equal(protocol.AckStatusOK, lastAck(t, readUntil(t, conn, ackFor(id))).Status)

	// When the next events arrive inside the same interval
	for _, event := range []struct {
		name    string
		payload any
	}{
		{name: protocol.EventSendMessage, payload: protocol.SendMessageRequest{Text: "hej"}},
		{name: protocol.EventJoin, payload: join("gus", "other")},
	} {
		id = send(t, conn, event.name, event.payload)
		frames := readUntil(t, conn, ackFor(id))

		// Then each one is refused with a reason and nothing is relayed
		ack := lastAck(t, frames)
		req.Equal(protocol.AckStatusError, ack.Status)
		req.Equal("Too many messages!", ack.Reason)
		req.Empty(messageTexts(t, frames))
	}

	roster := srv.registry.Snapshot()
	req.Len(roster, 1)
	req.Equal("room", roster[0].Room)
}

func TestWebSocket_OriginPolicy(t *testing.T) {
	srv := newTestServer(t, "", func(cfg *config.ServerConfig) {
		cfg.Transport.AllowedOrigins = []string{"http://allowed.example"}
	})
	wsURL := "ws" + strings.TrimPrefix(srv.url, "http") + "/ws"

	// Given a disallowed origin, the upgrade is refused
	header := http.Header{}
	header.Set("Origin", "http://evil.example")
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	// And the configured origin is accepted
	header.Set("Origin", "http://ALLOWED.example")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	_ = resp.Body.Close()
	_ = conn.Close()
}

func TestWebSocket_ReadLimitClosesConnection(t *testing.T) {
	srv := newTestServer(t, "", nil)
	conn := srv.dial(t)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, bytes.Repeat([]byte("x"), 4096)))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	require.Eventually(t, func() bool { return srv.hub.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func doJSON(t *testing.T, method, url string, body any) (int, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	request, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestHTTP_Auth(t *testing.T) {
	req := require.New(t)
	srv := newTestServer(t, "", nil)
	creds := auth.Credentials{Username: "frank", Password: "correct-horse"}

	status, body := doJSON(t, http.MethodPost, srv.url+"/api/auth/register", creds)
	req.Equal(http.StatusCreated, status)
	req.NotEmpty(body["token"])

	status, _ = doJSON(t, http.MethodPost, srv.url+"/api/auth/register", creds)
	req.Equal(http.StatusConflict, status)

	status, body = doJSON(t, http.MethodPost, srv.url+"/api/auth/login", creds)
	req.Equal(http.StatusOK, status)
	req.NotEmpty(body["user_id"])

	// The issued token identifies its bearer
	me, err := http.NewRequest(http.MethodGet, srv.url+"/api/auth/me", nil)
	req.NoError(err)
	me.Header.Set("Authorization", "Bearer "+body["token"].(string))
	resp, err := http.DefaultClient.Do(me)
	req.NoError(err)
	var identity auth.Identity
	req.NoError(json.NewDecoder(resp.Body).Decode(&identity))
	_ = resp.Body.Close()
	req.Equal(http.StatusOK, resp.StatusCode)
	req.Equal("frank", identity.Username)
	req.Equal(body["user_id"], identity.UserID)

	me.Header.Set("Authorization", "Bearer forged")
	resp, err = http.DefaultClient.Do(me)
	req.NoError(err)
	_ = resp.Body.Close()
	req.Equal(http.StatusUnauthorized, resp.StatusCode)

	status, _ = doJSON(t, http.MethodPost, srv.url+"/api/auth/login", auth.Credentials{Username: "frank", Password: "wrong-horse"})
	req.Equal(http.StatusUnauthorized, status)

	status, _ = doJSON(t, http.MethodPost, srv.url+"/api/auth/register", auth.Credentials{Username: "g", Password: "x"})
	req.Equal(http.StatusBadRequest, status)
}

func TestHTTP_Currencies(t *testing.T) {
	req := require.New(t)
	srv := newTestServer(t, "", nil)

	// When a currency is inserted without a symbol
	status, body := doJSON(t, http.MethodPost, srv.url+"/currencies/insert", map[string]any{
		"iso_code": "sek", "name": "Swedish Krona", "country": []string{"Sweden"},
	})
	req.Equal(http.StatusCreated, status)
	req.Equal("Currency added successfully", body["message"])
	id := body["id"].(float64)

	// Then it is listed as active with a derived symbol
	resp, err := http.Get(srv.url + "/currencies/search?country=Sweden&is_active=true")
	req.NoError(err)
	var found []map[string]any
	req.NoError(json.NewDecoder(resp.Body).Decode(&found))
	_ = resp.Body.Close()
	req.Len(found, 1)
	req.Equal("SEK", found[0]["iso_code"])
	req.Equal(currencies.Symbol("SEK"), found[0]["symbol"])

	// And a duplicate ISO code conflicts
	status, _ = doJSON(t, http.MethodPost, srv.url+"/currencies/insert", map[string]any{"iso_code": "SEK", "name": "Again"})
	req.Equal(http.StatusConflict, status)

	// When it is renamed and disabled
	status, _ = doJSON(t, http.MethodPost, srv.url+"/currencies/update", map[string]any{"id": id, "name": "Krona"})
	req.Equal(http.StatusOK, status)
	status, body = doJSON(t, http.MethodGet, fmt.Sprintf("%s/currencies/delete?id=%d", srv.url, int(id)), nil)
	req.Equal(http.StatusOK, status)
	req.Equal("Currency disabled successfully", body["message"])

	// Then the active list is empty
	resp, err = http.Get(srv.url + "/currencies")
	req.NoError(err)
	var active []map[string]any
	req.NoError(json.NewDecoder(resp.Body).Decode(&active))
	_ = resp.Body.Close()
	req.Empty(active)

	// And requests without an id are refused
	status, body = doJSON(t, http.MethodGet, srv.url+"/currencies/delete", nil)
	req.Equal(http.StatusBadRequest, status)
	req.Equal("Currency ID is required", body["error"])
	status, _ = doJSON(t, http.MethodPost, srv.url+"/currencies/update", map[string]any{"name": "x"})
	req.Equal(http.StatusBadRequest, status)
	status, _ = doJSON(t, http.MethodPost, srv.url+"/currencies/update", map[string]any{"id": 999, "name": "x"})
	req.Equal(http.StatusNotFound, status)
}

func TestHTTP_FetchHistory(t *testing.T) {
	req := require.New(t)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"base":"USD","rates":{"2024-07-01":{"SEK":10.5},"2024-07-02":{"SEK":10.6}}}`))
	}))
	t.Cleanup(upstream.Close)
	srv := newTestServer(t, upstream.URL, nil)

	status, _ := doJSON(t, http.MethodPost, srv.url+"/currencies/insert", map[string]any{"iso_code": "SEK", "name": "Swedish Krona"})
	req.Equal(http.StatusCreated, status)

	// When the history is fetched twice
	status, body := doJSON(t, http.MethodGet, srv.url+"/rates/fetch-history?start=2024-07-01&end=2024-07-02", nil)
	req.Equal(http.StatusOK, status)
	req.Equal("Stored 2 base exchange rate records", body["message"])

	// Then duplicates are ignored
	_, body = doJSON(t, http.MethodGet, srv.url+"/rates/fetch-history?start=2024-07-01&end=2024-07-02", nil)
	req.Equal("Stored 0 base exchange rate records", body["message"])

	status, _ = doJSON(t, http.MethodGet, srv.url+"/rates/fetch-history?start=2024-07-05&end=2024-07-01", nil)
	req.Equal(http.StatusBadRequest, status)
}

func TestHTTP_RoomsAndHealth(t *testing.T) {
	req := require.New(t)
	srv := newTestServer(t, "", nil)
	conn := srv.dial(t)
	id := send(t, conn, protocol.EventJoin, join("gina", "Fika"))
	readUntil(t, conn, ackFor(id))

	resp, err := http.Get(srv.url + "/api/rooms/FIKA")
	req.NoError(err)
	var roster chat.Roster
	req.NoError(json.NewDecoder(resp.Body).Decode(&roster))
	_ = resp.Body.Close()
	req.Equal("fika", roster.Room)
	req.Equal([]string{"gina"}, roster.Names())

	status, body := doJSON(t, http.MethodGet, srv.url+"/healthz", nil)
	req.Equal(http.StatusOK, status)
	req.Equal("ok", body["status"])
	req.Equal(float64(1), body["connections"])
}
