package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"

	"github.com/fenggwsx/GeoChat/internal/auth"
	"github.com/fenggwsx/GeoChat/internal/chat"
	"github.com/fenggwsx/GeoChat/internal/config"
	"github.com/fenggwsx/GeoChat/internal/currencies"
	"github.com/fenggwsx/GeoChat/internal/rates"
)

const shutdownTimeout = 10 * time.Second

// Deps groups the services the App routes requests to.
type Deps struct {
	Dispatcher *chat.Dispatcher
	Hub        *SessionHub
	Auth       *auth.Service
	Currencies *currencies.Service
	Importer   *rates.Importer
}

// App coordinates the HTTP listener, WebSocket sessions, and the REST API.
type App struct {
	cfg        config.ServerConfig
	dispatcher *chat.Dispatcher
	hub        *SessionHub
	auth       *auth.Service
	currencies *currencies.Service
	importer   *rates.Importer
	upgrader   websocket.Upgrader
	validate   *validator.Validate
	log        *slog.Logger
}

// NewApp constructs a server instance using the provided dependencies.
func NewApp(cfg config.ServerConfig, deps Deps, log *slog.Logger) *App {
	origins := newOriginPolicy(cfg.Transport.AllowedOrigins, log)
	return &App{
		cfg:        cfg,
		dispatcher: deps.Dispatcher,
		hub:        deps.Hub,
		auth:       deps.Auth,
		currencies: deps.Currencies,
		importer:   deps.Importer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     origins.check,
		},
		validate: validator.New(),
		log:      log,
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully and
// closes every open socket.
func (a *App) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", a.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return a.Serve(ctx, listener)
}

// Serve is Run on an existing listener.
func (a *App) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:      a.Handler(),
		ReadTimeout:  a.cfg.Transport.ReadTimeout,
		WriteTimeout: a.cfg.Transport.WriteTimeout,
		IdleTimeout:  a.cfg.Transport.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("Server listening", "addr", listener.Addr().String())
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		a.hub.CloseAll()
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	a.log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	a.hub.CloseAll()
	if serveErr := <-errCh; serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", serveErr)
	}
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.log.Info("HTTP server shutdown completed")
	return nil
}

// Handler returns the routed HTTP handler.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", a.handleHealth)
	mux.HandleFunc("GET /ws", a.handleWebSocket)
	mux.HandleFunc("GET /api/rooms", a.handleRooms)
	mux.HandleFunc("GET /api/rooms/{room}", a.handleRoom)
	mux.HandleFunc("POST /api/auth/register", a.handleRegister)
	mux.HandleFunc("POST /api/auth/login", a.handleLogin)
	mux.HandleFunc("GET /api/auth/me", a.handleWhoAmI)
	mux.HandleFunc("GET /currencies", a.handleListCurrencies)
	mux.HandleFunc("GET /currencies/search", a.handleSearchCurrencies)
	mux.HandleFunc("POST /currencies/insert", a.handleInsertCurrency)
	mux.HandleFunc("GET /currencies/delete", a.handleDeleteCurrency)
	mux.HandleFunc("POST /currencies/update", a.handleUpdateCurrency)
	mux.HandleFunc("GET /rates/fetch-history", a.handleFetchHistory)
	return mux
}

func (a *App) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.log.Warn("WebSocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	session := newClientSession(a, conn)
	a.hub.Register(session.id, session.sendCh)
	session.log.Info("Client connected")

	go session.writeLoop()
	session.readLoop(r.Context())
}

func (a *App) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"connections": a.hub.Len(),
	})
}

func (a *App) handleRooms(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"rooms": a.dispatcher.Directory().Rooms()})
}

func (a *App) handleRoom(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.dispatcher.Directory().Roster(r.PathValue("room")))
}
