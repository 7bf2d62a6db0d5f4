package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fenggwsx/GeoChat/internal/auth"
)

func (a *App) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds auth.Credentials
	if err := decodeJSON(w, r, &creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	session, err := a.auth.Register(r.Context(), creds)
	if err != nil {
		a.reportAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds auth.Credentials
	if err := decodeJSON(w, r, &creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	session, err := a.auth.Login(r.Context(), creds)
	if err != nil {
		a.reportAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (a *App) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}
	identity, err := a.auth.Verify(strings.TrimSpace(token))
	if err != nil {
		a.reportAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, identity)
}

func (a *App) reportAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, "username and password are required")
	case errors.Is(err, auth.ErrUserExists):
		writeError(w, http.StatusConflict, "username already exists")
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, auth.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "invalid token")
	default:
		a.log.Error("Authentication failed", "error", err)
		writeError(w, http.StatusInternalServerError, "authentication failed")
	}
}
