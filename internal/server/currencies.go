package server

import (
	"errors"
	"net/http"

	"github.com/fenggwsx/GeoChat/internal/currencies"
	"github.com/fenggwsx/GeoChat/internal/storage"
)

func (a *App) handleListCurrencies(w http.ResponseWriter, r *http.Request) {
	list, err := a.currencies.List(r.Context())
	if err != nil {
		a.reportCurrencyError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *App) handleSearchCurrencies(w http.ResponseWriter, r *http.Request) {
	filter, err := parseCurrencyFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	list, err := a.currencies.Search(r.Context(), filter)
	if err != nil {
		a.reportCurrencyError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *App) handleInsertCurrency(w http.ResponseWriter, r *http.Request) {
	var req currencies.InsertRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created, err := a.currencies.Insert(r.Context(), req)
	if err != nil {
		a.reportCurrencyError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      created.ID,
		"message": "Currency added successfully",
	})
}

func (a *App) handleDeleteCurrency(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.currencies.Deactivate(r.Context(), id); err != nil {
		a.reportCurrencyError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Currency disabled successfully")
}

func (a *App) handleUpdateCurrency(w http.ResponseWriter, r *http.Request) {
	var req currencies.UpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := a.currencies.Update(r.Context(), req); err != nil {
		a.reportCurrencyError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Currency updated successfully")
}

func (a *App) reportCurrencyError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, currencies.ErrMissingID):
		writeError(w, http.StatusBadRequest, "Currency ID is required")
	case errors.Is(err, currencies.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "Currency not found")
	case errors.Is(err, storage.ErrConflict):
		writeError(w, http.StatusConflict, "Currency already exists")
	default:
		a.log.Error("Currency request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
