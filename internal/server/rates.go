package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fenggwsx/GeoChat/internal/rates"
)

func (a *App) handleFetchHistory(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	start, end, err := rates.ParseRange(query.Get("start"), query.Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := a.importer.Import(r.Context(), start, end)
	switch {
	case errors.Is(err, rates.ErrUpstream):
		a.log.Warn("Rate import failed upstream", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	case err != nil:
		a.log.Error("Rate import failed", "error", err)
		writeError(w, http.StatusInternalServerError, "rate import failed")
		return
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("Stored %d base exchange rate records", result.Inserted))
}
