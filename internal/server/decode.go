package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/fenggwsx/GeoChat/internal/storage"
)

var errInvalidQuery = errors.New("invalid query")

func decodeJSON(w http.ResponseWriter, r *http.Request, out any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", errInvalidPayload, err)
	}
	return nil
}

// parseID reads a positive currency id; zero means absent.
func parseID(raw string) (uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id %q", errInvalidQuery, raw)
	}
	return uint(id), nil
}

func parseCurrencyFilter(query url.Values) (storage.CurrencyFilter, error) {
	id, err := parseID(query.Get("id"))
	if err != nil {
		return storage.CurrencyFilter{}, err
	}
	filter := storage.CurrencyFilter{
		ID:      id,
		ISOCode: strings.ToUpper(strings.TrimSpace(query.Get("iso_code"))),
		Name:    strings.TrimSpace(query.Get("name")),
		Symbol:  strings.TrimSpace(query.Get("symbol")),
		Country: strings.TrimSpace(query.Get("country")),
	}
	if raw := strings.TrimSpace(query.Get("is_active")); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return storage.CurrencyFilter{}, fmt.Errorf("%w: is_active %q", errInvalidQuery, raw)
		}
		filter.IsActive = &active
	}
	return filter, nil
}
