package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/fenggwsx/GeoChat/internal/config"
	"github.com/fenggwsx/GeoChat/internal/storage"
)

const DateLayout = "2006-01-02"

var ErrUpstream = errors.New("rate source error")

// Fetcher queries an exchangerate.host compatible timeseries endpoint.
type Fetcher struct {
	client *http.Client
	cfg    config.RatesConfig
}

// NewFetcher returns a fetcher bounded by cfg.Timeout.
func NewFetcher(cfg config.RatesConfig) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
	}
}

type timeseriesResponse struct {
	Success *bool                         `json:"success"`
	Base    string                        `json:"base"`
	Rates   map[string]map[string]float64 `json:"rates"`
	Error   *struct {
		Code int    `json:"code"`
		Type string `json:"type"`
		Info string `json:"info"`
	} `json:"error"`
}

// Timeseries returns one rate per (date, symbol) between start and end,
// ordered by date then target.
func (f *Fetcher) Timeseries(ctx context.Context, symbols []string, start, end time.Time) ([]storage.ExchangeRate, error) {
	endpoint, err := url.Parse(f.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("rate source url: %w", err)
	}
	query := endpoint.Query()
	query.Set("base", f.cfg.Base)
	query.Set("start_date", start.Format(DateLayout))
	query.Set("end_date", end.Format(DateLayout))
	if len(symbols) > 0 {
		query.Set("symbols", strings.Join(symbols, ","))
	}
	if f.cfg.AccessKey != "" {
		query.Set("access_key", f.cfg.AccessKey)
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var body timeseriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	if body.Success != nil && !*body.Success {
		info := "unknown error"
		if body.Error != nil && body.Error.Info != "" {
			info = body.Error.Info
		}
		return nil, fmt.Errorf("%w: %s", ErrUpstream, info)
	}

	base := body.Base
	if base == "" {
		base = f.cfg.Base
	}

	var out []storage.ExchangeRate
	for day, daily := range body.Rates {
		date, err := time.Parse(DateLayout, day)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q", ErrUpstream, day)
		}
		for target, rate := range daily {
			out = append(out, storage.ExchangeRate{Base: base, Target: target, Date: date, Rate: rate})
		}
	}
	slices.SortFunc(out, func(a, b storage.ExchangeRate) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.Target, b.Target)
	})
	return out, nil
}
