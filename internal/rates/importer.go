package rates

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fenggwsx/GeoChat/internal/storage"
)

const (
	DefaultStart = "2024-07-01"
	DefaultEnd   = "2024-07-07"
)

var ErrInvalidRange = errors.New("invalid date range")

// Source provides historical rates for a set of symbols.
type Source interface {
	Timeseries(ctx context.Context, symbols []string, start, end time.Time) ([]storage.ExchangeRate, error)
}

// Result summarises one import run.
type Result struct {
	Start    time.Time
	End      time.Time
	Symbols  int
	Fetched  int
	Inserted int64
	Rates    []storage.ExchangeRate
}

// Importer copies historical rates for every stored currency into the rate table.
type Importer struct {
	currencies storage.CurrencyStore
	rates      storage.RateStore
	source     Source
	log        *slog.Logger
}

// NewImporter wires an importer.
func NewImporter(currencies storage.CurrencyStore, rates storage.RateStore, source Source, log *slog.Logger) *Importer {
	return &Importer{currencies: currencies, rates: rates, source: source, log: log}
}

// Import fetches and stores rates between start and end inclusive. Rows that
// already exist are left untouched.
func (i *Importer) Import(ctx context.Context, start, end time.Time) (Result, error) {
	if end.Before(start) {
		return Result{}, fmt.Errorf("%w: end %s is before start %s", ErrInvalidRange, end.Format(DateLayout), start.Format(DateLayout))
	}

	symbols, err := i.currencies.ListCurrencyCodes(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list currencies: %w", err)
	}

	fetched, err := i.source.Timeseries(ctx, symbols, start, end)
	if err != nil {
		return Result{}, fmt.Errorf("fetch rates: %w", err)
	}

	inserted, err := i.rates.InsertRates(ctx, fetched)
	if err != nil {
		return Result{}, fmt.Errorf("store rates: %w", err)
	}

	i.log.Info("Rates imported",
		"start", start.Format(DateLayout),
		"end", end.Format(DateLayout),
		"symbols", len(symbols),
		"fetched", len(fetched),
		"inserted", inserted,
	)
	return Result{
		Start:    start,
		End:      end,
		Symbols:  len(symbols),
		Fetched:  len(fetched),
		Inserted: inserted,
		Rates:    fetched,
	}, nil
}

// ParseRange parses YYYY-MM-DD bounds, substituting the defaults for blanks.
func ParseRange(start, end string) (time.Time, time.Time, error) {
	if start == "" {
		start = DefaultStart
	}
	if end == "" {
		end = DefaultEnd
	}
	from, err := time.Parse(DateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start %q", ErrInvalidRange, start)
	}
	to, err := time.Parse(DateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end %q", ErrInvalidRange, end)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end before start", ErrInvalidRange)
	}
	return from, to, nil
}
