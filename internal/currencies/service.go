package currencies

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"golang.org/x/text/currency"

	"github.com/fenggwsx/GeoChat/internal/storage"
)

var (
	ErrInvalidInput = errors.New("invalid currency input")
	ErrMissingID    = errors.New("currency id is required")
)

// InsertRequest is the body of POST /currencies/insert.
type InsertRequest struct {
	ISOCode  string   `json:"iso_code" validate:"required,len=3,alpha"`
	Name     string   `json:"name" validate:"required,max=64"`
	Symbol   string   `json:"symbol" validate:"omitempty,max=8"`
	Country  []string `json:"country" validate:"omitempty,dive,required"`
	IsActive *bool    `json:"is_active"`
}

// UpdateRequest is the body of POST /currencies/update. Absent fields are kept.
type UpdateRequest struct {
	ID       uint     `json:"id"`
	ISOCode  *string  `json:"iso_code" validate:"omitempty,len=3,alpha"`
	Name     *string  `json:"name" validate:"omitempty,max=64"`
	Symbol   *string  `json:"symbol" validate:"omitempty,max=8"`
	Country  []string `json:"country" validate:"omitempty,dive,required"`
	IsActive *bool    `json:"is_active"`
}

// SeedRecord is one entry of the currency seed file.
type SeedRecord struct {
	ISOCode string   `json:"ISOCode"`
	Name    string   `json:"Name"`
	Country []string `json:"Country"`
}

// Service validates currency input before it reaches the store.
type Service struct {
	store    storage.CurrencyStore
	validate *validator.Validate
	log      *slog.Logger
}

// NewService returns a currency service over store.
func NewService(store storage.CurrencyStore, log *slog.Logger) *Service {
	return &Service{store: store, validate: validator.New(), log: log}
}

// List returns the active currencies.
func (s *Service) List(ctx context.Context) ([]storage.Currency, error) {
	return s.store.ListActiveCurrencies(ctx)
}

// Search returns currencies matching every set field of filter.
func (s *Service) Search(ctx context.Context, filter storage.CurrencyFilter) ([]storage.Currency, error) {
	filter.ISOCode = strings.ToUpper(filter.ISOCode)
	return s.store.SearchCurrencies(ctx, filter)
}

// Insert stores a new currency. The symbol is derived from the ISO code when
// omitted and the currency is active unless stated otherwise.
func (s *Service) Insert(ctx context.Context, req InsertRequest) (storage.Currency, error) {
	if err := s.validate.Struct(req); err != nil {
		return storage.Currency{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	iso := strings.ToUpper(req.ISOCode)
	symbol := req.Symbol
	if symbol == "" {
		symbol = Symbol(iso)
	}
	c := storage.Currency{
		ISOCode:  iso,
		Name:     req.Name,
		Symbol:   symbol,
		Country:  lo.Ternary(req.Country == nil, []string{}, req.Country),
		IsActive: req.IsActive == nil || *req.IsActive,
	}
	if err := s.store.CreateCurrency(ctx, &c); err != nil {
		return storage.Currency{}, err
	}
	s.log.Info("Currency added", "id", c.ID, "iso_code", c.ISOCode)
	return c, nil
}

// Update applies the fields present in req.
func (s *Service) Update(ctx context.Context, req UpdateRequest) error {
	if req.ID == 0 {
		return ErrMissingID
	}
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	update := storage.CurrencyUpdate{
		Name:     req.Name,
		Symbol:   req.Symbol,
		Country:  req.Country,
		IsActive: req.IsActive,
	}
	if req.ISOCode != nil {
		update.ISOCode = lo.ToPtr(strings.ToUpper(*req.ISOCode))
	}
	return s.store.UpdateCurrency(ctx, req.ID, update)
}

// Deactivate soft-deletes the currency id.
func (s *Service) Deactivate(ctx context.Context, id uint) error {
	if id == 0 {
		return ErrMissingID
	}
	return s.store.DeactivateCurrency(ctx, id)
}

// Seed upserts every record of the JSON seed file at path and returns how
// many rows were written. Records without an ISO code are skipped.
func (s *Service) Seed(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}
	var records []SeedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("parse seed file: %w", err)
	}

	currencies := lo.FilterMap(records, func(r SeedRecord, i int) (storage.Currency, bool) {
		if len(r.ISOCode) != 3 {
			s.log.Warn("Skipping seed record", "index", i, "iso_code", r.ISOCode)
			return storage.Currency{}, false
		}
		iso := strings.ToUpper(r.ISOCode)
		return storage.Currency{
			ISOCode:  iso,
			Name:     r.Name,
			Symbol:   Symbol(iso),
			Country:  lo.Ternary(r.Country == nil, []string{}, r.Country),
			IsActive: true,
		}, true
	})
	currencies = lo.UniqBy(currencies, func(c storage.Currency) string { return c.ISOCode })

	n, err := s.store.UpsertCurrencies(ctx, currencies)
	if err != nil {
		return 0, fmt.Errorf("upsert currencies: %w", err)
	}
	s.log.Info("Currencies seeded", "path", path, "records", len(records), "written", n)
	return n, nil
}

// Symbol returns the narrow symbol for an ISO 4217 code, or "" when the code
// is unknown.
func Symbol(iso string) string {
	unit, err := currency.ParseISO(iso)
	if err != nil {
		return ""
	}
	return fmt.Sprint(currency.NarrowSymbol(unit))
}
