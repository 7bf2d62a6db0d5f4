//go:generate go run go.uber.org/mock/mockgen -source=storage.go -destination=../mocks/mock_storage.go -package=mocks
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// User represents a persisted account record.
type User struct {
	ID        string
	Username  string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Currency is one row of the currency reference table.
type Currency struct {
	ID        uint      `json:"id"`
	ISOCode   string    `json:"iso_code"`
	Name      string    `json:"name"`
	Symbol    string    `json:"symbol"`
	Country   []string  `json:"country"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CurrencyFilter narrows a currency search. Zero fields are ignored and the
// rest are AND-combined; Country matches any element of the country list.
type CurrencyFilter struct {
	ID       uint
	ISOCode  string
	Name     string
	Symbol   string
	Country  string
	IsActive *bool
}

// CurrencyUpdate changes only the non-nil fields.
type CurrencyUpdate struct {
	ISOCode  *string
	Name     *string
	Symbol   *string
	Country  []string
	IsActive *bool
}

// ExchangeRate is the value of one Target unit per Base unit on Date.
type ExchangeRate struct {
	Base   string    `json:"base"`
	Target string    `json:"target"`
	Date   time.Time `json:"date"`
	Rate   float64   `json:"rate"`
}

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}

// CurrencyStore persists currency reference data.
type CurrencyStore interface {
	ListActiveCurrencies(ctx context.Context) ([]Currency, error)
	SearchCurrencies(ctx context.Context, filter CurrencyFilter) ([]Currency, error)
	CreateCurrency(ctx context.Context, currency *Currency) error
	UpdateCurrency(ctx context.Context, id uint, update CurrencyUpdate) error
	DeactivateCurrency(ctx context.Context, id uint) error
	UpsertCurrencies(ctx context.Context, currencies []Currency) (int, error)
	ListCurrencyCodes(ctx context.Context) ([]string, error)
}

// RateStore persists historical exchange rates.
type RateStore interface {
	InsertRates(ctx context.Context, rates []ExchangeRate) (int64, error)
	ListRates(ctx context.Context, base string, from, to time.Time) ([]ExchangeRate, error)
}

// Store defines persistence operations used by the server.
type Store interface {
	UserStore
	CurrencyStore
	RateStore

	Close() error
	Migrate(ctx context.Context) error
}
