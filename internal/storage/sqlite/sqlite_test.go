package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/fenggwsx/GeoChat/internal/config"
	"github.com/fenggwsx/GeoChat/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_Users(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)
	ctx := context.Background()

	// Given a registered user
	user := &storage.User{ID: uuid.NewString(), Username: "alice", Password: "hash"}
	req.NoError(store.CreateUser(ctx, user))

	// Then it can be found by name
	got, err := store.GetUserByUsername(ctx, "alice")
	req.NoError(err)
	req.Equal(user.ID, got.ID)
	req.Equal("hash", got.Password)

	// And the name cannot be reused
	err = store.CreateUser(ctx, &storage.User{ID: uuid.NewString(), Username: "alice", Password: "x"})
	req.ErrorIs(err, storage.ErrConflict)

	// And unknown users are reported as not found
	_, err = store.GetUserByUsername(ctx, "bob")
	req.ErrorIs(err, storage.ErrNotFound)
}

func seedCurrencies(t *testing.T, store *Store) []storage.Currency {
	t.Helper()
	currencies := []storage.Currency{
		{ISOCode: "SEK", Name: "Swedish Krona", Symbol: "kr", Country: []string{"Sweden"}, IsActive: true},
		{ISOCode: "EUR", Name: "Euro", Symbol: "€", Country: []string{"Finland", "France"}, IsActive: true},
		{ISOCode: "XXX", Name: "Retired", Country: nil, IsActive: false},
	}
	for i := range currencies {
		require.NoError(t, store.CreateCurrency(context.Background(), &currencies[i]))
		require.NotZero(t, currencies[i].ID)
	}
	return currencies
}

func TestStore_Currencies_ListAndSearch(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)
	ctx := context.Background()
	seeded := seedCurrencies(t, store)

	active, err := store.ListActiveCurrencies(ctx)
	req.NoError(err)
	req.Equal([]string{"SEK", "EUR"}, lo.Map(active, func(c storage.Currency, _ int) string { return c.ISOCode }))
	req.Equal([]string{"Finland", "France"}, active[1].Country)

	tests := []struct {
		name     string
		filter   storage.CurrencyFilter
		expected []string
	}{
		{name: "No filter", filter: storage.CurrencyFilter{}, expected: []string{"SEK", "EUR", "XXX"}},
		{name: "By ISO code", filter: storage.CurrencyFilter{ISOCode: "EUR"}, expected: []string{"EUR"}},
		{name: "By id", filter: storage.CurrencyFilter{ID: seeded[0].ID}, expected: []string{"SEK"}},
		{name: "By country element", filter: storage.CurrencyFilter{Country: "France"}, expected: []string{"EUR"}},
		{name: "Country must match a whole element", filter: storage.CurrencyFilter{Country: "Fran"}, expected: []string{}},
		{name: "Inactive only", filter: storage.CurrencyFilter{IsActive: lo.ToPtr(false)}, expected: []string{"XXX"}},
		{name: "Filters are combined", filter: storage.CurrencyFilter{Name: "Euro", Symbol: "kr"}, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.SearchCurrencies(ctx, tt.filter)
			require.NoError(t, err)
			require.Equal(t, tt.expected, lo.Map(got, func(c storage.Currency, _ int) string { return c.ISOCode }))
		})
	}
}

func TestStore_Currencies_UpdateAndDeactivate(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)
	ctx := context.Background()
	seeded := seedCurrencies(t, store)
	sek := seeded[0]

	// When only the name and countries change
	req.NoError(store.UpdateCurrency(ctx, sek.ID, storage.CurrencyUpdate{
		Name:    lo.ToPtr("Krona"),
		Country: []string{"Sweden", "Åland"},
	}))

	// Then the other fields are untouched
	got, err := store.SearchCurrencies(ctx, storage.CurrencyFilter{ID: sek.ID})
	req.NoError(err)
	req.Len(got, 1)
	req.Equal("Krona", got[0].Name)
	req.Equal("kr", got[0].Symbol)
	req.Equal([]string{"Sweden", "Åland"}, got[0].Country)
	req.True(got[0].IsActive)

	// When it is soft deleted
	req.NoError(store.DeactivateCurrency(ctx, sek.ID))
	active, err := store.ListActiveCurrencies(ctx)
	req.NoError(err)
	req.Len(active, 1)

	// And unknown ids are reported
	req.ErrorIs(store.DeactivateCurrency(ctx, 999), storage.ErrNotFound)
	req.ErrorIs(store.UpdateCurrency(ctx, 999, storage.CurrencyUpdate{Name: lo.ToPtr("x")}), storage.ErrNotFound)

	// And ISO codes stay unique
	req.ErrorIs(store.UpdateCurrency(ctx, sek.ID, storage.CurrencyUpdate{ISOCode: lo.ToPtr("EUR")}), storage.ErrConflict)
}

func TestStore_UpsertCurrencies(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)
	ctx := context.Background()
	seedCurrencies(t, store)

	// When the seed reactivates XXX and adds NOK
	n, err := store.UpsertCurrencies(ctx, []storage.Currency{
		{ISOCode: "XXX", Name: "Testing", Symbol: "¤", Country: []string{}, IsActive: true},
		{ISOCode: "NOK", Name: "Norwegian Krone", Symbol: "kr", Country: []string{"Norway"}, IsActive: true},
	})
	req.NoError(err)
	req.Equal(2, n)

	// Then both rows are active and XXX kept its id
	codes, err := store.ListCurrencyCodes(ctx)
	req.NoError(err)
	req.Equal([]string{"EUR", "NOK", "SEK", "XXX"}, codes)

	got, err := store.SearchCurrencies(ctx, storage.CurrencyFilter{ISOCode: "XXX"})
	req.NoError(err)
	req.Len(got, 1)
	req.Equal("Testing", got[0].Name)
	req.True(got[0].IsActive)
	req.Equal(uint(3), got[0].ID)
}

func TestStore_Rates(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)
	ctx := context.Background()
	day1 := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	rates := []storage.ExchangeRate{
		{Base: "USD", Target: "SEK", Date: day1, Rate: 10.5},
		{Base: "USD", Target: "EUR", Date: day1, Rate: 0.93},
		{Base: "USD", Target: "SEK", Date: day2, Rate: 10.6},
	}

	// When the same rates are imported twice
	inserted, err := store.InsertRates(ctx, rates)
	req.NoError(err)
	req.Equal(int64(3), inserted)

	inserted, err = store.InsertRates(ctx, append(rates, storage.ExchangeRate{Base: "USD", Target: "EUR", Date: day2, Rate: 0.94}))
	req.NoError(err)

	// Then only the new row is written
	req.Equal(int64(1), inserted)

	got, err := store.ListRates(ctx, "USD", day1, day1)
	req.NoError(err)
	req.Equal([]storage.ExchangeRate{
		{Base: "USD", Target: "EUR", Date: day1, Rate: 0.93},
		{Base: "USD", Target: "SEK", Date: day1, Rate: 10.5},
	}, got)

	all, err := store.ListRates(ctx, "USD", day1, day2)
	req.NoError(err)
	req.Len(all, 4)
}
