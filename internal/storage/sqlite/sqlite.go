package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/fenggwsx/GeoChat/internal/config"
	"github.com/fenggwsx/GeoChat/internal/storage"
)

const dateLayout = "2006-01-02"

// Store is a GORM-backed SQLite implementation of storage.Store.
type Store struct {
	db *gorm.DB
}

type userModel struct {
	ID        string `gorm:"primaryKey"`
	Username  string `gorm:"uniqueIndex"`
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userModel) TableName() string { return "users" }

type currencyModel struct {
	ID        uint   `gorm:"primaryKey"`
	ISOCode   string `gorm:"column:iso_code;size:3;uniqueIndex"`
	Name      string
	Symbol    string
	Country   string `gorm:"type:text"`
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (currencyModel) TableName() string { return "currencies" }

type rateModel struct {
	ID        uint    `gorm:"primaryKey"`
	Base      string  `gorm:"size:3;uniqueIndex:idx_rate_day"`
	Target    string  `gorm:"size:3;uniqueIndex:idx_rate_day"`
	Date      string  `gorm:"size:10;uniqueIndex:idx_rate_day"`
	Rate      float64 `gorm:"not null"`
	CreatedAt time.Time
}

func (rateModel) TableName() string { return "base_exchange_rates" }

// NewStore opens a SQLite database at the provided path.
func NewStore(cfg config.DatabaseConfig) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate applies schema updates.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&userModel{}, &currencyModel{}, &rateModel{})
}

// CreateUser stores a new user record.
func (s *Store) CreateUser(ctx context.Context, user *storage.User) error {
	if user == nil {
		return errors.New("nil user")
	}
	model := userModel{
		ID:        user.ID,
		Username:  user.Username,
		Password:  user.Password,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	return translate(s.db.WithContext(ctx).Create(&model).Error)
}

// GetUserByUsername retrieves a user by username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*storage.User, error) {
	var model userModel
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&model).Error; err != nil {
		return nil, translate(err)
	}
	return &storage.User{
		ID:        model.ID,
		Username:  model.Username,
		Password:  model.Password,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

// ListActiveCurrencies returns every enabled currency ordered by id.
func (s *Store) ListActiveCurrencies(ctx context.Context) ([]storage.Currency, error) {
	var models []currencyModel
	if err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	return toCurrencies(models)
}

// SearchCurrencies AND-combines the non-zero filter fields.
func (s *Store) SearchCurrencies(ctx context.Context, filter storage.CurrencyFilter) ([]storage.Currency, error) {
	query := s.db.WithContext(ctx).Model(&currencyModel{})
	if filter.ID != 0 {
		query = query.Where("id = ?", filter.ID)
	}
	if filter.ISOCode != "" {
		query = query.Where("iso_code = ?", filter.ISOCode)
	}
	if filter.Name != "" {
		query = query.Where("name = ?", filter.Name)
	}
	if filter.Symbol != "" {
		query = query.Where("symbol = ?", filter.Symbol)
	}
	if filter.Country != "" {
		query = query.Where("EXISTS (SELECT 1 FROM json_each(currencies.country) WHERE json_each.value = ?)", filter.Country)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var models []currencyModel
	if err := query.Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	return toCurrencies(models)
}

// CreateCurrency inserts a currency and fills in its id and timestamps.
func (s *Store) CreateCurrency(ctx context.Context, currency *storage.Currency) error {
	if currency == nil {
		return errors.New("nil currency")
	}
	model, err := fromCurrency(*currency)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return translate(err)
	}
	currency.ID = model.ID
	currency.CreatedAt = model.CreatedAt
	currency.UpdatedAt = model.UpdatedAt
	return nil
}

// UpdateCurrency applies the non-nil fields of update to the currency id.
func (s *Store) UpdateCurrency(ctx context.Context, id uint, update storage.CurrencyUpdate) error {
	changes := map[string]interface{}{}
	if update.ISOCode != nil {
		changes["iso_code"] = *update.ISOCode
	}
	if update.Name != nil {
		changes["name"] = *update.Name
	}
	if update.Symbol != nil {
		changes["symbol"] = *update.Symbol
	}
	if update.Country != nil {
		country, err := json.Marshal(update.Country)
		if err != nil {
			return err
		}
		changes["country"] = string(country)
	}
	if update.IsActive != nil {
		changes["is_active"] = *update.IsActive
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ensureCurrency(tx, id); err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}
		return translate(tx.Model(&currencyModel{ID: id}).Updates(changes).Error)
	})
}

// DeactivateCurrency soft-deletes a currency by clearing is_active.
func (s *Store) DeactivateCurrency(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ensureCurrency(tx, id); err != nil {
			return err
		}
		return tx.Model(&currencyModel{ID: id}).Update("is_active", false).Error
	})
}

// UpsertCurrencies inserts currencies or refreshes the existing row with the
// same ISO code. It returns the number of rows written.
func (s *Store) UpsertCurrencies(ctx context.Context, currencies []storage.Currency) (int, error) {
	if len(currencies) == 0 {
		return 0, nil
	}
	models := make([]currencyModel, 0, len(currencies))
	for _, currency := range currencies {
		model, err := fromCurrency(currency)
		if err != nil {
			return 0, err
		}
		models = append(models, model)
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "iso_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "symbol", "country", "is_active", "updated_at"}),
	}).CreateInBatches(&models, 100).Error
	if err != nil {
		return 0, translate(err)
	}
	return len(models), nil
}

// ListCurrencyCodes returns the ISO code of every stored currency.
func (s *Store) ListCurrencyCodes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := s.db.WithContext(ctx).Model(&currencyModel{}).Order("iso_code").Pluck("iso_code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// InsertRates stores rates, skipping any (base, target, date) already present.
// It returns how many new rows were written.
func (s *Store) InsertRates(ctx context.Context, rates []storage.ExchangeRate) (int64, error) {
	if len(rates) == 0 {
		return 0, nil
	}
	models := lo.Map(rates, func(rate storage.ExchangeRate, _ int) rateModel {
		return rateModel{
			Base:   rate.Base,
			Target: rate.Target,
			Date:   rate.Date.Format(dateLayout),
			Rate:   rate.Rate,
		}
	})
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&models, 500)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ListRates returns the base rates between from and to inclusive, ordered by
// date and target.
func (s *Store) ListRates(ctx context.Context, base string, from, to time.Time) ([]storage.ExchangeRate, error) {
	var models []rateModel
	err := s.db.WithContext(ctx).
		Where("base = ? AND date >= ? AND date <= ?", base, from.Format(dateLayout), to.Format(dateLayout)).
		Order("date").Order("target").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	rates := make([]storage.ExchangeRate, 0, len(models))
	for _, model := range models {
		date, err := time.Parse(dateLayout, model.Date)
		if err != nil {
			return nil, fmt.Errorf("rate %d: %w", model.ID, err)
		}
		rates = append(rates, storage.ExchangeRate{Base: model.Base, Target: model.Target, Date: date, Rate: model.Rate})
	}
	return rates, nil
}

func (s *Store) ensureCurrency(tx *gorm.DB, id uint) error {
	var count int64
	if err := tx.Model(&currencyModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func fromCurrency(currency storage.Currency) (currencyModel, error) {
	country := currency.Country
	if country == nil {
		country = []string{}
	}
	encoded, err := json.Marshal(country)
	if err != nil {
		return currencyModel{}, err
	}
	return currencyModel{
		ID:        currency.ID,
		ISOCode:   currency.ISOCode,
		Name:      currency.Name,
		Symbol:    currency.Symbol,
		Country:   string(encoded),
		IsActive:  currency.IsActive,
		CreatedAt: currency.CreatedAt,
		UpdatedAt: currency.UpdatedAt,
	}, nil
}

func toCurrencies(models []currencyModel) ([]storage.Currency, error) {
	currencies := make([]storage.Currency, 0, len(models))
	for _, model := range models {
		var country []string
		if model.Country != "" {
			if err := json.Unmarshal([]byte(model.Country), &country); err != nil {
				return nil, fmt.Errorf("currency %d country: %w", model.ID, err)
			}
		}
		currencies = append(currencies, storage.Currency{
			ID:        model.ID,
			ISOCode:   model.ISOCode,
			Name:      model.Name,
			Symbol:    model.Symbol,
			Country:   country,
			IsActive:  model.IsActive,
			CreatedAt: model.CreatedAt,
			UpdatedAt: model.UpdatedAt,
		})
	}
	return currencies, nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return storage.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", storage.ErrConflict, err)
	default:
		return err
	}
}
