package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/fenggwsx/GeoChat/internal/geo"
)

const envPrefix = "GEOCHAT"

// DefaultJWTSecret is the placeholder secret used when GEOCHAT_JWT_SECRET is unset.
const DefaultJWTSecret = "replace-me"

// ErrWriteTimeoutTooShort reports a server write timeout that cannot outlast
// a rates upstream request.
var ErrWriteTimeoutTooShort = errors.New("write timeout must exceed rates timeout")

// ServerConfig holds settings for the HTTP and WebSocket server runtime.
type ServerConfig struct {
	ListenAddr       string          `split_words:"true" default:":3000" validate:"required"`
	LogLevel         string          `split_words:"true" default:"INFO" validate:"required"`
	CurrencySeedFile string          `split_words:"true"`
	Database         DatabaseConfig  `envconfig:"DB"`
	JWT              JWTConfig       `envconfig:"JWT"`
	Transport        TransportConfig `envconfig:"WS"`
	Chat             ChatConfig      `envconfig:"CHAT"`
	Rates            RatesConfig     `envconfig:"RATES"`
}

// DatabaseConfig captures storage configuration.
type DatabaseConfig struct {
	Path string `split_words:"true" default:"geochat.db" validate:"required"`
}

// JWTConfig defines token issuance parameters.
type JWTConfig struct {
	Secret     string        `split_words:"true" default:"replace-me" validate:"required"`
	Issuer     string        `split_words:"true" default:"geochat" validate:"required"`
	Expiration time.Duration `split_words:"true" default:"24h" validate:"gt=0"`
}

// UsesDefaultSecret reports whether tokens are signed with the placeholder secret.
func (c JWTConfig) UsesDefaultSecret() bool {
	return c.Secret == DefaultJWTSecret
}

// TransportConfig bounds every WebSocket connection.
type TransportConfig struct {
	ReadTimeout     time.Duration `split_words:"true" default:"15s" validate:"gt=0"`
	WriteTimeout    time.Duration `split_words:"true" default:"45s" validate:"gt=0"`
	IdleTimeout     time.Duration `split_words:"true" default:"60s" validate:"gt=0"`
	PongWait        time.Duration `split_words:"true" default:"60s" validate:"gt=0"`
	WriteWait       time.Duration `split_words:"true" default:"10s" validate:"gt=0"`
	MaxMessageBytes int64         `split_words:"true" default:"4096" validate:"gt=0"`
	SendBuffer      int           `split_words:"true" default:"256" validate:"gt=0"`
	RateBurst       int           `split_words:"true" default:"10" validate:"gt=0"`
	RateInterval    time.Duration `split_words:"true" default:"1s" validate:"gt=0"`
	AllowedOrigins  []string      `split_words:"true"`
}

// PingPeriod is how often the server pings; it must stay below PongWait.
func (c TransportConfig) PingPeriod() time.Duration {
	return c.PongWait * 9 / 10
}

// ChatConfig carries the admission and informational regions plus the word filter.
type ChatConfig struct {
	AdmitName   string  `split_words:"true" default:"Sweden"`
	AdmitMinLat float64 `split_words:"true" default:"55.3" validate:"gte=-90,lte=90,ltefield=AdmitMaxLat"`
	AdmitMaxLat float64 `split_words:"true" default:"69.1" validate:"gte=-90,lte=90"`
	AdmitMinLon float64 `split_words:"true" default:"11.1" validate:"gte=-180,lte=180,ltefield=AdmitMaxLon"`
	AdmitMaxLon float64 `split_words:"true" default:"24.2" validate:"gte=-180,lte=180"`

	InfoEnabled bool    `split_words:"true" default:"true"`
	InfoName    string  `split_words:"true" default:"China"`
	InfoMinLat  float64 `split_words:"true" default:"18" validate:"gte=-90,lte=90,ltefield=InfoMaxLat"`
	InfoMaxLat  float64 `split_words:"true" default:"54" validate:"gte=-90,lte=90"`
	InfoMinLon  float64 `split_words:"true" default:"73" validate:"gte=-180,lte=180,ltefield=InfoMaxLon"`
	InfoMaxLon  float64 `split_words:"true" default:"135" validate:"gte=-180,lte=180"`

	BannedWordsFile string   `split_words:"true"`
	Sentinels       []string `split_words:"true" default:"NULL"`
}

// AdmissionRegion is the box a joining client must be inside.
func (c ChatConfig) AdmissionRegion() geo.Region {
	return geo.Region{Name: c.AdmitName, MinLat: c.AdmitMinLat, MaxLat: c.AdmitMaxLat, MinLon: c.AdmitMinLon, MaxLon: c.AdmitMaxLon}
}

// InformationalRegion is logged against shared locations; nil when disabled.
func (c ChatConfig) InformationalRegion() *geo.Region {
	if !c.InfoEnabled {
		return nil
	}
	return &geo.Region{Name: c.InfoName, MinLat: c.InfoMinLat, MaxLat: c.InfoMaxLat, MinLon: c.InfoMinLon, MaxLon: c.InfoMaxLon}
}

// RatesConfig points the historical-rate importer at its upstream.
type RatesConfig struct {
	BaseURL   string        `split_words:"true" default:"https://api.exchangerate.host/timeseries" validate:"required,url"`
	AccessKey string        `split_words:"true"`
	Base      string        `split_words:"true" default:"USD" validate:"required,len=3"`
	Timeout   time.Duration `split_words:"true" default:"30s" validate:"gt=0"`
}

// ClientConfig holds settings for the terminal client.
type ClientConfig struct {
	ServerURL     string `env:"GEOCHAT_SERVER_URL,default=ws://localhost:3000/ws"`
	Origin        string `env:"GEOCHAT_ORIGIN,default=http://localhost:3000"`
	CommandPrefix string `env:"GEOCHAT_COMMAND_PREFIX,default=/"`
}

// Prefix returns the first rune of CommandPrefix, '/' when empty.
func (c ClientConfig) Prefix() rune {
	for _, r := range c.CommandPrefix {
		return r
	}
	return '/'
}

// ImporterConfig holds settings for the ratesync CLI.
type ImporterConfig struct {
	DatabasePath string        `env:"GEOCHAT_DB_PATH,default=geochat.db"`
	BaseURL      string        `env:"GEOCHAT_RATES_BASE_URL,default=https://api.exchangerate.host/timeseries"`
	AccessKey    string        `env:"GEOCHAT_RATES_ACCESS_KEY"`
	Base         string        `env:"GEOCHAT_RATES_BASE,default=USD"`
	Timeout      time.Duration `env:"GEOCHAT_RATES_TIMEOUT,default=30s"`
	LogLevel     string        `env:"GEOCHAT_LOG_LEVEL,default=INFO"`
}

// Rates converts the importer settings into the shared upstream settings.
func (c ImporterConfig) Rates() RatesConfig {
	return RatesConfig{BaseURL: c.BaseURL, AccessKey: c.AccessKey, Base: c.Base, Timeout: c.Timeout}
}

// LoadServerConfig reads an optional .env file, then the GEOCHAT_* environment.
func LoadServerConfig(files ...string) (ServerConfig, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ServerConfig{}, fmt.Errorf("load env file: %w", err)
	}

	var cfg ServerConfig
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("process env: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	// fetch-history answers only after the upstream call returns
	if cfg.Transport.WriteTimeout <= cfg.Rates.Timeout {
		return ServerConfig{}, fmt.Errorf("invalid config: %w (%s <= %s)",
			ErrWriteTimeoutTooShort, cfg.Transport.WriteTimeout, cfg.Rates.Timeout)
	}
	return cfg, nil
}

// LoadClientConfig builds the client configuration from environment variables.
func LoadClientConfig() (ClientConfig, error) {
	var cfg ClientConfig
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return ClientConfig{}, fmt.Errorf("client config: %w", err)
	}
	return cfg, nil
}

// LoadImporterConfig builds the ratesync configuration from environment variables.
func LoadImporterConfig() (ImporterConfig, error) {
	_ = godotenv.Load()

	var cfg ImporterConfig
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return ImporterConfig{}, fmt.Errorf("importer config: %w", err)
	}
	return cfg, nil
}
