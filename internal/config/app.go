package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"fxinsight/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultConfigPath = "config.yaml"

type HTTPServer struct {
	Port string `mapstructure:"port" validate:"required,numeric"`
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"gte=0"`
}

type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

type Currency struct {
	Code  string `mapstructure:"code" validate:"required,len=3,uppercase"`
	Name  string `mapstructure:"name" validate:"required"`
	Color string `mapstructure:"color" validate:"omitempty,hexcolor"`
}

type Treasury struct {
	BaseURL  string `mapstructure:"base_url" validate:"required,url"`
	Endpoint string `mapstructure:"endpoint" validate:"required,startswith=/"`
	// StartDate is the first record date requested, YYYY-MM-DD.
	StartDate string `mapstructure:"start_date" validate:"required,datetime=2006-01-02"`
	PageSize  int    `mapstructure:"page_size" validate:"gte=1,lte=10000"`
	// SourceVersion is part of every cache key; bump it when the upstream schema changes.
	SourceVersion string     `mapstructure:"source_version" validate:"required"`
	Currencies    []Currency `mapstructure:"currencies" validate:"required,min=1,unique=Code,dive"`
}

type Cache struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir" validate:"required_if=Enabled true"`
	// TTL marks file entries stale; zero keeps them forever.
	TTL          time.Duration `mapstructure:"ttl" validate:"gte=0"`
	MemoTTL      time.Duration `mapstructure:"memo_ttl" validate:"gte=0"`
	MemoMaxItems int64         `mapstructure:"memo_max_items" validate:"gte=1"`
}

type Analysis struct {
	VolatilityWindow int     `mapstructure:"volatility_window" validate:"gte=2"`
	PeriodsPerYear   float64 `mapstructure:"periods_per_year" validate:"gt=0"`
}

type Scheduler struct {
	// RefreshInterval of zero disables background refresh.
	RefreshInterval time.Duration `mapstructure:"refresh_interval" validate:"gte=0"`
}

type Output struct {
	Dir string `mapstructure:"dir" validate:"required"`
	// ChartsDir defaults to <Dir>/charts.
	ChartsDir string `mapstructure:"charts_dir"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	Logging    Logging    `mapstructure:"logging"`
	Treasury   Treasury   `mapstructure:"treasury"`
	Cache      Cache      `mapstructure:"cache"`
	Analysis   Analysis   `mapstructure:"analysis"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
	Output     Output     `mapstructure:"output"`
}

func (c *AppConfig) CurrencySet() domain.CurrencySet {
	currencies := make([]domain.Currency, 0, len(c.Treasury.Currencies))
	for _, cur := range c.Treasury.Currencies {
		currencies = append(currencies, domain.Currency{Code: cur.Code, Name: cur.Name, Color: cur.Color})
	}
	return domain.NewCurrencySet(currencies)
}

func (t Treasury) Start() time.Time {
	// validated on load
	d, _ := time.Parse(domain.DateLayout, t.StartDate)
	return d
}

// Init loads config from CONFIG_PATH, falling back to config.yaml.
func Init() (*AppConfig, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}
	return Load(path)
}

func Load(path string) (*AppConfig, error) {
	var cfg AppConfig

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetDefault("http_server.port", "8080")
	v.SetDefault("http_client.timeout_seconds", 30)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("treasury.base_url", "https://api.fiscaldata.treasury.gov/services/api/fiscal_service")
	v.SetDefault("treasury.endpoint", "/v1/accounting/od/rates_of_exchange")
	v.SetDefault("treasury.start_date", "2020-01-01")
	v.SetDefault("treasury.page_size", 10000)
	v.SetDefault("treasury.source_version", "v1")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.dir", "data/cache")
	v.SetDefault("cache.ttl", "0s")
	v.SetDefault("cache.memo_ttl", "1h")
	v.SetDefault("cache.memo_max_items", 16)
	v.SetDefault("analysis.volatility_window", 4)
	v.SetDefault("analysis.periods_per_year", 4)
	v.SetDefault("scheduler.refresh_interval", "24h")
	v.SetDefault("output.dir", "outputs")

	// http env vars
	_ = v.BindEnv("http_server.port", "HTTP_PORT")
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// source env vars
	_ = v.BindEnv("treasury.base_url", "TREASURY_BASE_URL")
	_ = v.BindEnv("treasury.start_date", "TREASURY_START_DATE")

	// cache env vars
	_ = v.BindEnv("cache.enabled", "CACHE_ENABLED")
	_ = v.BindEnv("cache.dir", "CACHE_DIR")
	_ = v.BindEnv("cache.ttl", "CACHE_TTL")

	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("scheduler.refresh_interval", "SCHEDULER_REFRESH_INTERVAL")
	_ = v.BindEnv("output.dir", "OUTPUT_DIR")
	_ = v.BindEnv("output.charts_dir", "OUTPUT_CHARTS_DIR")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if cfg.Output.ChartsDir == "" {
		cfg.Output.ChartsDir = filepath.Join(cfg.Output.Dir, "charts")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
