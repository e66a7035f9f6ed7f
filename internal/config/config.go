package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/segyhp/zakat-engine/internal/domain"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:",squash"`
	Database  DatabaseConfig  `mapstructure:",squash"`
	Redis     RedisConfig     `mapstructure:",squash"`
	Provider  ProviderConfig  `mapstructure:",squash"`
	Scheduler SchedulerConfig `mapstructure:",squash"`
	Logging   LoggingConfig   `mapstructure:",squash"`
	Zakat     ZakatConfig     `mapstructure:",squash"`
	Health    HealthConfig    `mapstructure:",squash"`
}

type ServerConfig struct {
	Port string `mapstructure:"SERVER_PORT"`
	Host string `mapstructure:"SERVER_HOST"`
	Env  string `mapstructure:"ENV"`
}

type DatabaseConfig struct {
	URL          string `mapstructure:"DATABASE_URL"`
	MaxOpenConns int    `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns int    `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

// ProviderConfig configures the metals pricing provider proxy.
type ProviderConfig struct {
	APIKey     string `mapstructure:"METALS_API_KEY"`
	BaseURL    string `mapstructure:"METALS_API_URL"`
	Timeout    string `mapstructure:"METALS_API_TIMEOUT"`
	Currencies string `mapstructure:"RATE_CURRENCIES"`
}

type SchedulerConfig struct {
	CronSpec string `mapstructure:"SCHEDULER_CRON"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

// ZakatConfig is the single source of truth for the nisab constants and the
// zakat rate. The defaults are the classically cited weights.
type ZakatConfig struct {
	NisabGoldGrams   string `mapstructure:"NISAB_GOLD_GRAMS"`
	NisabSilverGrams string `mapstructure:"NISAB_SILVER_GRAMS"`
	Rate             string `mapstructure:"ZAKAT_RATE"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("METALS_API_URL", "https://api.metalpriceapi.com/v1")
	viper.SetDefault("METALS_API_TIMEOUT", "10s")
	viper.SetDefault("RATE_CURRENCIES", "USD")
	viper.SetDefault("SCHEDULER_CRON", "0 0 * * * *")
	viper.SetDefault("NISAB_GOLD_GRAMS", "87.48")
	viper.SetDefault("NISAB_SILVER_GRAMS", "612.36")
	viper.SetDefault("ZAKAT_RATE", "0.025")
	viper.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read from .env file (optional)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = viper.ReadInConfig()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	for _, field := range []struct {
		name  string
		value string
	}{
		{"NISAB_GOLD_GRAMS", c.Zakat.NisabGoldGrams},
		{"NISAB_SILVER_GRAMS", c.Zakat.NisabSilverGrams},
		{"ZAKAT_RATE", c.Zakat.Rate},
	} {
		d, err := decimal.NewFromString(field.value)
		if err != nil {
			return fmt.Errorf("%s must be a valid decimal: %w", field.name, err)
		}
		if !d.IsPositive() {
			return fmt.Errorf("%s must be greater than 0", field.name)
		}
	}

	if c.Scheduler.CronSpec == "" {
		return fmt.Errorf("SCHEDULER_CRON is required")
	}

	if len(c.RateCurrencies()) == 0 {
		return fmt.Errorf("RATE_CURRENCIES must list at least one currency")
	}

	// Validate provider timeout
	if _, err := time.ParseDuration(c.Provider.Timeout); err != nil {
		return fmt.Errorf("METALS_API_TIMEOUT must be a valid duration: %w", err)
	}

	// Validate health check timeout
	if _, err := time.ParseDuration(c.Health.Timeout); err != nil {
		return fmt.Errorf("HEALTH_CHECK_TIMEOUT must be a valid duration: %w", err)
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// NisabWeight returns the configured nisab weight in grams for the basis.
func (c *Config) NisabWeight(basis domain.NisabBasis) decimal.Decimal {
	if basis == domain.NisabBasisGold {
		weight, _ := decimal.NewFromString(c.Zakat.NisabGoldGrams)
		return weight
	}
	weight, _ := decimal.NewFromString(c.Zakat.NisabSilverGrams)
	return weight
}

// ZakatRate returns the configured zakat rate as decimal
func (c *Config) ZakatRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(c.Zakat.Rate)
	return rate
}

// RateCurrencies returns the currencies the scheduler keeps rates warm for.
func (c *Config) RateCurrencies() []string {
	var currencies []string
	for _, cur := range strings.Split(c.Provider.Currencies, ",") {
		cur = strings.ToUpper(strings.TrimSpace(cur))
		if cur != "" {
			currencies = append(currencies, cur)
		}
	}
	return currencies
}

// ProviderTimeout returns the provider request timeout as duration
func (c *Config) ProviderTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Provider.Timeout)
	return timeout
}

// HealthTimeout returns the health check timeout as duration
func (c *Config) HealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}
