package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	TelegramToken string `env:"TELEGRAM_TOKEN,required"`
	// Optional channel that receives a copy of every new-order notice.
	NotifyChannelID int64   `env:"NOTIFY_CHANNEL_ID"`
	AdminIDs        []int64 `env:"ADMIN_IDS" envSeparator:","`
	Debug           bool    `env:"BOT_DEBUG" envDefault:"false"`

	Database DatabaseConfig `envPrefix:"DB_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	Log      LogConfig      `envPrefix:"LOG_"`
	Pricing  PricingConfig  `envPrefix:"PRICING_"`
	Rewards  RewardsConfig  `envPrefix:"REWARDS_"`
	Limits   LimitsConfig   `envPrefix:"LIMIT_"`
}

type DatabaseConfig struct {
	Host            string        `env:"HOST,required"`
	Port            int           `env:"PORT" envDefault:"5432"`
	User            string        `env:"USER,required"`
	Password        string        `env:"PASSWORD,required"`
	Name            string        `env:"NAME,required"`
	SSLMode         string        `env:"SSLMODE" envDefault:"disable"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"CONN_MAX_IDLE_TIME" envDefault:"2m"`
	ConnectTimeout  time.Duration `env:"CONNECT_TIMEOUT" envDefault:"2m"`
}

// DSN returns a lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

type RedisConfig struct {
	Addr     string        `env:"ADDR,required"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	TTL      time.Duration `env:"TTL" envDefault:"24h"`
}

type LogConfig struct {
	Level      string `env:"LEVEL" envDefault:"info"`
	Format     string `env:"FORMAT" envDefault:"json"`
	File       string `env:"FILE"`
	MaxSizeMB  int    `env:"MAX_SIZE_MB" envDefault:"100"`
	MaxBackups int    `env:"MAX_BACKUPS" envDefault:"5"`
	MaxAgeDays int    `env:"MAX_AGE_DAYS" envDefault:"30"`
}

type PricingConfig struct {
	TablePath string `env:"TABLE_PATH"`
	Strict    bool   `env:"STRICT" envDefault:"false"`
}

type RewardsConfig struct {
	RedeemCost float64 `env:"REDEEM_COST" envDefault:"50"`
}

type LimitsConfig struct {
	OrdersPerWindow int64         `env:"ORDERS" envDefault:"10"`
	Window          time.Duration `env:"WINDOW" envDefault:"1h"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate required fields
	if len(cfg.AdminIDs) == 0 {
		return nil, fmt.Errorf("at least one admin ID is required")
	}
	if cfg.Rewards.RedeemCost <= 0 {
		return nil, fmt.Errorf("redeem cost must be positive, got %v", cfg.Rewards.RedeemCost)
	}

	return &cfg, nil
}

// LoadDatabase parses only the DB_ section, for tooling that
// does not talk to Telegram.
func LoadDatabase() (*DatabaseConfig, error) {
	var cfg DatabaseConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "DB_"}); err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	return &cfg, nil
}

// LoadLog parses the LOG_ section alone.
func LoadLog() (*LogConfig, error) {
	var cfg LogConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "LOG_"}); err != nil {
		return nil, fmt.Errorf("failed to parse log config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsAdmin(chatID int64) bool {
	for _, id := range c.AdminIDs {
		if id == chatID {
			return true
		}
	}
	return false
}
