package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Database   Database   `yaml:"database"`
	Redis      Redis      `yaml:"redis"`
	AMQP       AMQP       `yaml:"amqp"`
	Booking    Booking    `yaml:"booking"`
	Checkin    Checkin    `yaml:"checkin"`
	Pricing    Pricing    `yaml:"pricing"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Database is optional: an empty host keeps all state in memory.
type Database struct {
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"DB_NAME" env-default:"event_gate"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
}

func (d Database) Enabled() bool {
	return d.Host != ""
}

type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type AMQP struct {
	URL      string `yaml:"url" env:"AMQP_URL"`
	Exchange string `yaml:"exchange" env:"AMQP_EXCHANGE" env-default:"event_gate"`
}

type Booking struct {
	HoldTTL       time.Duration `yaml:"hold_ttl" env:"HOLD_TTL" env-default:"10m"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"SWEEP_INTERVAL" env-default:"30s"`
	Currency      string        `yaml:"currency" env-default:"USD"`
}

type Checkin struct {
	RateWindow    time.Duration `yaml:"rate_window" env-default:"60m"`
	RecentHistory int           `yaml:"recent_history" env-default:"100"`
}

type Pricing struct {
	AutoAdjust         bool          `yaml:"auto_adjust" env:"PRICING_AUTO_ADJUST"`
	ScarcityThreshold  float64       `yaml:"scarcity_threshold" env-default:"0.2"`
	MaxMultiplier      float64       `yaml:"max_multiplier" env-default:"1.5"`
	LastMinuteDiscount bool          `yaml:"last_minute_discount" env:"PRICING_LAST_MINUTE_DISCOUNT"`
	DiscountWindow     time.Duration `yaml:"discount_window" env-default:"48h"`
	DiscountRate       float64       `yaml:"discount_rate" env-default:"0.2"`
	MinFactor          float64       `yaml:"min_factor" env-default:"0.5"`
	MaxFactor          float64       `yaml:"max_factor" env-default:"2.0"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	return cfg
}

func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	return &cfg, nil
}
