package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port       string        `env:"PORT" envDefault:"8080"`
	CORSOrigin string        `env:"CORS_ORIGIN" envDefault:"*"`
	BackendURL string        `env:"BACKEND_URL" envDefault:"http://localhost:3001"`
	Timeout    time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`

	BrandName          string `env:"BRAND_NAME" envDefault:"Median Edge"`
	DefaultCountryCode string `env:"DEFAULT_COUNTRY_CODE" envDefault:"91"`
	LookupMinLength    int    `env:"LOOKUP_MIN_LENGTH" envDefault:"12"`
	SentinelPhone      string `env:"SENTINEL_PHONE" envDefault:"+99900000000"`

	AllowedParentTypes []string `env:"CATALOG_ALLOWED_PARENT_TYPES" envSeparator:","`
	ExcludeCustom      bool     `env:"CATALOG_EXCLUDE_CUSTOM" envDefault:"true"`

	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	DefaultTheme string        `env:"DEFAULT_THEME" envDefault:"light"`

	WhatsAppNumber         string `env:"WHATSAPP_NUMBER"`
	WhatsAppActivationText string `env:"WHATSAPP_ACTIVATION_TEXT" envDefault:"Hi! Please activate my market alerts."`
	TelegramBot            string `env:"TELEGRAM_BOT"`

	DBDriver   string `env:"DB_DRIVER" envDefault:"sqlite"`
	DBPath     string `env:"DB_PATH" envDefault:"./signup.db"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"signup"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := Parse()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

// Parse reads the process environment into a Config without touching .env.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("BACKEND_URL is required")
	}
	if c.LookupMinLength < 1 {
		return fmt.Errorf("LOOKUP_MIN_LENGTH must be positive, got %d", c.LookupMinLength)
	}
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.DefaultTheme {
	case "light", "dark":
	default:
		return fmt.Errorf("unsupported DEFAULT_THEME %q", c.DefaultTheme)
	}
	return nil
}

// PostgresDSN builds the connection string used by the postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}
