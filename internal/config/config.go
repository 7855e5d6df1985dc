package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// AppConfig is built once at startup and handed to every constructor.
type AppConfig struct {
	BotToken string `env:"BOT_TOKEN" validate:"required"`
	// Workers is the number of updates handled concurrently.
	Workers int `env:"BOT_WORKERS" env-default:"8" validate:"gt=0"`

	Weather  WeatherConfig
	Database DatabaseConfig
	Session  SessionConfig
	Flood    FloodConfig

	// PlotDir is where rendered charts are written before being sent.
	PlotDir string `env:"PLOT_DIR" env-default:"./temp" validate:"required"`

	// HousekeepingInterval controls how often stale sessions, limiters and
	// plot files are swept.
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" env-default:"10m" validate:"gt=0"`

	OpsAddr        string `env:"OPS_ADDR" env-default:":8080"`
	GeocoderAPIKey string `env:"GEOCODER_API_KEY"`

	LogLevel  string `env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	LogFormat string `env:"LOG_FORMAT" env-default:"text" validate:"oneof=text json"`
}

type WeatherConfig struct {
	APIKey      string        `env:"WEATHER_API_KEY" validate:"required"`
	BaseURL     string        `env:"WEATHER_API_BASE_URL" env-default:"https://api.weatherapi.com/v1" validate:"url"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" env-default:"10s" validate:"gt=0"`
}

type DatabaseConfig struct {
	Driver   string `env:"DB_DRIVER" env-default:"pgx" validate:"oneof=pgx postgres"`
	Host     string `env:"DB_HOST" env-default:"localhost" validate:"required"`
	Port     int    `env:"DB_PORT" env-default:"5432" validate:"gt=0,lte=65535"`
	User     string `env:"DB_USER" validate:"required"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" validate:"required"`
	SSLMode  string `env:"DB_SSLMODE" env-default:"disable"`
}

// DSN renders a postgres:// connection string understood by pgx.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}

type SessionConfig struct {
	Backend       string        `env:"SESSION_BACKEND" env-default:"memory" validate:"oneof=memory redis badger"`
	TTL           time.Duration `env:"SESSION_TTL" env-default:"24h" validate:"gt=0"`
	RedisAddr     string        `env:"REDIS_ADDR" validate:"required_if=Backend redis"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" env-default:"0" validate:"gte=0"`
	BadgerDir     string        `env:"BADGER_DIR" env-default:"./data/sessions"`
}

type FloodConfig struct {
	// Rate is the sustained number of events per second allowed per user.
	Rate  float64 `env:"FLOOD_RATE" env-default:"1" validate:"gt=0"`
	Burst int     `env:"FLOOD_BURST" env-default:"3" validate:"gt=0"`
}

var validate = validator.New()

// Load reads configuration from the environment (and an optional .env file)
// and validates it.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		// slog is configured from the loaded config, so it does not exist yet.
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// MustLoad is Load for main: it exits on error.
func MustLoad() *AppConfig {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}
