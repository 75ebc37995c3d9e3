// Package config handles application configuration via environment variables.
// It uses kelseyhightower/envconfig for parsing and provides sensible defaults.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
// Values are loaded from environment variables with the prefix "APP".
// Example: APP_PORT=8080, APP_GAME_MAX_WRONG=10
type Config struct {
	// Server configuration (processed separately to flatten env vars)
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Logging configuration
	Log LogConfig

	// Admin configuration
	Admin AdminConfig

	// Auth configuration for player sessions
	Auth AuthConfig

	// Redis challenge cache
	Redis RedisConfig

	// Game rules
	Game GameConfig

	// Metrics exposure
	Metrics MetricsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Port is the HTTP server port (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// Host is the HTTP server host (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// ReadTimeout is the maximum duration for reading the entire request (default: 10s)
	ReadTimeout time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`

	// WriteTimeout is the maximum duration before timing out writes of the response (default: 30s)
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`

	// ShutdownTimeout is the maximum duration to wait for active connections to finish (default: 30s)
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`

	// AllowedOrigins is a comma separated CORS allow list; "*" allows all.
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	// Host is the database host (default: localhost)
	Host string `envconfig:"DB_HOST" default:"localhost"`

	// Port is the database port (default: 5432)
	Port int `envconfig:"DB_PORT" default:"5432"`

	// User is the database user (default: postgres)
	User string `envconfig:"DB_USER" default:"postgres"`

	// Password is the database password (required in production)
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`

	// Name is the database name (default: palpitefc)
	Name string `envconfig:"DB_NAME" default:"palpitefc"`

	// SSLMode is the SSL mode for the connection (default: disable)
	SSLMode string `envconfig:"DB_SSLMODE" default:"disable"`

	// MaxOpenConns is the maximum number of open connections (default: 25)
	MaxOpenConns int `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`

	// MaxIdleConns is the maximum number of idle connections (default: 5)
	MaxIdleConns int `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`

	// ConnMaxLifetime is the maximum lifetime of a connection (default: 5m)
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`

	// AutoMigrate applies pending migrations on startup (default: true)
	AutoMigrate bool `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is the log level: debug, info, warn, error (default: info)
	Level string `envconfig:"LOG_LEVEL" default:"info"`

	// Format is the log format: json, text, plain (default: json)
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// AdminConfig holds the catalog administration credentials.
type AdminConfig struct {
	// Token is compared against the X-Admin-Token header. Empty disables the admin API.
	Token string `envconfig:"ADMIN_TOKEN"`
}

// AuthConfig controls how players are identified.
type AuthConfig struct {
	// JWTSecret verifies HS256 bearer tokens issued by the app backend.
	JWTSecret string `envconfig:"AUTH_JWT_SECRET"`

	// Issuer, when set, must match the token's iss claim.
	Issuer string `envconfig:"AUTH_ISSUER"`

	// AllowUserHeader accepts X-User-Id without a token. Development only.
	AllowUserHeader bool `envconfig:"AUTH_ALLOW_USER_HEADER" default:"false"`
}

// RedisConfig holds the challenge cache settings.
type RedisConfig struct {
	// URL is a redis:// URL. Empty disables caching.
	URL string `envconfig:"REDIS_URL"`

	// TTL bounds how long a challenge stays cached (default: 1h)
	TTL time.Duration `envconfig:"REDIS_TTL" default:"1h"`
}

// Enabled reports whether a cache is configured.
func (c *RedisConfig) Enabled() bool {
	return c.URL != ""
}

// GameConfig holds the game rules.
type GameConfig struct {
	// MaxWrongAttempts ends the daily game as lost (default: 10)
	MaxWrongAttempts int `envconfig:"GAME_MAX_WRONG" default:"10"`

	// RevealPolicy is linear or stepped (default: linear)
	RevealPolicy string `envconfig:"GAME_REVEAL_POLICY" default:"linear"`

	// Timezone decides where a day starts (default: America/Sao_Paulo)
	Timezone string `envconfig:"GAME_TIMEZONE" default:"America/Sao_Paulo"`

	// AutoPick chooses a daily target from the pool when none was published.
	AutoPick bool `envconfig:"GAME_AUTO_PICK" default:"true"`

	// MinTokenLength is the shortest name part that counts as a close guess (default: 3)
	MinTokenLength int `envconfig:"GAME_MIN_TOKEN_LENGTH" default:"3"`

	// MaxEditDistance is the typo tolerance for close guesses; 0 disables it (default: 2)
	MaxEditDistance int `envconfig:"GAME_MAX_EDIT_DISTANCE" default:"2"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"METRICS_PATH" default:"/metrics"`
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// Addr returns the server address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from environment variables.
// It returns an error if required variables are missing or invalid.
func Load() (*Config, error) {
	var cfg Config

	// Load each config section separately to flatten env var names
	// This allows env vars like APP_PORT instead of APP_SERVER_PORT
	sections := []struct {
		name   string
		target any
	}{
		{"server", &cfg.Server},
		{"database", &cfg.Database},
		{"log", &cfg.Log},
		{"admin", &cfg.Admin},
		{"auth", &cfg.Auth},
		{"redis", &cfg.Redis},
		{"game", &cfg.Game},
		{"metrics", &cfg.Metrics},
	}
	for _, s := range sections {
		if err := envconfig.Process("APP", s.target); err != nil {
			return nil, fmt.Errorf("failed to load %s config: %w", s.name, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Game.MaxWrongAttempts < 1 {
		return fmt.Errorf("APP_GAME_MAX_WRONG must be at least 1, got %d", c.Game.MaxWrongAttempts)
	}
	if c.Game.MinTokenLength < 1 {
		return fmt.Errorf("APP_GAME_MIN_TOKEN_LENGTH must be at least 1, got %d", c.Game.MinTokenLength)
	}
	if c.Game.MaxEditDistance < 0 {
		return fmt.Errorf("APP_GAME_MAX_EDIT_DISTANCE cannot be negative, got %d", c.Game.MaxEditDistance)
	}
	if c.Auth.JWTSecret == "" && !c.Auth.AllowUserHeader {
		return fmt.Errorf("either APP_AUTH_JWT_SECRET or APP_AUTH_ALLOW_USER_HEADER must be set")
	}
	return nil
}
