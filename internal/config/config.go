package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application, database, Redis, Kafka, session and
// reconciliation settings.
type Config struct {
	// Application config
	AppHost  string `env:"APP_HOST" envDefault:"localhost"`
	AppPort  string `env:"APP_PORT" envDefault:"8080"`
	LogLevel string `env:"APP_LOG_LEVEL" envDefault:"info"`

	// PostgreSQL config
	PGHost         string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PGPort         int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PGUser         string `env:"POSTGRES_USER" envDefault:"user"`
	PGPassword     string `env:"POSTGRES_PASSWORD" envDefault:"password"`
	PGDB           string `env:"POSTGRES_DB" envDefault:"database"`
	PGMaxOpenConns int    `env:"POSTGRES_MAX_OPEN_CONNS" envDefault:"16"`
	PGMaxIdleConns int    `env:"POSTGRES_MAX_IDLE_CONNS" envDefault:"8"`

	// Redis config
	RedisHost         string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort         int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisDB           int    `env:"REDIS_DB" envDefault:"0"`
	RedisPassword     string `env:"REDIS_PASSWORD" envDefault:""`
	RedisPoolSize     int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
	RedisMinIdleConns int    `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`

	// Kafka config; an empty broker list disables event publishing
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"membership-events"`

	// Session and credential config
	JWTSecretKey string        `env:"JWT_SECRET_KEY" envDefault:"my_super_secret_key"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"5h"`
	KDFRounds    int           `env:"KDF_ROUNDS" envDefault:"100"`
	KDFKeyBytes  int           `env:"KDF_KEY_BYTES" envDefault:"32"`

	// Reconciliation job config
	ReconcileEnabled  bool          `env:"RECONCILE_ENABLED" envDefault:"true"`
	ReconcileInterval time.Duration `env:"RECONCILE_INTERVAL" envDefault:"1m"`
	ReconcileGrace    time.Duration `env:"RECONCILE_GRACE" envDefault:"30s"`
	ReconcileTimeout  time.Duration `env:"RECONCILE_TIMEOUT" envDefault:"10s"`
}

// Load reads the optional env file at path and parses the environment into a Config.
// A missing file is not an error; variables already set in the process win.
func Load(path string) (Config, error) {
	_ = godotenv.Load(path)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.KDFRounds <= 0 {
		return Config{}, fmt.Errorf("KDF_ROUNDS must be positive, got %d", cfg.KDFRounds)
	}
	if cfg.KDFKeyBytes <= 0 {
		return Config{}, fmt.Errorf("KDF_KEY_BYTES must be positive, got %d", cfg.KDFKeyBytes)
	}
	return cfg, nil
}

// PostgresDSN builds the pgx connection string.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDB)
}

// RedisAddr returns host:port of the Redis server.
func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// HTTPAddr returns host:port the HTTP server listens on.
func (c Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%s", c.AppHost, c.AppPort)
}

// KafkaEnabled reports whether at least one broker is configured.
func (c Config) KafkaEnabled() bool {
	for _, b := range c.KafkaBrokers {
		if strings.TrimSpace(b) != "" {
			return true
		}
	}
	return false
}
