package app

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/metinatakli/cinetrack/internal/catalog"
	"github.com/metinatakli/cinetrack/internal/domain"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Port             int
	Env              string
	Store            string
	MigrateOnStart   bool
	SessionLifetime  time.Duration
	OtelCollectorUrl string
	DB               DBConfig
	Redis            RedisConfig
	SMTP             SMTPConfig
	OMDb             OMDbConfig
	AMQP             AMQPConfig
	Layout           domain.Layout
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type OMDbConfig struct {
	URL      string
	APIKey   string
	CacheTTL time.Duration
}

type AMQPConfig struct {
	URL   string
	Queue string
}

// parseConfig reads the command line. Every flag falls back to an environment
// variable, so a .env file loaded beforehand configures the service as well.
func parseConfig(args []string) (Config, bool, error) {
	var cfg Config

	fs := flag.NewFlagSet("cinetrack", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "port", envInt("PORT", 3000), "server port")
	fs.StringVar(&cfg.Env, "env", envString("ENV", "dev"), "Environment (dev|staging|prod)")
	fs.StringVar(&cfg.Store, "store", envString("STORE", StorePostgres), "Storage engine (postgres|memory)")
	fs.BoolVar(&cfg.MigrateOnStart, "migrate", envBool("MIGRATE_ON_START", false), "Apply database migrations on start")
	fs.DurationVar(&cfg.SessionLifetime, "session-lifetime", envDuration("SESSION_LIFETIME", 20*time.Minute), "Session idle timeout")
	fs.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", envString("OTEL_COLLECTOR_URL", ""), "OpenTelemetry collector endpoint (host:port)")

	fs.StringVar(&cfg.DB.DSN, "db-dsn", envString("DB_DSN", ""), "PostgreSQL DSN")
	fs.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", envInt("DB_MAX_OPEN_CONNS", 25), "PostgreSQL max open connections")
	fs.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", envDuration("DB_MAX_IDLE_TIME", 15*time.Minute), "PostgreSQL max idle time for connections")

	fs.StringVar(&cfg.Redis.URL, "redis-url", envString("REDIS_URL", ""), "Redis address")
	fs.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", envInt("REDIS_MAX_OPEN_CONNS", 25), "Redis max open connections")
	fs.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", envInt("REDIS_MAX_IDLE_CONNS", 10), "Redis max idle connections")
	fs.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", envDuration("REDIS_MAX_IDLE_TIME", 2*time.Minute), "Redis max idle time for connections")

	fs.StringVar(&cfg.SMTP.Host, "smtp-host", envString("SMTP_HOST", ""), "SMTP host")
	fs.IntVar(&cfg.SMTP.Port, "smtp-port", envInt("SMTP_PORT", 2525), "SMTP port")
	fs.StringVar(&cfg.SMTP.Username, "smtp-username", envString("SMTP_USERNAME", ""), "SMTP username")
	fs.StringVar(&cfg.SMTP.Password, "smtp-password", envString("SMTP_PASSWORD", ""), "SMTP password")
	fs.StringVar(&cfg.SMTP.Sender, "smtp-sender", envString("SMTP_SENDER", "CineTrack <no-reply@cinetrack.local>"), "SMTP sender")

	fs.StringVar(&cfg.OMDb.URL, "omdb-url", envString("OMDB_URL", catalog.DefaultBaseURL), "OMDb API base URL")
	fs.StringVar(&cfg.OMDb.APIKey, "omdb-api-key", envString("OMDB_API_KEY", ""), "OMDb API key")
	fs.DurationVar(&cfg.OMDb.CacheTTL, "omdb-cache-ttl", envDuration("OMDB_CACHE_TTL", catalog.DefaultCacheTTL), "Lifetime of cached OMDb lookups")

	fs.StringVar(&cfg.AMQP.URL, "amqp-url", envString("AMQP_URL", ""), "RabbitMQ URL")
	fs.StringVar(&cfg.AMQP.Queue, "amqp-queue", envString("AMQP_QUEUE", "booking_events"), "RabbitMQ queue for booking events")

	defaults := domain.DefaultLayout()
	fs.IntVar(&cfg.Layout.Rows, "layout-rows", envInt("LAYOUT_ROWS", defaults.Rows), "Rows of a generated seat layout")
	fs.IntVar(&cfg.Layout.SeatsPerRow, "layout-seats-per-row", envInt("LAYOUT_SEATS_PER_ROW", defaults.SeatsPerRow), "Seats per row of a generated seat layout")

	displayVersion := fs.Bool("version", false, "Display version and exit")

	if err := fs.Parse(args); err != nil {
		return cfg, false, err
	}

	if cfg.Store != StorePostgres && cfg.Store != StoreMemory {
		return cfg, false, fmt.Errorf("unknown store %q", cfg.Store)
	}

	if err := cfg.Layout.Validate(); err != nil {
		return cfg, false, fmt.Errorf("default layout: %w", err)
	}

	return cfg, *displayVersion, nil
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	return fallback
}

func envInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}

	return fallback
}

func envBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}

	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}

	return fallback
}
