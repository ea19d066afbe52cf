package shared

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string

	StoreBackend string // embedded | redis | mysql
	MySQLDSN     string
	RedisAddr    string
	RedisDB      int
	RedisPass    string

	IdentityBase    string
	IdentityTimeout time.Duration
	IdentityRPS     int
	SessionTTL      time.Duration
	CacheTTL        time.Duration

	CatalogSource string // embedded | mysql
	CatalogFile   string
	SeedWorkers   int
}

// Load reads the environment, optionally pre-populated from a .env file.
// Variables already set in the process win over the file.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("ignoring unreadable .env")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),

		StoreBackend: strings.ToLower(env("STORE_BACKEND", "embedded")),
		MySQLDSN:     env("MYSQL_DSN", "root:root@tcp(localhost:3306)/hotel_booking?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),

		IdentityBase:    strings.TrimRight(env("IDENTITY_BASE_URL", "https://dummyjson.com"), "/"),
		IdentityTimeout: duration("IDENTITY_TIMEOUT", 10*time.Second),
		IdentityRPS:     atoi("IDENTITY_RPS", 5),
		SessionTTL:      duration("SESSION_TTL", 24*time.Hour),
		CacheTTL:        time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,

		CatalogSource: strings.ToLower(env("CATALOG_SOURCE", "embedded")),
		CatalogFile:   env("CATALOG_FILE", ""),
		SeedWorkers:   atoi("SEED_WORKERS", 4),
	}
	switch c.StoreBackend {
	case "embedded", "redis", "mysql":
	default:
		log.Warn().Str("backend", c.StoreBackend).Msg("unknown STORE_BACKEND, using embedded")
		c.StoreBackend = "embedded"
	}
	if c.StoreBackend == "embedded" && c.AppEnv == "prod" {
		log.Warn().Msg("STORE_BACKEND=embedded keeps bookings in memory only")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func duration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Warn().Str("key", k).Str("value", v).Msg("bad duration, using default")
		return def
	}
	return d
}
