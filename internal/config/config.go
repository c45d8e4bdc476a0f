package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store kinds accepted by BOOKMARKS_STORE.
const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreRedis    = "redis"
	StoreMemory   = "memory"
)

const redacted = "***REDACTED***"

type Config struct {
	ListenPort      string        // ex: ":8000"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request deadline applied by the router

	Env       string // "development" | "production"
	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)
	LogFile   string // optional, logs are also written there

	APIToken string // static bearer token required on the bookmark routes

	Store string // postgres | sqlite | redis | memory

	// SQL stores
	DatabaseURL       string        // postgres DSN
	SQLitePath        string        // sqlite file (":memory:" allowed)
	DBMaxOpenConns    int           // pool size
	DBMaxIdleConns    int           // idle connections kept
	DBConnMaxLifetime time.Duration // connection recycle period
	DBAutoSchema      bool          // create the bookmarks table at startup

	// Redis
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts
	RedisIndexRepair    time.Duration // period of the id index repair job (0 = disabled)

	SeedFile string // optional YAML file used to fill an empty store

	CORSOrigins  []string // allowed origins, "*" by default
	AllowedHosts []string // optional, restrict bookmark routes to specific Host headers
	AllowedCIDRS []string // optional, restrict healthz/readyz to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers

	RateLimitBurst     int // 0 disables rate limiting
	RateLimitPerMinute int // token refill per client IP
}

// IsProduction reports whether the service runs with production semantics
// (generic 500 bodies, JSON logs).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; variables already set win.
// Invalid configuration panics.
func Load() *Config {
	_ = godotenv.Load()

	env := strings.ToLower(getenv("BOOKMARKS_ENV", "development"))

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("BOOKMARKS_LISTEN_PORT", ":8000"),
		ShutdownTimeout: mustDuration("BOOKMARKS_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("BOOKMARKS_REQUEST_TIMEOUT", 5*time.Second),

		// Logging
		Env:       env,
		LogLevel:  getenv("BOOKMARKS_LOG_LEVEL", "info"),
		PrettyLog: mustBool("BOOKMARKS_PRETTY_LOG", env != "production"),
		LogFile:   getenv("BOOKMARKS_LOG_FILE", ""),

		APIToken: requireEnv("BOOKMARKS_API_TOKEN"),

		Store: strings.ToLower(getenv("BOOKMARKS_STORE", StorePostgres)),

		DatabaseURL:       getenv("BOOKMARKS_DATABASE_URL", ""),
		SQLitePath:        getenv("BOOKMARKS_SQLITE_PATH", "bookmarks.db"),
		DBMaxOpenConns:    getenvInt("BOOKMARKS_DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:    getenvInt("BOOKMARKS_DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: mustDuration("BOOKMARKS_DB_CONN_MAX_LIFETIME", 30*time.Minute),
		DBAutoSchema:      mustBool("BOOKMARKS_DB_AUTO_SCHEMA", true),

		// Redis settings
		RedisAddr:           getenv("BOOKMARKS_REDIS_ADDR", ""),
		RedisUser:           getenv("BOOKMARKS_REDIS_USERNAME", ""),
		RedisPassword:       getenv("BOOKMARKS_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("BOOKMARKS_REDIS_DB", 0),
		RedisDT:             mustDuration("BOOKMARKS_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("BOOKMARKS_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("BOOKMARKS_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("BOOKMARKS_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("BOOKMARKS_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("BOOKMARKS_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("BOOKMARKS_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("BOOKMARKS_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("BOOKMARKS_REDIS_WARN_THRESHOLD", 3),
		RedisIndexRepair:    mustDuration("BOOKMARKS_REDIS_INDEX_REPAIR_INTERVAL", time.Hour),

		SeedFile: getenv("BOOKMARKS_SEED_FILE", ""),

		// Access restrictions
		CORSOrigins:  splitAndTrim(getenv("BOOKMARKS_CORS_ORIGINS", "*")),
		AllowedHosts: splitAndTrim(getenv("BOOKMARKS_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("BOOKMARKS_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("BOOKMARKS_TRUST_PROXY", false),

		RateLimitBurst:     getenvInt("BOOKMARKS_RATE_LIMIT_BURST", 0),
		RateLimitPerMinute: getenvInt("BOOKMARKS_RATE_LIMIT_PER_MIN", 60),
	}

	if err := cfg.validate(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

func (c *Config) validate() error {
	switch c.Store {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("BOOKMARKS_DATABASE_URL is required when BOOKMARKS_STORE=%s", c.Store)
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("BOOKMARKS_SQLITE_PATH is required when BOOKMARKS_STORE=%s", c.Store)
		}
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("BOOKMARKS_REDIS_ADDR is required when BOOKMARKS_STORE=%s", c.Store)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown BOOKMARKS_STORE %q (want postgres, sqlite, redis or memory)", c.Store)
	}
	if c.RateLimitBurst < 0 {
		return fmt.Errorf("BOOKMARKS_RATE_LIMIT_BURST must be >= 0, got %d", c.RateLimitBurst)
	}
	return nil
}

// Redacted returns a copy safe to print: token, passwords and DSN are masked.
func (c *Config) Redacted() Config {
	cp := *c
	cp.APIToken = redacted
	if cp.RedisPassword != "" {
		cp.RedisPassword = redacted
	}
	if cp.RedisUser != "" {
		cp.RedisUser = redacted
	}
	if cp.DatabaseURL != "" {
		cp.DatabaseURL = redacted
	}
	return cp
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
