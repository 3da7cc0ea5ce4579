package app

import "time"

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr string
	LogLevel string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	// MongoURI is required: habitd has no in-memory persistence mode.
	MongoURI            string
	MongoDatabase       string
	MongoConnectTimeout time.Duration

	// If true, /readyz pings the database and returns 503 when it is
	// unreachable.
	ReadinessRequireDB bool

	// CORSAllowedOrigins enables the CORS layer when non-empty. Entries
	// are exact origins, "*", or a port wildcard like "http://127.0.0.1:*".
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
	CORSMaxAgeSeconds    int
}

// LoadConfig loads Config from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		HTTPAddr: EnvString("HABIT_HTTP_ADDR", "0.0.0.0:8000"),
		LogLevel: EnvString("HABIT_LOG_LEVEL", "info"),

		ReadHeaderTimeout: EnvDuration("HABIT_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("HABIT_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("HABIT_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("HABIT_HTTP_IDLE_TIMEOUT", 60*time.Second),

		MaxHeaderBytes: EnvInt("HABIT_HTTP_MAX_HEADER_BYTES", 1<<20),

		MongoURI:            EnvString("HABIT_MONGO_URI", ""),
		MongoDatabase:       EnvString("HABIT_MONGO_DB", "habitd"),
		MongoConnectTimeout: EnvDuration("HABIT_MONGO_CONNECT_TIMEOUT", 10*time.Second),

		ReadinessRequireDB: EnvBool("HABIT_READINESS_REQUIRE_DB", true),

		CORSAllowedOrigins:   EnvStringSlice("HABIT_CORS_ALLOWED_ORIGINS", nil),
		CORSAllowCredentials: EnvBool("HABIT_CORS_ALLOW_CREDENTIALS", false),
		CORSMaxAgeSeconds:    EnvInt("HABIT_CORS_MAX_AGE_SECONDS", 600),
	}
}
