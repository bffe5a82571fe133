package app

import (
	"os"
	"strconv"
	"time"

	"github.com/taskden/taskden/pkg/jwtx"
)

type Config struct {
	Issuer    string        // Optional: issuer claim for session tokens (default: taskden)
	JWTSecret string        // Required: HMAC signing secret, at least 32 bytes
	TokenTTL  time.Duration // Optional: session token lifetime (default: 24h)

	DatabaseFile string // Optional: path to SQLite database file (default: ./taskden.db)
	PepperFile   string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	GeminiAPIKey  string        // Optional: enables the AI endpoints when set
	GeminiModel   string        // Optional: model identifier (default: gemini-2.5-flash)
	GeminiBaseURL string        // Optional: override for tests/proxies
	AITimeout     time.Duration // Optional: per-attempt upstream deadline (default: 30s)

	CORSOrigin    string // Optional: single origin allowed to make credentialed requests
	PublicDir     string // Optional: directory with the built frontend; serves the SPA when set
	SecureCookies bool   // Optional: mark session cookies Secure (default: true outside dev)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:    getEnvOrDefault("TASKDEN_ISSUER", "taskden"),
		JWTSecret: os.Getenv("TASKDEN_JWT_SECRET"),
		TokenTTL:  getEnvDurationOrDefault("TASKDEN_TOKEN_TTL", jwtx.DefaultSessionTTL),

		DatabaseFile: getEnvOrDefault("TASKDEN_DATABASE_FILE", "taskden.db"),
		PepperFile:   getEnvOrDefault("TASKDEN_PEPPER_FILE", "pepper"),

		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   os.Getenv("GEMINI_MODEL"),    // empty means client default
		GeminiBaseURL: os.Getenv("GEMINI_BASE_URL"), // empty means client default
		AITimeout:     getEnvDurationOrDefault("TASKDEN_AI_TIMEOUT", 0),

		CORSOrigin: os.Getenv("TASKDEN_CORS_ORIGIN"),
		PublicDir:  os.Getenv("TASKDEN_PUBLIC_DIR"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	// Local dev runs over plain HTTP, where Secure cookies never reach the
	// server. Everywhere else the cookie must be Secure.
	cfg.SecureCookies = getEnvBoolOrDefault("TASKDEN_SECURE_COOKIES", cfg.Env != "dev")

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are read as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
