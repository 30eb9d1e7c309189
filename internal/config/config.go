// internal/config/config.go
//
// Environment-driven configuration.
// A `.env` file in the working directory is loaded first (development only;
// real environment variables win because godotenv never overrides them).
//
// Environment variables:
//   PORT=5175                 HTTP listen port
//   LOG_LEVEL=info            zerolog level (trace..panic)
//   DATABASE_PATH=./data/app.db
//   JWT_SECRET=...            HS256 signing key
//   JWT_EXPIRES_DAYS=14
//   COOKIE_NAME=guessnumber_token
//   CLIENT_ORIGIN=http://localhost:5173
//   NODE_ENV=production       enables Secure cookies
//   DAILY_SALT=...            salt for the daily secret
//   SOLVER_POOL_SIZE=4        idle solver engines kept warm
//   MAX_ROUNDS=10             oracle round limit

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds process settings.
type Config struct {
	Port           string
	LogLevel       zerolog.Level
	DatabasePath   string
	JWTSecret      string
	JWTExpiresDays int
	CookieName     string
	ClientOrigin   string
	Production     bool
	DailySalt      string
	SolverPoolSize int
	MaxRounds      int
}

// Load reads `.env` (if present) and the environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment only.
func FromEnv() Config {
	lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return Config{
		Port:           getEnv("PORT", "5175"),
		LogLevel:       lvl,
		DatabasePath:   getEnv("DATABASE_PATH", "./data/app.db"),
		JWTSecret:      getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTExpiresDays: envInt("JWT_EXPIRES_DAYS", 14),
		CookieName:     getEnv("COOKIE_NAME", "guessnumber_token"),
		ClientOrigin:   getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:     os.Getenv("NODE_ENV") == "production",
		DailySalt:      getEnv("DAILY_SALT", "local_dev_salt"),
		SolverPoolSize: envInt("SOLVER_POOL_SIZE", 4),
		MaxRounds:      envInt("MAX_ROUNDS", 10),
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt parses k as an int, falling back to def when unset or malformed.
func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
