// config.go
//
// Environment configuration for the evilhangman binary.
// Values come from the process environment, optionally seeded from a .env
// file (godotenv). Command-line flags override the matching variables.
//
//   LOG_LEVEL          zerolog level (default "info")
//   WORDS_FILE         word list path; empty uses the embedded dictionary
//   WORDS_DB           SQLite lexicon database; takes precedence over WORDS_FILE
//   PORT               HTTP port for serve (default 5175)
//   JWT_SECRET         game token signing key
//   JWT_EXPIRES_HOURS  game token lifetime (default 24)
//   COOKIE_NAME        game token cookie (default "evilhangman_token")
//   SECURE_COOKIES     "true" to mark cookies Secure
//   CLIENT_ORIGIN      allowed CORS origin
//   STORE_BACKEND      "memory" (default) or "redis"
//   REDIS_ADDR         Redis address (default "localhost:6379")
//   SESSION_TTL        idle round lifetime in Redis (default 2h)
//   DAILY_SALT         secret mixed into the daily length
//   DAILY_GUESSES      default guess count for daily rounds (default 10)

package main

import (
	"os"
	"strconv"
	"time"
)

type config struct {
	LogLevel      string
	WordsFile     string
	WordsDB       string
	Port          string
	JWTSecret     string
	TokenTTL      time.Duration
	CookieName    string
	SecureCookies bool
	ClientOrigin  string
	StoreBackend  string
	RedisAddr     string
	SessionTTL    time.Duration
	DailySalt     string
	DailyGuesses  int
}

func loadConfig() config {
	return config{
		LogLevel:      envStr("LOG_LEVEL", "info"),
		WordsFile:     envStr("WORDS_FILE", ""),
		WordsDB:       envStr("WORDS_DB", ""),
		Port:          envStr("PORT", "5175"),
		JWTSecret:     envStr("JWT_SECRET", ""),
		TokenTTL:      time.Duration(envInt("JWT_EXPIRES_HOURS", 24)) * time.Hour,
		CookieName:    envStr("COOKIE_NAME", "evilhangman_token"),
		SecureCookies: envStr("SECURE_COOKIES", "") == "true",
		ClientOrigin:  envStr("CLIENT_ORIGIN", ""),
		StoreBackend:  envStr("STORE_BACKEND", "memory"),
		RedisAddr:     envStr("REDIS_ADDR", "localhost:6379"),
		SessionTTL:    envDuration("SESSION_TTL", 2*time.Hour),
		DailySalt:     envStr("DAILY_SALT", "local_dev_salt"),
		DailyGuesses:  envInt("DAILY_GUESSES", 10),
	}
}

// envStr returns the value of k or def if unset/empty.
func envStr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt parses k as an integer, falling back to def.
func envInt(k string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return n
	}
	return def
}

func envDuration(k string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(k)); err == nil {
		return d
	}
	return def
}
