// Package config reads server settings from the environment.
//
// Environment variables (defaults in parentheses):
//   PORT                  listen port (5175)
//   LOG_LEVEL             zerolog level (info)
//   CLIENT_ORIGIN         CORS origin (http://localhost:5173)
//   SESSION_SECRET        session cookie signing secret (dev_secret_change_me)
//   DAILY_SALT            daily puzzle salt (local_dev_salt)
//   DICTIONARY_MODE       api | list | chain (chain)
//   DICTIONARY_URL        upstream dictionary API (free dictionary API)
//   DICTIONARY_RPS        outbound lookups per second (5)
//   DICTIONARY_TIMEOUT_MS per-lookup timeout (4000)
//   DICTIONARY_CACHE_DSN  SQLite DSN for the lookup memo (:memory:)
//   WORDS_FILE            offline word list (embedded default)
//   POSTS_DIR             blog posts directory (embedded default)
//   SESSION_IDLE_MINUTES  idle sessions are swept after this long (120)
//   NODE_ENV              "production" marks cookies Secure
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Dictionary modes.
const (
	DictAPI   = "api"
	DictList  = "list"
	DictChain = "chain"
)

type Config struct {
	Port          string
	LogLevel      string
	ClientOrigin  string
	SessionSecret string
	DailySalt     string

	DictionaryMode    string
	DictionaryURL     string
	DictionaryRPS     float64
	DictionaryTimeout time.Duration
	CacheDSN          string
	WordsFile         string

	PostsDir    string
	SessionIdle time.Duration
	Production  bool
}

// Load builds a Config from the environment and validates it.
func Load() (Config, error) {
	c := Config{
		Port:              getEnv("PORT", "5175"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		ClientOrigin:      getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		SessionSecret:     getEnv("SESSION_SECRET", "dev_secret_change_me"),
		DailySalt:         getEnv("DAILY_SALT", "local_dev_salt"),
		DictionaryMode:    getEnv("DICTIONARY_MODE", DictChain),
		DictionaryURL:     os.Getenv("DICTIONARY_URL"),
		DictionaryRPS:     envFloat("DICTIONARY_RPS", 5),
		DictionaryTimeout: time.Duration(envInt("DICTIONARY_TIMEOUT_MS", 4000)) * time.Millisecond,
		CacheDSN:          getEnv("DICTIONARY_CACHE_DSN", ":memory:"),
		WordsFile:         os.Getenv("WORDS_FILE"),
		PostsDir:          os.Getenv("POSTS_DIR"),
		SessionIdle:       time.Duration(envInt("SESSION_IDLE_MINUTES", 120)) * time.Minute,
		Production:        os.Getenv("NODE_ENV") == "production",
	}
	switch c.DictionaryMode {
	case DictAPI, DictList, DictChain:
	default:
		return c, fmt.Errorf("DICTIONARY_MODE: unknown mode %q", c.DictionaryMode)
	}
	if c.SessionIdle <= 0 {
		return c, fmt.Errorf("SESSION_IDLE_MINUTES must be positive")
	}
	return c, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
