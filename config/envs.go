package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	Port int // Port for the HTTP server

	MaxRounds    int // Rounds per game session, must be even
	RoundSeconds int // Countdown per round, in seconds

	LLMBaseURL        string // Base URL of the language-model gateway
	LLMTimeoutSeconds int    // Per-request timeout for gateway calls

	DatabaseURL string // Postgres connection string for the leaderboard
	WordsCSV    string // Optional CSV file overriding the built-in word list
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file when present.
func initConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("[config] .env file not found or could not be loaded: %v", err)
	}

	cfg := Config{
		Port: getEnvAsInt("PORT", 8080),

		MaxRounds:    getEnvAsInt("MAX_ROUNDS", 8),
		RoundSeconds: getEnvAsInt("ROUND_TIMER", 60),

		LLMBaseURL:        getEnv("LLM_API_URL", "http://localhost:8000/wordgameapi"),
		LLMTimeoutSeconds: getEnvAsInt("LLM_TIMEOUT", 30),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		WordsCSV:    getEnv("WORDS_CSV", ""),
	}

	if cfg.MaxRounds <= 0 || cfg.MaxRounds%2 != 0 {
		log.Fatalf("[config] MAX_ROUNDS must be a positive even number, got %d", cfg.MaxRounds)
	}
	if cfg.RoundSeconds <= 0 {
		log.Fatalf("[config] ROUND_TIMER must be positive, got %d", cfg.RoundSeconds)
	}
	if cfg.LLMTimeoutSeconds <= 0 {
		log.Fatalf("[config] LLM_TIMEOUT must be positive, got %d", cfg.LLMTimeoutSeconds)
	}

	return cfg
}

// getEnv retrieves the value of an environment variable or the fallback if not set.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvAsInt retrieves the value of an environment variable as an integer
// or the fallback if not set. A set but unparsable value is fatal.
func getEnvAsInt(key string, fallback int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[config] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}
