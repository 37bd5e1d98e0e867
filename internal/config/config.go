package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	RoundDuration int // seconds
	MinShowMs     int // shortest target visibility
	MaxShowMs     int // longest target visibility
	SlotCount     int
	LogLevel      string
	PrettyLog     bool
}

func Load() Config {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		RoundDuration: getEnvInt("ROUND_DURATION", 30),
		MinShowMs:     getEnvInt("MIN_SHOW_MS", 400),
		MaxShowMs:     getEnvInt("MAX_SHOW_MS", 1000),
		SlotCount:     getEnvInt("SLOT_COUNT", 6),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		PrettyLog:     getEnvBool("PRETTY_LOG", false),
	}

	if cfg.RoundDuration < 1 {
		cfg.RoundDuration = 30
	}
	if cfg.SlotCount < 1 {
		cfg.SlotCount = 6
	}
	if cfg.MinShowMs < 1 {
		cfg.MinShowMs = 400
	}
	if cfg.MaxShowMs < cfg.MinShowMs {
		cfg.MaxShowMs = cfg.MinShowMs
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
