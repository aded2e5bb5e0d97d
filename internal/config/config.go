package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL   string
	Port          string
	LogLevel      string
	SeedSamples   bool
	RemoteTimeout time.Duration
	CORSOrigins   string
	RemoteURL     string
	RemoteKey     string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment values win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DatabaseURL:   getEnv("DATABASE_URL", "visiongoals.db"),
		Port:          getEnv("PORT", "8080"),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
		SeedSamples:   getBool("SEED_SAMPLES", true),
		RemoteTimeout: getDuration("REMOTE_TIMEOUT", 10*time.Second),
		CORSOrigins:   getEnv("CORS_ORIGINS", "*"),
		RemoteURL:     getEnv("SUPABASE_URL", ""),
		RemoteKey:     getEnv("SUPABASE_KEY", ""),
	}
}

func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
