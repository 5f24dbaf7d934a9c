package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is read from the environment (and a .env file when present).
// Command-line flags are applied on top by the caller.
type Config struct {
	Rate     float64
	SeedFile string
	Theme    string
	LogFile  string
	LogLevel string
}

var validThemes = []string{"classic", "neon", "mono"}

// Load reads .env if it exists, then the SPENDO_* variables.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Rate:     getEnvFloat("SPENDO_RATE", 4.97),
		SeedFile: getEnv("SPENDO_SEED_FILE", ""),
		Theme:    getEnv("SPENDO_THEME", "classic"),
		LogFile:  getEnv("SPENDO_LOG_FILE", ""),
		LogLevel: getEnv("SPENDO_LOG_LEVEL", "info"),
	}
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if math.IsNaN(c.Rate) || math.IsInf(c.Rate, 0) || c.Rate < 0 {
		problems = append(problems, fmt.Sprintf("invalid rate %v: must be a non-negative number", c.Rate))
	}

	themeOK := false
	for _, t := range validThemes {
		if strings.EqualFold(c.Theme, t) {
			themeOK = true
			break
		}
	}
	if !themeOK {
		problems = append(problems, fmt.Sprintf("invalid theme '%s': must be one of %v", c.Theme, validThemes))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return f
		}
	}
	return defaultValue
}
