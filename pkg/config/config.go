package config

import (
	"os"
	"strconv"
	"strings"

	// Loads environment variables from a .env file when present.
	_ "github.com/joho/godotenv/autoload"
)

// Config holds all application configuration
type Config struct {
	Import ImportConfig
	Log    LogConfig
}

type ImportConfig struct {
	// ScanLimit caps how many top rows are considered header candidates.
	ScanLimit int
	// CSVDelimiter is the delimiter for CSV uploads (";" for Swedish exports).
	CSVDelimiter string
	// FeeTablePath points to a JSON file with the employer fee table.
	FeeTablePath string
	// CostCenters is the comma-separated list of valid cost-center codes.
	CostCenters []string
}

type LogConfig struct {
	JSON  bool
	Level string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Import: ImportConfig{
			ScanLimit:    getEnvAsInt("IMPORT_SCAN_LIMIT", 5),
			CSVDelimiter: getEnv("IMPORT_CSV_DELIMITER", ";"),
			FeeTablePath: getEnv("FEE_TABLE_PATH", ""),
			CostCenters:  getEnvAsList("COST_CENTERS"),
		},
		Log: LogConfig{
			JSON:  getEnvAsBool("LOG_JSON", false),
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvAsList(key string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
