package config

import (
	"os"

	// this will automatically load your .env file:
	_ "github.com/joho/godotenv/autoload"
)

type Config struct {
	Port      string
	UserAgent string
	Logs      LogConfig
}

type LogConfig struct {
	Level string
}

// LoadConfig reads the environment. Every value has a working default so the
// server runs with an empty environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:      getenv("PORT", "8080"),
		UserAgent: getenv("USER_AGENT", "chessnaptracker/0.1 (+https://github.com/ShahinyanDav/chessnaptracker)"),
		Logs: LogConfig{
			Level: getenv("LOG_LEVEL", "info"),
		},
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
