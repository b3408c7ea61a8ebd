package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	AppEnv      string
	SecretKey   string // Signs flash notice cookies
	LogLevel    string
	LogFormat   string // console or json
	LogFile     string // Empty logs to stdout
}

func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	appEnv := getEnv("APP_ENV", "local")
	defaultFormat := "console"
	if appEnv == "production" {
		defaultFormat = "json"
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", "file:questions.db"),
		AppEnv:      appEnv,
		SecretKey:   getEnv("SECRET_KEY", "dev-secret-key-change-me"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", defaultFormat),
		LogFile:     getEnv("LOG_FILE", ""),
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
