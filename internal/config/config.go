package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	AI      AIConfig
}

type AppConfig struct {
	Port        string
	APIBase     string
	SessionFile string
	Environment string
	CORSOrigins []string
}

type BackendConfig struct {
	Port        string
	DatabaseURL string
	CORSOrigins []string
}

type AIConfig struct {
	APIKey string
	Model  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:        getEnv("STUDIO_PORT", "8090"),
			APIBase:     getEnv("API_BASE", "http://localhost:8000/api/v1"),
			SessionFile: getEnv("SESSION_FILE", defaultSessionFile()),
			Environment: getEnv("GO_ENV", "development"),
			CORSOrigins: splitOrigins(getEnv("STUDIO_CORS_ORIGINS", "*")),
		},
		Backend: BackendConfig{
			Port:        getEnv("PORT", "8000"),
			DatabaseURL: getEnv("DATABASE_URL", ""),
			CORSOrigins: splitOrigins(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		},
		AI: AIConfig{
			APIKey: getEnv("OPENAI_API_KEY", ""),
			Model:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
	}
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".integraite-session"
	}
	return dir + string(os.PathSeparator) + "integraite" + string(os.PathSeparator) + "session-id"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
