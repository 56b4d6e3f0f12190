package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
)

type Config struct {
	Port        string
	DatabaseURL string
	SecretKey   string
	Env         string
	LogoPath    string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabaseURL = getEnv("DATABASE_URL", "facturas.db")
	cfg.SecretKey = getEnv("SECRET_KEY", "c9c25ab02aad2b6496181312028bf533")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.LogoPath = getEnv("LOGO_PATH", defaultLogoPath())
	return cfg
}

// defaultLogoPath resolves static/logo.png to an absolute path; the PDF
// generator needs an absolute filesystem path.
func defaultLogoPath() string {
	abs, err := filepath.Abs(filepath.Join("static", "logo.png"))
	if err != nil {
		return filepath.Join("static", "logo.png")
	}
	return abs
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
