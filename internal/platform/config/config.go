package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"wishlist_api/internal/common/security"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv  string
	APIPort string

	JWTKey []byte
	JWTExp time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	CORSOrigins []string

	UploadDir string
	LogLevel  string
}

// Load reads the environment (optionally seeded from a .env file) into a
// Config. The signing key is validated here so a weak or placeholder secret
// fails the process at startup rather than at the first login.
func Load() (*Config, error) {
	_ = godotenv.Load() // no .env file is fine in deployed environments

	cfg := &Config{
		AppEnv:     getEnv("ENV", "local"),
		APIPort:    getEnv("API_PORT", "8080"),
		JWTKey:     []byte(getEnv("JWT_SECRET", "")),
		JWTExp:     time.Duration(getEnvAsInt("JWT_EXPIRATION_MINUTES", 30)) * time.Minute,
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "wishlist"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "wishlist_db"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),
		UploadDir:  getEnv("UPLOAD_DIR", filepath.Join(os.TempDir(), "wishlist_uploads")),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}

	if err := security.ValidateSecretKey(string(cfg.JWTKey)); err != nil {
		return nil, fmt.Errorf("JWT_SECRET rejected: %w", err)
	}
	if cfg.JWTExp <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRATION_MINUTES must be positive")
	}

	if raw := getEnv("CORS_ORIGINS", ""); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	} else {
		cfg.CORSOrigins = []string{"http://localhost:3000", "http://localhost:8000"}
	}

	cfg.DBConnStr = "host=" + cfg.DBHost +
		" port=" + cfg.DBPort +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" sslmode=" + cfg.DBSslMode

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
