package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	StoreBackend       string
	DBPath             string
	FirestoreProjectID string
	CredentialsFile    string
	Collection         string
	DryRun             bool
	LogLevel           string
	LogFile            string
}

// Load reads configuration from the environment. Values from .env and
// .env.local are applied first, without overriding variables already set.
func Load() *Config {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}

	return &Config{
		StoreBackend:       getEnv("STORE_BACKEND", "sqlite"),
		DBPath:             getEnv("DB_PATH", "./fiximages.db"),
		FirestoreProjectID: getEnv("FIRESTORE_PROJECT_ID", ""),
		CredentialsFile:    getEnv("FIRESTORE_CREDENTIALS_FILE", ""),
		Collection:         getEnv("COLLECTION", "galleries"),
		DryRun:             parseBool(getEnv("DRY_RUN", "")),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFile:            getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
