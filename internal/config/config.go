package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string
	// DataPath is the SQLite file holding the persisted schedule blobs.
	DataPath string
	// FontPath optionally points at a TTF/OTF file used for PNG export.
	// When empty the exporter falls back to a built-in bitmap face.
	FontPath string
	// ExportScale multiplies the base canvas size of PNG exports.
	ExportScale int
	// AllowedOrigins controls HTTP CORS and WebSocket origin validation.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
	// BackupDir receives periodic JSON exports of the schedule. Empty
	// disables the backup worker.
	BackupDir string
	// BackupIntervalMinutes is the time between backup sweeps.
	BackupIntervalMinutes int
	// BackupKeep is how many backup files to retain.
	BackupKeep int
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "pretty"),
		DataPath:       getEnv("DATA_PATH", "./data/weekplan.db"),
		FontPath:       getEnv("FONT_PATH", ""),
		ExportScale:    getEnvInt("EXPORT_SCALE", 2),
		AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "")),

		BackupDir:             getEnv("BACKUP_DIR", ""),
		BackupIntervalMinutes: getEnvInt("BACKUP_INTERVAL_MINUTES", 30),
		BackupKeep:            getEnvInt("BACKUP_KEEP", 10),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
