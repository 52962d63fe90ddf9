package config

import (
	"os"
	"strconv"

	"careerflow/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Import   ImportConfig
	Letter   LetterConfig
}

// LetterConfig holds cover letter settings
type LetterConfig struct {
	// ApplicantName signs generated cover letters.
	ApplicantName string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// ImportConfig holds LinkedIn upload limits
type ImportConfig struct {
	// MaxUploadBytes caps the multipart body of /upload-linkedin.
	MaxUploadBytes int64
	// MaxFiles caps how many saved-jobs pages one upload may carry.
	MaxFiles int
	// ListLimit caps how many jobs the UI renders.
	ListLimit int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Import: ImportConfig{
			MaxUploadBytes: int64(getEnvIntOrDefault("MAX_UPLOAD_MB", 32)) << 20,
			MaxFiles:       getEnvIntOrDefault("MAX_UPLOAD_FILES", 5),
			ListLimit:      getEnvIntOrDefault("JOB_LIST_LIMIT", 500),
		},
		Letter: LetterConfig{
			ApplicantName: getEnvOrDefault("APPLICANT_NAME", ""),
		},
	}

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}
	config.Database.URL = url

	if config.Import.MaxFiles < 1 {
		return nil, errors.ConfigInvalid("MAX_UPLOAD_FILES must be at least 1")
	}
	if config.Import.ListLimit < 1 {
		return nil, errors.ConfigInvalid("JOB_LIST_LIMIT must be at least 1")
	}

	return config, nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
