package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	MongoURI    string
	DBName      string
	SkipAuth    bool
	Environment string
	AppId       string

	// Debounce window for the live filter search field, in milliseconds.
	SearchDebounceMS int

	// Export settings
	ExportBaseName string // filename prefix, e.g. "reports" -> reports-2026-08-30.csv
	ExportDelivery string // http | dir | minio
	ExportDir      string // target directory for the "dir" delivery mode

	// MinIO settings for the "minio" delivery mode
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "reportdesk"),
		SkipAuth:    getEnv("SKIP_AUTH", "false") == "true",
		Environment: getEnv("ENVIRONMENT", "development"),
		AppId:       getEnv("APP_ID", "reportdesk"),

		SearchDebounceMS: getEnvInt("SEARCH_DEBOUNCE_MS", 300),

		ExportBaseName: getEnv("EXPORT_BASE_NAME", "reports"),
		ExportDelivery: getEnv("EXPORT_DELIVERY", "http"),
		ExportDir:      getEnv("EXPORT_DIR", "./exports"),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "report-exports"),
		MinioUseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
