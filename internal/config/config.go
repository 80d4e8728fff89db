package config

import (
	"os"
	"strconv"
)

// HTTP holds the listener settings.
type HTTP struct {
	Port      string
	APIPrefix string
	BaseURL   string
	// AllowedOrigin is handed to the CORS middleware.
	AllowedOrigin string
}

// DB holds connection pool settings for the primary MySQL pool.
type DB struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	// MigrationsDir is the path the migration runner reads *.sql files from.
	MigrationsDir string
}

// JWT carries the three signing secrets. Access, refresh and reset tokens are
// each signed with distinct material so one leaked secret cannot mint the
// other kinds.
type JWT struct {
	AccessSecret  string
	RefreshSecret string
	ResetSecret   string
	Issuer        string
}

// AWS holds the object-storage target. Credentials themselves are resolved by
// the SDK's default chain (env vars, shared config, instance role).
type AWS struct {
	Region string
	Bucket string
}

type Log struct {
	Level string
	JSON  bool
	// File enables rotated file output when non-empty.
	File string
}

type Config struct {
	Env       string // "development" or "production"
	HTTP      HTTP
	DB        DB
	JWT       JWT
	AWS       AWS
	Log       Log
	UploadDir string
}

// Load reads the configuration from environment variables, falling back to
// development defaults. Call godotenv.Load() first if a .env file is in play.
func Load() *Config {
	return &Config{
		Env: getenv("APP_ENV", "development"),
		HTTP: HTTP{
			Port:          getenv("PORT", "8080"),
			APIPrefix:     getenv("API_PREFIX", "/api/v1"),
			BaseURL:       getenv("BASE_URL", "http://localhost:8080"),
			AllowedOrigin: getenv("CORS_ALLOWED_ORIGIN", "http://localhost:5173"),
		},
		DB: DB{
			DSN:           getenv("DB_DSN", "root:root@tcp(127.0.0.1:3306)/storefront?parseTime=true"),
			MaxOpenConns:  getint("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:  getint("DB_MAX_IDLE_CONNS", 25),
			MigrationsDir: getenv("MIGRATIONS_DIR", "migrations"),
		},
		JWT: JWT{
			AccessSecret:  getenv("ACCESS_TOKEN_SECRET", ""),
			RefreshSecret: getenv("REFRESH_TOKEN_SECRET", ""),
			ResetSecret:   getenv("RESET_TOKEN_SECRET", ""),
			Issuer:        getenv("JWT_ISSUER", "storefront-api"),
		},
		AWS: AWS{
			Region: getenv("AWS_REGION", "eu-central-1"),
			Bucket: getenv("AWS_S3_BUCKET", ""),
		},
		Log: Log{
			Level: getenv("LOG_LEVEL", "info"),
			JSON:  getenv("LOG_JSON", "") == "true",
			File:  getenv("LOG_FILE", ""),
		},
		UploadDir: getenv("UPLOAD_DIR", "./uploads"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
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
