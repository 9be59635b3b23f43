package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DatabaseConfig holds PostgreSQL settings for the upload ledger.
// The ledger is optional: it is disabled when Host is empty. Zero pool values
// take the ledger defaults.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// Enabled reports whether a ledger database was configured.
func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// StorageConfig selects the document storage backend and the upload policy.
type StorageConfig struct {
	// Backend is either "local" or "minio".
	Backend           string
	UploadDir         string
	MaxUploadBytes    int64
	AllowedExtensions []string
}

// OCRConfig holds settings for the external OCR collaborator.
type OCRConfig struct {
	// URL is the endpoint receiving {file_name, base64_pdf}. Empty disables OCR.
	URL         string
	TimeoutSec  int
	TableMarker string
	CacheTTLSec int
}

// RedisConfig holds settings for the OCR result cache. Empty Addr disables caching.
type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	TimeZone string
	Storage  StorageConfig
	Database DatabaseConfig
	MinIO    MinIOConfig
	OCR      OCRConfig
	Redis    RedisConfig
}

var defaultAllowedExtensions = []string{"pdf", "doc", "docx", "txt", "xlsx", "xls", "jpg", "jpeg", "png", "gif"}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:5000"),
		Port:     getEnv("PORT", "5000"),
		TimeZone: getEnv("APP_TIMEZONE", "UTC"),
		Storage: StorageConfig{
			Backend:           strings.ToLower(getEnv("STORAGE_BACKEND", "local")),
			UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
			MaxUploadBytes:    getEnvInt64("UPLOAD_MAX_BYTES", 50*1024*1024),
			AllowedExtensions: getEnvList("UPLOAD_ALLOWED_EXTENSIONS", defaultAllowedExtensions),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 0),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 0),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 0),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			Prefix:    getEnv("MINIO_PREFIX", "uploads/"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		OCR: OCRConfig{
			URL:         getEnv("OCR_URL", ""),
			TimeoutSec:  getEnvInt("OCR_TIMEOUT_SEC", 120),
			TableMarker: getEnv("OCR_TABLE_MARKER", "Item"),
			CacheTTLSec: getEnvInt("OCR_CACHE_TTL_SEC", 3600),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Username: getEnv("REDIS_USERNAME", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
	}
}

// Location resolves TimeZone, falling back to UTC when it is unknown.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return i
		}
	}
	return def
}

// getEnvList splits a comma separated value, dropping blanks and lowercasing entries.
func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return append([]string(nil), def...)
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		part = strings.TrimPrefix(part, ".")
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), def...)
	}
	return out
}
