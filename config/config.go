package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	TLS_DOMAINS       = "" // e.g. "example.com,example2.com"
	BIND_ADDRESS      = "0.0.0.0:8080"
	DB_DSN            = "" // MySQL ("user:pass@tcp(host)/db"), Postgres ("postgres://...") or SQLite, detected from the value
	SQLITE_FILE       = "palette.db" // Used when DB_DSN is not set
	DEBUG_MODE        = true
	SESSION_KEY       = "change me, this is the session cookie key"
	JWT_SECRET        = "" // Bearer tokens are disabled when empty
	JWT_EXPIRY_HOURS  = 24 * 30
	PAGE_SIZE         = 10
	MAX_UPLOAD_MB     = 32
	LOG_LEVEL         = "info"
	LOG_FILE          = "" // Rotated log file, stdout only when empty
	REDIS_URL         = "" // e.g. redis://localhost:6379/0, single post cache is disabled when empty
	CACHE_TTL_SECONDS = 300

	// Storage for post attachments
	STORAGE_TYPE      = "file" // "file" or "s3"
	STORAGE_DIR       = "./data/files"
	S3_BUCKET         = ""
	S3_REGION         = "ap-northeast-2"
	S3_ENDPOINT       = "" // Custom endpoint for S3 compatible services (MinIO etc.)
	S3_KEY            = ""
	S3_SECRET         = ""
	S3_PREFIX         = "" // Key prefix inside the bucket
	S3_SSE            = "" // Server side encryption, e.g. "AES256"
	PUBLIC_URL_PREFIX = "" // Overrides the generated file URLs (CDN in front of the bucket, etc)

	// Image thumbnails of post attachments
	THUMB_SIZE          = 400
	PROCESSING_SCHEDULE = "@every 30s"
)

func init() {
	// A missing .env file is not an error, plain environment variables still apply
	_ = godotenv.Load()

	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("DB_DSN", &DB_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvString("JWT_SECRET", &JWT_SECRET)
	readEnvInt("JWT_EXPIRY_HOURS", &JWT_EXPIRY_HOURS)
	readEnvInt("PAGE_SIZE", &PAGE_SIZE)
	readEnvInt("MAX_UPLOAD_MB", &MAX_UPLOAD_MB)
	readEnvString("LOG_LEVEL", &LOG_LEVEL)
	readEnvString("LOG_FILE", &LOG_FILE)
	readEnvString("REDIS_URL", &REDIS_URL)
	readEnvInt("CACHE_TTL_SECONDS", &CACHE_TTL_SECONDS)
	readEnvString("STORAGE_TYPE", &STORAGE_TYPE)
	readEnvString("STORAGE_DIR", &STORAGE_DIR)
	readEnvString("S3_BUCKET", &S3_BUCKET)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvString("S3_KEY", &S3_KEY)
	readEnvString("S3_SECRET", &S3_SECRET)
	readEnvString("S3_PREFIX", &S3_PREFIX)
	readEnvString("S3_SSE", &S3_SSE)
	readEnvString("PUBLIC_URL_PREFIX", &PUBLIC_URL_PREFIX)
	readEnvInt("THUMB_SIZE", &THUMB_SIZE)
	readEnvString("PROCESSING_SCHEDULE", &PROCESSING_SCHEDULE)

	if PAGE_SIZE <= 0 {
		PAGE_SIZE = 10
	}
}

// GetDSN returns the configured DSN, falling back to the SQLite file
func GetDSN() string {
	if DB_DSN != "" {
		return DB_DSN
	}
	return SQLITE_FILE
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = i
}
