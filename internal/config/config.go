package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DBPath            string
	LogLevel          string
	DevMode           bool
	JWTSecret         string
	JWTIssuer         string
	AccessTokenTTL    time.Duration
	AppBaseURL        string
	MailAWSRegion     string
	MailFromEmail     string
	MailFromName      string
	MailWorkerCount   int
	MailQueueSize     int
	MediaDir          string
	MaxUploadBytes    int64
	DictionaryBaseURL string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:lingocards.db"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		DevMode:           envBoolOr("DEV_MODE", false),
		JWTSecret:         envOr("JWT_SECRET", ""),
		JWTIssuer:         envOr("JWT_ISSUER", "lingocards"),
		AccessTokenTTL:    time.Duration(envIntOr("ACCESS_TOKEN_TTL_MINUTES", 60)) * time.Minute,
		AppBaseURL:        envOr("APP_BASE_URL", "http://localhost:8080"),
		MailAWSRegion:     envOr("MAIL_AWS_REGION", "eu-west-1"),
		MailFromEmail:     envOr("MAIL_FROM_EMAIL", ""),
		MailFromName:      envOr("MAIL_FROM_NAME", "LingoCards"),
		MailWorkerCount:   envIntOr("MAIL_WORKER_COUNT", 2),
		MailQueueSize:     envIntOr("MAIL_QUEUE_SIZE", 64),
		MediaDir:          envOr("MEDIA_DIR", "media"),
		MaxUploadBytes:    int64(envIntOr("MAX_UPLOAD_BYTES", 5<<20)),
		DictionaryBaseURL: envOr("DICTIONARY_BASE_URL", "https://api.dictionaryapi.dev/api/v2/entries"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}
