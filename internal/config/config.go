package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	ServerPort    string
	GinMode       string
	MongoURI      string
	MongoDatabase string
	RedisURI      string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	AdminSecretKey  string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool

	// FallbackUploadURL is a file.io-style host tried when the primary
	// upload fails. Empty disables the fallback.
	FallbackUploadURL string
	UploadMaxBytes    int64

	// PresenceTTL is how long an online marker survives without a
	// heartbeat before the user is considered disconnected.
	PresenceTTL time.Duration
}

// Load reads configuration from .env file and environment variables
func Load() *Config {
	// Load .env file (ignore error if file doesn't exist - env vars may be set directly)
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		MongoURI:      getEnvRequired("MONGO_URI"),
		MongoDatabase: getEnvRequired("MONGO_DATABASE"),
		RedisURI:      getEnv("REDIS_URI", "localhost:6379"),

		JWTSecret:       getEnvRequired("JWT_SECRET"),
		AccessTokenTTL:  parseDuration(getEnv("ACCESS_TOKEN_TTL", "1h")),
		RefreshTokenTTL: parseDuration(getEnv("REFRESH_TOKEN_TTL", "168h")),
		AdminSecretKey:  getEnv("ADMIN_SECRET_KEY", ""),

		S3Endpoint:  getEnvRequired("S3_ENDPOINT"),
		S3AccessKey: getEnvRequired("S3_ACCESS_KEY"),
		S3SecretKey: getEnvRequired("S3_SECRET_KEY"),
		S3Bucket:    getEnv("S3_BUCKET", "taskflow-attachments"),
		S3UseSSL:    parseBool(getEnv("S3_USE_SSL", "false")),

		FallbackUploadURL: getEnv("FALLBACK_UPLOAD_URL", ""),
		UploadMaxBytes:    parseInt64(getEnv("UPLOAD_MAX_BYTES", "10485760")), // 10MB

		PresenceTTL: parseDuration(getEnv("PRESENCE_TTL", "60s")),
	}

	return cfg
}

// getEnv reads an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvRequired reads an environment variable and panics if not set
func getEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Required environment variable %s is not set", key)
	}
	return value
}

// parseDuration parses a duration string, panics on error
func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Fatalf("Invalid duration format: %s", s)
	}
	return d
}

// parseBool parses a boolean string, panics on error
func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		log.Fatalf("Invalid boolean format: %s", s)
	}
	return b
}

// parseInt64 parses an integer string, panics on error
func parseInt64(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		log.Fatalf("Invalid integer format: %s", s)
	}
	return n
}
