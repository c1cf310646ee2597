package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Remote RemoteConfig
	Local  LocalStoreConfig
	Redis  RedisConfig
	Admin  AdminConfig
	CORS   CORSConfig
	S3     S3Config
	Flyer  FlyerConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

// RemoteConfig describes the relational backend. Both values must be set for the
// remote backend to be used; otherwise every repository falls back to the local store.
type RemoteConfig struct {
	URL       string // postgres://user@host:5432/dbname?sslmode=disable
	AccessKey string
}

// IsConfigured reports whether both remote credentials are present.
func (c RemoteConfig) IsConfigured() bool {
	return strings.TrimSpace(c.URL) != "" && strings.TrimSpace(c.AccessKey) != ""
}

// DSN injects the access key as the connection password.
func (c RemoteConfig) DSN() (string, error) {
	u, err := url.Parse(c.URL)
	if err != nil {
		return "", fmt.Errorf("invalid remote url: %w", err)
	}
	user := "postgres"
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, c.AccessKey)
	return u.String(), nil
}

type LocalStoreConfig struct {
	Driver string // memory, file, redis
	Path   string // directory for the file driver
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Prefix   string
}

type AdminConfig struct {
	KeyHash     string // bcrypt hash of the admin key
	JWTSecret   string
	TokenExpiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	BaseURL         string // CloudFront or S3 direct URL
}

// Enabled reports whether uploads should go to S3 instead of inline data URLs.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

type FlyerConfig struct {
	PublicBaseURL     string
	ViewRetentionDays int
	ViewRetentionCron string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Remote: RemoteConfig{
			URL:       getEnv("REMOTE_DB_URL", ""),
			AccessKey: getEnv("REMOTE_DB_ACCESS_KEY", ""),
		},
		Local: LocalStoreConfig{
			Driver: getEnv("LOCAL_STORE_DRIVER", "file"),
			Path:   getEnv("LOCAL_STORE_PATH", "./data"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
			Prefix:   getEnv("REDIS_KEY_PREFIX", "flyer:"),
		},
		Admin: AdminConfig{
			KeyHash:     getEnv("ADMIN_KEY_HASH", ""),
			JWTSecret:   getEnv("ADMIN_JWT_SECRET", "your-secret-key"),
			TokenExpiry: parseDuration(getEnv("ADMIN_TOKEN_EXPIRY", "12h"), 12*time.Hour),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		},
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "ap-northeast-2"),
			Bucket:          getEnv("AWS_S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			BaseURL:         getEnv("AWS_S3_BASE_URL", ""),
		},
		Flyer: FlyerConfig{
			PublicBaseURL:     strings.TrimRight(getEnv("PUBLIC_BASE_URL", ""), "/"),
			ViewRetentionDays: parseInt(getEnv("VIEW_RETENTION_DAYS", "90"), 90),
			ViewRetentionCron: getEnv("VIEW_RETENTION_CRON", "0 4 * * *"),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return n
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
