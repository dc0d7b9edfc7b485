package config

import (
	"os"
	"strconv"
	"strings"
)

// DatabaseConfig holds PostgreSQL database connection settings.
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

// MinIOConfig holds object storage settings for MinIO.
// PublicBaseURL, when set, is used to build media URLs instead of presigning.
type MinIOConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

// CacheConfig selects the cache backend. An empty RedisURL means in-process.
type CacheConfig struct {
	RedisURL   string
	TimeoutSec int
	LocalSize  int
}

// AuthConfig holds token signing and bootstrap superuser settings.
type AuthConfig struct {
	SecretKey         string
	AccessTokenTTLHrs int
	SuperuserEmail    string
	SuperuserPassword string
}

// EmailConfig holds SMTP settings. An empty Host selects the console transport.
type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	UseSSL   bool
	From     string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port                string
	Environment         string
	SiteURL             string
	DefaultLookupRadius int
	CORSAllowedOrigins  []string
	Database            DatabaseConfig
	MinIO               MinIOConfig
	Cache               CacheConfig
	Auth                AuthConfig
	Email               EmailConfig
}

// IsProduction reports whether production logging and defaults apply.
func (c *AppConfig) IsProduction() bool {
	return c.Environment != "development"
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:                getEnv("PORT", "8080"),
		Environment:         getEnv("ENVIRONMENT", "production"),
		SiteURL:             getEnv("SITE_URL", "http://localhost:8000"),
		DefaultLookupRadius: getEnvInt("DEFAULT_LOOKUP_RADIUS", 20),
		CORSAllowedOrigins:  getEnvList("CORS_ALLOWED_ORIGINS"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:      getEnv("MINIO_ENDPOINT", ""),
			AccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:     getEnv("MINIO_SECRET_KEY", ""),
			Bucket:        getEnv("MINIO_BUCKET", ""),
			UseSSL:        getEnvBool("MINIO_USE_SSL", false),
			PublicBaseURL: getEnv("MEDIA_BASE_URL", ""),
		},
		Cache: CacheConfig{
			RedisURL:   getEnv("REDIS_URL", ""),
			TimeoutSec: getEnvInt("CACHE_TIMEOUT_SEC", 1200),
			LocalSize:  getEnvInt("CACHE_LOCAL_SIZE", 256),
		},
		Auth: AuthConfig{
			SecretKey:         getEnv("SECRET_KEY", ""),
			AccessTokenTTLHrs: getEnvInt("ACCESS_TOKEN_TTL_HOURS", 24*365*100),
			SuperuserEmail:    getEnv("SUPERUSER_EMAIL", ""),
			SuperuserPassword: getEnv("SUPERUSER_PASSWORD", ""),
		},
		Email: EmailConfig{
			Host:     getEnv("EMAIL_HOST", ""),
			Port:     getEnvInt("EMAIL_PORT", 25),
			User:     getEnv("EMAIL_HOST_USER", ""),
			Password: getEnv("EMAIL_HOST_PASSWORD", ""),
			UseSSL:   getEnvBool("EMAIL_USE_SSL", true),
			From:     getEnv("DEFAULT_FROM_EMAIL", "noreply@localhost"),
		},
	}
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

// getEnvList splits a comma separated value, dropping empty items.
func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
