package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App     AppConfig
	Mongo   MongoConfig
	Auth    AuthConfig
	Storage StorageConfig
	Mail    MailConfig
	Quotes  QuotesConfig
	Logger  LoggerConfig
}

type AppConfig struct {
	Port           string
	AllowedOrigins []string
}

type MongoConfig struct {
	URI          string
	DatabaseName string
}

type AuthConfig struct {
	JWTSecret             string
	JWTRefreshSecret      string
	AccessTokenTTLMinutes int
	RefreshTokenTTLDays   int
	CookieDomain          string
	CookieSecure          bool
	AdminEmail            string
	AdminPassword         string
}

// StorageConfig selects and configures the object-store driver.
// Driver is "gcs" or "r2".
type StorageConfig struct {
	Driver string

	GCSBucket          string
	GCSCredentialsFile string

	R2Bucket       string
	R2AccessKeyID  string
	R2SecretKey    string
	R2Endpoint     string
	R2PublicDomain string
}

type MailConfig struct {
	ResendAPIKey string
	FromAddress  string
	ToAddress    string
}

type QuotesConfig struct {
	MaxAttachmentSizeMB int
	MaxProductImages    int
}

type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults
// where possible. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: splitAndTrim(os.Getenv("ALLOWED_ORIGINS")),
		},
		Mongo: MongoConfig{
			URI:          os.Getenv("MONGODB_URI"),
			DatabaseName: getEnv("DATABASE_NAME", "awsbackend"),
		},
		Auth: AuthConfig{
			JWTSecret:             os.Getenv("JWT_SECRET"),
			JWTRefreshSecret:      os.Getenv("JWT_REFRESH_SECRET"),
			AccessTokenTTLMinutes: getEnvInt("ACCESS_TOKEN_TTL_MINUTES", 15),
			RefreshTokenTTLDays:   getEnvInt("REFRESH_TOKEN_TTL_DAYS", 14),
			CookieDomain:          os.Getenv("COOKIE_DOMAIN"),
			CookieSecure:          getEnvBool("COOKIE_SECURE", true),
			AdminEmail:            strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
			AdminPassword:         os.Getenv("ADMIN_PASSWORD"),
		},
		Storage: StorageConfig{
			Driver:             getEnv("STORAGE_DRIVER", "gcs"),
			GCSBucket:          os.Getenv("GCS_BUCKET"),
			GCSCredentialsFile: os.Getenv("CREDENTIALS_FILE_LOCATION"),
			R2Bucket:           os.Getenv("R2_BUCKET"),
			R2AccessKeyID:      os.Getenv("R2_ACCESS_KEY_ID"),
			R2SecretKey:        os.Getenv("R2_SECRET_ACCESS_KEY"),
			R2Endpoint:         os.Getenv("R2_ENDPOINT"),
			R2PublicDomain:     strings.TrimRight(os.Getenv("R2_PUBLIC_DOMAIN"), "/"),
		},
		Mail: MailConfig{
			ResendAPIKey: os.Getenv("RESEND_API_KEY"),
			FromAddress:  getEnv("QUOTE_EMAIL_FROM", "Aus Window Shrouds <info@auswindowshrouds.com.au>"),
			ToAddress:    getEnv("QUOTE_EMAIL_TO", "info@auswindowshrouds.com.au"),
		},
		Quotes: QuotesConfig{
			MaxAttachmentSizeMB: getEnvInt("MAX_ATTACHMENT_SIZE_MB", 10),
			MaxProductImages:    getEnvInt("MAX_PROD_IMAGES", 4),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if cfg.Mongo.URI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.Auth.JWTSecret == "" || cfg.Auth.JWTRefreshSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET and JWT_REFRESH_SECRET are required")
	}
	switch cfg.Storage.Driver {
	case "gcs":
		if cfg.Storage.GCSBucket == "" {
			return nil, fmt.Errorf("GCS_BUCKET is required when STORAGE_DRIVER=gcs")
		}
	case "r2":
		if cfg.Storage.R2Bucket == "" || cfg.Storage.R2AccessKeyID == "" ||
			cfg.Storage.R2SecretKey == "" || cfg.Storage.R2Endpoint == "" {
			return nil, fmt.Errorf("missing R2 env vars (R2_BUCKET, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_ENDPOINT)")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (expected gcs or r2)", cfg.Storage.Driver)
	}

	return cfg, nil
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
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
