// internal/config/config.go
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database struct {
		Host       string `json:"host"`
		Port       string `json:"port"`
		User       string `json:"user"`
		Password   string `json:"password"`
		Name       string `json:"name"`
		SSLMode    string `json:"sslmode"`
		SearchPath string `json:"schema"`
	} `json:"database"`
	JWT struct {
		Secret       string        `json:"secret"`
		ExpiryPeriod time.Duration `json:"expiry_period"`
	} `json:"jwt"`
	Server struct {
		Port         string        `json:"port"`
		ReadTimeout  time.Duration `json:"read_timeout"`
		WriteTimeout time.Duration `json:"write_timeout"`
		CORSOrigins  []string      `json:"cors_origins"`
	}
	Sendgrid struct {
		APIKey string `json:"api_key"`
		From   string `json:"from"`
	} `json:"sendgrid"`
	SMTP struct {
		Host     string `json:"host"`
		Port     int    `json:"port"`
		Username string `json:"username"`
		Password string `json:"password"`
		From     string `json:"from"`
	} `json:"smtp"`
	AWS struct {
		Region        string `json:"region"`
		SESFrom       string `json:"ses_from"`
		S3Bucket      string `json:"s3_bucket"`
		S3Prefix      string `json:"s3_prefix"`
		PublicBaseURL string `json:"public_base_url"`
	} `json:"aws"`
	Notify struct {
		// EmailProvider is one of sendgrid, ses, smtp or log.
		EmailProvider string `json:"email_provider"`
		// SMSProvider is one of sns or log.
		SMSProvider string `json:"sms_provider"`
	} `json:"notify"`
	Invite struct {
		TTL time.Duration `json:"ttl"`
	} `json:"invite"`
	Cache struct {
		TTL  time.Duration `json:"ttl"`
		Size int           `json:"size"`
	} `json:"cache"`
	LogLevel      string `json:"log_level"`
	BaseURL       string `json:"base_url"`
	SiteName      string `json:"site_name"`
	EnableBilling bool   `json:"enable_billing"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	cfg := &Config{}

	// Database configuration
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnv("DB_PORT", "5432")
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "")
	cfg.Database.Name = getEnv("DB_NAME", "journal")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.SearchPath = getEnv("DB_SCHEMA", "public")

	// JWT configuration
	cfg.JWT.Secret = getEnv("JWT_SECRET", "your-secret-key")
	cfg.JWT.ExpiryPeriod = getEnvDuration("JWT_EXPIRY", time.Hour*24)

	// Sendgrid configuration
	cfg.Sendgrid.APIKey = getEnv("SENDGRID_API_KEY", "")
	cfg.Sendgrid.From = getEnv("SENDGRID_FROM", "")

	// SMTP configuration
	cfg.SMTP.Host = getEnv("SMTP_HOST", "")
	cfg.SMTP.Port = getEnvInt("SMTP_PORT", 587)
	cfg.SMTP.Username = getEnv("SMTP_USERNAME", "")
	cfg.SMTP.Password = getEnv("SMTP_PASSWORD", "")
	cfg.SMTP.From = getEnv("SMTP_FROM", "")

	// AWS configuration
	cfg.AWS.Region = getEnv("AWS_REGION", "us-east-1")
	cfg.AWS.SESFrom = getEnv("AWS_SES_FROM", "")
	cfg.AWS.S3Bucket = getEnv("AWS_S3_BUCKET", "")
	cfg.AWS.S3Prefix = getEnv("AWS_S3_PREFIX", "")
	cfg.AWS.PublicBaseURL = getEnv("AWS_S3_PUBLIC_BASE_URL", "")

	// Notification providers
	cfg.Notify.EmailProvider = strings.ToLower(getEnv("EMAIL_PROVIDER", "log"))
	cfg.Notify.SMSProvider = strings.ToLower(getEnv("SMS_PROVIDER", "log"))

	cfg.Invite.TTL = getEnvDuration("INVITE_TTL", 72*time.Hour)

	cfg.Cache.TTL = getEnvDuration("CACHE_TTL", 5*time.Minute)
	cfg.Cache.Size = getEnvInt("CACHE_SIZE", 1024)

	// Server configuration
	cfg.Server.Port = getEnv("SERVER_PORT", "8080")
	cfg.Server.ReadTimeout = time.Second * 15
	cfg.Server.WriteTimeout = time.Second * 15
	cfg.Server.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:3000"))

	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", "info"))
	cfg.BaseURL = strings.TrimRight(getEnv("BASE_URL", "http://localhost:8080"), "/")
	cfg.SiteName = getEnv("SITE_NAME", "Tabbed Journal")
	cfg.EnableBilling = getEnvBool("ENABLE_BILLING", false)

	return cfg
}

// DSN returns the postgres connection string for the database group.
func (c *Config) DSN() string {
	return "host=" + c.Database.Host +
		" user=" + c.Database.User +
		" password=" + c.Database.Password +
		" dbname=" + c.Database.Name +
		" port=" + c.Database.Port +
		" sslmode=" + c.Database.SSLMode +
		" search_path=" + c.Database.SearchPath
}

// StorageEnabled reports whether an S3 bucket is configured.
func (c *Config) StorageEnabled() bool {
	return c.AWS.S3Bucket != ""
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("Invalid integer in environment, using default", "key", key, "value", value)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		slog.Warn("Invalid boolean in environment, using default", "key", key, "value", value)
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		slog.Warn("Invalid duration in environment, using default", "key", key, "value", value)
		return defaultValue
	}
	return d
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
