package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Storage       StorageConfig
	Mail          MailConfig
	Session       SessionConfig
	OTP           OTPConfig
	Admin         AdminConfig
	Frontend      FrontendConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
	Cache         CacheConfig
	RateLimit     RateLimitConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
	MaxBodyBytes   int64
}

type DatabaseConfig struct {
	URL            string
	MaxConns       int32
	MinConns       int32
	MigrationsPath string
	AutoMigrate    bool
	CACertPath     string
}

// StorageConfig describes the S3-compatible bucket used for resumes and avatars.
type StorageConfig struct {
	AccessKeyID       string
	SecretAccessKey   string
	BucketName        string
	Endpoint          string
	Region            string
	PresignTTLMinutes int
	MaxUploadBytes    int64
}

type MailConfig struct {
	MailgunDomain string
	MailgunAPIKey string
	Sender        string
}

type SessionConfig struct {
	JWTSecret       string
	JWTIssuer       string
	CookieName      string
	SessionTTLHours int
	CookieDomain    string
	CookieSecure    bool
}

type OTPConfig struct {
	TTLMinutes int
}

type AdminConfig struct {
	// FallbackEmail names the admin account that owns opportunities converted from mentee submissions.
	FallbackEmail string
}

type FrontendConfig struct {
	BaseURL string
}

type LoggingConfig struct {
	Level      string
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type ObservabilityConfig struct {
	AlloyEndpoint     string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

type CacheConfig struct {
	OpportunityTypesTTLSeconds int
}

type RateLimitConfig struct {
	GeneralRPS   float64
	GeneralBurst int
	AuthRPS      float64
	AuthBurst    int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BASE_URL", "https://api.urocareerz.com")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "https://urocareerz.com,https://www.urocareerz.com")
	v.SetDefault("MAX_BODY_BYTES", 1<<20)
	v.SetDefault("MIGRATIONS_PATH", "migrations")
	v.SetDefault("AUTO_MIGRATE", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "")
	v.SetDefault("LOG_MAX_SIZE_MB", 100)
	v.SetDefault("LOG_MAX_BACKUPS", 5)
	v.SetDefault("LOG_MAX_AGE_DAYS", 14)
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "alloy:4318") // OTLP over HTTP
	v.SetDefault("O11Y_BE_SERVICE_NAME", "urocareerz-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "urocareerz")
	v.SetDefault("O11Y_BE_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "urocareerz-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,alloc_objects,goroutines")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)
	v.SetDefault("OPPORTUNITY_TYPES_CACHE_TTL", 300)
	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("STORAGE_PRESIGN_TTL_MINUTES", 15)
	v.SetDefault("STORAGE_MAX_UPLOAD_BYTES", 10<<20)
	v.SetDefault("MAIL_SENDER", "UroCareerz <no-reply@urocareerz.com>")
	v.SetDefault("OTP_TTL_MINUTES", 10)
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("AUTH_RATE_LIMIT_RPS", 0.2)
	v.SetDefault("AUTH_RATE_LIMIT_BURST", 5)

	// Session defaults
	v.SetDefault("JWT_ISSUER", "urocareerz-api")
	v.SetDefault("SESSION_COOKIE_NAME", "urocareerz_session")
	v.SetDefault("SESSION_TTL_HOURS", 24*7)
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("COOKIE_SECURE", true)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			BaseURL:        v.GetString("BASE_URL"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_CORS_ORIGINS")),
			MaxBodyBytes:   v.GetInt64("MAX_BODY_BYTES"),
		},
		Database: DatabaseConfig{
			URL:            v.GetString("DATABASE_URL"),
			MaxConns:       20,
			MinConns:       2,
			MigrationsPath: v.GetString("MIGRATIONS_PATH"),
			AutoMigrate:    v.GetBool("AUTO_MIGRATE"),
			CACertPath:     v.GetString("DATABASE_CA_CERT_PATH"),
		},
		Storage: StorageConfig{
			AccessKeyID:       v.GetString("STORAGE_ACCESS_KEY_ID"),
			SecretAccessKey:   v.GetString("STORAGE_SECRET_ACCESS_KEY"),
			BucketName:        v.GetString("STORAGE_BUCKET_NAME"),
			Endpoint:          v.GetString("STORAGE_ENDPOINT"),
			Region:            v.GetString("STORAGE_REGION"),
			PresignTTLMinutes: v.GetInt("STORAGE_PRESIGN_TTL_MINUTES"),
			MaxUploadBytes:    v.GetInt64("STORAGE_MAX_UPLOAD_BYTES"),
		},
		Mail: MailConfig{
			MailgunDomain: v.GetString("MAILGUN_DOMAIN"),
			MailgunAPIKey: v.GetString("MAILGUN_API_KEY"),
			Sender:        v.GetString("MAIL_SENDER"),
		},
		Session: SessionConfig{
			JWTSecret:       v.GetString("JWT_SECRET"),
			JWTIssuer:       v.GetString("JWT_ISSUER"),
			CookieName:      v.GetString("SESSION_COOKIE_NAME"),
			SessionTTLHours: v.GetInt("SESSION_TTL_HOURS"),
			CookieDomain:    v.GetString("COOKIE_DOMAIN"),
			CookieSecure:    v.GetBool("COOKIE_SECURE"),
		},
		OTP: OTPConfig{
			TTLMinutes: v.GetInt("OTP_TTL_MINUTES"),
		},
		Admin: AdminConfig{
			FallbackEmail: strings.ToLower(strings.TrimSpace(v.GetString("ADMIN_FALLBACK_EMAIL"))),
		},
		Frontend: FrontendConfig{
			BaseURL: v.GetString("FRONTEND_BASE_URL"),
		},
		Logging: LoggingConfig{
			Level:      v.GetString("LOG_LEVEL"),
			Dir:        v.GetString("LOG_DIR"),
			MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays: v.GetInt("LOG_MAX_AGE_DAYS"),
		},
		Observability: ObservabilityConfig{
			AlloyEndpoint:     v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_BE_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_BE_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
		Cache: CacheConfig{
			OpportunityTypesTTLSeconds: v.GetInt("OPPORTUNITY_TYPES_CACHE_TTL"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			GeneralBurst: v.GetInt("RATE_LIMIT_BURST"),
			AuthRPS:      v.GetFloat64("AUTH_RATE_LIMIT_RPS"),
			AuthBurst:    v.GetInt("AUTH_RATE_LIMIT_BURST"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(raw string) []string {
	out := []string{}
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Session.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.IsProduction() && len(c.Session.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
	}
	if c.Session.SessionTTLHours <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive")
	}
	if c.OTP.TTLMinutes <= 0 {
		return fmt.Errorf("OTP_TTL_MINUTES must be positive")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}

	// Mailgun is optional outside production, where mail is logged instead.
	if c.IsProduction() && (c.Mail.MailgunDomain == "" || c.Mail.MailgunAPIKey == "") {
		return fmt.Errorf("MAILGUN_DOMAIN and MAILGUN_API_KEY are required in production")
	}
	if (c.Mail.MailgunDomain == "") != (c.Mail.MailgunAPIKey == "") {
		return fmt.Errorf("MAILGUN_DOMAIN and MAILGUN_API_KEY must be set together")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// MailEnabled reports whether outbound email goes through Mailgun.
func (c *Config) MailEnabled() bool {
	return c.Mail.MailgunDomain != "" && c.Mail.MailgunAPIKey != ""
}

// StorageEnabled reports whether the object store is configured.
func (c *Config) StorageEnabled() bool {
	return c.Storage.BucketName != "" && c.Storage.AccessKeyID != "" && c.Storage.SecretAccessKey != ""
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}
