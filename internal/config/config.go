// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application. It is constructed once
// at process start and passed explicitly to every component that needs it.
type Config struct {
	// Server Configuration
	AppEnv        string        `mapstructure:"APP_ENV"`
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`

	// Database Configuration
	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`

	// Token Configuration
	JWTSecret   string        `mapstructure:"JWT_SECRET"`
	JWTTokenTTL time.Duration `mapstructure:"JWT_TOKEN_TTL_HOURS"`

	// Google Sign-In
	GoogleClientID string `mapstructure:"GOOGLE_CLIENT_ID"`

	// Cloudinary (doctor/admin profile images)
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	// SMTP (best-effort booking notifications)
	SMTPHost   string `mapstructure:"SMTP_HOST"`
	EmailUser  string `mapstructure:"EMAIL_USER"`
	EmailPass  string `mapstructure:"EMAIL_PASS"`
	AdminEmail string `mapstructure:"ADMIN_EMAIL"` // optional BCC on outgoing mail

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// CORS
	CORSAllowedOrigins []string

	// Cron Jobs
	ReminderJobSchedule string `mapstructure:"APPOINTMENT_REMINDER_JOB_SCHEDULE"`
}

// Load builds the configuration from the environment. An env file selected by
// APP_ENV (.env.development or .env.production) is loaded first when present,
// mirroring the deployment-mode switch; explicit environment variables win.
func Load() (*Config, error) {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}
	envFile := ".env." + appEnv
	if err := godotenv.Load(envFile); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading %s: %w", envFile, err)
		}
		// Fall back to a plain .env if the mode-specific file is absent.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	v.SetDefault("APP_ENV", appEnv)
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "5000")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("MONGO_URI", "")
	v.SetDefault("MONGO_DATABASE", "clinic")

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TOKEN_TTL_HOURS", 168) // 7 days

	v.SetDefault("GOOGLE_CLIENT_ID", "")

	v.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	v.SetDefault("CLOUDINARY_API_KEY", "")
	v.SetDefault("CLOUDINARY_API_SECRET", "")

	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("EMAIL_USER", "")
	v.SetDefault("EMAIL_PASS", "")
	v.SetDefault("ADMIN_EMAIL", "")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("CORS_ALLOWED_ORIGINS", "")

	v.SetDefault("APPOINTMENT_REMINDER_JOB_SCHEDULE", "@daily")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.JWTTokenTTL = time.Duration(v.GetInt("JWT_TOKEN_TTL_HOURS")) * time.Hour

	cfg.CORSAllowedOrigins = corsOrigins(v.GetString("CORS_ALLOWED_ORIGINS"), cfg.AppEnv)

	if cfg.AppEnv == "production" && cfg.GinMode == "debug" {
		cfg.GinMode = "release"
	}

	// Critical configuration must be present before anything is wired up.
	if strings.TrimSpace(cfg.MongoURI) == "" {
		return nil, fmt.Errorf("FATAL: MONGO_URI is not set")
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, fmt.Errorf("FATAL: JWT_SECRET is not set")
	}

	return &cfg, nil
}

// corsOrigins resolves the allowed origin set: an explicit comma-separated
// override wins, otherwise the deployment mode picks the default set.
func corsOrigins(override, appEnv string) []string {
	if strings.TrimSpace(override) != "" {
		parts := strings.Split(override, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
		if len(origins) > 0 {
			return origins
		}
	}
	if appEnv == "production" {
		return []string{"https://clinic.example.com"}
	}
	return []string{"http://localhost:5173"}
}
