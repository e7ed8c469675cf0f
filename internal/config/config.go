package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port   string
	AppEnv string
	APIKey string

	DatabaseURL string

	SMTPHost         string
	SMTPPort         string
	SMTPUser         string
	SMTPPass         string
	AdminEmail       string
	SendConfirmation bool

	RabbitMQURL string

	S3Bucket     string
	AWSRegion    string
	S3Endpoint   string
	AssetBaseURL string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Default().Warn("loading .env failed", "error", err)
	}

	return &Config{
		Port:   getEnv("PORT", "8080"),
		AppEnv: getEnv("APP_ENV", "development"),
		APIKey: getEnv("API_KEY", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		SMTPHost:         getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:         getEnv("SMTP_PORT", "587"),
		SMTPUser:         getEnv("SMTP_USER", ""),
		SMTPPass:         getEnv("SMTP_PASS", ""),
		AdminEmail:       getEnv("ADMIN_EMAIL", ""),
		SendConfirmation: getEnv("SEND_CONFIRMATION", "") == "true",

		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		S3Bucket:     getEnv("S3_BUCKET", ""),
		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		S3Endpoint:   getEnv("S3_ENDPOINT", ""),
		AssetBaseURL: getEnv("PUBLIC_ASSET_BASE_URL", ""),
	}
}

// IsProduction controls whether error details leak into API responses.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
