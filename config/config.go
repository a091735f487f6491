package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	ServiceName string
	LoggerLevel string

	AppPort int

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	ResetTokenTTL time.Duration
	ResetBaseURL  string

	TelegramAlertToken  string
	TelegramAlertChatID int64
}

func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.ServiceName = cast.ToString(getOrReturnDefault("SERVICE_NAME", "safetrack"))
	cfg.LoggerLevel = cast.ToString(getOrReturnDefault("LOGGER_LEVEL", "debug"))
	cfg.AppPort = cast.ToInt(getOrReturnDefault("APP_PORT", 8080))

	cfg.PostgresHost = cast.ToString(getOrReturnDefault("POSTGRES_HOST", "localhost"))
	cfg.PostgresPort = cast.ToString(getOrReturnDefault("POSTGRES_PORT", "5432"))
	cfg.PostgresUser = cast.ToString(getOrReturnDefault("POSTGRES_USER", "postgres"))
	cfg.PostgresPassword = cast.ToString(getOrReturnDefault("POSTGRES_PASSWORD", "1234"))
	cfg.PostgresDB = cast.ToString(getOrReturnDefault("POSTGRES_DB", "safetrack"))

	cfg.JWTSecret = cast.ToString(getOrReturnDefault("JWT_SECRET", ""))
	cfg.AccessTokenTTL = cast.ToDuration(getOrReturnDefault("ACCESS_TOKEN_TTL", "15m"))
	cfg.RefreshTokenTTL = cast.ToDuration(getOrReturnDefault("REFRESH_TOKEN_TTL", "168h"))

	cfg.ResetTokenTTL = cast.ToDuration(getOrReturnDefault("RESET_TOKEN_TTL", "1h"))
	cfg.ResetBaseURL = cast.ToString(getOrReturnDefault("RESET_BASE_URL", "http://localhost:4200/reset-password"))

	cfg.TelegramAlertToken = cast.ToString(getOrReturnDefault("TG_ALERT_TOKEN", ""))
	cfg.TelegramAlertChatID = cast.ToInt64(getOrReturnDefault("TG_ALERT_CHAT_ID", 0))

	return cfg
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
