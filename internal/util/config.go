package util

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	AllowedOrigins            []string      `mapstructure:"ALLOWED_ORIGINS"`
	DatabaseURL               string        `mapstructure:"DATABASE_URL"`
	HTTPServerAddress         string        `mapstructure:"HTTP_SERVER_ADDRESS"`
	TokenSecretKey            string        `mapstructure:"TOKEN_SECRET_KEY"`
	AccessTokenDuration       time.Duration `mapstructure:"ACCESS_TOKEN_DURATION"`
	CloudinaryURL             string        `mapstructure:"CLOUDINARY_URL"`
	RedisServerAddress        string        `mapstructure:"REDIS_SERVER_ADDRESS"`
	GeocodingBaseURL          string        `mapstructure:"GEOCODING_BASE_URL"`
	GeocodingUserAgent        string        `mapstructure:"GEOCODING_USER_AGENT"`
	GeminiAPIKey              string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel               string        `mapstructure:"GEMINI_MODEL"`
	GmailSMTPUsername         string        `mapstructure:"GMAIL_SMTP_USERNAME"`
	GmailSMTPPassword         string        `mapstructure:"GMAIL_SMTP_PASSWORD"`
	ModeratorAlertEmail       string        `mapstructure:"MODERATOR_ALERT_EMAIL"`
	DiscordBotToken           string        `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordModerationChannel  string        `mapstructure:"DISCORD_MODERATION_CHANNEL"`
	NotificationRetentionDays int           `mapstructure:"NOTIFICATION_RETENTION_DAYS"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	// Set defaults for non-sensitive config
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	viper.SetDefault("HTTP_SERVER_ADDRESS", "0.0.0.0:8080")
	viper.SetDefault("ACCESS_TOKEN_DURATION", "1h")
	viper.SetDefault("GEOCODING_BASE_URL", "https://nominatim.openstreetmap.org")
	viper.SetDefault("GEOCODING_USER_AGENT", "petconnect-backend-geocoder/1.0")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	viper.SetDefault("NOTIFICATION_RETENTION_DAYS", 30)

	// Prefer environment variables over config file
	viper.AutomaticEnv()

	// Load config file
	viper.SetConfigFile(path)
	if err = viper.ReadInConfig(); err != nil {
		return
	}

	// Unmarshal config into struct
	err = viper.UnmarshalExact(&config)
	if err != nil {
		return
	}

	// Validate required configuration
	err = validateConfig(config)
	return
}

func validateConfig(config Config) error {
	if config.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if config.TokenSecretKey == "" {
		return fmt.Errorf("TOKEN_SECRET_KEY is required")
	}
	if config.CloudinaryURL == "" {
		return fmt.Errorf("CLOUDINARY_URL is required")
	}
	if config.RedisServerAddress == "" {
		return fmt.Errorf("REDIS_SERVER_ADDRESS is required")
	}

	return nil
}
