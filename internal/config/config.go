/**
 * @description
 * Configuration management for the quote service.
 */
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	ServerPort        string `mapstructure:"SERVER_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	AdminEmail        string `mapstructure:"ADMIN_EMAIL"`
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`
	SessionTTLHours   int    `mapstructure:"SESSION_TTL_HOURS"`
	SessionSweepCron  string `mapstructure:"SESSION_SWEEP_CRON"`
	StatsRefreshCron  string `mapstructure:"STATS_REFRESH_CRON"`
	MailerBaseURL     string `mapstructure:"MAILER_BASE_URL"`
	MailerAPIKey      string `mapstructure:"MAILER_API_KEY"`
	MailerListID      string `mapstructure:"MAILER_LIST_ID"`
	MailerFromName    string `mapstructure:"MAILER_FROM_NAME"`
	MailerFromEmail   string `mapstructure:"MAILER_FROM_EMAIL"`
	RabbitMQURL       string `mapstructure:"RABBITMQ_URL"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (config Config, err error) {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SESSION_TTL_HOURS", 24)
	viper.SetDefault("SESSION_SWEEP_CRON", "*/15 * * * *")
	viper.SetDefault("STATS_REFRESH_CRON", "0 7 * * *")
	viper.SetDefault("MAILER_BASE_URL", "https://api.brevo.com/v3")
	viper.SetDefault("MAILER_FROM_NAME", "Weblify Studio")
	viper.AutomaticEnv()

	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("PORT")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("ADMIN_EMAIL")
	_ = viper.BindEnv("ADMIN_PASSWORD_HASH")
	_ = viper.BindEnv("SESSION_TTL_HOURS")
	_ = viper.BindEnv("SESSION_SWEEP_CRON")
	_ = viper.BindEnv("STATS_REFRESH_CRON")
	_ = viper.BindEnv("MAILER_BASE_URL")
	_ = viper.BindEnv("MAILER_API_KEY")
	_ = viper.BindEnv("MAILER_LIST_ID")
	_ = viper.BindEnv("MAILER_FROM_NAME")
	_ = viper.BindEnv("MAILER_FROM_EMAIL")
	_ = viper.BindEnv("RABBITMQ_URL")

	if err = viper.Unmarshal(&config); err != nil {
		return config, err
	}
	if port := os.Getenv("PORT"); port != "" {
		config.ServerPort = port
	}

	if config.DatabaseURL == "" {
		return config, fmt.Errorf("DATABASE_URL is required")
	}
	if config.AdminEmail == "" || config.AdminPasswordHash == "" {
		return config, fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD_HASH are required")
	}
	if config.SessionTTLHours <= 0 {
		return config, fmt.Errorf("SESSION_TTL_HOURS must be positive, got %d", config.SessionTTLHours)
	}

	return config, nil
}
