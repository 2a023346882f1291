package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Report   ReportConfig   `mapstructure:"report"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig holds SQLite storage configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// TelegramConfig holds bot credentials and the administrator identity
type TelegramConfig struct {
	BotToken           string `mapstructure:"bot_token"`
	AdminID            int64  `mapstructure:"admin_id"`
	PollTimeoutSeconds int    `mapstructure:"poll_timeout_seconds"`
}

// ReportConfig holds the export schedule configuration
type ReportConfig struct {
	Timezone string `mapstructure:"timezone"`
	Hour     int    `mapstructure:"hour"`
	Minute   int    `mapstructure:"minute"`
}

// LoadConfig loads configuration from environment variables and config file
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	viper.AutomaticEnv()
	bindEnvVars()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")

	viper.SetDefault("database.path", "data.db")

	viper.SetDefault("telegram.poll_timeout_seconds", 30)

	viper.SetDefault("report.timezone", "Asia/Kolkata")
	viper.SetDefault("report.hour", 23)
	viper.SetDefault("report.minute", 0)
}

// bindEnvVars binds environment variables to configuration keys
func bindEnvVars() {
	// Server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.read_timeout", "SERVER_READ_TIMEOUT")
	viper.BindEnv("server.write_timeout", "SERVER_WRITE_TIMEOUT")

	// Storage
	viper.BindEnv("database.path", "DB_PATH")

	// Telegram
	viper.BindEnv("telegram.bot_token", "BOT_TOKEN")
	viper.BindEnv("telegram.admin_id", "ADMIN_ID")
	viper.BindEnv("telegram.poll_timeout_seconds", "POLL_TIMEOUT_SECONDS")

	// Report schedule
	viper.BindEnv("report.timezone", "TIMEZONE")
	viper.BindEnv("report.hour", "REPORT_HOUR")
	viper.BindEnv("report.minute", "REPORT_MINUTE")
}

// Location resolves the configured IANA timezone name.
func (c *ReportConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram bot token is required")
	}

	if c.Telegram.AdminID == 0 {
		return fmt.Errorf("telegram admin id is required")
	}

	if c.Report.Hour < 0 || c.Report.Hour > 23 {
		return fmt.Errorf("report hour must be between 0 and 23")
	}

	if c.Report.Minute < 0 || c.Report.Minute > 59 {
		return fmt.Errorf("report minute must be between 0 and 59")
	}

	if _, err := c.Report.Location(); err != nil {
		return err
	}

	return nil
}
