package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{Path: "data.db"},
		Telegram: TelegramConfig{
			BotToken: "123456:test-token",
			AdminID:  111,
		},
		Report: ReportConfig{
			Timezone: "Asia/Kolkata",
			Hour:     23,
			Minute:   0,
		},
	}
}

func TestConfigValidation(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing port", func(c *Config) { c.Server.Port = "" }},
		{"missing db path", func(c *Config) { c.Database.Path = "" }},
		{"missing bot token", func(c *Config) { c.Telegram.BotToken = "" }},
		{"missing admin id", func(c *Config) { c.Telegram.AdminID = 0 }},
		{"hour out of range", func(c *Config) { c.Report.Hour = 24 }},
		{"minute out of range", func(c *Config) { c.Report.Minute = 60 }},
		{"bad timezone", func(c *Config) { c.Report.Timezone = "Nowhere/Nothing" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestReportLocation(t *testing.T) {
	cfg := ReportConfig{Timezone: "Asia/Kolkata"}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", loc.String())
}
