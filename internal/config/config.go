package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	APIBaseURL                    string        `mapstructure:"API_BASE_URL"`
	StatePath                     string        `mapstructure:"STATE_PATH"`
	HTTPTimeout                   time.Duration `mapstructure:"HTTP_TIMEOUT"`
	Debug                         bool          `mapstructure:"DEBUG"`
	DiscordBotToken               string        `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string        `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`

	// Stub API
	Port               string `mapstructure:"PORT"`
	DatabasePath       string `mapstructure:"DATABASE_PATH"`
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	DefaultFee         string `mapstructure:"DEFAULT_FEE"`
	SuperAdminEmail    string `mapstructure:"SUPERADMIN_EMAIL"`
	SuperAdminPassword string `mapstructure:"SUPERADMIN_PASSWORD"`
}

// LoadConfig reads settings from the environment on top of defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("API_BASE_URL", "http://127.0.0.1:8080")
	v.SetDefault("STATE_PATH", "reso-state.db")
	v.SetDefault("HTTP_TIMEOUT", "0s")
	v.SetDefault("DEBUG", false)
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_PATH", "reso-stub.db")
	v.SetDefault("DEFAULT_FEE", "200")

	v.BindEnv("DISCORD_BOT_TOKEN")
	v.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("SUPERADMIN_EMAIL")
	v.BindEnv("SUPERADMIN_PASSWORD")

	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	config.APIBaseURL = strings.TrimRight(config.APIBaseURL, "/")
	if config.HTTPTimeout < 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT must not be negative")
	}
	return &config, nil
}

// Discord reports whether registration announcements are configured.
func (c *Config) Discord() bool {
	return c.DiscordBotToken != "" && c.DiscordNotificationsChannelID != ""
}
