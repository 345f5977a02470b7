// Package config holds the application configuration, populated from the
// config file, environment, and flags via viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the resolved application configuration.
type Config struct {
	// Data locations
	DataPath    string `mapstructure:"data_path" validate:"required"`
	StagingPath string `mapstructure:"staging_path" validate:"required"`
	DBPath      string `mapstructure:"db_path" validate:"required"`
	DBTable     string `mapstructure:"db_table" validate:"required"`

	// AI summary settings
	Provider      string  `mapstructure:"provider" validate:"omitempty,oneof=openai anthropic"`
	Model         string  `mapstructure:"model"`
	APIKey        string  `mapstructure:"api_key"`
	BaseURL       string  `mapstructure:"base_url" validate:"omitempty,url"`
	MaxConcurrent int     `mapstructure:"max_concurrent" validate:"min=1,max=50"`
	MaxTokens     int     `mapstructure:"max_tokens" validate:"min=0"`
	Temperature   float64 `mapstructure:"temperature" validate:"min=0,max=2"`

	// HTTP transport for the MCP server
	HTTPHost string `mapstructure:"http_host"`
	HTTPPort int    `mapstructure:"http_port" validate:"min=1,max=65535"`

	// Logging
	Debug bool `mapstructure:"debug"`
	Quiet bool `mapstructure:"quiet"`
}

// SetDefaults registers defaults on the shared viper instance. Call before
// Load so flag and env overrides win.
func SetDefaults() {
	viper.SetDefault("data_path", "./data/raw")
	viper.SetDefault("staging_path", "./data/staging")
	viper.SetDefault("db_path", "./data/scp.db")
	viper.SetDefault("db_table", "items")
	viper.SetDefault("max_concurrent", 5)
	viper.SetDefault("http_host", "127.0.0.1")
	viper.SetDefault("http_port", 8000)
}

// Load unmarshals the current viper state into a validated Config.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			fields := make([]string, 0, len(errs))
			for _, e := range errs {
				fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(e.Field()), e.Tag()))
			}
			return nil, fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
		}
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// HTTPAddr returns the listen address for the HTTP transport.
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}
