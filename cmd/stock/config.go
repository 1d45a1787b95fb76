package main

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the resolved CLI configuration.
// Precedence: flags, then STOCK_* environment (including .env), then the config file.
type Config struct {
	File      string  `mapstructure:"file" validate:"required"`
	Adapter   string  `mapstructure:"adapter" validate:"omitempty,oneof=fs sqlite"`
	Threshold float64 `mapstructure:"threshold"`
	Search    bool    `mapstructure:"search"`
	ReadOnly  bool    `mapstructure:"read-only"`
	Verbose   bool    `mapstructure:"verbose"`
}

// loadConfig merges flags, environment and an optional config file.
func loadConfig(v *viper.Viper, flags *pflag.FlagSet, configFile string) (*Config, error) {
	// Load .env file if it exists (ignore errors)
	_ = godotenv.Load()

	v.SetEnvPrefix("STOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
