// Package config loads application configuration from config.json,
// CHATTER_-prefixed environment variables, and built-in defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Port     int            `mapstructure:"port" validate:"required,min=1,max=65535"`
	Salt     string         `mapstructure:"salt" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

type DatabaseConfig struct {
	Name    string `mapstructure:"name" validate:"required"`
	Path    string `mapstructure:"path" validate:"required"`
	Verbose bool   `mapstructure:"verbose"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// Load reads configuration in precedence order: defaults, then config.json
// from path (or the working directory when path is empty), then environment
// variables. A missing config file is not an error; the defaults stand.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("CHATTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 3000)
	v.SetDefault("salt", "default_salt")
	v.SetDefault("database.name", "chatter.db")
	v.SetDefault("database.path", "./database")
	v.SetDefault("database.verbose", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
