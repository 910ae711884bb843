package main

import (
	"fmt"
	"strings"
	"time"

	"hallway-backend/internal/repository"

	"github.com/spf13/viper"
)

const (
	configPath   = "./"
	configName   = "config"
	configFormat = "yaml"
)

type Config struct {
	Database repository.Config `yaml:"database"`
	Server   ServerConfig      `yaml:"server"`
	Auth     AuthConfig        `yaml:"auth"`

	LogLevel string `yaml:"logLevel"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type AuthConfig struct {
	SessionSecret  string        `yaml:"sessionSecret"`
	SessionTTL     time.Duration `yaml:"sessionTTL"`
	WaitlistAPIKey string        `yaml:"waitlistApiKey"`
	BcryptCost     int           `yaml:"bcryptCost"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(configName)
	viper.AddConfigPath(configPath)
	viper.SetConfigType(configFormat)

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Auth.SessionSecret == "" {
		return nil, fmt.Errorf("auth.sessionSecret must be set")
	}
	if cfg.Auth.WaitlistAPIKey == "" {
		return nil, fmt.Errorf("auth.waitlistApiKey must be set")
	}

	return &cfg, nil
}
