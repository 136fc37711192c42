package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort        string        `mapstructure:"HTTP_PORT"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	LogPretty       bool          `mapstructure:"LOG_PRETTY"`
	MongoURI        string        `mapstructure:"MONGO_URI"`
	MongoDatabase   string        `mapstructure:"MONGO_DATABASE"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	DBTimeout       time.Duration `mapstructure:"DB_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var defaults = map[string]any{
	"HTTP_PORT":        "8082",
	"LOG_LEVEL":        "info",
	"LOG_PRETTY":       false,
	"MONGO_URI":        "mongodb://localhost:27017",
	"MONGO_DATABASE":   "nhnproparts",
	"REQUEST_TIMEOUT":  "15s",
	"DB_TIMEOUT":       "5s",
	"SHUTDOWN_TIMEOUT": "10s",
}

func Load() (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.MongoURI) == "" {
		errs = append(errs, errors.New("MONGO_URI is required"))
	}
	if strings.TrimSpace(c.MongoDatabase) == "" {
		errs = append(errs, errors.New("MONGO_DATABASE is required"))
	}
	if c.DBTimeout <= 0 {
		errs = append(errs, errors.New("DB_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}
