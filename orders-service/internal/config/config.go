package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nehueninos/nhnproparts/orders-service/internal/repository"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort           string        `mapstructure:"HTTP_PORT"`
	LogLevel           string        `mapstructure:"LOG_LEVEL"`
	LogPretty          bool          `mapstructure:"LOG_PRETTY"`
	DBHost             string        `mapstructure:"DB_HOST"`
	DBPort             int           `mapstructure:"DB_PORT"`
	DBUser             string        `mapstructure:"DB_USER"`
	DBPassword         string        `mapstructure:"DB_PASSWORD"`
	DBName             string        `mapstructure:"DB_NAME"`
	MigrationsPath     string        `mapstructure:"MIGRATIONS_PATH"`
	KafkaBrokers       []string      `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic         string        `mapstructure:"KAFKA_TOPIC"`
	OutboxTick         time.Duration `mapstructure:"OUTBOX_TICK"`
	OutboxBatchSize    int           `mapstructure:"OUTBOX_BATCH_SIZE"`
	RequestTimeout     time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	DBTimeout          time.Duration `mapstructure:"DB_TIMEOUT"`
	ShutdownTimeout    time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
	MaxRequestBodySize int64         `mapstructure:"MAX_REQUEST_BODY_SIZE"`
}

var defaults = map[string]any{
	"HTTP_PORT":             "8081",
	"LOG_LEVEL":             "info",
	"LOG_PRETTY":            false,
	"DB_HOST":               "localhost",
	"DB_PORT":               5432,
	"DB_USER":               "postgres",
	"DB_PASSWORD":           "postgres",
	"DB_NAME":               "nhnproparts",
	"MIGRATIONS_PATH":       "./internal/repository/migrations",
	"KAFKA_BROKERS":         []string{"localhost:9092"},
	"KAFKA_TOPIC":           "orders-placed",
	"OUTBOX_TICK":           "1s",
	"OUTBOX_BATCH_SIZE":     100,
	"REQUEST_TIMEOUT":       "15s",
	"DB_TIMEOUT":            "5s",
	"SHUTDOWN_TIMEOUT":      "10s",
	"MAX_REQUEST_BODY_SIZE": 1 << 20,
}

// Load reads settings from the environment, on top of the file named by
// CONFIG_FILE when it is set. KAFKA_BROKERS is a comma separated list.
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
	if strings.TrimSpace(c.DBHost) == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.DBPort <= 0 {
		errs = append(errs, errors.New("DB_PORT must be positive"))
	}
	if len(c.KafkaBrokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS is required"))
	}
	if c.OutboxTick <= 0 {
		errs = append(errs, errors.New("OUTBOX_TICK must be positive"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) Credentials() *repository.Credentials {
	return &repository.Credentials{
		Host:              c.DBHost,
		Port:              c.DBPort,
		User:              c.DBUser,
		Password:          c.DBPassword,
		DBName:            c.DBName,
		MigrationsDirPath: c.MigrationsPath,
	}
}
