package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort           string        `mapstructure:"HTTP_PORT"`
	LogLevel           string        `mapstructure:"LOG_LEVEL"`
	LogPretty          bool          `mapstructure:"LOG_PRETTY"`
	RedisAddr          string        `mapstructure:"REDIS_ADDR"`
	RedisPassword      string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB            int           `mapstructure:"REDIS_DB"`
	CatalogAPIURL      string        `mapstructure:"CATALOG_API_URL"`
	OrdersAPIURL       string        `mapstructure:"ORDERS_API_URL"`
	ShopWhatsApp       string        `mapstructure:"SHOP_WHATSAPP"`
	ShippingTablePath  string        `mapstructure:"SHIPPING_TABLE_PATH"`
	SessionTTL         time.Duration `mapstructure:"SESSION_TTL"`
	CatalogCacheTTL    time.Duration `mapstructure:"CATALOG_CACHE_TTL"`
	RequestTimeout     time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	UpstreamTimeout    time.Duration `mapstructure:"UPSTREAM_TIMEOUT"`
	ShutdownTimeout    time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
	MaxRequestBodySize int64         `mapstructure:"MAX_REQUEST_BODY_SIZE"`
	SecureCookies      bool          `mapstructure:"SECURE_COOKIES"`
}

var defaults = map[string]any{
	"HTTP_PORT":             "8080",
	"LOG_LEVEL":             "info",
	"LOG_PRETTY":            false,
	"REDIS_ADDR":            "localhost:6379",
	"REDIS_PASSWORD":        "",
	"REDIS_DB":              0,
	"CATALOG_API_URL":       "http://localhost:8082",
	"ORDERS_API_URL":        "http://localhost:8081",
	"SHOP_WHATSAPP":         "543704091739",
	"SHIPPING_TABLE_PATH":   "",
	"SESSION_TTL":           "24h",
	"CATALOG_CACHE_TTL":     "5m",
	"REQUEST_TIMEOUT":       "15s",
	"UPSTREAM_TIMEOUT":      "10s",
	"SHUTDOWN_TIMEOUT":      "10s",
	"MAX_REQUEST_BODY_SIZE": 1 << 20, // 1MB
	"SECURE_COOKIES":        false,
}

// Load reads settings from the environment, on top of the file named by
// CONFIG_FILE when it is set.
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
	if strings.TrimSpace(c.CatalogAPIURL) == "" {
		errs = append(errs, errors.New("CATALOG_API_URL is required"))
	}
	if strings.TrimSpace(c.OrdersAPIURL) == "" {
		errs = append(errs, errors.New("ORDERS_API_URL is required"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be positive"))
	}
	if c.UpstreamTimeout <= 0 {
		errs = append(errs, errors.New("UPSTREAM_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}
