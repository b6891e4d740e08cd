package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Odoo    OdooConfig
	Shopify ShopifyConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port int
}

type OdooConfig struct {
	URL      string
	Database string
	Username string
	Password string
	Timeout  time.Duration
}

type ShopifyConfig struct {
	StoreDomain   string
	AccessToken   string
	LocationID    int64
	WebhookSecret string
	APIVersion    string
	Timeout       time.Duration
}

type LogConfig struct {
	Level string
}

// Load reads the configuration from the environment once at startup.
// The returned struct is never mutated afterwards.
func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("ODOO_URL", "http://localhost:8069/jsonrpc")
	viper.SetDefault("ODOO_DB", "odoo")
	viper.SetDefault("ODOO_USER", "admin")
	viper.SetDefault("ODOO_PASSWORD", "")
	viper.SetDefault("ODOO_TIMEOUT", "30s")
	viper.SetDefault("SHOPIFY_STORE_URL", "")
	viper.SetDefault("SHOPIFY_ACCESS_TOKEN", "")
	viper.SetDefault("SHOPIFY_LOCATION_ID", 0)
	viper.SetDefault("SHOPIFY_WEBHOOK_SECRET", "")
	viper.SetDefault("SHOPIFY_API_VERSION", "2024-01")
	viper.SetDefault("SHOPIFY_TIMEOUT", "30s")
	viper.SetDefault("LOG_LEVEL", "info")

	odooTimeout, err := time.ParseDuration(viper.GetString("ODOO_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parsing ODOO_TIMEOUT: %w", err)
	}

	shopifyTimeout, err := time.ParseDuration(viper.GetString("SHOPIFY_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parsing SHOPIFY_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Odoo: OdooConfig{
			URL:      viper.GetString("ODOO_URL"),
			Database: viper.GetString("ODOO_DB"),
			Username: viper.GetString("ODOO_USER"),
			Password: viper.GetString("ODOO_PASSWORD"),
			Timeout:  odooTimeout,
		},
		Shopify: ShopifyConfig{
			StoreDomain:   viper.GetString("SHOPIFY_STORE_URL"),
			AccessToken:   viper.GetString("SHOPIFY_ACCESS_TOKEN"),
			LocationID:    viper.GetInt64("SHOPIFY_LOCATION_ID"),
			WebhookSecret: viper.GetString("SHOPIFY_WEBHOOK_SECRET"),
			APIVersion:    viper.GetString("SHOPIFY_API_VERSION"),
			Timeout:       shopifyTimeout,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}
