package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	DB      DBConfig      `mapstructure:"db"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Payment PaymentConfig `mapstructure:"payment"`
}

type ServerConfig struct {
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type DBConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}

// DSN builds the go-sql-driver connection string. parseTime is required so
// TIMESTAMP columns scan into time.Time.
func (c *DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

type AuthConfig struct {
	SecretKey   string        `mapstructure:"secret_key"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
	TokenHeader string        `mapstructure:"token_header"`
}

type PaymentConfig struct {
	Provider  string `mapstructure:"provider"`
	ServerKey string `mapstructure:"server_key"`
	BaseURL   string `mapstructure:"base_url"`
}

// LoadConfig loads configuration from config.yaml and environment variables
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./deploy/")
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME/.storefront/")
	v.AddConfigPath("/etc/storefront/")

	// Enable environment variable override with STOREFRONT_ prefix
	v.SetEnvPrefix("STOREFRONT")
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.maxOpenConns", 20)
	v.SetDefault("auth.token_ttl", 720*time.Hour)
	v.SetDefault("auth.token_header", "X-Token")
	v.SetDefault("payment.provider", "midtrans")
	v.SetDefault("payment.base_url", "https://app.sandbox.midtrans.com")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate fails fast on secrets the service cannot run without.
func (c *Config) Validate() error {
	if c.Auth.SecretKey == "" {
		return fmt.Errorf("auth.secret_key must be set (STOREFRONT_AUTH_SECRET_KEY)")
	}
	if c.Payment.Provider == "midtrans" && c.Payment.ServerKey == "" {
		return fmt.Errorf("payment.server_key must be set (STOREFRONT_PAYMENT_SERVER_KEY)")
	}
	return nil
}
