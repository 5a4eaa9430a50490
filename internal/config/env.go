package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config contains all configuration parameters for the service.
type Config struct {
	Port            string `envconfig:"PORT" default:"8080"`
	VaultDBPath     string `envconfig:"VAULT_DB_PATH" default:"wallet.db"`
	RedisAddr       string `envconfig:"REDIS_ADDR" default:""`
	AutoLockMinutes int    `envconfig:"AUTO_LOCK_MINUTES" default:"15"`
	TradingAPIURL   string `envconfig:"TRADING_API_URL" required:"true"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	cfg = &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns the HTTP port from configuration
func GetPort() string {
	return Get().Port
}

// GetVaultDBPath returns the path to the wallet database file
func GetVaultDBPath() string {
	return Get().VaultDBPath
}

// GetRedisAddr returns the session mirror address. Empty disables the
// mirror.
func GetRedisAddr() string {
	return Get().RedisAddr
}

// GetAutoLock returns the default idle timeout.
func GetAutoLock() time.Duration {
	return time.Duration(Get().AutoLockMinutes) * time.Minute
}

// GetTradingAPIURL returns the trading backend base URL
func GetTradingAPIURL() string {
	return Get().TradingAPIURL
}

// GetLogLevel returns the configured log level
func GetLogLevel() string {
	return Get().LogLevel
}
