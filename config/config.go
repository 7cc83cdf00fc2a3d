package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the royaltyd daemon configuration.
type Config struct {
	// ListenAddr is the host:port the HTTP API binds to.
	ListenAddr string `mapstructure:"listen_addr"`

	// DBPath is the bbolt ledger database file.
	DBPath string `mapstructure:"db_path"`

	// LogFile receives the JSON log stream; empty means stderr.
	LogFile string `mapstructure:"log_file"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	// Admin is the initial admin address.
	Admin string `mapstructure:"admin"`

	// ServiceAccounts are addresses granted the service-account role.
	ServiceAccounts []string `mapstructure:"service_accounts"`

	// APIKeys maps bearer keys to the actor address each key speaks for.
	APIKeys map[string]string `mapstructure:"api_keys"`

	// BlockTime and GenesisTime parameterize the time-derived block
	// counter driving the oracle rate limiter. GenesisTime is RFC3339;
	// empty means the Unix epoch.
	BlockTime   time.Duration `mapstructure:"block_time"`
	GenesisTime string        `mapstructure:"genesis_time"`
}

// Genesis parses GenesisTime, defaulting to the Unix epoch.
func (c Config) Genesis() (time.Time, error) {
	if c.GenesisTime == "" {
		return time.Unix(0, 0), nil
	}
	return time.Parse(time.RFC3339, c.GenesisTime)
}

// Default returns a configuration with development defaults. Addresses and
// API keys must still be supplied.
func Default() Config {
	return Config{
		ListenAddr: "127.0.0.1:8870",
		DBPath:     "data/royalty.db",
		LogLevel:   "info",
		BlockTime:  12 * time.Second,
	}
}

// Load reads and validates a configuration file (YAML, TOML or JSON).
func Load(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
