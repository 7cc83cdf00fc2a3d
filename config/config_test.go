package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := Default()
	cfg.Admin = "0x00000000000000000000000000000000000000a1"
	cfg.ServiceAccounts = []string{"0x00000000000000000000000000000000000000b1"}
	cfg.APIKeys = map[string]string{
		"secret-key": "0x00000000000000000000000000000000000000b1",
	}
	return cfg
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, ValidateConfig(validConfig()))
}

func TestValidateConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"empty db path", func(c *Config) { c.DBPath = "" }, ErrEmptyDBPath},
		{"bad listen addr", func(c *Config) { c.ListenAddr = "no-port" }, ErrInvalidListenAddr},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, ErrInvalidLogLevel},
		{"zero block time", func(c *Config) { c.BlockTime = 0 }, ErrInvalidBlockTime},
		{"bad admin", func(c *Config) { c.Admin = "nope" }, ErrInvalidActorAddress},
		{"zero admin", func(c *Config) { c.Admin = "0x0000000000000000000000000000000000000000" }, ErrInvalidActorAddress},
		{"bad service account", func(c *Config) { c.ServiceAccounts = []string{"xyz"} }, ErrInvalidActorAddress},
		{"bad api key actor", func(c *Config) { c.APIKeys = map[string]string{"k": "xyz"} }, ErrInvalidActorAddress},
		{"empty api key", func(c *Config) { c.APIKeys = map[string]string{"": "0x00000000000000000000000000000000000000b1"} }, ErrEmptyAPIKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, ValidateConfig(cfg), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "royaltyd.yaml")
	yaml := `
listen_addr: "127.0.0.1:9000"
db_path: "/tmp/test-royalty.db"
log_level: "debug"
block_time: "6s"
admin: "0x00000000000000000000000000000000000000a1"
service_accounts:
  - "0x00000000000000000000000000000000000000b1"
api_keys:
  svc-key: "0x00000000000000000000000000000000000000b1"
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
	assert.Equal(t, 6*time.Second, cfg.BlockTime)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "0x00000000000000000000000000000000000000b1", cfg.APIKeys["svc-key"])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "royaltyd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`db_path: ""`), 0600))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrEmptyDBPath)
}
