// Package config loads server configuration from the environment and an
// optional config file under the user config directory.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/eshaffer321/ynab-mcp-go/internal/types"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds everything the server binary needs to start
type Config struct {
	// AccessToken is the YNAB personal access token
	AccessToken string

	// BaseURL overrides the default API base URL
	BaseURL string

	// Timeout for remote API calls
	Timeout time.Duration

	// DataDir is where local state files (preferred budget, category cache)
	// live
	DataDir string

	// LogLevel for stderr logging (debug, info, warn, error)
	LogLevel string

	// SentryDSN enables error tracking when set
	SentryDSN string
}

// PreferredBudgetFile is the path of the preferred-budget text file
func (c *Config) PreferredBudgetFile() string {
	return filepath.Join(c.DataDir, "preferred_budget_id")
}

// CategoryCacheFile is the path of the category cache JSON file
func (c *Config) CategoryCacheFile() string {
	return filepath.Join(c.DataDir, "category_cache.json")
}

// Load reads configuration. Environment variables use the YNAB_ prefix
// (YNAB_API_KEY, YNAB_BASE_URL, ...); a config.yaml under
// <user config dir>/ynab-mcp may supply the same keys. The API key is
// required.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ynab")
	v.AutomaticEnv()

	userDir, err := os.UserConfigDir()
	if err != nil {
		userDir = "."
	}
	appDir := filepath.Join(userDir, "ynab-mcp")

	v.SetDefault("base_url", types.DefaultBaseURL)
	v.SetDefault("timeout", types.DefaultTimeout)
	v.SetDefault("data_dir", appDir)
	v.SetDefault("log_level", "info")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(appDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	cfg := &Config{
		AccessToken: v.GetString("api_key"),
		BaseURL:     v.GetString("base_url"),
		Timeout:     v.GetDuration("timeout"),
		DataDir:     v.GetString("data_dir"),
		LogLevel:    v.GetString("log_level"),
		SentryDSN:   v.GetString("sentry_dsn"),
	}

	if cfg.AccessToken == "" {
		return nil, errors.Wrap(types.ErrMissingToken, "YNAB_API_KEY not set")
	}

	return cfg, nil
}
