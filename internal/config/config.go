package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration for the client.
type Config struct {
	AppName        string
	AppEnv         string
	BaseURL        string
	RequestTimeout time.Duration
	StateDir       string
	PageSize       int
}

// Load reads configuration from environment variables and an optional
// .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CLASSBOARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Classboard")
	v.SetDefault("app.env", "development")
	v.SetDefault("api.base_url", "http://localhost:8000/api/v1")
	v.SetDefault("request.timeout", "30s")
	v.SetDefault("page.size", 6)

	timeoutString := v.GetString("request.timeout")
	timeout, err := time.ParseDuration(timeoutString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid request timeout: %w", err)
	}

	cfg := Config{
		AppName:        v.GetString("app.name"),
		AppEnv:         v.GetString("app.env"),
		BaseURL:        v.GetString("api.base_url"),
		RequestTimeout: timeout,
		StateDir:       v.GetString("state.dir"),
		PageSize:       v.GetInt("page.size"),
	}

	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Config{}, fmt.Errorf("invalid api base url %q", cfg.BaseURL)
	}

	if cfg.PageSize <= 0 {
		cfg.PageSize = 6
	}

	if cfg.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		cfg.StateDir = filepath.Join(home, ".classboard")
	}

	return cfg, nil
}
