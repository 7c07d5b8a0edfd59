package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the settings shared by every command. Each value comes from its
// flag when set, then its environment variable, then the flag default.
type Config struct {
	SecretKey   string
	APIURL      string
	Timeout     time.Duration
	LogLevel    string
	LogFormat   string
	FixturePath string
	Workers     int
}

// envBindings maps config keys (flag names) to environment variables.
var envBindings = map[string]string{
	"secret-key": "CLERK_SECRET_KEY",
	"api-url":    "CLERK_API_URL",
	"timeout":    "CLERK_TIMEOUT",
	"log-level":  "CLERKCLI_LOG_LEVEL",
	"log-format": "CLERKCLI_LOG_FORMAT",
	"fixture":    "CLERKCLI_FIXTURE",
	"workers":    "CLERKCLI_WORKERS",
}

func bindEnvVars(v *viper.Viper) error {
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("failed to bind env var %q: %w", env, err)
		}
	}
	return nil
}

func loadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		SecretKey:   strings.TrimSpace(v.GetString("secret-key")),
		APIURL:      strings.TrimSpace(v.GetString("api-url")),
		Timeout:     v.GetDuration("timeout"),
		LogLevel:    strings.ToLower(strings.TrimSpace(v.GetString("log-level"))),
		LogFormat:   strings.ToLower(strings.TrimSpace(v.GetString("log-format"))),
		FixturePath: strings.TrimSpace(v.GetString("fixture")),
		Workers:     v.GetInt("workers"),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks values that do not depend on the command being run.
func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("log-level must be 'debug', 'info', 'warn', or 'error'")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return errors.New("log-format must be 'text' or 'json'")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	return nil
}
