package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the front end reads,
// e.g. BLOGFRONT_ADDR or BLOGFRONT_DEFAULT_BASE_URL.
const EnvPrefix = "BLOGFRONT"

// Config holds the server settings.
type Config struct {
	Addr           string
	DataDir        string
	DefaultBaseURL string
	RequestTimeout time.Duration
	CookieSecure   bool
}

// Options say where configuration is read from. Zero values use ".env" and
// an optional blogfront.{yaml,json,toml} in the working directory.
type Options struct {
	EnvFile    string
	ConfigFile string
}

// Load reads the configuration. Environment variables override the config
// file, which overrides the defaults. A missing .env or config file is not
// an error.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("data_dir", "data/badger")
	v.SetDefault("default_base_url", "")
	v.SetDefault("request_timeout", "10s")
	v.SetDefault("cookie_secure", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("blogfront")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{
		Addr:           v.GetString("addr"),
		DataDir:        v.GetString("data_dir"),
		DefaultBaseURL: strings.TrimRight(strings.TrimSpace(v.GetString("default_base_url")), "/"),
		RequestTimeout: v.GetDuration("request_timeout"),
		CookieSecure:   v.GetBool("cookie_secure"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.DataDir == "" {
		return errors.New("data_dir must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}
