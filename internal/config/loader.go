package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"splashd/internal/common/fsutil"
	"splashd/internal/common/validate"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by WithDefaults.
type Config struct {
	Addr     string `json:"addr" yaml:"addr" toml:"addr" env:"SPLASHD_ADDR" validate:"omitempty,hostname_port"`
	GamesDir string `json:"games_dir" yaml:"games_dir" toml:"games_dir" env:"SPLASHD_GAMES_DIR"`

	// Splash rendering
	Prefix            string `json:"prefix" yaml:"prefix" toml:"prefix" env:"SPLASHD_PREFIX"`
	VersionLabel      string `json:"version_label" yaml:"version_label" toml:"version_label" env:"SPLASHD_VERSION_LABEL"`
	ConsentDomain     bool   `json:"consent_domain" yaml:"consent_domain" toml:"consent_domain" env:"SPLASHD_CONSENT_DOMAIN"`
	SplashContainerID string `json:"splash_container_id" yaml:"splash_container_id" toml:"splash_container_id" env:"SPLASHD_SPLASH_CONTAINER_ID"`
	DefaultLang       string `json:"default_lang" yaml:"default_lang" toml:"default_lang" env:"SPLASHD_DEFAULT_LANG"`

	// Dispatcher
	FailurePolicy string `json:"failure_policy" yaml:"failure_policy" toml:"failure_policy" env:"SPLASHD_FAILURE_POLICY" validate:"omitempty,oneof=fail-fast isolate"`

	// Logging
	LogLevel  string `json:"log_level" yaml:"log_level" toml:"log_level" env:"SPLASHD_LOG_LEVEL" validate:"omitempty,oneof=debug info warn error off"`
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format" env:"SPLASHD_LOG_FORMAT" validate:"omitempty,oneof=json text"`

	// HTTP
	CORSOrigins  []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins" env:"SPLASHD_CORS_ORIGINS" envSeparator:","`
	MaxBodyBytes int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" env:"SPLASHD_MAX_BODY_BYTES" validate:"min=0"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:          ":8080",
		GamesDir:      "./games",
		Prefix:        "idhb-",
		DefaultLang:   "en",
		FailurePolicy: "fail-fast",
		LogLevel:      "info",
		LogFormat:     "json",
		MaxBodyBytes:  1 << 20,
	}
}

// WithDefaults fills unspecified fields from Default.
func (c Config) WithDefaults() Config {
	d := Default()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.GamesDir == "" {
		c.GamesDir = d.GamesDir
	}
	if c.Prefix == "" {
		c.Prefix = d.Prefix
	}
	if c.DefaultLang == "" {
		c.DefaultLang = d.DefaultLang
	}
	if c.FailurePolicy == "" {
		c.FailurePolicy = d.FailurePolicy
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = d.LogFormat
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = d.MaxBodyBytes
	}
	return c
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
