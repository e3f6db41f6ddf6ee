package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Encoder state drivers.
const (
	DriverNone   = "none"
	DriverRedis  = "redis"
	DriverValkey = "valkey"
)

// Config holds the wardrobe service configuration.
type Config struct {
	HTTP         HTTPConfig         `yaml:"http"`
	Catalog      CatalogConfig      `yaml:"catalog"`
	Recommend    RecommendConfig    `yaml:"recommend"`
	EncoderState EncoderStateConfig `yaml:"encoder_state"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port               int `yaml:"port"`
	ReadTimeoutSec     int `yaml:"read_timeout_sec"`
	WriteTimeoutSec    int `yaml:"write_timeout_sec"`
	ShutdownSec        int `yaml:"shutdown_timeout_sec"`
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"` // 0 disables the limiter
}

// CatalogConfig points at the product catalog files.
type CatalogConfig struct {
	Paths  []string `yaml:"paths"`  // files or glob patterns
	Format string   `yaml:"format"` // auto, csv, parquet (default: auto)
}

// RecommendConfig holds nearest-neighbour settings.
type RecommendConfig struct {
	Neighbors        int    `yaml:"neighbors"`
	PlaceholderColor string `yaml:"placeholder_color"`
}

// EncoderStateConfig holds the optional store for fitted vocabularies.
type EncoderStateConfig struct {
	Driver           string   `yaml:"driver"` // none, redis, valkey (default: none)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	Key              string   `yaml:"key"`
	Pin              bool     `yaml:"pin"` // reuse the stored state even if the catalog changed
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// Enabled reports whether a store is configured.
func (e EncoderStateConfig) Enabled() bool { return e.Driver != DriverNone }

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Catalog.Format == "" {
		c.Catalog.Format = "auto"
	}
	if c.Recommend.Neighbors <= 0 {
		c.Recommend.Neighbors = 5
	}
	if c.Recommend.PlaceholderColor == "" {
		c.Recommend.PlaceholderColor = "Default"
	}
	if c.EncoderState.Driver == "" {
		c.EncoderState.Driver = DriverNone
	}
	if c.EncoderState.Key == "" {
		c.EncoderState.Key = "default"
	}
	if c.EncoderState.ReadinessTimeout <= 0 {
		c.EncoderState.ReadinessTimeout = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.HTTP.RateLimitPerMinute < 0 {
		return fmt.Errorf("http.rate_limit_per_minute must not be negative, got %d", c.HTTP.RateLimitPerMinute)
	}
	if len(c.Catalog.Paths) == 0 {
		return fmt.Errorf("catalog.paths is required")
	}
	switch c.Catalog.Format {
	case "auto", "csv", "parquet":
	default:
		return fmt.Errorf("catalog.format must be auto, csv or parquet, got %q", c.Catalog.Format)
	}
	switch c.EncoderState.Driver {
	case DriverNone:
	case DriverRedis, DriverValkey:
		if len(c.EncoderState.Addrs) == 0 {
			return fmt.Errorf("encoder_state.addrs is required for driver %q", c.EncoderState.Driver)
		}
	default:
		return fmt.Errorf("encoder_state.driver must be none, redis or valkey, got %q", c.EncoderState.Driver)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// Relative to this source file, for tests run from package dirs.
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b)))
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
