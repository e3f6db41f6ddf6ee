package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 8080},
		Catalog: CatalogConfig{Paths: []string{"data/*.csv"}},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"invalid port", func(c *Config) { c.HTTP.Port = 0 }},
		{"negative rate limit", func(c *Config) { c.HTTP.RateLimitPerMinute = -1 }},
		{"no catalog paths", func(c *Config) { c.Catalog.Paths = nil }},
		{"bad format", func(c *Config) { c.Catalog.Format = "xlsx" }},
		{"bad driver", func(c *Config) { c.EncoderState.Driver = "memcached" }},
		{"valkey without addrs", func(c *Config) { c.EncoderState.Driver = DriverValkey }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestValidate_RedisWithAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.EncoderState.Driver = DriverRedis
	cfg.EncoderState.Addrs = []string{"localhost:6379"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.EncoderState.Enabled() {
		t.Error("expected store to be enabled")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Catalog.Format != "auto" {
		t.Errorf("expected Format=auto, got %q", cfg.Catalog.Format)
	}
	if cfg.Recommend.Neighbors != 5 {
		t.Errorf("expected Neighbors=5, got %d", cfg.Recommend.Neighbors)
	}
	if cfg.Recommend.PlaceholderColor != "Default" {
		t.Errorf("expected PlaceholderColor=Default, got %q", cfg.Recommend.PlaceholderColor)
	}
	if cfg.EncoderState.Driver != DriverNone || cfg.EncoderState.Enabled() {
		t.Errorf("expected store disabled by default, got %q", cfg.EncoderState.Driver)
	}
	if cfg.EncoderState.Key != "default" {
		t.Errorf("expected Key=default, got %q", cfg.EncoderState.Key)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Recommend: RecommendConfig{Neighbors: 12, PlaceholderColor: "Reds"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Recommend.Neighbors != 12 {
		t.Errorf("expected Neighbors=12, got %d", cfg.Recommend.Neighbors)
	}
	if cfg.Recommend.PlaceholderColor != "Reds" {
		t.Errorf("expected PlaceholderColor=Reds, got %q", cfg.Recommend.PlaceholderColor)
	}
}

func TestLoadFile_ExpandsEnv(t *testing.T) {
	t.Setenv("WARDROBE_TEST_PORT", "9090")
	path := filepath.Join(t.TempDir(), "test.yaml")
	yaml := `
http:
  port: ${WARDROBE_TEST_PORT}
catalog:
  paths: ["${WARDROBE_TEST_CATALOG:-data/catalog.csv}"]
recommend:
  neighbors: 7
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.HTTP.Port)
	}
	if len(cfg.Catalog.Paths) != 1 || cfg.Catalog.Paths[0] != "data/catalog.csv" {
		t.Errorf("default not applied: %v", cfg.Catalog.Paths)
	}
	if cfg.Recommend.Neighbors != 7 {
		t.Errorf("expected neighbors 7, got %d", cfg.Recommend.Neighbors)
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load(local): %v", err)
	}
	if cfg.Recommend.Neighbors <= 0 {
		t.Errorf("expected neighbors > 0, got %d", cfg.Recommend.Neighbors)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
