package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Http.Port != 8080 || config.Form.HeightUnit != "cm" || config.Model.Type != "linear" {
		t.Fatalf("unexpected defaults: %+v", config)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
http:
  port: 9090
  timeout: 5s
model:
  type: random_forest
  path: /srv/forest.json
  watch: true
form:
  height_unit: m
  locale: de-DE
cache:
  size: 0
`)
	config, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Http.Port != 9090 || config.Http.Timeout != 5*time.Second {
		t.Fatalf("http section not applied: %+v", config.Http)
	}
	if config.Model.Type != "random_forest" || !config.Model.Watch {
		t.Fatalf("model section not applied: %+v", config.Model)
	}
	if config.Form.HeightUnit != "m" || config.Form.Locale != "de-DE" {
		t.Fatalf("form section not applied: %+v", config.Form)
	}
	if config.Cache.Size != 0 {
		t.Fatalf("expected cache disabled, got %d", config.Cache.Size)
	}
	// untouched keys keep their defaults
	if config.Log.Level != "info" {
		t.Fatalf("expected default log level, got %q", config.Log.Level)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("INSURECAST_PORT", "7000")
	t.Setenv("INSURECAST_MODEL_PATH", "/tmp/m.json")
	t.Setenv("INSURECAST_MODEL_WATCH", "true")

	config, err := Load(writeConfig(t, "http:\n  port: 9090\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Http.Port != 7000 {
		t.Fatalf("expected env port 7000, got %d", config.Http.Port)
	}
	if config.Model.Path != "/tmp/m.json" || !config.Model.Watch {
		t.Fatalf("model env overrides not applied: %+v", config.Model)
	}

	t.Setenv("INSURECAST_PORT", "eighty")
	if _, err := Load(writeConfig(t, "")); err == nil {
		t.Fatal("expected error for non-numeric port")
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("INSURECAST_LOG_LEVEL=debug\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("INSURECAST_LOG_LEVEL") })

	config, err := Load("absent.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Log.Level != "debug" {
		t.Fatalf("expected level from .env, got %q", config.Log.Level)
	}
}

func TestLoadRejectsMalformedDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("BAD-KEY=1\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	_, err := Load("absent.yaml")
	if err == nil || !strings.Contains(err.Error(), ".env") {
		t.Fatalf("expected .env error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"port":        func(c *Config) { c.Http.Port = 0 },
		"timeout":     func(c *Config) { c.Http.Timeout = 0 },
		"model path":  func(c *Config) { c.Model.Path = "" },
		"height unit": func(c *Config) { c.Form.HeightUnit = "ft" },
		"locale":      func(c *Config) { c.Form.Locale = "not a locale!" },
		"cache":       func(c *Config) { c.Cache.Size = -1 },
	}
	for name, mutate := range cases {
		config := Default()
		mutate(config)
		if err := config.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}
