// Package config loads the service configuration from config.yaml, an
// optional .env file and INSURECAST_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Http struct {
		Port           int           `yaml:"port"`
		Timeout        time.Duration `yaml:"timeout"`
		AllowedOrigins []string      `yaml:"allowed_origins"`
		MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	} `yaml:"http"`
	Log struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
		Compress   bool   `yaml:"compress"`
		Console    bool   `yaml:"console"`
	} `yaml:"log"`
	Model struct {
		Type  string `yaml:"type"`
		Path  string `yaml:"path"`
		Watch bool   `yaml:"watch"`
	} `yaml:"model"`
	Form struct {
		HeightUnit string `yaml:"height_unit"`
		Locale     string `yaml:"locale"`
	} `yaml:"form"`
	Cache struct {
		Size int `yaml:"size"`
	} `yaml:"cache"`
}

func Default() *Config {
	var c Config
	c.Http.Port = 8080
	c.Http.Timeout = 30 * time.Second
	c.Http.AllowedOrigins = []string{"*"}
	c.Http.MaxBodyBytes = 1 << 20
	c.Log.Level = "info"
	c.Log.MaxSizeMB = 100
	c.Log.MaxBackups = 3
	c.Log.MaxAgeDays = 28
	c.Log.Console = true
	c.Model.Type = "linear"
	c.Model.Path = "models/premium.json"
	c.Form.HeightUnit = "cm"
	c.Form.Locale = "en-US"
	c.Cache.Size = 1024
	return &c
}

// Load reads path over the defaults, then applies .env and environment
// overrides. A missing config file is not an error.
func Load(path string) (*Config, error) {
	config := Default()

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(config); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("INSURECAST_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid INSURECAST_PORT %q", v)
		}
		c.Http.Port = port
	}
	if v := os.Getenv("INSURECAST_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("INSURECAST_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("INSURECAST_MODEL_TYPE"); v != "" {
		c.Model.Type = v
	}
	if v := os.Getenv("INSURECAST_MODEL_PATH"); v != "" {
		c.Model.Path = v
	}
	if v := os.Getenv("INSURECAST_MODEL_WATCH"); v != "" {
		watch, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid INSURECAST_MODEL_WATCH %q", v)
		}
		c.Model.Watch = watch
	}
	if v := os.Getenv("INSURECAST_LOCALE"); v != "" {
		c.Form.Locale = v
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Http.Port <= 0 || c.Http.Port > 65535 {
		return fmt.Errorf("http.port %d out of range", c.Http.Port)
	}
	if c.Http.Timeout <= 0 {
		return errors.New("http.timeout must be positive")
	}
	if c.Model.Path == "" {
		return errors.New("model.path is required")
	}
	if c.Form.HeightUnit != "cm" && c.Form.HeightUnit != "m" {
		return fmt.Errorf("form.height_unit must be cm or m, got %q", c.Form.HeightUnit)
	}
	if _, err := language.Parse(c.Form.Locale); err != nil {
		return fmt.Errorf("form.locale %q: %w", c.Form.Locale, err)
	}
	if c.Cache.Size < 0 {
		return errors.New("cache.size must not be negative")
	}
	return nil
}
