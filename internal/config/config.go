// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the session lives in the keyring.
//
// Values are layered: defaults, then config.json, then a .env file in the
// working directory, then PETWAY_* environment variables. Command-line flags
// are applied on top by the caller before Validate.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"petway/cli/internal/xdg"
)

// DefaultAPIURL is the hosted PetWay backend.
const DefaultAPIURL = "https://petway-backend.onrender.com"

// Config holds non-sensitive CLI settings.
type Config struct {
	APIURL         string        `json:"api_url" env:"PETWAY_API_URL" validate:"url"`
	LogLevel       string        `json:"log_level" env:"PETWAY_LOG_LEVEL" validate:"loglevel"`
	KeyringBackend string        `json:"keyring_backend" env:"PETWAY_KEYRING_BACKEND" validate:"keyringbackend"`
	KeyringDir     string        `json:"keyring_dir,omitempty" env:"PETWAY_KEYRING_DIR"`
	NearRadius     int           `json:"near_radius" env:"PETWAY_NEAR_RADIUS" validate:"gte=0"`
	RequestTimeout time.Duration `json:"request_timeout" env:"PETWAY_REQUEST_TIMEOUT" validate:"gte=0"`

	// KeyringPassword unlocks the file keyring. Never written to disk.
	KeyringPassword string `json:"-" env:"PETWAY_KEYRING_PASSWORD"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		APIURL:         DefaultAPIURL,
		LogLevel:       "warn",
		KeyringBackend: "auto",
		NearRadius:     5000,
	}
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; a missing file leaves the defaults in place.
// The result is not validated yet.
func Load() (Config, error) {
	c := Defaults()
	p, err := path()
	if err != nil {
		return c, err
	}
	if err := loadFile(p, &c); err != nil {
		return c, err
	}
	// A missing .env is the normal case.
	_ = godotenv.Load()

	var fromEnv Config
	if err := env.Parse(&fromEnv); err != nil {
		return c, fmt.Errorf("read environment: %w", err)
	}
	merge(&c, fromEnv)
	return c, nil
}

// LoadFile returns the defaults overlaid with config.json only, ignoring the
// environment. Used when editing the file.
func LoadFile() (Config, error) {
	c := Defaults()
	p, err := path()
	if err != nil {
		return c, err
	}
	return c, loadFile(p, &c)
}

func loadFile(p string, c *Config) error {
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", p, err)
	}
	return nil
}

// merge copies every non-zero field of src over dst.
func merge(dst *Config, src Config) {
	if src.APIURL != "" {
		dst.APIURL = src.APIURL
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.KeyringBackend != "" {
		dst.KeyringBackend = src.KeyringBackend
	}
	if src.KeyringDir != "" {
		dst.KeyringDir = src.KeyringDir
	}
	if src.NearRadius != 0 {
		dst.NearRadius = src.NearRadius
	}
	if src.RequestTimeout != 0 {
		dst.RequestTimeout = src.RequestTimeout
	}
	if src.KeyringPassword != "" {
		dst.KeyringPassword = src.KeyringPassword
	}
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

func validateKeyringBackend(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "auto", "file", "memory":
		return true
	}
	return false
}

// Validate checks the merged settings.
func (c Config) Validate() error {
	v := validator.New()
	if err := v.RegisterValidation("loglevel", validateLogLevel); err != nil {
		return err
	}
	if err := v.RegisterValidation("keyringbackend", validateKeyringBackend); err != nil {
		return err
	}
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}
