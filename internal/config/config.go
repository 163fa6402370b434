// Package config provides configuration management for Quadra.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/tidwall/sjson"

	"github.com/quadra/translator/internal/language"
	"github.com/quadra/translator/internal/translate"
)

const (
	appName        = "quadra"
	configFileName = "quadra.json"
)

// Config is the top-level configuration structure.
type Config struct {
	// ServerURL is the base URL of the translation service.
	ServerURL string `json:"server_url,omitempty"`
	// DefaultLanguage is the target language preselected on startup.
	// It follows the user's last picker choice across runs.
	DefaultLanguage language.Code `json:"default_language,omitempty"`
	// DataDir overrides where history, clips and downloads are kept.
	DataDir string `json:"data_directory,omitempty"`
	Debug   bool   `json:"debug,omitempty"`
}

// GlobalConfigPath returns the path to the global configuration file.
func GlobalConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, configFileName)
}

// ResolvedDataDir returns the data directory, falling back to the
// XDG default when unset.
func (c *Config) ResolvedDataDir() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return filepath.Join(xdg.DataHome, appName)
}

// SetConfigField updates a single field in the config file using JSON
// path notation. Only the named field is rewritten; unknown keys in the
// file survive.
func (c *Config) SetConfigField(key string, value any) error {
	return setConfigField(GlobalConfigPath(), key, value)
}

func setConfigField(configPath, key string, value any) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			data = []byte("{}")
		} else {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	newData, err := sjson.Set(string(data), key, value)
	if err != nil {
		return fmt.Errorf("setting config field %q: %w", key, err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(newData), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// RememberLanguage persists the user's target language choice so the
// next run preselects it.
func (c *Config) RememberLanguage(code language.Code) error {
	c.DefaultLanguage = code
	return c.SetConfigField("default_language", string(code))
}

func applyDefaults(cfg *Config) {
	if cfg.ServerURL == "" {
		cfg.ServerURL = translate.DefaultBaseURL
	}
	if cfg.DefaultLanguage == "" || !language.Supported(cfg.DefaultLanguage) {
		cfg.DefaultLanguage = language.English
	}
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(xdg.DataHome, appName)
	}
}
