package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads the global configuration file and fills in defaults. A
// missing file yields the defaults.
func Load() (*Config, error) {
	return LoadFromFile(GlobalConfigPath())
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	cfg := &Config{}
	if err := loadFile(path, cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, cfg)
}
