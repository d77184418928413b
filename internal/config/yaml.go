package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// LoadYAMLConfig load config from filename in YAML format
func LoadYAMLConfig(filename string, cfg interface{}) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("ReadFile: %w", err)
	}
	return yaml.Unmarshal(data, cfg)
}

// InitConfig returns the defaults overlaid with configPath, an empty path keeps the defaults
func InitConfig(configPath string) (*Config, error) {
	conf := DefaultConfig()
	if configPath == "" {
		return conf, nil
	}

	if err := LoadYAMLConfig(configPath, conf); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", configPath, err)
	}
	return conf, nil
}
