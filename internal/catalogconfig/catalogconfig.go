// Package catalogconfig manages the user's catalog preferences in ~/.devcat/config.yaml.
package catalogconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/devcat-io/devcat/internal/catalogrepo"
	"github.com/devcat-io/devcat/internal/constants"
	"github.com/devcat-io/devcat/internal/versions"
)

// Config represents the CLI catalog configuration file at ~/.devcat/config.yaml.
type Config struct {
	DefaultCatalog    string `yaml:"defaultCatalog,omitempty"`
	MinCatalogVersion string `yaml:"minCatalogVersion,omitempty"`
}

// Path returns the location of the config file.
func Path() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, constants.ConfigDirName, constants.ConfigFileName), nil
}

// Load reads the config file. A missing file is an empty config.
func Load(logger *zerolog.Logger) (*Config, error) {
	configPath, err := Path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug().Msg("No catalog config found at " + configPath)
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse catalog config %s: %w", configPath, err)
	}

	return &cfg, nil
}

// Validate checks the values a user may have edited by hand.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DefaultCatalog) != "" {
		if _, err := catalogrepo.ParseLocator(c.DefaultCatalog); err != nil {
			return fmt.Errorf("defaultCatalog: %w", err)
		}
	}
	if strings.TrimSpace(c.MinCatalogVersion) != "" {
		if _, err := versions.ParseRelease(c.MinCatalogVersion); err != nil {
			return fmt.Errorf("minCatalogVersion: %w", err)
		}
	}
	return nil
}

// Save writes cfg to ~/.devcat/config.yaml, replacing the file atomically.
func Save(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	configPath, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	tmp := configPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmp, configPath); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Reset removes the config file, restoring the built-in defaults.
func Reset() error {
	configPath, err := Path()
	if err != nil {
		return err
	}
	if err := os.Remove(configPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove config: %w", err)
	}
	return nil
}
