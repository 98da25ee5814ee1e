package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	apperrors "github.com/deathlesz/md5/src/internal/errors"
	"github.com/deathlesz/md5/src/internal/log"
)

// LoadConfig reads configPath on top of DefaultConfig, so keys missing from
// the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	configFile := filepath.Clean(configPath)

	if !filepath.IsAbs(configFile) {
		if path, err := filepath.Abs(configFile); err != nil {
			return nil, apperrors.NewConfigError("failed to get absolute path", err)
		} else {
			configFile = path
		}
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, apperrors.NewConfigError(fmt.Sprintf("configuration file not found: %s", configFile), nil)
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to read config file", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(content, config); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			log.Errorf("%s", derr.String())
			row, col := derr.Position()
			log.Errorf("Error at line %d, column %d", row, col)
		}
		return nil, apperrors.NewConfigError("failed to parse config file", err)
	}

	config._absConfigFilePath = configFile

	log.Debugf("Configuration file path: %s", configFile)

	return config, nil
}

// LoadConfigOrDefault loads configPath, or returns DefaultConfig when the path is empty.
func LoadConfigOrDefault(configPath string) (*Config, error) {
	if configPath == "" {
		log.Debugf("No configuration file given, using defaults")
		return DefaultConfig(), nil
	}
	return LoadConfig(configPath)
}

// LoadAndValidate loads the configuration and validates it.
func LoadAndValidate(configPath string) (*Config, error) {
	cfg, err := LoadConfigOrDefault(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateConfig(); err != nil {
		return nil, apperrors.NewConfigError("configuration validation failed", err)
	}
	return cfg, nil
}

func (c *Config) SerializeConfig() (*bytes.Buffer, error) {
	buf := bytes.Buffer{}
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return &buf, nil
}

// WriteConfig writes the configuration to path, creating parent directories.
func (c *Config) WriteConfig(path string) error {
	config, err := c.SerializeConfig()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewConfigError("failed to create parent directory", err)
	}
	if err := os.WriteFile(path, config.Bytes(), 0644); err != nil {
		return apperrors.NewConfigError("failed to write config file", err)
	}
	return nil
}
