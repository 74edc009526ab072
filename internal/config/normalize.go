package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRecognition()
	if err := c.normalizeDirectory(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.TempDir, err = expandPath(strings.TrimSpace(c.Paths.TempDir)); err != nil {
		return fmt.Errorf("paths.temp_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	if c.Paths.APIToken == "" {
		if value, ok := os.LookupEnv(apiTokenEnv); ok {
			c.Paths.APIToken = strings.TrimSpace(value)
		}
	}
	return nil
}

func (c *Config) normalizeRecognition() {
	c.Recognition.APIToken = strings.TrimSpace(c.Recognition.APIToken)
	if c.Recognition.APIToken == "" {
		if value, ok := os.LookupEnv(recognitionTokenEnv); ok {
			c.Recognition.APIToken = strings.TrimSpace(value)
		}
	}
	c.Recognition.BaseURL = strings.TrimSpace(c.Recognition.BaseURL)
	if c.Recognition.BaseURL == "" {
		c.Recognition.BaseURL = defaultRecognitionBaseURL
	}
}

func (c *Config) normalizeDirectory() error {
	path := strings.TrimSpace(c.Directory.Path)
	if path == "" {
		c.Directory.Path = filepath.Join(c.Paths.StateDir, defaultDirectoryFileName)
		return nil
	}
	expanded, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("directory.path: %w", err)
	}
	c.Directory.Path = expanded
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
