package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable. The recognition API token is
// not required here; commands that contact the service check for it.
func (c *Config) Validate() error {
	if err := c.validateRecognition(); err != nil {
		return err
	}
	if err := c.validatePolicy(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateRecognition() error {
	if c.Recognition.MaxAttempts <= 0 {
		return errors.New("recognition.max_attempts must be positive")
	}
	if c.Recognition.MaxAttempts > maxRecognitionAttemptsAllowed {
		return fmt.Errorf("recognition.max_attempts must be at most %d", maxRecognitionAttemptsAllowed)
	}
	if c.Recognition.RetryDelaySeconds < 0 || c.Recognition.RetryDelaySeconds > maxRecognitionRetryDelaySeconds {
		return fmt.Errorf("recognition.retry_delay_seconds must be between 0 and %d", maxRecognitionRetryDelaySeconds)
	}
	if c.Recognition.TimeoutSeconds <= 0 {
		return errors.New("recognition.timeout_seconds must be positive")
	}
	parsed, err := url.Parse(c.Recognition.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("recognition.base_url %q is not an absolute URL", c.Recognition.BaseURL)
	}
	return nil
}

func (c *Config) validatePolicy() error {
	if c.Policy.SimilarityThreshold < 0 || c.Policy.SimilarityThreshold > 1 {
		return errors.New("policy.similarity_threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

// RequireRecognitionToken reports a configuration error when no recognition
// API token is available.
func (c *Config) RequireRecognitionToken() error {
	if c.Recognition.APIToken != "" {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = "~/.config/soundguard/config.toml"
	}
	return fmt.Errorf("recognition.api_token is required. Set %s env var or edit %s (create with 'soundguard config init')", recognitionTokenEnv, defaultPath)
}
