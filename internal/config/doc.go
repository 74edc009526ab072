// Package config loads, normalizes, and validates soundguard configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// AUDD_API_TOKEN. The Config type centralizes every knob the CLI and API server
// need: recognition service credentials, retry budget, policy thresholds, and
// the artist directory location.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
