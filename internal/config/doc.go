// Package config loads and validates the captioner TOML configuration.
//
// Configuration is resolved from an explicit path, the CAPTIONER_CONFIG
// environment variable, ~/.config/captioner/config.toml, or a captioner.toml
// in the working directory, in that order. Missing files are not an error:
// Load falls back to built-in defaults so the tool works out of the box.
package config
