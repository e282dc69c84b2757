// Package config loads runtime configuration for the craft calculator service
// from YAML files, environment variables and CLI flags with precedence:
// CLI flags > YAML config > Environment variables > Defaults.
package config
