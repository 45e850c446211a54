// Package config handles loading and validating application configuration
// from environment variables, with sensible defaults for local development.
package config
