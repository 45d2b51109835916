// Package config handles configuration management for nestbox.
// It supports loading configuration from multiple sources including
// the embedded defaults, user and project TOML or YAML files, environment
// variables, and command-line flags.
package config
