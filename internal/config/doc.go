// Package config loads and validates the application configuration from
// environment variables and an optional config file.
package config
