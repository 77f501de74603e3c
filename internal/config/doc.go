// Package config loads runtime configuration from multiple sources (YAML files,
// environment variables, CLI flags) with precedence: CLI flags > YAML config >
// Environment variables > Defaults. It locates the application settings file
// and tunes the HTTP server; the settings themselves live in package settings.
package config
