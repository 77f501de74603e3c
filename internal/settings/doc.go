// Package settings exposes application settings as a flat, case-insensitive
// key-value Source. Settings are read once from a JSON, YAML, or TOML file and
// optionally overlaid with prefixed environment variables.
package settings
