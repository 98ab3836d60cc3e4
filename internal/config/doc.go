// Package config loads and validates application settings from defaults,
// an optional YAML file, a .env file and CARS_-prefixed environment variables.
package config
