// Package config handles configuration management for setup.
// It layers the embedded defaults, an optional .dotsetup.toml at the
// repository root and DOTSETUP_ environment variables using koanf.
package config
