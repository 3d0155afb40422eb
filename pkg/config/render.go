package config

import (
	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/dotsetup/pkg/errors"
)

// Render serializes the effective configuration as TOML
func Render(cfg *Config) (string, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return string(data), nil
}
