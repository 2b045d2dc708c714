//go:generate mockgen -source=settings.go -destination=settings_mock.go -package=settings
package settings

import (
	"fmt"

	"blogd/internal/app/errors"
	"blogd/internal/config"
)

// Settings is the static profile served at /config
type Settings struct {
	Name string `json:"name"`
	Age  uint8  `json:"age"`
}

// Provider exposes the settings loaded at startup
type Provider interface {
	Get() Settings
}

// provider holds an immutable copy of the settings
type provider struct {
	settings Settings
}

// NewProvider builds the provider once from the loaded configuration
func NewProvider(cfg *config.Config) (Provider, error) {
	if cfg.Age < 0 || cfg.Age > config.MaxAge {
		return nil, fmt.Errorf("%w: %w: %d", errors.ErrInvalidConfig, errors.ErrInvalidAge, cfg.Age)
	}

	return &provider{
		settings: Settings{
			Name: cfg.Name,
			Age:  uint8(cfg.Age),
		},
	}, nil
}

// Get returns a copy of the settings
func (p *provider) Get() Settings {
	return p.settings
}
