package engine

import (
	"fmt"

	"dealdesk/internal/config"
	"dealdesk/internal/port"
)

// ProviderFactory is a function that creates an AnalysisEngine from an engine config.
type ProviderFactory func(cfg *config.EngineConfig) (port.AnalysisEngine, error)

// registry of engine provider factories, populated explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an engine provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// New creates an AnalysisEngine from the configured provider using the
// registered factory.
func New(cfg *config.EngineConfig) (port.AnalysisEngine, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown engine provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
