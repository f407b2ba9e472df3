package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealdesk/internal/config"
	"dealdesk/internal/engine"
	"dealdesk/internal/port"
	"dealdesk/mocks"
)

func TestNew_RegisteredProvider(t *testing.T) {
	engine.RegisterProvider("fake", func(cfg *config.EngineConfig) (port.AnalysisEngine, error) {
		return new(mocks.MockAnalysisEngine), nil
	})

	eng, err := engine.New(&config.EngineConfig{Provider: "fake"})
	require.NoError(t, err)
	assert.NotNil(t, eng)
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := engine.New(&config.EngineConfig{Provider: "nonexistent"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown engine provider")
}
