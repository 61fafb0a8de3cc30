package tracer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/1broseidon/textviz/internal/config"
	"github.com/1broseidon/textviz/internal/logging"
)

func TestInitTracerDisabled(t *testing.T) {
	shutdown := InitTracer(context.Background(), config.TracingConfig{}, logging.NewDefaultLogger())
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracerEnabled(t *testing.T) {
	cfg := config.TracingConfig{Enabled: true, Endpoint: "localhost:4318"}
	shutdown := InitTracer(context.Background(), cfg, logging.NewDefaultLogger())

	// Nothing was exported, so shutdown does not need a collector.
	assert.NoError(t, shutdown(context.Background()))
}
