package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"travelapi/internal/config"
)

func TestSampler(t *testing.T) {
	tests := []struct {
		name, arg, want string
	}{
		{"always_on", "", "AlwaysOnSampler"},
		{"always_off", "", "AlwaysOffSampler"},
		{"traceidratio", "0.5", "TraceIDRatioBased{0.5}"},
		{"traceidratio", "junk", "AlwaysOnSampler"},
		{"parentbased_always_off", "", "ParentBased{root:AlwaysOffSampler,"},
		{"parentbased_traceidratio", "0.25", "ParentBased{root:TraceIDRatioBased{0.25},"},
		{"", "", "ParentBased{root:AlwaysOnSampler,"},
	}
	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.arg, func(t *testing.T) {
			assert.Contains(t, Sampler(tt.name, tt.arg).Description(), tt.want)
		})
	}
}

func TestInit_Disabled(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	shutdown, err := Init(context.Background(), config.TracingConfig{Disabled: true}, zap.New(core))
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	entries := logs.FilterMessage("tracing_configured").All()
	require.Len(t, entries, 1)
	assert.Equal(t, false, entries[0].ContextMap()["tracing_enabled"])
}

func TestInit_UnsupportedProtocol(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	shutdown, err := Init(context.Background(), config.TracingConfig{
		ServiceName: "travelapi-test",
		Protocol:    "carrier-pigeon",
	}, zap.New(core))
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.Equal(t, 1, logs.FilterMessage("tracing_init_failed").Len())
}
