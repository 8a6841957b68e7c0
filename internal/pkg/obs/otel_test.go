package obs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

func TestInitTracer_DisabledWithoutEndpoint(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := InitTracer(context.Background(), TracerConfig{ServiceName: "talently"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, before, otel.GetTracerProvider(), "global provider untouched")
}

func TestNewResource(t *testing.T) {
	res := NewResource(TracerConfig{ServiceName: "talently", Version: "1.2.0", Environment: "production"})

	attrs := map[attribute.Key]string{}
	for _, kv := range res.Attributes() {
		attrs[kv.Key] = kv.Value.AsString()
	}
	assert.Equal(t, "talently", attrs["service.name"])
	assert.Equal(t, "1.2.0", attrs["service.version"])
	assert.Equal(t, "production", attrs["deployment.environment"])
}
