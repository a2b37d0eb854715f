package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_Disabled(t *testing.T) {
	p, shutdown, err := NewProvider(context.Background(), Config{Enabled: false}, "layerkit", "dev")

	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.Nil(t, p.TracerProvider)
	assert.Nil(t, p.MeterProvider)
	shutdown(context.Background())
}

func TestNewProvider_EnabledWithoutEndpoint(t *testing.T) {
	p, _, err := NewProvider(context.Background(), Config{Enabled: true, Traces: true}, "layerkit", "dev")

	require.NoError(t, err)
	assert.Nil(t, p.TracerProvider)
}

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		name         string
		cfg          Config
		wantHost     string
		wantPath     string
		wantInsecure bool
		wantAuth     bool
		wantErr      bool
	}{
		{
			name:         "plain http",
			cfg:          Config{Endpoint: "http://localhost:4318"},
			wantHost:     "localhost:4318",
			wantInsecure: true,
		},
		{
			name:     "https with path and token",
			cfg:      Config{Endpoint: "https://otel.example.com/otlp/", AuthToken: "dXNlcjpwYXNz"},
			wantHost: "otel.example.com",
			wantPath: "/otlp",
			wantAuth: true,
		},
		{
			name:    "missing host",
			cfg:     Config{Endpoint: "localhost"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep, err := parseEndpoint(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, ep.host)
			assert.Equal(t, tt.wantPath, ep.basePath)
			assert.Equal(t, tt.wantInsecure, ep.insecure)
			_, hasAuth := ep.headers["Authorization"]
			assert.Equal(t, tt.wantAuth, hasAuth)
		})
	}
}

func TestNewMetrics(t *testing.T) {
	m, err := NewMetrics()

	require.NoError(t, err)
	assert.NotNil(t, m.BuildTotal)
	assert.NotNil(t, m.BuildDuration)
	assert.NotNil(t, m.PackagesInstalled)
	assert.NotNil(t, m.ArchiveSize)
}
