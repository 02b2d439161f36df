package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInit_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := Init(context.Background(), zerolog.Nop(), "", "clientlens-api", "test")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

// collector records the paths of OTLP export requests it receives.
type collector struct {
	mu    sync.Mutex
	paths []string
}

func (c *collector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	c.paths = append(c.paths, r.URL.Path)
	c.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (c *collector) received() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.paths...)
}

func TestInit_ExportsSpans(t *testing.T) {
	tests := map[string]func(srvURL string) string{
		"url":            func(u string) string { return u },
		"url with slash": func(u string) string { return u + "/" },
		"host and port":  func(u string) string { return strings.TrimPrefix(u, "http://") },
	}

	for name, endpoint := range tests {
		t.Run(name, func(t *testing.T) {
			prev := otel.GetTracerProvider()
			t.Cleanup(func() { otel.SetTracerProvider(prev) })

			col := &collector{}
			srv := httptest.NewServer(col)
			defer srv.Close()

			ctx := context.Background()
			shutdown, err := Init(ctx, zerolog.Nop(), endpoint(srv.URL), "clientlens-api", "test")
			require.NoError(t, err)

			_, span := otel.Tracer("test").Start(ctx, "assistant.Answer")
			span.End()
			require.NoError(t, shutdown(ctx))

			paths := col.received()
			require.NotEmpty(t, paths, "collector received no spans")
			assert.Equal(t, "/v1/traces", paths[0])
		})
	}
}

func TestExporterOptions_Rejects(t *testing.T) {
	for _, endpoint := range []string{"ftp://collector:4318", "http://", "http://bad host:4318"} {
		_, err := exporterOptions(endpoint)
		assert.Error(t, err, endpoint)
	}
}

func TestExporterOptions_KeepsBasePath(t *testing.T) {
	for _, endpoint := range []string{"http://collector:4318/otlp", "http://collector:4318/otlp/v1/traces"} {
		opts, err := exporterOptions(endpoint)
		require.NoError(t, err, endpoint)
		assert.Len(t, opts, 1)
	}
}
