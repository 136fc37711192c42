package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

func TestSetup_PropagatesTraceAcrossHTTP(t *testing.T) {
	shutdown := Setup("test")
	defer func() { require.NoError(t, shutdown(context.Background())) }()

	traces := make(chan trace.TraceID, 1)
	srv := httptest.NewServer(otelhttp.NewHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traces <- trace.SpanContextFromContext(r.Context()).TraceID()
	}), "server"))
	defer srv.Close()

	client := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	ctx, span := otelTracer().Start(context.Background(), "client")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	span.End()

	serverTrace := <-traces
	assert.True(t, serverTrace.IsValid())
	assert.Equal(t, span.SpanContext().TraceID(), serverTrace)
}

func otelTracer() trace.Tracer {
	return otel.Tracer("tracing_test")
}
