package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/tabletalk-hackathon/tabletalk/internal/adapters/observability"
	"github.com/tabletalk-hackathon/tabletalk/internal/domain"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so counters are non-zero
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveExternal("telephony", "create_call", 201, 30*time.Millisecond)

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "tabletalk_http_requests_total")
	require.Contains(t, string(body), "tabletalk_external_requests_total")
}

func TestLogSinkCountsEvents(t *testing.T) {
	reg := observability.InitRegistry()
	sink := observability.NewLogSink(zerolog.Nop())

	sink.Emit(domain.EventCalling, "calling %s", "Trattoria del Ponte")
	sink.Emit(domain.EventError, "boom")

	mh := observability.MetricsHandler(reg)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `tabletalk_events_total{category="calling"}`)
	require.Contains(t, string(body), `tabletalk_events_total{category="error"}`)
}
