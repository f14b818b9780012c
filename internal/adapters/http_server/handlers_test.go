package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	server "github.com/tabletalk-hackathon/tabletalk/internal/adapters/http_server"
	"github.com/tabletalk-hackathon/tabletalk/internal/app"
	"github.com/tabletalk-hackathon/tabletalk/internal/domain"
)

type nopSink struct{}

func (nopSink) Emit(domain.EventCategory, string, ...any) {}

type constRand struct{ v float64 }

func (r constRand) Float64() float64 { return r.v }
func (r constRand) Intn(n int) int   { return 0 }

type stubSource struct{ places []domain.Candidate }

func (s stubSource) FindNearby(ctx context.Context, lat, lon float64, radiusM int, category string) ([]domain.Candidate, error) {
	if category != "restaurant" {
		return nil, nil
	}
	return s.places, nil
}

type stubBackend struct{ created int }

func (b *stubBackend) CreateCall(ctx context.Context, req domain.CallRequest) (string, error) {
	b.created++
	return "call-1", nil
}

func (b *stubBackend) GetCallStatus(ctx context.Context, callID string) (domain.CallStatusRecord, error) {
	return domain.CallStatusRecord{Status: domain.StatusCompleted, DurationSec: 20}, nil
}

// newTestServer wires the full handler stack over in-process stubs. draw
// controls every availability decision: 0 books the first call, 0.99 books
// nothing.
func newTestServer(t *testing.T, draw float64) *httptest.Server {
	t.Helper()
	places := []domain.Candidate{
		{ID: 1, Name: "Trattoria del Ponte", Phone: "+31201111111", Cuisine: "italian", PriceTier: domain.PriceMid, Rating: 4.5, Lat: 52.3614, Lon: 4.9181},
		{ID: 2, Name: "Sakura House", Phone: "+31202222222", Cuisine: "japanese", PriceTier: domain.PriceHigh, Rating: 4.7, Lat: 52.3600, Lon: 4.9150},
	}
	discovery := app.NewDiscoveryService(stubSource{places: places}, nil, nopSink{}, zerolog.Nop(), time.Minute, 2, nil)
	orch := app.NewOrchestrator(&stubBackend{}, nopSink{}, constRand{draw}, app.OrchestratorConfig{
		PollInterval:  time.Millisecond,
		PollTimeout:   50 * time.Millisecond,
		FallbackDelay: time.Millisecond,
		FromNumber:    "+31200000000",
	}, zerolog.Nop())

	srv := server.New()
	srv.MountHandlers(&server.Handlers{
		Discovery:      discovery,
		Ranker:         app.NewRanker(nopSink{}),
		Orch:           orch,
		DefaultRadiusM: 500,
		DefaultLimit:   3,
	})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, 0)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListRestaurants(t *testing.T) {
	ts := newTestServer(t, 0)

	resp, err := http.Get(ts.URL + "/v1/restaurants?lat=52.3613333&lon=4.9180833")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 2)
	assert.Equal(t, "Trattoria del Ponte", out[0]["name"])
	assert.Equal(t, "mid", out[0]["price_tier"])
	assert.NotNil(t, out[0]["distance_km"])
}

func TestListRestaurants_BadParams(t *testing.T) {
	ts := newTestServer(t, 0)

	for _, q := range []string{"", "?lat=abc&lon=4.9", "?lat=52.3&lon=4.9&radius=0", "?lat=52.3&lon=4.9&radius=99999"} {
		resp, err := http.Get(ts.URL + "/v1/restaurants" + q)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
		assert.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"), q)
		resp.Body.Close()
	}
}

const bookingBody = `{
  "lat": 52.3613333, "lon": 4.9180833,
  "profile": {
    "first_name": "Alex", "last_name": "Visser",
    "cuisines": ["italian"], "price_tier": "mid",
    "dietary": ["vegetarian"], "ambiance": "casual"
  }
}`

func TestCreateBooking_Success(t *testing.T) {
	ts := newTestServer(t, 0) // every draw succeeds

	resp, err := http.Post(ts.URL+"/v1/bookings", "application/json", strings.NewReader(bookingBody))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out struct {
		Booked     bool   `json:"booked"`
		Reference  string `json:"reference"`
		Restaurant *struct {
			Name string `json:"name"`
		} `json:"restaurant"`
		BookingTime  string `json:"booking_time"`
		PartySize    int    `json:"party_size"`
		Confirmation string `json:"confirmation"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Booked)
	assert.Regexp(t, `^TT\d{6}[A-Z0-9]{3}$`, out.Reference)
	require.NotNil(t, out.Restaurant)
	assert.Equal(t, "Trattoria del Ponte", out.Restaurant.Name, "the best-ranked candidate is booked first")
	assert.Equal(t, "19:00", out.BookingTime)
	assert.Equal(t, 2, out.PartySize)
	assert.Contains(t, out.Confirmation, out.Reference)
}

func TestCreateBooking_Exhaustion(t *testing.T) {
	ts := newTestServer(t, 0.99) // every draw declines

	resp, err := http.Post(ts.URL+"/v1/bookings", "application/json", strings.NewReader(bookingBody))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Booked bool   `json:"booked"`
		Reason string `json:"reason"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.Booked)
	assert.Equal(t, "no availability", out.Reason)
}

func TestCreateBooking_Validation(t *testing.T) {
	ts := newTestServer(t, 0)

	cases := map[string]string{
		"not json":        `{`,
		"missing loc":     `{"profile":{"first_name":"A","last_name":"B"}}`,
		"missing names":   `{"lat":52.36,"lon":4.91,"profile":{"first_name":"A"}}`,
		"empty last name": `{"lat":52.36,"lon":4.91,"profile":{"first_name":"A","last_name":""}}`,
	}
	for name, body := range cases {
		resp, err := http.Post(ts.URL+"/v1/bookings", "application/json", strings.NewReader(body))
		require.NoError(t, err, name)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, name)
		resp.Body.Close()
	}
}
