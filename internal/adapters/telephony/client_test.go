package telephony

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabletalk-hackathon/tabletalk/internal/domain"
)

func TestNew_RequiresBaseAndKey(t *testing.T) {
	_, err := New("", "key", 5)
	assert.Error(t, err)
	_, err = New("https://calls.example", "", 5)
	assert.Error(t, err)
	c, err := New("https://calls.example/", "key", 5)
	require.NoError(t, err)
	assert.Equal(t, "https://calls.example", c.base)
}

func TestCreateCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/calls", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "+31201234567", body["to"])
		assert.Equal(t, "+31200000000", body["from"])
		assert.NotEmpty(t, body["script"])
		assert.Equal(t, true, body["hangup_after_message"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"call_id":"abc123","status":"queued"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, "secret", 100)
	require.NoError(t, err)

	id, err := c.CreateCall(context.Background(), domain.CallRequest{
		To:     "+31201234567",
		From:   "+31200000000",
		Script: "Hello, this is a booking request.",
	})
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)
}

func TestCreateCall_MissingCallIDIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"queued"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, "secret", 100)
	require.NoError(t, err)
	_, err = c.CreateCall(context.Background(), domain.CallRequest{To: "+3120", From: "+3121", Script: "x"})
	assert.ErrorContains(t, err, "no call_id")
}

func TestGetCallStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/calls/abc123", r.URL.Path)
		w.Write([]byte(`{"call_id":"abc123","status":"no_answer","duration":0,"reason":"ring timeout"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, "secret", 100)
	require.NoError(t, err)

	rec, err := c.GetCallStatus(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNoAnswer, rec.Status)
	assert.Equal(t, "ring timeout", rec.Reason)
	assert.True(t, rec.Status.IsTerminal())
}

func TestClient_ErrorStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/calls/denied":
			w.WriteHeader(http.StatusUnauthorized)
		case "/v1/calls/gone":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c, err := New(srv.URL, "secret", 100)
	require.NoError(t, err)

	_, err = c.GetCallStatus(context.Background(), "denied")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = c.GetCallStatus(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = c.GetCallStatus(context.Background(), "boom")
	assert.ErrorContains(t, err, "status 500")
}

func TestMapStatus(t *testing.T) {
	cases := map[string]domain.CallStatus{
		"queued":      domain.StatusQueued,
		"Ringing":     domain.StatusRinging,
		"in-progress": domain.StatusAnswered,
		"in_progress": domain.StatusAnswered,
		"completed":   domain.StatusCompleted,
		"no_answer":   domain.StatusNoAnswer,
		"no-answer":   domain.StatusNoAnswer,
		"busy":        domain.StatusBusy,
		"failed":      domain.StatusFailed,
	}
	for wire, want := range cases {
		assert.Equal(t, want, mapStatus(wire), wire)
	}
	// unknown statuses pass through and stay non-terminal
	odd := mapStatus("transferring")
	assert.Equal(t, domain.CallStatus("transferring"), odd)
	assert.False(t, odd.IsTerminal())
}
