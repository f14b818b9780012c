package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	c := Load()
	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, 500, c.RadiusM)
	assert.Equal(t, 3, c.CandidateLimit)
	assert.Equal(t, 15*time.Minute, c.CacheTTL)
	assert.Equal(t, 2*time.Second, c.PollInterval)
	assert.Equal(t, 60*time.Second, c.PollTimeout)
	assert.Equal(t, "+31200000000", c.FromNumber)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DISCOVERY_RADIUS_M", "1200")
	t.Setenv("CALL_POLL_TIMEOUT_SECONDS", "30")
	t.Setenv("TELEPHONY_API_KEY", "secret")

	c := Load()
	assert.Equal(t, ":9090", c.HTTPAddr)
	assert.Equal(t, 1200, c.RadiusM)
	assert.Equal(t, 30*time.Second, c.PollTimeout)
	assert.Equal(t, "secret", c.TelephonyKey)
}

func TestLoad_BadIntFallsBackToDefault(t *testing.T) {
	t.Setenv("DISCOVERY_RADIUS_M", "lots")
	c := Load()
	assert.Equal(t, 500, c.RadiusM)
}
