package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tabletalk-hackathon/tabletalk/internal/domain"
)

func TestDistanceKm_SamePointIsZero(t *testing.T) {
	assert.Equal(t, 0.0, domain.DistanceKm(52.3613333, 4.9180833, 52.3613333, 4.9180833))
}

func TestDistanceKm_KnownCityPair(t *testing.T) {
	// Amsterdam to Paris, great-circle distance ~430 km.
	got := domain.DistanceKm(52.3676, 4.9041, 48.8566, 2.3522)
	assert.InDelta(t, 430, got, 5)
}

func TestDistanceKm_ShortHop(t *testing.T) {
	got := domain.DistanceKm(52.3613, 4.9181, 52.3700, 4.9300)
	assert.InDelta(t, 1.26, got, 0.03)
}

func TestDistanceKm_Symmetric(t *testing.T) {
	a := domain.DistanceKm(52.36, 4.91, 48.85, 2.35)
	b := domain.DistanceKm(48.85, 2.35, 52.36, 4.91)
	assert.InDelta(t, a, b, 1e-9)
	assert.Greater(t, a, 0.0)
}
