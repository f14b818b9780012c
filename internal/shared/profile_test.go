package shared

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabletalk-hackathon/tabletalk/internal/domain"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadProfile(t *testing.T) {
	path := writeProfile(t, `
first_name = "Noor"
last_name = "Bakker"
cuisines = ["turkish", "italian"]
price_tier = "high"
dietary = ["vegan"]
ambiance = "lively"
`)
	p, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "Noor", p.FirstName)
	assert.Equal(t, "Bakker", p.LastName)
	assert.Equal(t, []string{"turkish", "italian"}, p.CuisinePreferences)
	assert.Equal(t, domain.PriceHigh, p.PriceTier)
	assert.Equal(t, []string{"vegan"}, p.DietaryRestrictions)
	assert.Equal(t, "lively", p.AmbiancePreference)
}

func TestLoadProfile_UnknownTierIsTolerated(t *testing.T) {
	path := writeProfile(t, `
first_name = "Noor"
last_name = "Bakker"
price_tier = "lavish"
`)
	p, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, domain.PriceUnknown, p.PriceTier)
}

func TestLoadProfile_RequiresNames(t *testing.T) {
	path := writeProfile(t, `first_name = "Noor"`)
	_, err := LoadProfile(path)
	assert.ErrorContains(t, err, "last_name")
}

func TestLoadProfile_MissingFile(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	assert.NotEmpty(t, p.FirstName)
	assert.NotEmpty(t, p.LastName)
	assert.NotEqual(t, domain.PriceUnknown, p.PriceTier)
}
