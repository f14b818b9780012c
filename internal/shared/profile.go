package shared

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/tabletalk-hackathon/tabletalk/internal/domain"
)

// profileFile is the on-disk TOML shape of a preference profile.
type profileFile struct {
	FirstName string   `toml:"first_name"`
	LastName  string   `toml:"last_name"`
	Cuisines  []string `toml:"cuisines"`
	PriceTier string   `toml:"price_tier"`
	Dietary   []string `toml:"dietary"`
	Ambiance  string   `toml:"ambiance"`
}

// LoadProfile reads a TOML preference profile. The caller identity
// (first/last name) is required; everything else may be empty.
func LoadProfile(path string) (domain.UserProfile, error) {
	var pf profileFile
	if _, err := toml.DecodeFile(path, &pf); err != nil {
		return domain.UserProfile{}, fmt.Errorf("load profile %s: %w", path, err)
	}
	if pf.FirstName == "" || pf.LastName == "" {
		return domain.UserProfile{}, fmt.Errorf("profile %s: first_name and last_name are required", path)
	}
	return domain.UserProfile{
		FirstName:           pf.FirstName,
		LastName:            pf.LastName,
		CuisinePreferences:  pf.Cuisines,
		PriceTier:           domain.ParsePriceTier(pf.PriceTier),
		DietaryRestrictions: pf.Dietary,
		AmbiancePreference:  pf.Ambiance,
	}, nil
}

// DefaultProfile is used when no profile file is given.
func DefaultProfile() domain.UserProfile {
	return domain.UserProfile{
		FirstName:           "Alex",
		LastName:            "Visser",
		CuisinePreferences:  []string{"italian", "japanese"},
		PriceTier:           domain.PriceMid,
		DietaryRestrictions: []string{"vegetarian"},
		AmbiancePreference:  "casual",
	}
}
