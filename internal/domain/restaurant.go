package domain

// PriceTier is an ordinal price category. Comparisons between tiers are
// meaningful (Low < Mid < High).
type PriceTier int

const (
	PriceUnknown PriceTier = iota
	PriceLow
	PriceMid
	PriceHigh
)

func (p PriceTier) String() string {
	switch p {
	case PriceLow:
		return "low"
	case PriceMid:
		return "mid"
	case PriceHigh:
		return "high"
	}
	return "unknown"
}

// ParsePriceTier maps a tier name to its ordinal. Unknown strings map to
// PriceUnknown rather than erroring; discovery data is free-form.
func ParsePriceTier(s string) PriceTier {
	switch s {
	case "low", "cheap", "$":
		return PriceLow
	case "mid", "moderate", "$$":
		return PriceMid
	case "high", "expensive", "$$$":
		return PriceHigh
	}
	return PriceUnknown
}

// Candidate is a restaurant eligible for booking. Immutable once ranked;
// DistanceKm is recomputed whenever the user's location changes.
type Candidate struct {
	ID          int64
	Name        string
	Phone       string
	Address     string
	Cuisine     string
	PriceTier   PriceTier
	Rating      float64 // 0..5
	DietaryTags []string
	Ambiance    string
	Lat, Lon    float64
	DistanceKm  float64 // from the user's location, >= 0
}

// UserProfile holds the diner's preferences. First/last name are announced
// as the caller identity on outbound calls.
type UserProfile struct {
	FirstName           string
	LastName            string
	CuisinePreferences  []string
	PriceTier           PriceTier
	DietaryRestrictions []string
	AmbiancePreference  string
}
