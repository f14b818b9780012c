package app

import "github.com/tabletalk-hackathon/tabletalk/internal/domain"

// StaticFallbackCandidates is the built-in candidate list used when place
// discovery is unavailable. Coordinates cluster around the demo location in
// Amsterdam Oost; the phone numbers are Dutch drama-range numbers, not real
// businesses.
func StaticFallbackCandidates() []domain.Candidate {
	return []domain.Candidate{
		{
			ID:          900001,
			Name:        "Trattoria del Ponte",
			Phone:       "+31209990101",
			Address:     "Eerste Oosterparkstraat 12, Amsterdam",
			Cuisine:     "italian",
			PriceTier:   domain.PriceMid,
			Rating:      4.5,
			DietaryTags: []string{"vegetarian"},
			Ambiance:    "romantic",
			Lat:         52.3601, Lon: 4.9173,
		},
		{
			ID:          900002,
			Name:        "Sakura House",
			Phone:       "+31209990102",
			Address:     "Wibautstraat 88, Amsterdam",
			Cuisine:     "japanese",
			PriceTier:   domain.PriceHigh,
			Rating:      4.7,
			DietaryTags: []string{"gluten_free"},
			Ambiance:    "formal",
			Lat:         52.3588, Lon: 4.9119,
		},
		{
			ID:          900003,
			Name:        "De Groene Kantine",
			Phone:       "+31209990103",
			Address:     "Oostpoort 5, Amsterdam",
			Cuisine:     "dutch",
			PriceTier:   domain.PriceLow,
			Rating:      4.1,
			DietaryTags: []string{"vegetarian", "vegan"},
			Ambiance:    "casual",
			Lat:         52.3620, Lon: 4.9255,
		},
		{
			ID:          900004,
			Name:        "Meze Garden",
			Phone:       "+31209990104",
			Address:     "Linnaeusstraat 21, Amsterdam",
			Cuisine:     "turkish",
			PriceTier:   domain.PriceMid,
			Rating:      4.3,
			DietaryTags: []string{"halal", "vegetarian"},
			Ambiance:    "lively",
			Lat:         52.3598, Lon: 4.9221,
		},
		{
			ID:          900005,
			Name:        "Bar Brouw Oost",
			Phone:       "+31209990105",
			Address:     "Beukenplein 14, Amsterdam",
			Cuisine:     "burger",
			PriceTier:   domain.PriceLow,
			Rating:      3.9,
			DietaryTags: nil,
			Ambiance:    "lively",
			Lat:         52.3570, Lon: 4.9140,
		},
	}
}
