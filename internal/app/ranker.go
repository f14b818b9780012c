package app

import (
	"sort"
	"strings"

	"github.com/tabletalk-hackathon/tabletalk/internal/domain"
)

// Scoring weights. A candidate matching the profile on cuisine, price tier
// and ambiance, satisfying every dietary restriction, rated 5.0 at distance 0
// scores exactly 100.
const (
	cuisineMatchPoints   = 40.0
	priceExactPoints     = 25.0
	priceOneBelowPoints  = 15.0
	ambianceMatchPoints  = 20.0
	dietaryMaxPoints     = 10.0
	distancePenaltyPerKm = 2.0
)

// Ranker orders candidates by preference fit. Deterministic: equal scores
// keep their discovery order.
type Ranker struct {
	sink domain.EventSink
}

func NewRanker(sink domain.EventSink) *Ranker { return &Ranker{sink: sink} }

func (r *Ranker) Rank(candidates []domain.Candidate, profile domain.UserProfile) []domain.Candidate {
	type scored struct {
		c     domain.Candidate
		score float64
	}
	rows := make([]scored, len(candidates))
	for i, c := range candidates {
		rows[i] = scored{c: c, score: Score(c, profile)}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].score > rows[j].score })

	ranked := make([]domain.Candidate, len(rows))
	for i, s := range rows {
		ranked[i] = s.c
	}
	if r.sink != nil && len(ranked) > 0 {
		r.sink.Emit(domain.EventRanking, "ranked %d candidates, top pick %q", len(ranked), ranked[0].Name)
	}
	return ranked
}

// Score computes the preference score for a single candidate, floored at 0.
// The score is an internal ordering detail and is not part of the public
// ranking result.
func Score(c domain.Candidate, p domain.UserProfile) float64 {
	score := 0.0

	if containsFold(p.CuisinePreferences, c.Cuisine) {
		score += cuisineMatchPoints
	}

	switch {
	case c.PriceTier != domain.PriceUnknown && c.PriceTier == p.PriceTier:
		score += priceExactPoints
	case c.PriceTier != domain.PriceUnknown && p.PriceTier-c.PriceTier == 1:
		// one tier cheaper than preferred is still acceptable
		score += priceOneBelowPoints
	}

	if c.Ambiance != "" && strings.EqualFold(c.Ambiance, p.AmbiancePreference) {
		score += ambianceMatchPoints
	}

	// Dietary term is the satisfied fraction of the profile's restrictions.
	// An empty restriction set contributes 0 (and must not divide by zero).
	if n := len(p.DietaryRestrictions); n > 0 {
		matched := 0
		for _, want := range p.DietaryRestrictions {
			if containsFold(c.DietaryTags, want) {
				matched++
			}
		}
		score += float64(matched) / float64(n) * dietaryMaxPoints
	}

	score += c.Rating
	score -= c.DistanceKm * distancePenaltyPerKm

	if score < 0 {
		return 0
	}
	return score
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}
