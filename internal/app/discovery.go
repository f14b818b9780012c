package app

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/tabletalk-hackathon/tabletalk/internal/domain"
)

// eateryCategories are the amenity subcategories treated as bookable eateries.
var eateryCategories = []string{"restaurant", "cafe", "fast_food", "bar", "pub"}

// DiscoveryService finds candidates around a location, caches result sets and
// recovers from source failures with a static candidate list. Discovery may
// fan out per category; calling never does.
type DiscoveryService struct {
	source   domain.PlaceSource
	cache    domain.Cache
	sink     domain.EventSink
	log      zerolog.Logger
	cacheTTL time.Duration
	workers  int64
	fallback []domain.Candidate
}

func NewDiscoveryService(source domain.PlaceSource, cache domain.Cache, sink domain.EventSink, log zerolog.Logger, cacheTTL time.Duration, workers int, fallback []domain.Candidate) *DiscoveryService {
	if workers <= 0 {
		workers = 3
	}
	return &DiscoveryService{
		source:   source,
		cache:    cache,
		sink:     sink,
		log:      log,
		cacheTTL: cacheTTL,
		workers:  int64(workers),
		fallback: fallback,
	}
}

// Discover returns candidates near (lat, lon) with DistanceKm populated for
// that location. Query failures are recovered locally: the static fallback
// list is returned instead of an error. Only context cancellation errors out.
func (s *DiscoveryService) Discover(ctx context.Context, lat, lon float64, radiusM int) ([]domain.Candidate, error) {
	key := fmt.Sprintf("places:%.5f:%.5f:%d", lat, lon, radiusM)
	if s.cache != nil {
		var cached []domain.Candidate
		if ok, _ := s.cache.Get(ctx, key, &cached); ok {
			s.sink.Emit(domain.EventDiscovery, "found %d places near (%.4f, %.4f) (cached)", len(cached), lat, lon)
			return withDistances(cached, lat, lon), nil
		}
	}

	found, err := s.query(ctx, lat, lon, radiusM)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.log.Warn().Err(err).Msg("place discovery failed, using static candidate list")
		s.sink.Emit(domain.EventError, "place discovery failed: %v", err)
		return withDistances(s.fallback, lat, lon), nil
	}

	found = withDistances(found, lat, lon)
	sort.SliceStable(found, func(i, j int) bool {
		if found[i].DistanceKm != found[j].DistanceKm {
			return found[i].DistanceKm < found[j].DistanceKm
		}
		return found[i].Name < found[j].Name
	})

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, found, int(s.cacheTTL.Seconds()))
	}
	s.sink.Emit(domain.EventDiscovery, "found %d places near (%.4f, %.4f)", len(found), lat, lon)
	return found, nil
}

// query fans out one source request per category under a weighted semaphore
// and merges the results. Per-category failures are tolerated as long as at
// least one category succeeds.
func (s *DiscoveryService) query(ctx context.Context, lat, lon float64, radiusM int) ([]domain.Candidate, error) {
	sem := semaphore.NewWeighted(s.workers)
	var (
		mu       sync.Mutex
		merged   []domain.Candidate
		firstErr error
		ok       bool
		wg       sync.WaitGroup
	)
	for _, cat := range eateryCategories {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		wg.Add(1)
		go func(category string) {
			defer wg.Done()
			defer sem.Release(1)

			places, err := s.source.FindNearby(ctx, lat, lon, radiusM, category)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.log.Debug().Err(err).Str("category", category).Msg("category query failed")
				if firstErr == nil {
					firstErr = fmt.Errorf("%s: %w", category, err)
				}
				return
			}
			ok = true
			merged = append(merged, places...)
		}(cat)
	}
	wg.Wait()

	if !ok {
		return nil, firstErr
	}
	return dedupeByID(merged), nil
}

func withDistances(in []domain.Candidate, lat, lon float64) []domain.Candidate {
	out := make([]domain.Candidate, len(in))
	for i, c := range in {
		c.DistanceKm = domain.DistanceKm(lat, lon, c.Lat, c.Lon)
		out[i] = c
	}
	return out
}

func dedupeByID(in []domain.Candidate) []domain.Candidate {
	seen := make(map[int64]struct{}, len(in))
	out := in[:0]
	for _, c := range in {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}
