package overpass

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/tabletalk-hackathon/tabletalk/internal/adapters/observability"
	"github.com/tabletalk-hackathon/tabletalk/internal/domain"
)

const DefaultBaseURL = "https://overpass-api.de/api/interpreter"

var (
	ErrRateLimited = errors.New("overpass: rate limited")
	ErrBadQuery    = errors.New("overpass: bad query")
)

// Client queries an Overpass-style interpreter for eateries around a
// coordinate and normalizes the heterogeneous element shapes into candidates.
type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, rps int) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	if rps <= 0 {
		rps = 2
	}
	return &Client{
		base: base,
		hc:   &http.Client{Timeout: 30 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

type element struct {
	Type   string   `json:"type"`
	ID     int64    `json:"id"`
	Lat    *float64 `json:"lat"`
	Lon    *float64 `json:"lon"`
	Center *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"center"`
	Geometry []struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"geometry"`
	Tags map[string]string `json:"tags"`
}

type response struct {
	Elements []element `json:"elements"`
}

// FindNearby returns candidates of one amenity category within radiusM meters
// of (lat, lon). Transient failures are retried once.
func (c *Client) FindNearby(ctx context.Context, lat, lon float64, radiusM int, category string) ([]domain.Candidate, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	form := url.Values{"data": {buildQuery(lat, lon, radiusM, category)}}

	var lastErr error
	for i := 0; i < 2; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "tabletalk/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			observability.ObserveExternal("overpass", category, 0, time.Since(start))
			lastErr = err
			continue
		}
		observability.ObserveExternal("overpass", category, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			var body response
			err := json.NewDecoder(resp.Body).Decode(&body)
			resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("overpass: decode response: %w", err)
			}
			return mapElements(body.Elements, category), nil

		case http.StatusBadRequest:
			resp.Body.Close()
			return nil, ErrBadQuery

		case http.StatusTooManyRequests, http.StatusGatewayTimeout, http.StatusBadGateway, http.StatusServiceUnavailable:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			lastErr = ErrRateLimited
			continue

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			resp.Body.Close()
			return nil, fmt.Errorf("overpass: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}
	return nil, lastErr
}

func buildQuery(lat, lon float64, radiusM int, category string) string {
	around := fmt.Sprintf("(around:%d,%.7f,%.7f)", radiusM, lat, lon)
	return fmt.Sprintf(
		`[out:json][timeout:25];(node["amenity"=%q]%s;way["amenity"=%q]%s;relation["amenity"=%q]%s;);out center;`,
		category, around, category, around, category, around)
}

func mapElements(els []element, category string) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(els))
	for _, el := range els {
		if c, ok := mapElement(el, category); ok {
			out = append(out, c)
		}
	}
	return out
}

// mapElement normalizes one map element. Elements without resolvable
// coordinates are skipped; missing tags get documented defaults.
func mapElement(el element, category string) (domain.Candidate, bool) {
	lat, lon, ok := coordinates(el)
	if !ok {
		return domain.Candidate{}, false
	}

	tags := el.Tags
	name := tags["name"]
	if name == "" {
		name = "Unnamed restaurant"
	}

	return domain.Candidate{
		ID:          el.ID,
		Name:        name,
		Phone:       firstTag(tags, "phone", "contact:phone"),
		Address:     composeAddress(tags),
		Cuisine:     primaryCuisine(tags["cuisine"]),
		PriceTier:   estimatePriceTier(tags, category),
		Rating:      estimateRating(el.ID, tags),
		DietaryTags: dietaryTags(tags),
		Ambiance:    defaultAmbiance(category),
		Lat:         lat,
		Lon:         lon,
	}, true
}

// coordinates resolves a position: point elements carry lat/lon directly,
// polygon/relation elements carry a center, else average the geometry
// vertices.
func coordinates(el element) (float64, float64, bool) {
	if el.Lat != nil && el.Lon != nil {
		return *el.Lat, *el.Lon, true
	}
	if el.Center != nil {
		return el.Center.Lat, el.Center.Lon, true
	}
	if n := len(el.Geometry); n > 0 {
		var sumLat, sumLon float64
		for _, v := range el.Geometry {
			sumLat += v.Lat
			sumLon += v.Lon
		}
		return sumLat / float64(n), sumLon / float64(n), true
	}
	return 0, 0, false
}

func firstTag(tags map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := tags[k]; v != "" {
			return v
		}
	}
	return ""
}

func composeAddress(tags map[string]string) string {
	street := strings.TrimSpace(tags["addr:street"] + " " + tags["addr:housenumber"])
	parts := []string{street, tags["addr:postcode"], tags["addr:city"]}
	var out []string
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ", ")
}

// primaryCuisine keeps the first entry of a multi-value cuisine tag
// ("italian;pizza" -> "italian").
func primaryCuisine(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if i := strings.IndexByte(raw, ';'); i >= 0 {
		raw = raw[:i]
	}
	return raw
}

func dietaryTags(tags map[string]string) []string {
	var out []string
	for k, v := range tags {
		if !strings.HasPrefix(k, "diet:") {
			continue
		}
		if v == "yes" || v == "only" {
			out = append(out, strings.TrimPrefix(k, "diet:"))
		}
	}
	return out
}

// estimatePriceTier derives an ordinal tier when OSM carries no explicit
// price data: fast food and cafes are assumed cheap, starred or explicitly
// expensive places high, everything else mid.
func estimatePriceTier(tags map[string]string, category string) domain.PriceTier {
	if s := tags["stars"]; s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 4 {
			return domain.PriceHigh
		}
	}
	if strings.Contains(strings.ToLower(tags["price:range"]), "expensive") {
		return domain.PriceHigh
	}
	switch category {
	case "fast_food", "cafe":
		return domain.PriceLow
	}
	return domain.PriceMid
}

// estimateRating synthesizes a stable 3.0..5.0 demo rating from the element
// ID when the map data has none. OSM has no rating tag in practice.
func estimateRating(id int64, tags map[string]string) float64 {
	if s := tags["stars"]; s != "" {
		if n, err := strconv.ParseFloat(s, 64); err == nil && n > 0 && n <= 5 {
			return n
		}
	}
	return 3.0 + float64(id%21)/10.0
}

func defaultAmbiance(category string) string {
	switch category {
	case "bar", "pub":
		return "lively"
	case "cafe":
		return "cozy"
	case "fast_food":
		return "casual"
	}
	return "formal"
}
