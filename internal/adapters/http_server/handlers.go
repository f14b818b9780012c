package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/tabletalk-hackathon/tabletalk/internal/app"
	"github.com/tabletalk-hackathon/tabletalk/internal/domain"
)

type Handlers struct {
	Discovery *app.DiscoveryService
	Ranker    *app.Ranker
	Orch      *app.Orchestrator

	DefaultRadiusM int
	DefaultLimit   int // candidates contacted per booking run
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/restaurants", h.listRestaurants)
	s.mux.Post("/v1/bookings", h.createBooking)
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// ---- DTOs ----

type restaurantDTO struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Phone       string   `json:"phone,omitempty"`
	Address     string   `json:"address,omitempty"`
	Cuisine     string   `json:"cuisine,omitempty"`
	PriceTier   string   `json:"price_tier"`
	Rating      float64  `json:"rating"`
	DietaryTags []string `json:"dietary_tags,omitempty"`
	Ambiance    string   `json:"ambiance,omitempty"`
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	DistanceKm  float64  `json:"distance_km"`
}

func toRestaurantDTO(c domain.Candidate) restaurantDTO {
	return restaurantDTO{
		ID:          c.ID,
		Name:        c.Name,
		Phone:       c.Phone,
		Address:     c.Address,
		Cuisine:     c.Cuisine,
		PriceTier:   c.PriceTier.String(),
		Rating:      c.Rating,
		DietaryTags: c.DietaryTags,
		Ambiance:    c.Ambiance,
		Lat:         c.Lat,
		Lon:         c.Lon,
		DistanceKm:  c.DistanceKm,
	}
}

type profileDTO struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Cuisines  []string `json:"cuisines"`
	PriceTier string   `json:"price_tier"`
	Dietary   []string `json:"dietary"`
	Ambiance  string   `json:"ambiance"`
}

func (p profileDTO) toDomain() domain.UserProfile {
	return domain.UserProfile{
		FirstName:           p.FirstName,
		LastName:            p.LastName,
		CuisinePreferences:  p.Cuisines,
		PriceTier:           domain.ParsePriceTier(p.PriceTier),
		DietaryRestrictions: p.Dietary,
		AmbiancePreference:  p.Ambiance,
	}
}

type bookingRequest struct {
	Lat     float64    `json:"lat"`
	Lon     float64    `json:"lon"`
	RadiusM int        `json:"radius_m"`
	Limit   int        `json:"limit"`
	Profile profileDTO `json:"profile"`
}

type bookingResponse struct {
	Booked       bool           `json:"booked"`
	Reason       string         `json:"reason,omitempty"`
	Reference    string         `json:"reference,omitempty"`
	Restaurant   *restaurantDTO `json:"restaurant,omitempty"`
	BookingTime  string         `json:"booking_time,omitempty"`
	PartySize    int            `json:"party_size,omitempty"`
	Confirmation string         `json:"confirmation,omitempty"`
}

// ---- handlers ----

func (h *Handlers) listRestaurants(w http.ResponseWriter, r *http.Request) {
	lat, err1 := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, err2 := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err1 != nil || err2 != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid coordinates", "lat and lon must be decimal degrees")
		return
	}
	radius := h.DefaultRadiusM
	if rs := r.URL.Query().Get("radius"); rs != "" {
		v, err := strconv.Atoi(rs)
		if err != nil || v <= 0 || v > 10000 {
			writeProblem(w, http.StatusBadRequest, "Invalid radius", "radius must be 1..10000 meters")
			return
		}
		radius = v
	}

	found, err := h.Discovery.Discover(r.Context(), lat, lon, radius)
	if err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "Discovery unavailable", err.Error())
		return
	}
	out := make([]restaurantDTO, len(found))
	for i, c := range found {
		out[i] = toRestaurantDTO(c)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}
	if req.Lat == 0 && req.Lon == 0 {
		writeProblem(w, http.StatusBadRequest, "Missing location", "lat and lon are required")
		return
	}
	if req.Profile.FirstName == "" || req.Profile.LastName == "" {
		writeProblem(w, http.StatusBadRequest, "Missing caller identity", "profile.first_name and profile.last_name are required")
		return
	}
	radius := req.RadiusM
	if radius <= 0 {
		radius = h.DefaultRadiusM
	}
	limit := req.Limit
	if limit <= 0 {
		limit = h.DefaultLimit
	}

	found, err := h.Discovery.Discover(r.Context(), req.Lat, req.Lon, radius)
	if err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "Discovery unavailable", err.Error())
		return
	}
	if len(found) == 0 {
		writeJSON(w, http.StatusOK, bookingResponse{Booked: false, Reason: "no restaurants found nearby"})
		return
	}

	profile := req.Profile.toDomain()
	ranked := h.Ranker.Rank(found, profile)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	rec, err := h.Orch.AttemptBookings(r.Context(), ranked, profile.FirstName, profile.LastName)
	if err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "Booking aborted", err.Error())
		return
	}
	if rec == nil {
		// exhaustion is a valid outcome, not an error
		writeJSON(w, http.StatusOK, bookingResponse{Booked: false, Reason: "no availability"})
		return
	}

	rest := toRestaurantDTO(rec.Candidate)
	writeJSON(w, http.StatusCreated, bookingResponse{
		Booked:       true,
		Reference:    rec.Reference,
		Restaurant:   &rest,
		BookingTime:  rec.BookingTime,
		PartySize:    rec.PartySize,
		Confirmation: rec.Confirmation,
	})
}
