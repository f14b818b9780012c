package domain

import "context"

// CallBackend places outbound calls and reports their status. The real
// telephony client and the simulated backend both implement it.
type CallBackend interface {
	CreateCall(ctx context.Context, req CallRequest) (callID string, err error)
	GetCallStatus(ctx context.Context, callID string) (CallStatusRecord, error)
}

// PlaceSource finds eateries of one category around a coordinate.
type PlaceSource interface {
	FindNearby(ctx context.Context, lat, lon float64, radiusM int, category string) ([]Candidate, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// EventCategory classifies observability events.
type EventCategory string

const (
	EventDiscovery EventCategory = "discovery"
	EventRanking   EventCategory = "ranking"
	EventCalling   EventCategory = "calling"
	EventBooking   EventCategory = "booking"
	EventError     EventCategory = "error"
)

// EventSink receives categorized, human-readable progress events. Sinks are
// for audit/demo transparency only and never drive control flow.
type EventSink interface {
	Emit(category EventCategory, format string, args ...any)
}
