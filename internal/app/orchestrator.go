package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tabletalk-hackathon/tabletalk/internal/domain"
)

const (
	defaultPollInterval  = 2 * time.Second
	defaultPollTimeout   = 60 * time.Second
	defaultFallbackDelay = 2 * time.Second

	defaultBookingTime = "19:00"
	defaultPartySize   = 2

	// Placeholder availability policy: a mechanically completed call still
	// needs a draw because nothing analyzes what the restaurant actually said.
	// Stand-in until call-content analysis (speech/DTMF) exists.
	completedSuccessProbability = 0.70

	fallbackStartProbability = 0.9
	fallbackStepPerPosition  = 0.2
	fallbackFloorProbability = 0.3
)

// OrchestratorConfig controls call timing and the fixed booking request.
// Zero values fall back to production defaults.
type OrchestratorConfig struct {
	PollInterval  time.Duration // status poll cadence
	PollTimeout   time.Duration // max total wait for a terminal status per call
	FallbackDelay time.Duration // simulated call duration on the fallback path
	FromNumber    string
	BookingTime   string
	PartySize     int
}

func (c OrchestratorConfig) withDefaults() OrchestratorConfig {
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.PollTimeout <= 0 {
		c.PollTimeout = defaultPollTimeout
	}
	if c.FallbackDelay <= 0 {
		c.FallbackDelay = defaultFallbackDelay
	}
	if c.BookingTime == "" {
		c.BookingTime = defaultBookingTime
	}
	if c.PartySize <= 0 {
		c.PartySize = defaultPartySize
	}
	return c
}

// Orchestrator calls ranked candidates strictly in order, one call in flight
// at a time, and stops at the first confirmed booking. Calls are irreversible
// real-world actions, so candidate N+1 is never contacted before candidate
// N's outcome is fully resolved.
type Orchestrator struct {
	backend domain.CallBackend
	sink    domain.EventSink
	rng     Rand
	cfg     OrchestratorConfig
	log     zerolog.Logger
	now     func() time.Time
}

func NewOrchestrator(backend domain.CallBackend, sink domain.EventSink, rng Rand, cfg OrchestratorConfig, log zerolog.Logger) *Orchestrator {
	if rng == nil {
		rng = DefaultRand()
	}
	return &Orchestrator{
		backend: backend,
		sink:    sink,
		rng:     rng,
		cfg:     cfg.withDefaults(),
		log:     log,
		now:     time.Now,
	}
}

// AttemptBookings works through candidates in order and returns the first
// successful booking. (nil, nil) means every candidate was exhausted without
// availability; the only error returned is context cancellation.
func (o *Orchestrator) AttemptBookings(ctx context.Context, candidates []domain.Candidate, firstName, lastName string) (*domain.BookingRecord, error) {
	for i, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := o.attemptSingleCall(ctx, i, c, firstName, lastName)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			return rec, nil
		}
	}
	o.sink.Emit(domain.EventCalling, "no availability: all %d candidates exhausted", len(candidates))
	return nil, nil
}

// attemptSingleCall runs the per-candidate state machine:
// Dialing -> Connected -> AwaitingOutcome -> {Confirmed, Declined, Failed}.
// pos is the 0-indexed candidate position, used by the fallback draw.
func (o *Orchestrator) attemptSingleCall(ctx context.Context, pos int, c domain.Candidate, firstName, lastName string) (*domain.BookingRecord, error) {
	attempt := domain.NewCallAttempt(c, o.now())
	o.sink.Emit(domain.EventCalling, "calling %s at %s (candidate %d)", c.Name, c.Phone, pos+1)
	attempt.Note(o.now(), "dialing %s", c.Phone)

	req := domain.CallRequest{
		To:     c.Phone,
		From:   o.cfg.FromNumber,
		Script: o.voiceScript(firstName, lastName),
	}
	callID, err := o.backend.CreateCall(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		o.log.Warn().Err(err).Str("restaurant", c.Name).Msg("call submission failed, simulating outcome")
		o.sink.Emit(domain.EventError, "telephony backend unreachable for %s: %v", c.Name, err)
		attempt.Note(o.now(), "submission failed: %v", err)
		return o.simulateOutcome(ctx, pos, c, attempt)
	}

	attempt.CallID = callID
	attempt.Transition(domain.StateConnected, o.now())
	o.log.Debug().Str("call_id", callID).Str("restaurant", c.Name).Msg("call created")

	attempt.Transition(domain.StateAwaitingOutcome, o.now())
	status, resolved, err := o.awaitOutcome(ctx, callID, attempt)
	if err != nil {
		return nil, err
	}
	if !resolved {
		// Could not determine an outcome within the poll ceiling.
		o.sink.Emit(domain.EventError, "no terminal status for %s within %s", c.Name, o.cfg.PollTimeout)
		attempt.Note(o.now(), "poll ceiling reached without terminal status")
		return o.simulateOutcome(ctx, pos, c, attempt)
	}
	return o.interpret(status, c, attempt), nil
}

// awaitOutcome polls the backend until a terminal status, the poll ceiling,
// or cancellation. Individual poll errors skip the tick; only the overall
// timeout gives up.
func (o *Orchestrator) awaitOutcome(ctx context.Context, callID string, attempt *domain.CallAttempt) (domain.CallStatusRecord, bool, error) {
	deadline := o.now().Add(o.cfg.PollTimeout)
	for {
		if !sleepCtx(ctx, o.cfg.PollInterval) {
			return domain.CallStatusRecord{}, false, ctx.Err()
		}
		rec, err := o.backend.GetCallStatus(ctx, callID)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return domain.CallStatusRecord{}, false, ctx.Err()
			}
			o.log.Debug().Err(err).Str("call_id", callID).Msg("status poll error, will retry")
			attempt.Note(o.now(), "status poll error: %v", err)
		case rec.Status.IsTerminal():
			attempt.Note(o.now(), "terminal status: %s", rec.Status)
			return rec, true, nil
		default:
			attempt.Note(o.now(), "status: %s", rec.Status)
		}
		if o.now().After(deadline) {
			return domain.CallStatusRecord{}, false, nil
		}
	}
}

// interpret maps a terminal call status to a booking decision.
func (o *Orchestrator) interpret(rec domain.CallStatusRecord, c domain.Candidate, attempt *domain.CallAttempt) *domain.BookingRecord {
	switch rec.Status {
	case domain.StatusCompleted:
		if o.rng.Float64() < completedSuccessProbability {
			attempt.Transition(domain.StateConfirmed, o.now())
			return o.buildBooking(c, attempt)
		}
		attempt.Transition(domain.StateDeclined, o.now())
		o.sink.Emit(domain.EventCalling, "%s has no table for us", c.Name)
		return nil
	case domain.StatusBusy, domain.StatusNoAnswer:
		// A real negative signal is authoritative; no fallback.
		attempt.Transition(domain.StateDeclined, o.now())
		o.sink.Emit(domain.EventCalling, "%s did not take the call (%s)", c.Name, rec.Status)
		return nil
	default:
		// failed, or a terminal status we don't recognize. The call subsystem
		// answered, so this is not a fallback case either.
		attempt.Transition(domain.StateFailed, o.now())
		o.sink.Emit(domain.EventCalling, "call to %s failed (%s)", c.Name, rec.Status)
		return nil
	}
}

// simulateOutcome is the fallback path, entered only when the telephony
// backend could not be reached or queried at all.
func (o *Orchestrator) simulateOutcome(ctx context.Context, pos int, c domain.Candidate, attempt *domain.CallAttempt) (*domain.BookingRecord, error) {
	o.sink.Emit(domain.EventCalling, "simulating call to %s", c.Name)
	attempt.Note(o.now(), "simulating call outcome")
	if !sleepCtx(ctx, o.cfg.FallbackDelay) {
		return nil, ctx.Err()
	}
	if o.rng.Float64() < FallbackProbability(pos+1) {
		attempt.Transition(domain.StateConfirmed, o.now())
		return o.buildBooking(c, attempt), nil
	}
	attempt.Transition(domain.StateDeclined, o.now())
	o.sink.Emit(domain.EventCalling, "%s has no table for us (simulated)", c.Name)
	return nil, nil
}

// FallbackProbability is the simulated availability chance for the 1-indexed
// candidate position: 0.9 for the first, 0.2 less per position, floored at 0.3.
func FallbackProbability(position int) float64 {
	p := fallbackStartProbability - float64(position-1)*fallbackStepPerPosition
	if p < fallbackFloorProbability {
		return fallbackFloorProbability
	}
	return p
}

func (o *Orchestrator) buildBooking(c domain.Candidate, attempt *domain.CallAttempt) *domain.BookingRecord {
	now := o.now()
	ref := newBookingReference(now, o.rng)
	rec := &domain.BookingRecord{
		Candidate:   c,
		BookingTime: o.cfg.BookingTime,
		PartySize:   o.cfg.PartySize,
		Reference:   ref,
		Confirmation: fmt.Sprintf("Table for %d at %s today at %s. Reference %s.",
			o.cfg.PartySize, c.Name, o.cfg.BookingTime, ref),
		CreatedAt: now,
	}
	attempt.Note(now, "booked, reference %s", ref)
	o.sink.Emit(domain.EventBooking, "booked %s for %d people at %s (ref %s)", c.Name, rec.PartySize, rec.BookingTime, ref)
	o.log.Info().Str("restaurant", c.Name).Str("reference", ref).Msg("booking confirmed")
	return rec
}

func (o *Orchestrator) voiceScript(firstName, lastName string) string {
	return fmt.Sprintf(
		"Hello, this is %s %s. I would like to book a table for %d people at %s today. Please let us know if you have availability. Thank you, goodbye.",
		firstName, lastName, o.cfg.PartySize, o.cfg.BookingTime)
}

const bookingRefTag = "TT"
const bookingRefAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newBookingReference builds TT + six low-order millisecond digits + three
// random uppercase alphanumerics. Human-distinguishable within a session, not
// guaranteed globally unique.
func newBookingReference(now time.Time, rng Rand) string {
	suffix := make([]byte, 3)
	for i := range suffix {
		suffix[i] = bookingRefAlphabet[rng.Intn(len(bookingRefAlphabet))]
	}
	return fmt.Sprintf("%s%06d%s", bookingRefTag, now.UnixMilli()%1_000_000, suffix)
}

// sleepCtx waits for d or returns false if ctx is done first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
