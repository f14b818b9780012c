package telephony

import (
	"context"
	"fmt"
	"sync"

	"github.com/tabletalk-hackathon/tabletalk/internal/domain"
)

// Rand is the randomness the simulated backend consumes; *rand.Rand
// satisfies it.
type Rand interface {
	Float64() float64
}

// SimulatedBackend implements domain.CallBackend without any network. It is
// wired as the primary backend when no telephony credentials are configured,
// so the orchestrator's dial/poll/interpret path runs unchanged in demos and
// tests.
type SimulatedBackend struct {
	mu        sync.Mutex
	rng       Rand
	ringTicks int
	seq       int
	calls     map[string]*simulatedCall
}

type simulatedCall struct {
	polls int
	final domain.CallStatus
}

// NewSimulatedBackend returns a backend whose calls ring for ringTicks status
// polls before reaching a terminal status drawn from rng.
func NewSimulatedBackend(rng Rand, ringTicks int) *SimulatedBackend {
	if ringTicks < 0 {
		ringTicks = 0
	}
	return &SimulatedBackend{
		rng:       rng,
		ringTicks: ringTicks,
		calls:     make(map[string]*simulatedCall),
	}
}

func (s *SimulatedBackend) CreateCall(ctx context.Context, req domain.CallRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	id := fmt.Sprintf("SIM-%06d", s.seq)
	s.calls[id] = &simulatedCall{final: s.drawFinal()}
	return id, nil
}

func (s *SimulatedBackend) GetCallStatus(ctx context.Context, callID string) (domain.CallStatusRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.CallStatusRecord{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	call, ok := s.calls[callID]
	if !ok {
		return domain.CallStatusRecord{}, ErrNotFound
	}
	call.polls++
	if call.polls <= s.ringTicks {
		return domain.CallStatusRecord{Status: domain.StatusRinging}, nil
	}
	rec := domain.CallStatusRecord{Status: call.final}
	if call.final == domain.StatusCompleted {
		rec.DurationSec = 25
	}
	return rec, nil
}

// drawFinal picks the terminal status: mostly completed, sometimes busy or
// unanswered, mirroring what real restaurants do at dinner prep time.
func (s *SimulatedBackend) drawFinal() domain.CallStatus {
	r := s.rng.Float64()
	switch {
	case r < 0.70:
		return domain.StatusCompleted
	case r < 0.85:
		return domain.StatusBusy
	default:
		return domain.StatusNoAnswer
	}
}
