package domain

import (
	"fmt"
	"time"
)

// CallStatus is the telephony backend's view of a call.
type CallStatus string

const (
	StatusQueued    CallStatus = "queued"
	StatusRinging   CallStatus = "ringing"
	StatusAnswered  CallStatus = "answered"
	StatusCompleted CallStatus = "completed"
	StatusFailed    CallStatus = "failed"
	StatusBusy      CallStatus = "busy"
	StatusNoAnswer  CallStatus = "no-answer"
)

// IsTerminal reports whether no further status transition can occur.
func (s CallStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusBusy, StatusNoAnswer:
		return true
	}
	return false
}

// CallState is the orchestrator-side state of one attempt.
type CallState string

const (
	StateDialing         CallState = "dialing"
	StateConnected       CallState = "connected"
	StateAwaitingOutcome CallState = "awaiting_outcome"
	StateConfirmed       CallState = "confirmed"
	StateDeclined        CallState = "declined"
	StateFailed          CallState = "failed"
)

// CallRequest is what the orchestrator submits to a CallBackend.
type CallRequest struct {
	To     string
	From   string
	Script string // spoken message; the backend hangs up after it
}

// CallStatusRecord is a single status poll result.
type CallStatusRecord struct {
	Status      CallStatus
	DurationSec int
	Reason      string
}

// TranscriptLine is one timestamped entry in a call attempt's audit trail.
type TranscriptLine struct {
	At   time.Time
	Text string
}

// CallAttempt is one orchestration cycle against a single candidate. At most
// one attempt is in flight at any time; the attempt is discarded when the
// orchestrator moves on.
type CallAttempt struct {
	Candidate  Candidate
	State      CallState
	CallID     string
	StartedAt  time.Time
	Transcript []TranscriptLine
}

func NewCallAttempt(c Candidate, now time.Time) *CallAttempt {
	return &CallAttempt{Candidate: c, State: StateDialing, StartedAt: now}
}

func (a *CallAttempt) Transition(s CallState, now time.Time) {
	a.State = s
	a.Note(now, "state -> "+string(s))
}

func (a *CallAttempt) Note(now time.Time, format string, args ...any) {
	a.Transcript = append(a.Transcript, TranscriptLine{At: now, Text: fmt.Sprintf(format, args...)})
}

// BookingRecord is the successful outcome of an orchestration run. At most
// one is produced per run; its existence is the terminal success condition.
type BookingRecord struct {
	Candidate    Candidate
	BookingTime  string // fixed "19:00", same day
	PartySize    int    // fixed 2
	Reference    string // human-distinguishable, not globally unique
	Confirmation string
	CreatedAt    time.Time
}
