package telephony

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/tabletalk-hackathon/tabletalk/internal/adapters/observability"
	"github.com/tabletalk-hackathon/tabletalk/internal/domain"
)

var (
	ErrUnauthorized = errors.New("telephony: unauthorized")
	ErrNotFound     = errors.New("telephony: call not found")
)

// Client is a REST client for the outbound-calling backend. It deliberately
// does not retry: submission failures are the orchestrator's signal to take
// the fallback path, and status polls are already retried tick by tick.
type Client struct {
	base string
	key  string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("telephony base URL is required")
	}
	if key == "" {
		return nil, fmt.Errorf("telephony API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		key:  key,
		hc:   &http.Client{Timeout: 10 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

type createCallRequest struct {
	To                 string `json:"to"`
	From               string `json:"from"`
	Script             string `json:"script"`
	HangupAfterMessage bool   `json:"hangup_after_message"`
}

type callResource struct {
	CallID      string `json:"call_id"`
	Status      string `json:"status"`
	DurationSec int    `json:"duration"`
	Reason      string `json:"reason"`
}

// CreateCall submits an outbound call that speaks req.Script and hangs up.
func (c *Client) CreateCall(ctx context.Context, req domain.CallRequest) (string, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return "", err
	}
	body, err := json.Marshal(createCallRequest{
		To:                 req.To,
		From:               req.From,
		Script:             req.Script,
		HangupAfterMessage: true,
	})
	if err != nil {
		return "", err
	}

	var out callResource
	if err := c.do(ctx, http.MethodPost, c.base+"/v1/calls", "create_call", body, &out); err != nil {
		return "", err
	}
	if out.CallID == "" {
		return "", fmt.Errorf("telephony: create call returned no call_id")
	}
	return out.CallID, nil
}

// GetCallStatus looks up the current status of a call.
func (c *Client) GetCallStatus(ctx context.Context, callID string) (domain.CallStatusRecord, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return domain.CallStatusRecord{}, err
	}
	var out callResource
	if err := c.do(ctx, http.MethodGet, c.base+"/v1/calls/"+callID, "get_status", nil, &out); err != nil {
		return domain.CallStatusRecord{}, err
	}
	return domain.CallStatusRecord{
		Status:      mapStatus(out.Status),
		DurationSec: out.DurationSec,
		Reason:      out.Reason,
	}, nil
}

func (c *Client) do(ctx context.Context, method, url, endpoint string, body []byte, out any) error {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("X-API-Key", c.key)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		observability.ObserveExternal("telephony", endpoint, 0, time.Since(start))
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("telephony", endpoint, resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return json.NewDecoder(resp.Body).Decode(out)
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("telephony: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
}

// mapStatus normalizes wire statuses to the domain enum. Unknown statuses
// pass through unchanged; the orchestrator keeps polling on anything
// non-terminal.
func mapStatus(s string) domain.CallStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "queued":
		return domain.StatusQueued
	case "ringing":
		return domain.StatusRinging
	case "answered", "in-progress", "in_progress":
		return domain.StatusAnswered
	case "completed":
		return domain.StatusCompleted
	case "failed":
		return domain.StatusFailed
	case "busy":
		return domain.StatusBusy
	case "no-answer", "no_answer":
		return domain.StatusNoAnswer
	}
	return domain.CallStatus(s)
}
