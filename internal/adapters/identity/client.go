// Package identity talks to the remote demo identity API.
package identity

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

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

type Client struct {
	base    string
	hc      *http.Client
	rl      *rate.Limiter
	timeout time.Duration
}

// New builds a client. Calls are never retried: a failed login or
// registration is surfaced to the caller immediately.
func New(base string, timeout time.Duration, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("identity base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base:    strings.TrimRight(base, "/"),
		hc:      &http.Client{Timeout: timeout},
		rl:      rate.NewLimiter(rate.Limit(rps), rps),
		timeout: timeout,
	}, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (map[string]any, error) {
	body := map[string]any{"username": username, "password": password}
	var out map[string]any
	if err := c.post(ctx, "/auth/login", body, &out, "Login failed"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, p domain.RegisterProfile) (map[string]any, error) {
	var out map[string]any
	if err := c.post(ctx, "/users/add", p, &out, "Registration failed"); err != nil {
		return nil, err
	}
	return out, nil
}

// ---- Internals ----

// ErrTimeout marks a call that exceeded the client deadline.
var ErrTimeout = errors.New("identity: request timed out")

type errorBody struct {
	Message string `json:"message"`
}

func (c *Client) post(ctx context.Context, path string, in, out any, fallback string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return c.wrapCtx(ctx, err)
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "hotel-booking/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("identity", path, 0, time.Since(start))
		return c.wrapCtx(ctx, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("identity", path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// read a small error body for the user-facing message
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var eb errorBody
		msg := fallback
		if json.Unmarshal(b, &eb) == nil && strings.TrimSpace(eb.Message) != "" {
			msg = eb.Message
		}
		return &domain.RemoteAuthError{Status: resp.StatusCode, Message: msg}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.RemoteAuthError{Status: http.StatusBadGateway, Message: fallback}
	}
	return nil
}

func (c *Client) wrapCtx(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || isTimeout(err) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
