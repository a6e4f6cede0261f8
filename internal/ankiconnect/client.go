package ankiconnect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"codeberg.org/snonux/lingoanki/internal/anki"
)

// APIVersion is the AnkiConnect protocol version requested on every call
const APIVersion = 6

var (
	// ErrBridge wraps errors reported by AnkiConnect itself
	ErrBridge = errors.New("ankiconnect")
	// ErrMalformedResponse is returned when the reply cannot be interpreted
	ErrMalformedResponse = errors.New("malformed AnkiConnect response")
	// ErrNoURL is returned when no bridge address is configured
	ErrNoURL = errors.New("AnkiConnect URL is not configured")
)

type request struct {
	Action  string      `json:"action"`
	Version int         `json:"version"`
	Params  interface{} `json:"params,omitempty"`
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// Client talks to AnkiConnect. The bridge URL is passed per call because it
// is user-editable configuration.
type Client struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	log     zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTimeout bounds a single HTTP request to the bridge
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.SetTimeout(d)
		}
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// WithBreakerSettings replaces the default circuit breaker settings
func WithBreakerSettings(st gobreaker.Settings) Option {
	return func(c *Client) {
		c.breaker = gobreaker.NewCircuitBreaker(st)
	}
}

// DefaultBreakerSettings opens the breaker after three consecutive
// transport failures and probes again after 15 seconds
func DefaultBreakerSettings() gobreaker.Settings {
	return gobreaker.Settings{
		Name:        "ankiconnect",
		MaxRequests: 1,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	}
}

// NewClient creates a new AnkiConnect client
func NewClient(opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetHeader("Content-Type", "application/json").
			SetTimeout(30 * time.Second),
		breaker: gobreaker.NewCircuitBreaker(DefaultBreakerSettings()),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		c.log.Debug().
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Dur("elapsed", resp.Time()).
			Msg("AnkiConnect response")
		return nil
	})

	return c
}

// invoke performs a single AnkiConnect action and decodes its result into
// out. Only transport failures count against the circuit breaker; errors
// reported in the payload come back as ErrBridge.
func (c *Client) invoke(ctx context.Context, url, action string, params, out interface{}) error {
	if strings.TrimSpace(url) == "" {
		return ErrNoURL
	}

	raw, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.http.R().
			SetContext(ctx).
			SetBody(request{Action: action, Version: APIVersion, Params: params}).
			Post(url)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode(), resp.String())
		}
		return resp.Body(), nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%s: AnkiConnect unavailable: %w", action, err)
		}
		return fmt.Errorf("%s: %w", action, err)
	}

	var r response
	if err := json.Unmarshal(raw.([]byte), &r); err != nil {
		return fmt.Errorf("%s: %w: %v", action, ErrMalformedResponse, err)
	}

	hasResult := len(r.Result) > 0 && string(r.Result) != "null"
	if r.Error != nil && *r.Error != "" {
		if !hasResult || out == nil {
			return fmt.Errorf("%s: %w: %s", action, ErrBridge, *r.Error)
		}
		// addNotes reports per-note failures as an error next to a usable result
		c.log.Warn().Str("action", action).Str("error", *r.Error).Msg("AnkiConnect reported a partial failure")
	}

	if out == nil {
		return nil
	}
	if !hasResult {
		return fmt.Errorf("%s: %w: empty result", action, ErrMalformedResponse)
	}
	if err := json.Unmarshal(r.Result, out); err != nil {
		return fmt.Errorf("%s: %w: %v", action, ErrMalformedResponse, err)
	}
	return nil
}

// Ping asks AnkiConnect for its protocol version
func (c *Client) Ping(ctx context.Context, url string) (string, error) {
	var version json.Number
	if err := c.invoke(ctx, url, "version", nil, &version); err != nil {
		return "", err
	}
	if _, err := strconv.Atoi(version.String()); err != nil {
		return "", fmt.Errorf("version: %w: %q", ErrMalformedResponse, version)
	}
	return version.String(), nil
}

// AddNotes creates notes in one batch. The result has one element per
// note in input order: the new note ID, or nil when Anki rejected the note
// (usually as a duplicate).
func (c *Client) AddNotes(ctx context.Context, notes []anki.NoteRequest, url string) ([]*int64, error) {
	if len(notes) == 0 {
		return []*int64{}, nil
	}

	var ids []*int64
	params := map[string]interface{}{"notes": notes}
	if err := c.invoke(ctx, url, "addNotes", params, &ids); err != nil {
		return nil, err
	}
	if len(ids) != len(notes) {
		return nil, fmt.Errorf("addNotes: %w: %d results for %d notes", ErrMalformedResponse, len(ids), len(notes))
	}
	return ids, nil
}

// FindCards returns the IDs of cards matching an Anki search query
func (c *Client) FindCards(ctx context.Context, query, url string) ([]int64, error) {
	var ids []int64
	params := map[string]interface{}{"query": query}
	if err := c.invoke(ctx, url, "findCards", params, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// CardsInfo returns details, including field values, for the given cards
func (c *Client) CardsInfo(ctx context.Context, ids []int64, url string) ([]anki.Card, error) {
	if len(ids) == 0 {
		return []anki.Card{}, nil
	}

	var cards []anki.Card
	params := map[string]interface{}{"cards": ids}
	if err := c.invoke(ctx, url, "cardsInfo", params, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// QueryCards runs query and returns the matching cards with their fields
func (c *Client) QueryCards(ctx context.Context, query, url string) ([]anki.Card, error) {
	ids, err := c.FindCards(ctx, query, url)
	if err != nil {
		return nil, err
	}
	return c.CardsInfo(ctx, ids, url)
}
