package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultURLTemplate is the BBC polling endpoint; {slug} is replaced with the station slug.
	DefaultURLTemplate = "https://polling.bbc.co.uk/radio/realtime/{slug}.jsonp"
	// slugPlaceholder is substituted in the URL template.
	slugPlaceholder = "{slug}"
	// maxBodySize caps how much of a response is read.
	maxBodySize = 1 << 20
)

var (
	// ErrMalformedResponse is returned when the response body is not the expected JSON shape.
	ErrMalformedResponse = errors.New("malformed realtime response")
	// ErrMissingRealtime is returned when the decoded payload has no realtime object.
	ErrMissingRealtime = fmt.Errorf("%w: missing realtime key", ErrMalformedResponse)
	// ErrUnexpectedStatus is returned for non-200 responses.
	ErrUnexpectedStatus = fmt.Errorf("%w: unexpected status", ErrMalformedResponse)
)

// Config controls how the Client reaches the polling endpoint.
type Config struct {
	URLTemplate string
	// Timeout is applied to the HTTP client when positive. Zero keeps Go's default (none).
	Timeout time.Duration
}

// Client fetches realtime records for stations.
type Client struct {
	urlTemplate string
	client      *http.Client
	logger      *zap.Logger
	observer    Observer
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithObserver registers an observer for fetch outcomes.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// NewClient creates a realtime client. A nil config uses the defaults.
func NewClient(cfg *Config, logger *zap.Logger, opts ...Option) *Client {
	if cfg == nil {
		cfg = &Config{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	template := cfg.URLTemplate
	if template == "" {
		template = DefaultURLTemplate
	}

	c := &Client{
		urlTemplate: template,
		client:      newHTTPClient(cfg.Timeout),
		logger:      logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		return &http.Client{}
	}
	return &http.Client{Timeout: timeout}
}

// URLFor returns the polling URL for a station slug.
func (c *Client) URLFor(slug string) string {
	return strings.ReplaceAll(c.urlTemplate, slugPlaceholder, slug)
}

// Fetch returns the realtime record for a station.
//
// Unknown stations and connection-level failures yield a nil record and a nil error.
// Responses that cannot be decoded are returned as errors wrapping ErrMalformedResponse.
func (c *Client) Fetch(ctx context.Context, station string) (*Record, error) {
	started := time.Now()

	slug, ok := Resolve(station)
	if !ok {
		c.logger.Warn("Unknown station, no data", zap.String("station", station))
		c.observe(station, OutcomeUnknownStation, started)
		return nil, nil
	}

	pollURL := c.URLFor(slug)
	c.logger.Debug("Polling realtime endpoint",
		zap.String("station", station),
		zap.String("url", pollURL))

	body, err := c.get(ctx, pollURL)
	if err != nil {
		var netErr *transportError
		if errors.As(err, &netErr) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			c.logger.Warn("Realtime endpoint unreachable, no data",
				zap.String("station", station),
				zap.Error(netErr.err))
			c.observe(station, OutcomeNetworkError, started)
			return nil, nil
		}
		c.observe(station, OutcomeMalformed, started)
		return nil, err
	}

	record, err := decodeRecord(body)
	if err != nil {
		c.observe(station, OutcomeMalformed, started)
		return nil, fmt.Errorf("station %s: %w", station, err)
	}

	c.logger.Debug("Fetched realtime record",
		zap.String("station", station),
		zap.String("artist", record.Artist),
		zap.String("title", record.Title),
		zap.Int64("start", record.Start),
		zap.Int64("end", record.End))
	c.observe(station, OutcomeOK, started)
	return record, nil
}

// NowPlaying returns the realtime record only when it is airing at now.
func (c *Client) NowPlaying(ctx context.Context, station string, now time.Time) (*Record, error) {
	record, err := c.Fetch(ctx, station)
	if err != nil || record == nil {
		return nil, err
	}
	if !record.AiringAt(now) {
		c.logger.Debug("Realtime record is not airing",
			zap.String("station", station),
			zap.Time("now", now))
		return nil, nil
	}
	return record, nil
}

// transportError marks failures to reach the endpoint at all.
type transportError struct {
	err error
}

func (e *transportError) Error() string { return e.err.Error() }

func (e *transportError) Unwrap() error { return e.err }

func (c *Client) get(ctx context.Context, pollURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pollURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &transportError{err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w %d from %s", ErrUnexpectedStatus, resp.StatusCode, pollURL)
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}
	return string(bodyBytes), nil
}

func decodeRecord(body string) (*Record, error) {
	var envelope struct {
		Realtime json.RawMessage `json:"realtime"`
	}
	if err := json.Unmarshal([]byte(UnwrapJSONP(body)), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(envelope.Realtime) == 0 || string(envelope.Realtime) == "null" {
		return nil, ErrMissingRealtime
	}

	var record Record
	if err := json.Unmarshal(envelope.Realtime, &record); err != nil {
		return nil, fmt.Errorf("%w: realtime: %v", ErrMalformedResponse, err)
	}
	record.Raw = envelope.Realtime
	return &record, nil
}

func (c *Client) observe(station, outcome string, started time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveFetch(NormalizeStationID(station), outcome, time.Since(started))
}
