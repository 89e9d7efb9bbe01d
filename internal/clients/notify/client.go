// Package notify provides a client for an external reminder scheduling
// service. Obligation templates with reminders enabled get one scheduled
// notification per month on their due day.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/gabrielmazz/finances-app-sub000/internal/common"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client talks to the reminder service over HTTP JSON.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithAPIKey sets the bearer token sent on every request
func WithAPIKey(apiKey string) ClientOption {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a reminder service client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type scheduleRequest struct {
	ScheduleID string `json:"schedule_id"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	Day        int    `json:"day"`
	Hour       int    `json:"hour"`
	Minute     int    `json:"minute"`
}

// Schedule registers a monthly reminder keyed by templateID. Re-scheduling
// the same id replaces the previous reminder on the service side.
func (c *Client) Schedule(ctx context.Context, templateID, title, body string, day, hour, minute int) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	payload, err := json.Marshal(scheduleRequest{
		ScheduleID: templateID,
		Title:      title,
		Body:       body,
		Day:        day,
		Hour:       hour,
		Minute:     minute,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal schedule request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1/schedules", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, reqURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.logger.Debug().Str("template_id", templateID).Int("day", day).Msg("scheduling reminder")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("reminder service returned status %d: %s", resp.StatusCode, string(data))
	}
	return nil
}

// Cancel removes the reminder for templateID. A missing reminder is not an
// error; cancellation is idempotent.
func (c *Client) Cancel(ctx context.Context, templateID string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1/schedules/%s", c.baseURL, templateID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.logger.Debug().Str("template_id", templateID).Msg("cancelling reminder")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("reminder service returned status %d: %s", resp.StatusCode, string(data))
	}
	return nil
}

// NoopClient satisfies the notify contract when no reminder service is
// configured. All operations succeed without side effects.
type NoopClient struct{}

func NewNoopClient() *NoopClient { return &NoopClient{} }

func (*NoopClient) Schedule(ctx context.Context, templateID, title, body string, day, hour, minute int) error {
	return nil
}

func (*NoopClient) Cancel(ctx context.Context, templateID string) error {
	return nil
}
