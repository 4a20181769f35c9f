package apod

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"skyguide/internal/domain"
)

// Config configures the JSON API client.
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logrus.Logger
}

// Client talks to the APOD JSON API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *logrus.Logger
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.nasa.gov"
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		cfg.APIKey = DemoKey
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  strings.TrimSpace(cfg.APIKey),
		http:    cfg.HTTPClient,
		log:     cfg.Logger,
	}
}

// UsingDemoKey reports whether requests go out with the shared demo key.
func (c *Client) UsingDemoKey() bool {
	return c.apiKey == DemoKey
}

func (c *Client) Fetch(ctx context.Context, date string) (*domain.APOD, error) {
	params := url.Values{}
	if date != "" {
		params.Set("date", date)
	}

	var record domain.APOD
	if err := c.get(ctx, params, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) FetchRange(ctx context.Context, start, end string) ([]domain.APOD, error) {
	if _, _, err := parseRange(start, end, 0); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("start_date", start)
	params.Set("end_date", end)

	var records []domain.APOD
	if err := c.get(ctx, params, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	params.Set("api_key", c.apiKey)
	endpoint := c.baseURL + "/planetary/apod?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create apod request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithError(err).Warn("apod request failed")
		return transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.WithFields(logrus.Fields{
			"status_code":  resp.StatusCode,
			"body_preview": truncate(string(body), 200),
		}).Debug("apod api returned non-200 status")
		return statusError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &domain.UpstreamError{
			Service:    serviceName,
			Kind:       domain.UpstreamFailed,
			StatusCode: http.StatusBadGateway,
			Message:    "unexpected response from NASA API",
			Err:        err,
		}
	}
	return nil
}

func statusError(status int, body []byte) *domain.UpstreamError {
	e := &domain.UpstreamError{Service: serviceName, StatusCode: status}
	switch status {
	case http.StatusBadRequest:
		e.Kind = domain.UpstreamInvalidRequest
		e.Message = "Invalid request parameters. Please check your date format (YYYY-MM-DD)."
	case http.StatusNotFound:
		e.Kind = domain.UpstreamNotFound
		e.Message = "No APOD data found for the specified date. Please try a different date."
	case http.StatusTooManyRequests:
		e.Kind = domain.UpstreamRateLimited
		e.Message = "NASA API rate limit exceeded. Please try again later or use a personal API key."
	default:
		e.Kind = domain.UpstreamFailed
		e.Message = fmt.Sprintf("NASA API error: %s", upstreamDetail(status, body))
	}
	return e
}

func upstreamDetail(status int, body []byte) string {
	var payload struct {
		Msg   string `json:"msg"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Msg != "" {
			return payload.Msg
		}
		if payload.Error.Message != "" {
			return payload.Error.Message
		}
	}
	return http.StatusText(status)
}

func transportError(err error) *domain.UpstreamError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &domain.UpstreamError{
			Service: serviceName,
			Kind:    domain.UpstreamTimeout,
			Message: "NASA API request timed out. Please try again later.",
			Err:     err,
		}
	}
	return &domain.UpstreamError{
		Service: serviceName,
		Kind:    domain.UpstreamUnavailable,
		Message: "Unable to connect to NASA API. Please check your internet connection and try again.",
		Err:     err,
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

var _ Fetcher = (*Client)(nil)
