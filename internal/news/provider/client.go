package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// ErrorKind classifies why a fetch failed.
type ErrorKind string

const (
	KindNoMapping ErrorKind = "no mapping"
	KindHTTP      ErrorKind = "http status"
	KindMalformed ErrorKind = "malformed data"
	KindTimeout   ErrorKind = "timeout"
	KindTransport ErrorKind = "transport"
)

// FetchError is a classified fetch failure. Reason is the human-readable text
// that ends up in the refresh report, e.g. "HTTP 503" or "timeout".
type FetchError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *FetchError) Error() string {
	return e.Reason()
}

// Reason renders the failure the way it is tagged in the refresh report.
func (e *FetchError) Reason() string {
	switch e.Kind {
	case KindNoMapping:
		return "no mapping"
	case KindHTTP:
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	case KindMalformed:
		return "malformed data"
	case KindTimeout:
		return "timeout"
	default:
		return e.Message
	}
}

// Item is one entry of an upstream hot list, in the provider's own ranking
// order (first = hottest).
type Item struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	MobileURL   string `json:"mobileUrl,omitempty"`
	Content     string `json:"content,omitempty"`
	Source      string `json:"source,omitempty"`
	PublishTime string `json:"publish_time,omitempty"`
}

// apiResponse is the upstream envelope. Anything that does not match this
// shape (status sentinel "200" plus a data array) is a malformed-data failure.
type apiResponse struct {
	Status string            `json:"status"`
	Data   []json.RawMessage `json:"data"`
}

const (
	statusOK         = "200"
	maxResponseBytes = 4 << 20 // 4MB
)

// Config holds settings for the upstream hot-news API client.
type Config struct {
	BaseURL           string
	UserAgent         string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// Client performs single bounded calls against the upstream hot-news API. It
// never retries; retry policy belongs to the caller.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates an upstream API client. Outbound calls are paced by a
// shared rate limiter so a wide fan-out does not hammer the provider.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(rps), int(rps)+1),
	}
}

// Fetch retrieves the hot list for the given upstream API parameter, truncated
// to limit items. An empty list is a successful result, not an error. All
// failures are returned as *FetchError.
func (c *Client) Fetch(ctx context.Context, apiParam string, limit int) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, classify(err)
	}

	reqURL := fmt.Sprintf("%s?platform=%s", c.cfg.BaseURL, url.QueryEscape(apiParam))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindTransport, Message: err.Error()}
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Kind: KindHTTP, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, classify(err)
	}

	var envelope apiResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &FetchError{Kind: KindMalformed, Message: err.Error()}
	}
	if envelope.Status != statusOK || envelope.Data == nil {
		return nil, &FetchError{Kind: KindMalformed, Message: fmt.Sprintf("status %q", envelope.Status)}
	}

	if limit > 0 && len(envelope.Data) > limit {
		envelope.Data = envelope.Data[:limit]
	}

	items := make([]Item, 0, len(envelope.Data))
	for _, raw := range envelope.Data {
		var it Item
		if err := json.Unmarshal(raw, &it); err != nil {
			return nil, &FetchError{Kind: KindMalformed, Message: err.Error()}
		}
		items = append(items, it)
	}

	return items, nil
}

// classify converts transport-level errors into FetchError, distinguishing
// deadline expiry from everything else.
func classify(err error) *FetchError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &FetchError{Kind: KindTimeout}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &FetchError{Kind: KindTimeout}
	}
	return &FetchError{Kind: KindTransport, Message: err.Error()}
}
