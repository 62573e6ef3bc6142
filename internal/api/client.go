// Package api provides the HTTP client for the MealCraft backend: recipes,
// users and preferences, meal plans, grocery prices and order automation.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/logger"
)

// DefaultBaseURL is where the backend listens during local development.
const DefaultBaseURL = "http://localhost:8000"

// ── Errors ───────────────────────────────────────────────────────

// Error is a non-2xx response from the backend.
type Error struct {
	Method string
	Path   string
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api: %s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %s %s: %d %s", e.Method, e.Path, e.Status, e.Detail)
}

// Is maps status codes onto the domain sentinels: 404 is ErrNotFound and
// gateway or availability failures are ErrSourceUnavailable.
func (e *Error) Is(target error) bool {
	switch target {
	case domain.ErrNotFound:
		return e.Status == http.StatusNotFound
	case domain.ErrSourceUnavailable:
		return e.Status >= http.StatusInternalServerError
	}
	return false
}

// ── Client ───────────────────────────────────────────────────────

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// Client talks to the MealCraft REST backend.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	log       *logger.Logger
}

// NewClient creates a backend client. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL string, log *logger.Logger, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: "mealcraft",
		http:      &http.Client{Timeout: 10 * time.Second},
		log:       log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the backend root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// get issues a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// post issues a POST request with a JSON body and decodes the response into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal %s body: %w", path, err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("api: %s %s", method, endpoint)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w: %w", method, path, domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read %s response: %w: %w", path, domain.ErrSourceUnavailable, err)
	}

	c.log.Debug("api: %s %s -> %d (%d bytes, %s)", method, path, resp.StatusCode, len(respBody), time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Detail: errorDetail(resp.Header.Get("Content-Type"), respBody),
		}
		c.log.Warn("%v", apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("api: decode %s response: %w: %w", path, domain.ErrUnsuccessful, err)
	}
	return nil
}

// errorDetail extracts a readable message from an error response. The
// backend sends {"detail": ...}; proxies in front of it send HTML pages.
func errorDetail(contentType string, body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	var envelope struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err == nil && envelope.Detail != nil {
		switch d := envelope.Detail.(type) {
		case string:
			return d
		default:
			// Validation errors arrive as a list of objects.
			raw, _ := json.Marshal(d)
			return truncate(string(raw), 200)
		}
	}

	if strings.Contains(contentType, "html") || trimmed[0] == '<' {
		if text := htmlText(trimmed); text != "" {
			return text
		}
	}
	return truncate(string(trimmed), 200)
}

// htmlText returns the page title, or the collapsed body text when the page
// has no title.
func htmlText(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return truncate(strings.Join(strings.Fields(doc.Find("body").Text()), " "), 200)
}

// IsUnavailable reports whether err means the backend could not be reached
// or failed at the transport or server level.
func IsUnavailable(err error) bool {
	return errors.Is(err, domain.ErrSourceUnavailable)
}

// truncate caps s at n bytes, cutting on a rune boundary.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	end := 0
	for end < len(s) {
		_, size := utf8.DecodeRuneInString(s[end:])
		if end+size > n-3 {
			break
		}
		end += size
	}
	return s[:end] + "..."
}
