// Package backend is the HTTP client for the road-condition backend's route
// search API. It is the only network boundary of the planner core: responses
// are decoded into explicit structs and validated here, so malformed payloads
// surface as structured errors instead of leaking into rendering.
package backend

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

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"

	"github.com/shinuoyan888/HuXuYan/internal/common"
	"github.com/shinuoyan888/HuXuYan/internal/planner"
)

// ErrUnavailable is returned when the backend cannot be reached at the
// transport level (connection refused, timeout, circuit open). The search is
// never retried automatically.
var ErrUnavailable = errors.New("route backend unreachable; check that the backend is running")

// StatusError carries a non-2xx backend response. Message is surfaced to the
// user verbatim: the parsed JSON message if present, else the raw body text,
// else the HTTP status text.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return e.Message
}

// Client calls POST /path/search on the road-condition backend.
type Client struct {
	baseURL  string
	client   *http.Client
	circuit  *gobreaker.CircuitBreaker
	validate *validator.Validate
}

// NewClient creates a Client rooted at baseURL (e.g. "http://127.0.0.1:8000/api").
func NewClient(client *http.Client, baseURL string) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "path-search",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     30 * time.Second,
	})

	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   client,
		circuit:  cb,
		validate: validator.New(),
	}
}

// Search performs one route search: one request, one response, no batching
// and no retry. Non-2xx responses come back as *StatusError; transport
// failures as ErrUnavailable.
func (c *Client) Search(ctx context.Context, req planner.SearchRequest) (*planner.SearchResult, error) {
	if req.Preferences == "" {
		req.Preferences = planner.PreferenceBalanced
	}
	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid search request: %w", err)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/path/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.client.Do(httpReq)
		if execErr != nil {
			return nil, execErr
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp),
		}
	}

	var search planner.SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, fmt.Errorf("malformed search response: %w", err)
	}
	if err := c.validate.Struct(&search); err != nil {
		return nil, fmt.Errorf("invalid search response: %w", err)
	}

	return &search, nil
}

// errorMessage extracts a displayable message from a non-2xx response body
// with no further interpretation.
func errorMessage(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return statusText(resp)
	}

	if common.HasAny(resp.Header.Get("Content-Type"), "json") || json.Valid(raw) {
		if msg := jsonMessage(raw); msg != "" {
			return msg
		}
	}

	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return statusText(resp)
}

// jsonMessage pulls a message out of common JSON error shapes: a bare string,
// or an object with a message/detail/error field.
func jsonMessage(raw []byte) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	for _, key := range []string{"message", "detail", "error"} {
		field, ok := obj[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(field, &s); err == nil && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func statusText(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return resp.Status
}
