package marketapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/patentmarket/admin-gateway/pkg/logger"
)

// Client is an HTTP client for the marketplace core REST API. Responses
// arrive in an envelope whose data field carries the payload; paginated
// payloads nest a content array inside data.
//
// The client deliberately sets no overall timeout and performs no retries:
// list and enrichment fetches run to completion or fail, and the caller
// decides what a failure means. The one exception is member verification,
// which carries its own deadline (see VerifyMember).
type Client struct {
	http   *resty.Client
	logger *logger.Logger
}

// NewClient creates a new marketplace API client
func NewClient(baseURL string, log *logger.Logger) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json")

	return &Client{
		http:   rc,
		logger: log.WithField("component", "marketapi"),
	}
}

// envelope is the backend's response wrapper
type envelope struct {
	ResultCode string          `json:"resultCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

// pageData is the paginated payload nested inside an envelope's data field
type pageData struct {
	Content       json.RawMessage `json:"content"`
	PageNumber    int             `json:"pageNumber"`
	TotalPages    int             `json:"totalPages"`
	TotalElements int64           `json:"totalElements"`
}

// do executes a request and decodes the envelope's data field into out.
// Every failure is returned as an *APIError so callers can branch on the
// failure kind instead of probing payload fields.
func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, out any) error {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json")
		req.SetBody(body)
	}

	started := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "path", path, "error", err)
		return &APIError{Kind: KindNoResponse, Err: err}
	}

	c.logger.Debug("request",
		"method", method,
		"path", path,
		"status", resp.StatusCode(),
		"duration_ms", time.Since(started).Milliseconds())

	if resp.IsError() {
		return parseAPIError(resp)
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return &APIError{
			Kind:       KindStatusOnly,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("decode envelope: %w", err),
		}
	}

	if len(env.Data) == 0 {
		return &APIError{
			Kind:       KindStatusOnly,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("envelope has no data field"),
		}
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return &APIError{
			Kind:       KindStatusOnly,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("decode data: %w", err),
		}
	}

	return nil
}

// parseAPIError classifies an HTTP error response. A decodable payload with
// a message field upgrades the error from status-only to message-bearing.
func parseAPIError(resp *resty.Response) *APIError {
	apiErr := &APIError{
		Kind:       KindStatusOnly,
		StatusCode: resp.StatusCode(),
	}

	var env envelope
	if json.Unmarshal(resp.Body(), &env) == nil && env.Message != "" {
		apiErr.Kind = KindMessage
		apiErr.Message = env.Message
		apiErr.ResultCode = env.ResultCode
	}

	return apiErr
}
