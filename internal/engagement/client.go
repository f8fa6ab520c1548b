// Package engagement is the HTTP client for the engagement dashboard REST API.
package engagement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/j-veylop/engagement-dashboard-tui/internal/logger"
	"github.com/j-veylop/engagement-dashboard-tui/internal/models"
)

// ChannelsListPath is the channels statistics endpoint, relative to the server URL.
const ChannelsListPath = "/api/v1/engagement-dashboard/channels/list"

const (
	headerUserID    = "X-User-Id"
	headerAuthToken = "X-Auth-Token"
	headerRequestID = "X-Request-ID"

	// maxErrorBody caps how much of a failed response ends up in an error.
	maxErrorBody = 512
)

// APIError is returned for non-2xx responses and for bodies reporting
// success: false.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("engagement api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("engagement api: status %d: %s", e.StatusCode, e.Message)
}

// IsCanceled reports whether err comes from a request whose context was
// cancelled because its parameters were superseded.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// Result carries a response together with request metadata.
type Result struct {
	Response  *models.ChannelsResponse
	RequestID string
	Duration  time.Duration
}

// Client talks to a single server.
type Client struct {
	baseURL    string
	userID     string
	authToken  string
	httpClient *http.Client
	newID      func() string
}

// NewClient creates a client for baseURL. Credentials are optional and
// only sent when non-empty.
func NewClient(baseURL, userID, authToken string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userID:     userID,
		authToken:  authToken,
		httpClient: &http.Client{Timeout: timeout},
		newID:      uuid.NewString,
	}
}

// ListChannels fetches one page of channel statistics for params.
func (c *Client) ListChannels(ctx context.Context, params models.QueryParams) (*Result, error) {
	requestID := c.newID()
	endpoint := c.baseURL + ChannelsListPath + "?" + params.Values().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create channels request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestID)
	if c.userID != "" {
		req.Header.Set(headerUserID, c.userID)
	}
	if c.authToken != "" {
		req.Header.Set(headerAuthToken, c.authToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("channels request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read channels response: %w", err)
	}
	duration := time.Since(start)

	logger.Debug("channels request",
		"request_id", requestID,
		"status", resp.StatusCode,
		"offset", params.Offset,
		"count", params.Count,
		"duration", duration,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
			RequestID:  requestID,
		}
	}

	var out models.ChannelsResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to parse channels response: %w", err)
	}
	if !out.Success {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
			RequestID:  requestID,
		}
	}
	if out.Channels == nil {
		out.Channels = []models.ChannelRecord{}
	}

	return &Result{Response: &out, RequestID: requestID, Duration: duration}, nil
}

// errorMessage extracts the server's error text, falling back to the raw body.
func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}

	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody]
	}
	return text
}
