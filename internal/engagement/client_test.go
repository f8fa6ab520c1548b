package engagement

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/j-veylop/engagement-dashboard-tui/internal/fakeapi"
	"github.com/j-veylop/engagement-dashboard-tui/internal/models"
)

// MockRoundTripper implements http.RoundTripper for testing
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

func testParams() models.QueryParams {
	return models.QueryParams{
		Start:  time.Date(2024, time.February, 9, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2024, time.March, 9, 23, 59, 59, int(999*time.Millisecond), time.UTC),
		Offset: 0,
		Count:  25,
	}
}

func newMockClient(fn func(req *http.Request) (*http.Response, error)) *Client {
	c := NewClient("https://chat.example.com/", "user-1", "token-1", time.Second)
	c.httpClient = &http.Client{Transport: &MockRoundTripper{RoundTripFunc: fn}}
	c.newID = func() string { return "req-1" }
	return c
}

func TestListChannels_Request(t *testing.T) {
	var got *http.Request
	c := newMockClient(func(req *http.Request) (*http.Response, error) {
		got = req
		return jsonResponse(http.StatusOK, `{"channels":[],"count":0,"offset":0,"total":0,"success":true}`), nil
	})

	if _, err := c.ListChannels(context.Background(), testParams()); err != nil {
		t.Fatalf("ListChannels failed: %v", err)
	}

	if got.Method != http.MethodGet {
		t.Errorf("method = %s, want GET", got.Method)
	}
	if got.URL.Path != "/api/v1/engagement-dashboard/channels/list" {
		t.Errorf("path = %s", got.URL.Path)
	}

	q := got.URL.Query()
	wantQuery := map[string]string{
		"start":  "2024-02-09T00:00:00.000Z",
		"end":    "2024-03-09T23:59:59.999Z",
		"offset": "0",
		"count":  "25",
	}
	for k, want := range wantQuery {
		if q.Get(k) != want {
			t.Errorf("query %s = %q, want %q", k, q.Get(k), want)
		}
	}

	wantHeaders := map[string]string{
		"X-User-Id":    "user-1",
		"X-Auth-Token": "token-1",
		"X-Request-ID": "req-1",
	}
	for k, want := range wantHeaders {
		if got.Header.Get(k) != want {
			t.Errorf("header %s = %q, want %q", k, got.Header.Get(k), want)
		}
	}
}

func TestListChannels_NoCredentials(t *testing.T) {
	c := NewClient("https://chat.example.com", "", "", time.Second)
	c.httpClient = &http.Client{Transport: &MockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			if _, ok := req.Header["X-Auth-Token"]; ok {
				t.Error("X-Auth-Token should not be sent when empty")
			}
			if req.Header.Get("X-Request-ID") == "" {
				t.Error("X-Request-ID should always be sent")
			}
			return jsonResponse(http.StatusOK, `{"success":true}`), nil
		},
	}}

	res, err := c.ListChannels(context.Background(), testParams())
	if err != nil {
		t.Fatalf("ListChannels failed: %v", err)
	}
	if res.Response.Channels == nil {
		t.Error("Channels should be non-nil after a successful fetch")
	}
}

func TestListChannels_Decodes(t *testing.T) {
	body := `{
		"channels": [{
			"room": {"_id": "r1", "t": "d", "usernames": ["x", "y"],
				"ts": "2023-05-01T10:00:00.000Z", "_updatedAt": "2024-03-08T08:30:00.000Z"},
			"messages": 10,
			"diffFromLastWeek": -2
		}],
		"count": 1, "offset": 0, "total": 1, "success": true
	}`
	c := newMockClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, body), nil
	})

	res, err := c.ListChannels(context.Background(), testParams())
	if err != nil {
		t.Fatalf("ListChannels failed: %v", err)
	}
	if res.RequestID != "req-1" {
		t.Errorf("RequestID = %q, want req-1", res.RequestID)
	}

	resp := res.Response
	if resp.Total != 1 || len(resp.Channels) != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}
	ch := resp.Channels[0]
	if ch.Room.Type != models.RoomDirect || ch.Messages != 10 || ch.DiffFromLastWeek != -2 {
		t.Errorf("unexpected record %+v", ch)
	}
	if ch.Room.DisplayName() != "x × y" {
		t.Errorf("DisplayName = %q", ch.Room.DisplayName())
	}
	wantTS := time.Date(2023, time.May, 1, 10, 0, 0, 0, time.UTC)
	if !ch.Room.TS.Equal(wantTS) {
		t.Errorf("TS = %v, want %v", ch.Room.TS, wantTS)
	}
}

func TestListChannels_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"server error", http.StatusInternalServerError, `{"success":false,"error":"boom"}`, 500, "boom"},
		{"unauthorized", http.StatusUnauthorized, `{"status":"error","message":"You must be logged in to do this."}`, 401, "You must be logged in to do this."},
		{"plain text", http.StatusBadGateway, "bad gateway", 502, "bad gateway"},
		{"success false", http.StatusOK, `{"success":false,"error":"not allowed"}`, 200, "not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newMockClient(func(req *http.Request) (*http.Response, error) {
				return jsonResponse(tt.status, tt.body), nil
			})

			_, err := c.ListChannels(context.Background(), testParams())
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error = %v, want *APIError", err)
			}
			if apiErr.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.wantStatus)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
			if apiErr.RequestID != "req-1" {
				t.Errorf("RequestID = %q, want req-1", apiErr.RequestID)
			}
		})
	}
}

func TestListChannels_InvalidJSON(t *testing.T) {
	c := newMockClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, "{not json"), nil
	})

	_, err := c.ListChannels(context.Background(), testParams())
	if err == nil || !strings.Contains(err.Error(), "parse") {
		t.Errorf("error = %v, want parse error", err)
	}
}

func TestListChannels_Canceled(t *testing.T) {
	c := newMockClient(func(req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListChannels(ctx, testParams())
	if !IsCanceled(err) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{StatusCode: 500}
	if err.Error() != "engagement api: status 500" {
		t.Errorf("Error() = %q", err.Error())
	}
	err.Message = "boom"
	if err.Error() != "engagement api: status 500: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestListChannels_FakeServer(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(fakeapi.New(fakeapi.Generate(30, now, 3), fakeapi.Options{AuthToken: "token-1"}))
	defer srv.Close()

	c := NewClient(srv.URL, "user-1", "token-1", 5*time.Second)

	params := testParams()
	params.Offset = 25
	res, err := c.ListChannels(context.Background(), params)
	if err != nil {
		t.Fatalf("ListChannels failed: %v", err)
	}
	if res.Response.Total != 30 {
		t.Errorf("Total = %d, want 30", res.Response.Total)
	}
	if len(res.Response.Channels) != 5 {
		t.Errorf("len(Channels) = %d, want 5", len(res.Response.Channels))
	}

	bad := NewClient(srv.URL, "user-1", "wrong", 5*time.Second)
	_, err = bad.ListChannels(context.Background(), params)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("error = %v, want 401 APIError", err)
	}
}
