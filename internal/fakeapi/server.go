// Package fakeapi serves an in-memory engagement dashboard API for local
// demos and tests.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/j-veylop/engagement-dashboard-tui/internal/logger"
	"github.com/j-veylop/engagement-dashboard-tui/internal/models"
)

const (
	defaultCount = 25
	maxCount     = 100
)

// Options configures the handler.
type Options struct {
	// AuthToken, when set, is required in the X-Auth-Token header.
	AuthToken string
	// LogRequests enables chi's request logger.
	LogRequests bool
}

// Server answers channel list queries from a fixed dataset.
type Server struct {
	channels []models.ChannelRecord
	opts     Options
}

// New wires the routes over channels, which are served in the given order.
func New(channels []models.ChannelRecord, opts Options) http.Handler {
	s := &Server{channels: channels, opts: opts}

	r := chi.NewRouter()
	if opts.LogRequests {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.requireToken)
		r.Get("/engagement-dashboard/channels/list", s.listChannels)
	})

	return r
}

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.AuthToken != "" && r.Header.Get("X-Auth-Token") != s.opts.AuthToken {
			writeError(w, http.StatusUnauthorized, "You must be logged in to do this.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listChannels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, err := parseISO(q.Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid start: %v", err))
		return
	}
	end, err := parseISO(q.Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid end: %v", err))
		return
	}
	if !start.Before(end) {
		writeError(w, http.StatusBadRequest, "start must be before end")
		return
	}

	offset, err := intParam(q.Get("offset"), 0)
	if err != nil || offset < 0 {
		writeError(w, http.StatusBadRequest, "Invalid offset")
		return
	}
	count, err := intParam(q.Get("count"), defaultCount)
	if err != nil || count < 0 {
		writeError(w, http.StatusBadRequest, "Invalid count")
		return
	}
	if count > maxCount {
		count = maxCount
	}

	page := Slice(s.channels, offset, count)
	writeJSON(w, http.StatusOK, models.ChannelsResponse{
		Channels: page,
		Count:    len(page),
		Offset:   offset,
		Total:    len(s.channels),
		Success:  true,
	})
}

// Slice returns the window [offset, offset+count) of channels, clamped to
// its bounds. The result is never nil.
func Slice(channels []models.ChannelRecord, offset, count int) []models.ChannelRecord {
	if offset >= len(channels) || count == 0 {
		return []models.ChannelRecord{}
	}
	end := offset + count
	if end > len(channels) {
		end = len(channels)
	}
	return channels[offset:end]
}

func parseISO(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("missing")
	}
	return time.Parse(time.RFC3339Nano, value)
}

func intParam(value string, def int) (int, error) {
	if value == "" {
		return def, nil
	}
	return strconv.Atoi(value)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Success: false, Error: message})
}
