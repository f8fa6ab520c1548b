package models

import "time"

// FetchStatus records how a channels request ended.
type FetchStatus string

const (
	// FetchOK means the response was received and decoded.
	FetchOK FetchStatus = "ok"
	// FetchFailed means the request or decoding failed.
	FetchFailed FetchStatus = "failed"
	// FetchCancelled means the request was superseded before it finished.
	FetchCancelled FetchStatus = "cancelled"
)

// FetchRecord is one entry of the local fetch log.
type FetchRecord struct {
	StartedAt  time.Time
	RequestID  string
	Period     PeriodID
	Status     FetchStatus
	Error      string
	ID         int64
	DurationMs int64
	Offset     int
	Count      int
	Channels   int
	Total      int
}

// FetchStats summarizes the fetch log.
type FetchStats struct {
	LastFetch     time.Time
	TotalFetches  int
	FailedFetches int
	AvgDurationMs float64
}

// SuccessRate returns the share of successful fetches in percent.
func (s FetchStats) SuccessRate() float64 {
	if s.TotalFetches == 0 {
		return 0
	}
	return float64(s.TotalFetches-s.FailedFetches) / float64(s.TotalFetches) * 100
}
