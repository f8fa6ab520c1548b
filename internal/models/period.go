// Package models defines data structures and domain types.
package models

import (
	"net/url"
	"strconv"
	"time"

	"github.com/j-veylop/engagement-dashboard-tui/internal/clock"
)

// PeriodID identifies one of the fixed reporting windows.
type PeriodID string

const (
	// PeriodLast7Days covers the seven whole days before today.
	PeriodLast7Days PeriodID = "last 7 days"
	// PeriodLast30Days covers the thirty whole days before today.
	PeriodLast30Days PeriodID = "last 30 days"
	// PeriodLast90Days covers the ninety whole days before today.
	PeriodLast90Days PeriodID = "last 90 days"

	// DefaultPeriod is the period selected when the table first opens.
	DefaultPeriod = PeriodLast7Days
)

// PeriodOption pairs a period with the translation key of its label.
type PeriodOption struct {
	ID       PeriodID
	LabelKey string
}

// PeriodOptions lists the selectable periods in display order.
var PeriodOptions = []PeriodOption{
	{ID: PeriodLast7Days, LabelKey: "Last 7 days"},
	{ID: PeriodLast30Days, LabelKey: "Last 30 days"},
	{ID: PeriodLast90Days, LabelKey: "Last 90 days"},
}

// Days returns the length of the period in calendar days.
func (p PeriodID) Days() int {
	switch p {
	case PeriodLast7Days:
		return 7
	case PeriodLast30Days:
		return 30
	case PeriodLast90Days:
		return 90
	default:
		return DefaultPeriod.Days()
	}
}

// Valid reports whether p is one of the known periods.
func (p PeriodID) Valid() bool {
	for _, opt := range PeriodOptions {
		if opt.ID == p {
			return true
		}
	}
	return false
}

// LabelKey returns the translation key for the period label.
func (p PeriodID) LabelKey() string {
	for _, opt := range PeriodOptions {
		if opt.ID == p {
			return opt.LabelKey
		}
	}
	return DefaultPeriod.LabelKey()
}

// Index returns the position of p in PeriodOptions, or 0 if unknown.
func (p PeriodID) Index() int {
	for i, opt := range PeriodOptions {
		if opt.ID == p {
			return i
		}
	}
	return 0
}

// Next cycles to the following period.
func (p PeriodID) Next() PeriodID {
	return PeriodOptions[(p.Index()+1)%len(PeriodOptions)].ID
}

// Range is a concrete reporting window.
type Range struct {
	Start time.Time
	End   time.Time
}

// Range derives the concrete window for p relative to clk.
// Start is midnight N days before today; End is one millisecond before
// today's midnight, i.e. the last instant of yesterday.
func (p PeriodID) Range(clk clock.Clock) Range {
	today := clock.StartOfDay(clk.Now())
	return Range{
		Start: clock.AddDays(today, -p.Days()),
		End:   today.Add(-time.Millisecond),
	}
}

// ISOTimeFormat serializes instants the way the endpoint expects them.
const ISOTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// QueryParams is the parameter tuple sent to the channels endpoint.
type QueryParams struct {
	Start  time.Time
	End    time.Time
	Offset int
	Count  int
}

// NewQueryParams combines a period range with the pagination state.
func NewQueryParams(r Range, p Pagination) QueryParams {
	return QueryParams{
		Start:  r.Start,
		End:    r.End,
		Offset: p.Current,
		Count:  p.ItemsPerPage,
	}
}

// Equal reports whether two parameter tuples describe the same query.
func (q QueryParams) Equal(o QueryParams) bool {
	return q.Start.Equal(o.Start) &&
		q.End.Equal(o.End) &&
		q.Offset == o.Offset &&
		q.Count == o.Count
}

// Values encodes the tuple as URL query values.
func (q QueryParams) Values() url.Values {
	v := url.Values{}
	v.Set("start", q.Start.UTC().Format(ISOTimeFormat))
	v.Set("end", q.End.UTC().Format(ISOTimeFormat))
	v.Set("offset", strconv.Itoa(q.Offset))
	v.Set("count", strconv.Itoa(q.Count))
	return v
}
