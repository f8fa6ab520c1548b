package models

import (
	"testing"
	"time"

	"github.com/j-veylop/engagement-dashboard-tui/internal/clock"
)

func TestPeriodID_Range(t *testing.T) {
	now := time.Date(2024, 5, 20, 14, 30, 0, 0, time.UTC)
	clk := clock.Fixed{T: now}
	today := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		period    PeriodID
		wantStart time.Time
	}{
		{PeriodLast7Days, time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)},
		{PeriodLast30Days, time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)},
		{PeriodLast90Days, time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			r := tt.period.Range(clk)

			if !r.Start.Equal(tt.wantStart) {
				t.Errorf("Start = %v, want %v", r.Start, tt.wantStart)
			}
			if !r.End.Equal(today.Add(-time.Millisecond)) {
				t.Errorf("End = %v, want %v", r.End, today.Add(-time.Millisecond))
			}
			if !r.Start.Before(r.End) {
				t.Errorf("Start %v should be before End %v", r.Start, r.End)
			}
			if r.Start.Hour() != 0 || r.Start.Minute() != 0 || r.Start.Nanosecond() != 0 {
				t.Errorf("Start %v should be at midnight", r.Start)
			}
			if days := clock.StartOfDay(r.End).Sub(r.Start).Hours() / 24; int(days) != tt.period.Days()-1 {
				t.Errorf("span = %v days, want %d", days, tt.period.Days()-1)
			}
		})
	}
}

func TestPeriodID_RangeAtMidnight(t *testing.T) {
	clk := clock.Fixed{T: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	r := PeriodLast7Days.Range(clk)

	want := time.Date(2023, 12, 31, 23, 59, 59, 999000000, time.UTC)
	if !r.End.Equal(want) {
		t.Errorf("End = %v, want %v", r.End, want)
	}
	if !r.Start.Equal(time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Start = %v, want 2023-12-25", r.Start)
	}
}

func TestPeriodID_Helpers(t *testing.T) {
	if DefaultPeriod != PeriodLast7Days {
		t.Errorf("DefaultPeriod = %q", DefaultPeriod)
	}
	if PeriodLast7Days.Next() != PeriodLast30Days {
		t.Error("7 days should cycle to 30 days")
	}
	if PeriodLast90Days.Next() != PeriodLast7Days {
		t.Error("90 days should wrap to 7 days")
	}
	if PeriodID("bogus").Valid() {
		t.Error("unknown period should not be valid")
	}
	if PeriodID("bogus").Days() != 7 {
		t.Error("unknown period should fall back to the default span")
	}
	if PeriodLast30Days.LabelKey() != "Last 30 days" {
		t.Errorf("LabelKey = %q", PeriodLast30Days.LabelKey())
	}
	if PeriodLast90Days.Index() != 2 {
		t.Errorf("Index = %d, want 2", PeriodLast90Days.Index())
	}
}

func TestQueryParams_Values(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	clk := clock.Fixed{T: time.Date(2024, 5, 20, 10, 0, 0, 0, loc)}

	q := NewQueryParams(PeriodLast30Days.Range(clk), Pagination{Current: 50, ItemsPerPage: 25})
	v := q.Values()

	if got := v.Get("start"); got != "2024-04-20T03:00:00.000Z" {
		t.Errorf("start = %q", got)
	}
	if got := v.Get("end"); got != "2024-05-20T02:59:59.999Z" {
		t.Errorf("end = %q", got)
	}
	if v.Get("offset") != "50" || v.Get("count") != "25" {
		t.Errorf("offset/count = %q/%q", v.Get("offset"), v.Get("count"))
	}
}

func TestQueryParams_Equal(t *testing.T) {
	clk := clock.Fixed{T: time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)}
	base := NewQueryParams(PeriodLast7Days.Range(clk), NewPagination())

	tests := []struct {
		name  string
		other QueryParams
		equal bool
	}{
		{"Same", base, true},
		{"SameInstantOtherZone", QueryParams{
			Start: base.Start.In(time.FixedZone("X", 3600)), End: base.End, Offset: 0, Count: 25,
		}, true},
		{"Period", NewQueryParams(PeriodLast30Days.Range(clk), NewPagination()), false},
		{"Offset", NewQueryParams(PeriodLast7Days.Range(clk), Pagination{Current: 25, ItemsPerPage: 25}), false},
		{"Count", NewQueryParams(PeriodLast7Days.Range(clk), Pagination{Current: 0, ItemsPerPage: 50}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Equal(tt.other); got != tt.equal {
				t.Errorf("Equal() = %v, want %v", got, tt.equal)
			}
		})
	}
}
