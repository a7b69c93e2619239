// Package models defines the core domain types shared across the application.
package models

import "fmt"

// Period identifies the reporting window for analytics queries.
type Period string

const (
	// Period7d covers the trailing seven days.
	Period7d Period = "7d"
	// Period30d covers the trailing thirty days.
	Period30d Period = "30d"
	// Period90d covers the trailing ninety days.
	Period90d Period = "90d"
)

// DefaultPeriod is used when no period has been selected yet.
const DefaultPeriod = Period30d

// Periods lists all selectable periods in display order.
var Periods = []Period{Period7d, Period30d, Period90d}

// ParsePeriod validates a period string.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case Period7d, Period30d, Period90d:
		return Period(s), nil
	}
	return "", fmt.Errorf("invalid period %q (want 7d, 30d or 90d)", s)
}

// Label returns a human-friendly name for the period.
func (p Period) Label() string {
	switch p {
	case Period7d:
		return "week"
	case Period30d:
		return "month"
	case Period90d:
		return "quarter"
	default:
		return string(p)
	}
}

// Granularity controls the bucket size of time-series queries.
type Granularity string

const (
	// GranularityDay buckets the series by calendar day.
	GranularityDay Granularity = "day"
	// GranularityHour buckets the series by hour.
	GranularityHour Granularity = "hour"
)
