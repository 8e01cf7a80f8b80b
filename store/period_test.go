package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		fallback Period
		want     Period
	}{
		{"empty uses fallback", "", PeriodMonth, PeriodMonth},
		{"empty uses all fallback", "", PeriodAll, PeriodAll},
		{"today", "today", PeriodAll, PeriodToday},
		{"week", "week", PeriodAll, PeriodWeek},
		{"month", "month", PeriodAll, PeriodMonth},
		{"year", "year", PeriodAll, PeriodYear},
		{"all", "all", PeriodMonth, PeriodAll},
		{"unknown value falls back to all", "fortnight", PeriodMonth, PeriodAll},
		{"case sensitive", "Today", PeriodMonth, PeriodAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePeriod(tt.raw, tt.fallback))
		})
	}
}

func TestParseTimestampPeriod(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		fallback Period
		want     Period
	}{
		{"empty uses fallback", "", PeriodAll, PeriodAll},
		{"today", "today", PeriodAll, PeriodToday},
		{"week", "week", PeriodAll, PeriodWeek},
		{"month", "month", PeriodAll, PeriodMonth},
		{"all", "all", PeriodAll, PeriodAll},
		// year is a statistics-only filter; event logs treat it as unknown.
		{"year folds into all", "year", PeriodAll, PeriodAll},
		{"unknown value falls back to all", "fortnight", PeriodAll, PeriodAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTimestampPeriod(tt.raw, tt.fallback))
		})
	}
}

func TestPeriodTimestampFilter(t *testing.T) {
	tests := []struct {
		period Period
		want   string
	}{
		{PeriodToday, " AND view_date::date = CURRENT_DATE"},
		{PeriodWeek, " AND view_date >= NOW() - INTERVAL '7 days'"},
		{PeriodMonth, " AND view_date >= NOW() - INTERVAL '30 days'"},
		{PeriodYear, " AND view_date >= NOW() - INTERVAL '365 days'"},
		{PeriodAll, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.period.timestampFilter("view_date"))
		})
	}
}

func TestPeriodDateFilter(t *testing.T) {
	tests := []struct {
		period Period
		want   string
	}{
		{PeriodToday, " AND date = CURRENT_DATE"},
		{PeriodWeek, " AND date >= CURRENT_DATE - INTERVAL '7 days'"},
		{PeriodMonth, " AND date >= CURRENT_DATE - INTERVAL '30 days'"},
		{PeriodYear, " AND date >= CURRENT_DATE - INTERVAL '365 days'"},
		{PeriodAll, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.period.dateFilter("date"))
		})
	}
}

func TestPeriodWhereFilters(t *testing.T) {
	assert.Equal(t, " WHERE created_at >= NOW() - INTERVAL '7 days'", PeriodWeek.whereTimestampFilter("created_at"))
	assert.Equal(t, " WHERE date = CURRENT_DATE", PeriodToday.whereDateFilter("date"))

	// The all period adds no predicate in either form.
	assert.Equal(t, "", PeriodAll.whereTimestampFilter("created_at"))
	assert.Equal(t, "", PeriodAll.whereDateFilter("date"))
}
