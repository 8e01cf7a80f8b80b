package store

// Period is the closed set of relative date filters accepted by the analytics
// endpoints. Unknown values parse to PeriodAll, matching the behavior the API
// has always had for unrecognized filters.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// ParsePeriod normalizes a raw query value. An empty value defaults to the
// provided fallback so endpoints can keep their historical defaults
// (month for statistics summaries, all everywhere else).
func ParsePeriod(raw string, fallback Period) Period {
	switch Period(raw) {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodYear:
		return Period(raw)
	case PeriodAll:
		return PeriodAll
	default:
		if raw == "" {
			return fallback
		}
		return PeriodAll
	}
}

// ParseTimestampPeriod is the variant for the event logs (views and
// activities), which accept today/week/month/all only. year folds into all
// like any other unrecognized value; it is meaningful solely for the daily
// statistics endpoints.
func ParseTimestampPeriod(raw string, fallback Period) Period {
	p := ParsePeriod(raw, fallback)
	if p == PeriodYear {
		return PeriodAll
	}
	return p
}

// timestampFilter returns an "AND ..." predicate over a timestamp column.
// The fragments are fixed strings selected by the enum; no user input is ever
// concatenated into SQL.
func (p Period) timestampFilter(column string) string {
	switch p {
	case PeriodToday:
		return " AND " + column + "::date = CURRENT_DATE"
	case PeriodWeek:
		return " AND " + column + " >= NOW() - INTERVAL '7 days'"
	case PeriodMonth:
		return " AND " + column + " >= NOW() - INTERVAL '30 days'"
	case PeriodYear:
		return " AND " + column + " >= NOW() - INTERVAL '365 days'"
	default:
		return ""
	}
}

// dateFilter is the same mapping for a plain date column.
func (p Period) dateFilter(column string) string {
	switch p {
	case PeriodToday:
		return " AND " + column + " = CURRENT_DATE"
	case PeriodWeek:
		return " AND " + column + " >= CURRENT_DATE - INTERVAL '7 days'"
	case PeriodMonth:
		return " AND " + column + " >= CURRENT_DATE - INTERVAL '30 days'"
	case PeriodYear:
		return " AND " + column + " >= CURRENT_DATE - INTERVAL '365 days'"
	default:
		return ""
	}
}

// whereTimestampFilter is the standalone variant for queries with no other
// predicate (the global aggregations).
func (p Period) whereTimestampFilter(column string) string {
	f := p.timestampFilter(column)
	if f == "" {
		return ""
	}
	return " WHERE" + f[len(" AND"):]
}

func (p Period) whereDateFilter(column string) string {
	f := p.dateFilter(column)
	if f == "" {
		return ""
	}
	return " WHERE" + f[len(" AND"):]
}
