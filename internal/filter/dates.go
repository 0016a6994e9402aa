package filter

import (
	"time"

	"github.com/creativeDevHealer/fountain-pen-frontend/internal/logging"
)

// timestampFormats are the wire formats accepted for item timestamps, tried
// in order. Zone-less formats are interpreted in local time to match the
// calendar-day semantics of the views.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a raw item timestamp. ok is false when no known
// format matches.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampFormats {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsToday reports whether ts falls on the same local calendar day as now.
// Unparseable timestamps classify as false and are logged, never fatal.
func IsToday(ts string, now time.Time) bool {
	t, ok := ParseTimestamp(ts)
	if !ok {
		logging.Warn("unparseable item timestamp", "value", ts)
		return false
	}
	t = t.In(now.Location())
	y1, m1, d1 := t.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsLast3Days reports whether ts falls within the window from the start of
// the local day three days before now through the end of the current local
// day, inclusive on both ends. Today's items are inside the window, so the
// last-3-days view is a superset of the today view.
func IsLast3Days(ts string, now time.Time) bool {
	t, ok := ParseTimestamp(ts)
	if !ok {
		logging.Warn("unparseable item timestamp", "value", ts)
		return false
	}
	t = t.In(now.Location())

	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -3)
	end := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), now.Location())

	return !t.Before(start) && !t.After(end)
}
