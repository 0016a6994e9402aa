// Package filter provides pure classification functions for items.
// All functions are simple: []Item in, []Item out. No side effects beyond
// diagnostics for malformed data.
package filter

import (
	"time"

	"github.com/creativeDevHealer/fountain-pen-frontend/internal/logging"
	"github.com/creativeDevHealer/fountain-pen-frontend/internal/model"
)

// ResolveCreation returns the raw creation timestamp for an item,
// substituting the current instant when the item carries neither createdAt
// nor date. The substitution keeps fresh listings from vanishing out of the
// date-windowed views; it is logged as a data-quality warning.
func ResolveCreation(it model.Item, now time.Time) string {
	if ts, ok := it.CreationTimestamp(); ok {
		return ts
	}
	logging.Warn("item missing creation timestamp", "id", it.ID, "name", it.Name)
	return now.Format(time.RFC3339)
}

// ForView returns the subsequence of items visible under the given view.
// Ordering from the listing response is preserved. The saved view ignores
// dates entirely; the date-windowed views classify each item by its resolved
// creation timestamp.
func ForView(items []model.Item, view model.View, now time.Time) []model.Item {
	if len(items) == 0 {
		return []model.Item{}
	}

	result := make([]model.Item, 0, len(items))
	for _, it := range items {
		if Matches(it, view, now) {
			result = append(result, it)
		}
	}
	return result
}

// Matches reports whether a single item belongs in the given view at the
// given instant.
func Matches(it model.Item, view model.View, now time.Time) bool {
	switch view {
	case model.ViewSaved:
		return it.Saved
	case model.ViewToday:
		return IsToday(ResolveCreation(it, now), now)
	case model.ViewLast3Days:
		return IsLast3Days(ResolveCreation(it, now), now)
	}
	return false
}
