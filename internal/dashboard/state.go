// Package dashboard holds the client-side state behind the collectibles
// dashboard: the active view, the item set from the last successful listing,
// the aggregate counts, the debounced search query, and the per-view scroll
// offsets.
//
// All mutation happens on the UI event loop. State is not safe for
// concurrent use; network results re-enter through messages, never through
// direct calls from other goroutines.
package dashboard

import (
	"strings"
	"time"

	"github.com/creativeDevHealer/fountain-pen-frontend/internal/filter"
	"github.com/creativeDevHealer/fountain-pen-frontend/internal/logging"
	"github.com/creativeDevHealer/fountain-pen-frontend/internal/model"
)

// State is the single source of truth for what the dashboard shows.
type State struct {
	view   model.View
	items  []model.Item
	counts model.Counts

	// Search debouncing. Every edit bumps the generation; only the tick
	// carrying the latest generation settles the query.
	rawQuery     string
	settledQuery string
	queryGen     int

	// Scroll offsets recorded per view when the user navigates away.
	scroll map[model.View]int
}

// New creates a State positioned on the today view with nothing loaded.
func New() *State {
	return &State{
		view:   model.ViewToday,
		items:  []model.Item{},
		scroll: make(map[model.View]int),
	}
}

// ActiveView returns the currently selected view.
func (s *State) ActiveView() model.View {
	return s.view
}

// SetView switches the active view. Switching does not touch the item set;
// the caller refetches and the stale set keeps rendering until the response
// lands.
func (s *State) SetView(v model.View) {
	s.view = v
}

// RecordScroll remembers the scroll offset for a view so it can be restored
// when the user returns.
func (s *State) RecordScroll(v model.View, offset int) {
	s.scroll[v] = offset
}

// ScrollOffset returns the recorded offset for a view, zero if the view has
// never been left.
func (s *State) ScrollOffset(v model.View) int {
	return s.scroll[v]
}

// Items returns the raw item set from the last successful listing.
func (s *State) Items() []model.Item {
	return s.items
}

// SetItems replaces the item set wholesale with a listing response.
func (s *State) SetItems(items []model.Item) {
	if items == nil {
		items = []model.Item{}
	}
	s.items = items
}

// Counts returns the last known aggregate totals.
func (s *State) Counts() model.Counts {
	return s.counts
}

// SetCounts replaces the aggregate totals.
func (s *State) SetCounts(c model.Counts) {
	s.counts = c
}

// Visible derives the items to display under the active view at the given
// instant. Response ordering is preserved.
func (s *State) Visible(now time.Time) []model.Item {
	return filter.ForView(s.items, s.view, now)
}

// QueryEdited records a keystroke-level change to the search text and
// returns the new generation. The caller schedules a settle tick carrying
// that generation; ticks from superseded generations must be discarded.
func (s *State) QueryEdited(text string) int {
	s.rawQuery = text
	s.queryGen++
	return s.queryGen
}

// QuerySettled applies the debounce tick for a generation. Stale
// generations are ignored. changed reports whether the settled query
// actually differs from the previous one, so an edit that lands back on the
// same trimmed text does not trigger a refetch.
func (s *State) QuerySettled(gen int) (changed bool) {
	if gen != s.queryGen {
		return false
	}
	settled := strings.TrimSpace(s.rawQuery)
	if settled == s.settledQuery {
		return false
	}
	s.settledQuery = settled
	return true
}

// Query returns the settled search query, "" when inactive.
func (s *State) Query() string {
	return s.settledQuery
}

// RawQuery returns the search text as typed, before debouncing.
func (s *State) RawQuery() string {
	return s.rawQuery
}

// ItemByID finds an item in the raw set.
func (s *State) ItemByID(id string) (model.Item, bool) {
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}

// ToggleSaved flips the saved flag locally and returns the item with the
// new value applied, ready to be persisted. The flip is optimistic: it
// happens before any network activity, and a failed persist does not roll
// it back. ok is false when the id is not in the current set.
func (s *State) ToggleSaved(id string) (model.Item, bool) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Saved = !s.items[i].Saved
			return s.items[i], true
		}
	}
	return model.Item{}, false
}

// ApplySaveResult reconciles a successful saved-flag persist with the
// server's copy of the item. When the saved view is active and the item is
// no longer saved, the item is pruned from the raw set. removed reports
// whether that pruning happened.
//
// The viewed flag is monotonic client-side: a stale server copy never
// clears it.
func (s *State) ApplySaveResult(item model.Item) (removed bool) {
	for i := range s.items {
		if s.items[i].ID != item.ID {
			continue
		}
		if s.items[i].Viewed {
			item.Viewed = true
		}
		if s.view == model.ViewSaved && !item.Saved {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
		s.items[i] = item
		return false
	}
	logging.Debug("save result for item not in set", "id", item.ID)
	return false
}

// MarkViewed sets the viewed flag locally. Viewed only ever goes from false
// to true.
func (s *State) MarkViewed(id string) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Viewed = true
			return
		}
	}
}
