// Package ui provides the Bubble Tea TUI for the collectibles dashboard.
package ui

import (
	"github.com/creativeDevHealer/fountain-pen-frontend/internal/model"
)

// ItemsLoaded is sent when a listing response comes back.
type ItemsLoaded struct {
	View    model.View
	Query   string
	FetchID string // fetch correlation ID
	Items   []model.Item
	Err     error
}

// StatsLoaded is sent when the aggregate counts come back. On error the
// previous counts stay on screen.
type StatsLoaded struct {
	Counts model.Counts
	Err    error
}

// SaveResult is sent when a saved-flag persist finishes.
type SaveResult struct {
	ID   string
	Item model.Item
	Err  error
}

// ViewedResult is sent when a viewed-flag persist finishes. Failures are
// logged and otherwise ignored.
type ViewedResult struct {
	ID  string
	Err error
}

// QuerySettledMsg fires when the debounce window for a query generation
// elapses. Ticks from superseded generations are discarded.
type QuerySettledMsg struct {
	Gen int
}

// RestoreScrollMsg re-applies the recorded scroll position for a view after
// freshly fetched items have been applied.
type RestoreScrollMsg struct {
	View model.View
}

// LoginResult is sent when an authentication attempt finishes. On success
// the token has already been stored in the session.
type LoginResult struct {
	Err error
}

// ChangeResult is sent when a credential change finishes. On success the
// session has been cleared and the user must sign in again.
type ChangeResult struct {
	Err error
}

// SessionChanged is sent when the session store publishes a token change.
// An empty Token means signed out.
type SessionChanged struct {
	Token string
}
