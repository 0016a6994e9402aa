// Package session owns the bearer credential shared by every catalog
// request.
//
// The token is process-wide state with explicit load, set, and clear
// operations. Mutations are published to subscribers so the UI can react to
// sign-in and sign-out without polling.
package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/creativeDevHealer/fountain-pen-frontend/internal/logging"
)

// Event announces a token change. An empty Token means signed out.
type Event struct {
	Token string
}

// Store holds the session token. Safe for concurrent use; catalog requests
// read the token from command goroutines while the UI mutates it.
type Store struct {
	mu    sync.RWMutex
	token string
	path  string
	subs  []chan Event
}

// NewStore creates a Store that persists the token at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted token from disk. A missing file is not an error;
// it just means no session exists yet.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	s.token = strings.TrimSpace(string(data))
	s.mu.Unlock()
	return nil
}

// Token returns the current token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a session token is present.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// Set stores and persists a new token, then notifies subscribers.
func (s *Store) Set(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, []byte(token), 0600); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	logging.Info("session token set")
	s.publish(Event{Token: token})
	return nil
}

// Clear drops the token and removes it from disk, then notifies
// subscribers. Clearing an absent token is a no-op.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}

	s.mu.Lock()
	had := s.token != ""
	s.token = ""
	s.mu.Unlock()

	if had {
		logging.Info("session token cleared")
	}
	s.publish(Event{})
	return nil
}

// Subscribe returns a channel that receives future token changes. The
// channel is buffered; a subscriber that falls behind misses events rather
// than blocking the publisher.
func (s *Store) Subscribe() <-chan Event {
	ch := make(chan Event, 4)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

func (s *Store) publish(ev Event) {
	s.mu.RLock()
	subs := make([]chan Event, len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- ev:
		default:
			// Subscriber not keeping up; drop the event.
		}
	}
}
