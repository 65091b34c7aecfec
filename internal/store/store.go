// Package store holds the single source of truth for the current mood and
// fans out changes to any number of subscribers as a last-value broadcast:
// every subscriber eventually observes the latest mood, but a subscriber that
// falls behind skips intermediate values instead of queueing them.
package store

import (
	"context"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/emotibot/moodrelay/internal/mood"
)

// Store is a version-stamped mood cell safe for concurrent readers, writers
// and waiters. The version strictly increases by one per Set, starting at 0
// for the initial mood, and is always updated together with the value.
type Store struct {
	clock clockwork.Clock

	mu      sync.RWMutex
	current mood.Mood
	version uint64
	changed chan struct{} // closed and replaced on every Set
}

// New creates a store holding the initial mood at version 0, stamped from the
// given clock.
func New(initial string, clock clockwork.Clock) *Store {
	return &Store{
		clock:   clock,
		current: mood.At(initial, clock.Now()),
		changed: make(chan struct{}),
	}
}

// Read returns the current mood snapshot. It never blocks.
func (s *Store) Read() mood.Mood {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Version returns the current version counter.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Set installs a new mood snapshot, increments the version and wakes every
// blocked WaitNewerThan call. It returns the new snapshot. Waking is a single
// channel close, so Set never blocks on subscribers regardless of their count
// or speed.
func (s *Store) Set(value string) mood.Mood {
	m := mood.At(value, s.clock.Now())

	s.mu.Lock()
	s.current = m
	s.version++
	close(s.changed)
	s.changed = make(chan struct{})
	s.mu.Unlock()

	return m
}

// WaitNewerThan blocks until the store's version exceeds known, then returns
// the current snapshot and its version. If the version is already newer it
// returns immediately. Cancelling ctx makes the wait return promptly with
// ctx.Err() and leaves nothing registered in the store.
//
// The change channel is captured under the same lock that checks the version,
// so a Set racing with the start of a wait is never missed: either the check
// sees the new version, or the captured channel is the one Set closes.
func (s *Store) WaitNewerThan(ctx context.Context, known uint64) (mood.Mood, uint64, error) {
	for {
		s.mu.RLock()
		if s.version > known {
			m, v := s.current, s.version
			s.mu.RUnlock()
			return m, v, nil
		}
		changed := s.changed
		s.mu.RUnlock()

		select {
		case <-changed:
		case <-ctx.Done():
			return mood.Mood{}, 0, ctx.Err()
		}
	}
}

// Subscribe captures the current snapshot and version and returns a stream
// whose first element is that snapshot. The store keeps no reference to the
// stream; dropping it needs no cleanup and can never delay a writer.
func (s *Store) Subscribe() *Stream {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &Stream{
		store:   s,
		initial: s.current,
		last:    s.version,
	}
}
