// Package cooldown suppresses duplicate notification dispatches for the
// same item+location pair within a fixed window. It gates only the push
// dispatch; event logging is never affected by suppression.
package cooldown

import (
	"sync"
	"time"
)

// DefaultWindow is the minimum time between two dispatches for one key.
const DefaultWindow = 60 * time.Second

// Store persists last-fired timestamps by key. The in-memory store below
// is the default; the interface allows substituting a shared external
// store if cross-instance correctness is ever required.
type Store interface {
	Get(key string) (time.Time, bool)
	Set(key string, t time.Time)
}

type memoryStore struct {
	mu        sync.Mutex
	lastFired map[string]time.Time
}

// NewMemoryStore creates a process-local store. Entries live only for
// the life of the process and reset on restart.
func NewMemoryStore() Store {
	return &memoryStore{lastFired: make(map[string]time.Time)}
}

func (s *memoryStore) Get(key string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.lastFired[key]
	return t, ok
}

func (s *memoryStore) Set(key string, t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFired[key] = t
}

// Gate decides whether a notification for a key may fire.
type Gate struct {
	store  Store
	window time.Duration
}

// NewGate creates a gate over the given store. A non-positive window
// falls back to DefaultWindow.
func NewGate(store Store, window time.Duration) *Gate {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Gate{store: store, window: window}
}

// Key builds the composite cooldown key from the raw, unnormalized item
// and location values.
func Key(item, location string) string {
	return item + "|" + location
}

// ShouldSuppress reports whether a dispatch for key should be skipped.
// A key that has never fired is never suppressed.
func (g *Gate) ShouldSuppress(key string, now time.Time) bool {
	last, ok := g.store.Get(key)
	if !ok {
		return false
	}
	return now.Sub(last) < g.window
}

// RecordFired marks a dispatch attempt for key at the given time.
func (g *Gate) RecordFired(key string, now time.Time) {
	g.store.Set(key, now)
}
