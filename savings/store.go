package savings

import (
	"sync"
	"time"
)

// Store holds the current enriched dataset for the server. The dataset is
// replaced wholesale on reload, never mutated, so readers can keep using
// the handle they grabbed.
type Store struct {
	mu       sync.RWMutex
	dataset  *Dataset
	loadedAt time.Time
	onReload []func(*Dataset)
}

func NewStore() *Store {
	return &Store{}
}

// Set installs a freshly enriched dataset and notifies reload listeners.
func (s *Store) Set(d *Dataset) {
	s.mu.Lock()
	s.dataset = d
	s.loadedAt = time.Now().UTC()
	listeners := make([]func(*Dataset), len(s.onReload))
	copy(listeners, s.onReload)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(d)
	}
}

// Dataset returns the current handle, possibly nil before the first load.
func (s *Store) Dataset() *Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// OnReload registers a callback invoked after every Set.
func (s *Store) OnReload(fn func(*Dataset)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReload = append(s.onReload, fn)
}
