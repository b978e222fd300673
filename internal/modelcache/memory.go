package modelcache

import (
	"errors"
	"sync"

	"sentiment/internal/bayes"
	"sentiment/internal/vectorizer"
)

// Entry is a fitted vectorizer and the model trained on its columns.
type Entry struct {
	Vectorizer *vectorizer.Counter
	Model      *bayes.Model
}

// Store is an in-memory cache of fitted models keyed by corpus fingerprint.
// Entries are never mutated after Put, so readers share them freely.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewStore() *Store { return &Store{entries: make(map[string]Entry)} }

func (s *Store) Get(key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return e, ok
}

func (s *Store) Put(key string, e Entry) error {
	if key == "" {
		return errors.New("empty cache key")
	}
	if e.Vectorizer == nil || e.Model == nil {
		return errors.New("incomplete cache entry")
	}
	if e.Vectorizer.Dimension() != e.Model.Dimension() {
		return errors.New("vectorizer and model dimension mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = e
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]Entry)
}
