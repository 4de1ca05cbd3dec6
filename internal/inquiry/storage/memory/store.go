// Package memory provides an in-process wizard session store.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/louisbranch/voicebridge/internal/inquiry"
)

type entry struct {
	state     inquiry.State
	updatedAt time.Time
}

// Store keeps wizard states in a mutex-guarded map. Contents are lost on
// restart.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewStore returns an empty store. A nil clock uses time.Now.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{entries: make(map[string]entry), now: now}
}

// Get implements inquiry.Store.
func (s *Store) Get(_ context.Context, id string) (inquiry.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return inquiry.State{}, inquiry.ErrStateNotFound
	}
	return e.state.Clone(), nil
}

// Put implements inquiry.Store.
func (s *Store) Put(_ context.Context, id string, state inquiry.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.entries[id]
	if ok && existing.state.Submitting {
		return inquiry.ErrSubmissionInProgress
	}
	state = state.Clone()
	state.Submitting = false
	s.entries[id] = entry{state: state, updatedAt: s.now()}
	return nil
}

// Delete implements inquiry.Store.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// BeginSubmit implements inquiry.Store.
func (s *Store) BeginSubmit(_ context.Context, id string) (inquiry.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return inquiry.State{}, inquiry.ErrStateNotFound
	}
	if e.state.Submitting {
		return inquiry.State{}, inquiry.ErrSubmissionInProgress
	}
	e.state.Submitting = true
	e.updatedAt = s.now()
	s.entries[id] = e
	return e.state.Clone(), nil
}

// EndSubmit implements inquiry.Store.
func (s *Store) EndSubmit(_ context.Context, id string, reset bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return inquiry.ErrStateNotFound
	}
	if reset {
		e.state = inquiry.NewState()
	}
	e.state.Submitting = false
	e.updatedAt = s.now()
	s.entries[id] = e
	return nil
}

// Purge implements inquiry.Store. Sessions with a submission in flight are
// kept.
func (s *Store) Purge(_ context.Context, idleBefore time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.entries {
		if e.state.Submitting || !e.updatedAt.Before(idleBefore) {
			continue
		}
		delete(s.entries, id)
		removed++
	}
	return removed, nil
}

// Len returns the number of stored sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
