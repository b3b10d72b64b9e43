package memory

// Package memory provides in-process adapters used when no external store is configured.

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/target/mmk-ui-gate/internal/ports"
)

// SessionRecordStore keeps session records in a map. Expired records are
// dropped lazily on Get, matching the Redis store's observable behaviour.
type SessionRecordStore struct {
	mu      sync.Mutex
	records map[string]ports.SessionRecord
	now     func() time.Time
}

// NewSessionRecordStore creates an empty store. A nil now uses time.Now.
func NewSessionRecordStore(now func() time.Time) *SessionRecordStore {
	if now == nil {
		now = time.Now
	}
	return &SessionRecordStore{records: make(map[string]ports.SessionRecord), now: now}
}

func (s *SessionRecordStore) Save(_ context.Context, rec ports.SessionRecord) error {
	if rec.Session.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	if !rec.ExpiresAt.After(s.now()) {
		return errors.New("session is expired")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Session.ID] = rec
	return nil
}

func (s *SessionRecordStore) Get(_ context.Context, id string) (ports.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return ports.SessionRecord{}, ports.ErrSessionRecordNotFound
	}
	if s.now().After(rec.ExpiresAt) {
		delete(s.records, id)
		return ports.SessionRecord{}, ports.ErrSessionRecordNotFound
	}
	return rec, nil
}

func (s *SessionRecordStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

// Len returns the number of records held, expired or not.
func (s *SessionRecordStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
