package redis

// Package redis provides Redis-backed adapters for the development auth endpoint.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/target/mmk-ui-gate/internal/ports"
)

// SessionRecordStore keeps issued session records in Redis.
// The key TTL follows the record's ExpiresAt, so an expired session simply disappears.
type SessionRecordStore struct {
	client redis.UniversalClient
	prefix string
}

// ErrNotFound is returned when a record is unknown or has expired.
var ErrNotFound = ports.ErrSessionRecordNotFound

// NewSessionRecordStore creates a store using the default "gate:session:" key prefix.
func NewSessionRecordStore(client redis.UniversalClient) *SessionRecordStore {
	return NewSessionRecordStoreWithPrefix(client, "gate:session:")
}

// NewSessionRecordStoreWithPrefix creates a store with a custom key prefix.
func NewSessionRecordStoreWithPrefix(client redis.UniversalClient, prefix string) *SessionRecordStore {
	return &SessionRecordStore{client: client, prefix: prefix}
}

func (s *SessionRecordStore) Save(ctx context.Context, rec ports.SessionRecord) error {
	if rec.Session.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session is expired")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}
	return s.client.Set(ctx, s.prefix+rec.Session.ID, data, ttl).Err()
}

func (s *SessionRecordStore) Get(ctx context.Context, id string) (ports.SessionRecord, error) {
	if id == "" {
		return ports.SessionRecord{}, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ports.SessionRecord{}, ErrNotFound
		}
		return ports.SessionRecord{}, fmt.Errorf("redis get: %w", err)
	}

	var rec ports.SessionRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return ports.SessionRecord{}, fmt.Errorf("unmarshal session record: %w", err)
	}

	// Redis expiry has millisecond granularity; the record's own deadline is authoritative.
	if time.Now().After(rec.ExpiresAt) {
		if err := s.Delete(ctx, id); err != nil {
			return ports.SessionRecord{}, fmt.Errorf("cleanup expired session: %w", err)
		}
		return ports.SessionRecord{}, ErrNotFound
	}
	return rec, nil
}

func (s *SessionRecordStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+id).Err()
}
