package cartsync

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/mobishop/mobishop-backend/pkg/redis"
)

type markerClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartSyncKey(sessionID string) string
}

// RedisStateStore keeps sync markers in redis with a TTL.
type RedisStateStore struct {
	client markerClient
	ttl    time.Duration
}

func NewRedisStateStore(client markerClient, ttl time.Duration) *RedisStateStore {
	return &RedisStateStore{client: client, ttl: ttl}
}

func (s *RedisStateStore) Load(ctx context.Context, sessionID string) (*SyncMarker, error) {
	raw, err := s.client.Get(ctx, s.client.CartSyncKey(sessionID))
	if err != nil {
		if redis.IsNil(err) {
			return nil, nil
		}
		return nil, err
	}
	var marker SyncMarker
	if err := json.Unmarshal([]byte(raw), &marker); err != nil {
		return nil, fmt.Errorf("decode sync marker: %w", err)
	}
	return &marker, nil
}

func (s *RedisStateStore) Save(ctx context.Context, sessionID string, marker SyncMarker) error {
	body, err := json.Marshal(marker)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.client.CartSyncKey(sessionID), string(body), s.ttl)
}

func (s *RedisStateStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.client.CartSyncKey(sessionID))
}

// MemoryStateStore is a process-local StateStore for single-instance
// deployments without redis.
type MemoryStateStore struct {
	mu      sync.Mutex
	markers map[string]SyncMarker
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{markers: map[string]SyncMarker{}}
}

func (s *MemoryStateStore) Load(_ context.Context, sessionID string) (*SyncMarker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	marker, ok := s.markers[sessionID]
	if !ok {
		return nil, nil
	}
	return &marker, nil
}

func (s *MemoryStateStore) Save(_ context.Context, sessionID string, marker SyncMarker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markers[sessionID] = marker
	return nil
}

func (s *MemoryStateStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.markers, sessionID)
	return nil
}
