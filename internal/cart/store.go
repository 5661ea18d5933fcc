package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"

	"caffenio/internal/domain"
)

// Store is the durable key-value slot the cart saves itself to on every
// mutation, so an in-progress order survives a kiosk reload.
type Store interface {
	// Load returns the saved items, or ok=false when the slot is empty.
	Load(ctx context.Context) (items []domain.CartItem, ok bool, err error)
	Save(ctx context.Context, items []domain.CartItem) error
	Delete(ctx context.Context) error
}

// RedisStore persists the cart as a JSON blob under a per-kiosk key.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, kioskID string) *RedisStore {
	return &RedisStore{client: client, key: fmt.Sprintf("cart:%s", kioskID)}
}

var _ Store = (*RedisStore)(nil)

func (s *RedisStore) Load(ctx context.Context) ([]domain.CartItem, bool, error) {
	data, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var items []domain.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (s *RedisStore) Save(ctx context.Context, items []domain.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, data, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}

// MemoryStore keeps the slot in process memory. Fallback when redis is not
// configured, and the store tests run against.
type MemoryStore struct {
	mu    sync.Mutex
	items []domain.CartItem
	saved bool
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

var _ Store = (*MemoryStore)(nil)

func (s *MemoryStore) Load(ctx context.Context) ([]domain.CartItem, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved {
		return nil, false, nil
	}
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out, true, nil
}

func (s *MemoryStore) Save(ctx context.Context, items []domain.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]domain.CartItem, len(items))
	copy(s.items, items)
	s.saved = true
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.saved = false
	return nil
}
