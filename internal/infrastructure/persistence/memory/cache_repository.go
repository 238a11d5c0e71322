// Package memory provides an in-memory cache repository used when Redis
// is disabled, typically in development and tests.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/receitario/v1/internal/ports/outbound"
)

// ErrCacheMiss is returned for missing or expired keys
var ErrCacheMiss = errors.New("cache: key not found")

type cacheItem struct {
	value     []byte
	expiresAt time.Time
}

// CacheRepository implements the cache repository interface in memory
type CacheRepository struct {
	mutex    sync.RWMutex
	data     map[string]cacheItem
	counters map[string]int64
	sets     map[string]map[string]struct{}
}

// NewCacheRepository creates a new in-memory cache repository
func NewCacheRepository() outbound.CacheRepository {
	repo := &CacheRepository{
		data:     make(map[string]cacheItem),
		counters: make(map[string]int64),
		sets:     make(map[string]map[string]struct{}),
	}

	go repo.cleanup()

	return repo
}

// Get retrieves a value from cache
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mutex.RLock()
	item, exists := r.data[key]
	r.mutex.RUnlock()

	if !exists || (!item.expiresAt.IsZero() && time.Now().After(item.expiresAt)) {
		return nil, ErrCacheMiss
	}
	return item.value, nil
}

// Set stores a value with TTL; zero TTL means no expiry
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	item := cacheItem{value: value}
	if ttl > 0 {
		item.expiresAt = time.Now().Add(ttl)
	}
	r.data[key] = item
	return nil
}

// Delete removes a value from cache
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.data, key)
	return nil
}

// Exists checks if a key exists
func (r *CacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, err := r.Get(ctx, key)
	if errors.Is(err, ErrCacheMiss) {
		return false, nil
	}
	return err == nil, err
}

// Increment atomically increments a counter
func (r *CacheRepository) Increment(ctx context.Context, key string) (int64, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.counters[key]++
	return r.counters[key], nil
}

// SAdd adds members to a set
func (r *CacheRepository) SAdd(ctx context.Context, key string, members ...string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	set, ok := r.sets[key]
	if !ok {
		set = make(map[string]struct{})
		r.sets[key] = set
	}
	for _, m := range members {
		set[m] = struct{}{}
	}
	return nil
}

// SMembers retrieves all members of a set
func (r *CacheRepository) SMembers(ctx context.Context, key string) ([]string, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	set := r.sets[key]
	members := make([]string, 0, len(set))
	for m := range set {
		members = append(members, m)
	}
	return members, nil
}

// SRem removes members from a set
func (r *CacheRepository) SRem(ctx context.Context, key string, members ...string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	set, ok := r.sets[key]
	if !ok {
		return nil
	}
	for _, m := range members {
		delete(set, m)
	}
	return nil
}

// cleanup periodically drops expired entries
func (r *CacheRepository) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		r.mutex.Lock()
		for key, item := range r.data {
			if !item.expiresAt.IsZero() && now.After(item.expiresAt) {
				delete(r.data, key)
			}
		}
		r.mutex.Unlock()
	}
}
