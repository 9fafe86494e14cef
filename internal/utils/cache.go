package utils

import (
	"os"
	"sync"
	"time"
)

// CacheItem represents a cached item with metadata for invalidation
type CacheItem[T any] struct {
	Value   T
	ModTime time.Time
	Size    int64
}

// Cache provides a generic, concurrency-safe cache with optional
// file-based invalidation
type Cache[K comparable, V any] struct {
	items map[K]*CacheItem[V]
	mutex sync.RWMutex

	// loading guards GetOrLoad so each key is computed at most once
	// while a load for it is in flight
	loading map[K]*pendingLoad[V]
}

type pendingLoad[V any] struct {
	done  chan struct{}
	value V
	err   error
}

// NewCache creates a new generic cache
func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items:   make(map[K]*CacheItem[V]),
		loading: make(map[K]*pendingLoad[V]),
	}
}

// Get retrieves an item from the cache
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if item, exists := c.items[key]; exists {
		return item.Value, true
	}

	var zero V
	return zero, false
}

// GetOrLoad returns the cached value for key, calling load to compute it on
// a miss. Concurrent callers for the same key wait for the first load.
// Failed loads are not cached.
func (c *Cache[K, V]) GetOrLoad(key K, load func() (V, error)) (V, error) {
	c.mutex.Lock()
	if item, exists := c.items[key]; exists {
		c.mutex.Unlock()
		return item.Value, nil
	}
	if pending, inFlight := c.loading[key]; inFlight {
		c.mutex.Unlock()
		<-pending.done
		return pending.value, pending.err
	}
	pending := &pendingLoad[V]{done: make(chan struct{})}
	c.loading[key] = pending
	c.mutex.Unlock()

	pending.value, pending.err = load()

	c.mutex.Lock()
	delete(c.loading, key)
	if pending.err == nil {
		c.items[key] = &CacheItem[V]{Value: pending.value}
	}
	c.mutex.Unlock()
	close(pending.done)

	return pending.value, pending.err
}

// GetWithFileValidation retrieves an item from the cache with file-based validation
// If the file has been modified since caching, the item is removed and false is returned
func (c *Cache[K, V]) GetWithFileValidation(key K, filePath string) (V, bool) {
	c.mutex.RLock()
	item, exists := c.items[key]
	c.mutex.RUnlock()

	if !exists {
		var zero V
		return zero, false
	}

	if stat, err := os.Stat(filePath); err == nil {
		if stat.ModTime().Equal(item.ModTime) && stat.Size() == item.Size {
			return item.Value, true
		}
	}

	// File changed or vanished
	c.mutex.Lock()
	delete(c.items, key)
	c.mutex.Unlock()

	var zero V
	return zero, false
}

// Set stores an item in the cache
func (c *Cache[K, V]) Set(key K, value V) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[key] = &CacheItem[V]{
		Value: value,
	}
}

// SetWithFileInfo stores an item in the cache with file metadata for validation
func (c *Cache[K, V]) SetWithFileInfo(key K, value V, filePath string) error {
	stat, err := os.Stat(filePath)
	if err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[key] = &CacheItem[V]{
		Value:   value,
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
	}

	return nil
}

// Delete removes an item from the cache
func (c *Cache[K, V]) Delete(key K) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.items, key)
}

// Clear removes all items from the cache
func (c *Cache[K, V]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items = make(map[K]*CacheItem[V])
}

// Size returns the number of items in the cache
func (c *Cache[K, V]) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.items)
}

// Keys returns all keys in the cache
func (c *Cache[K, V]) Keys() []K {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	keys := make([]K, 0, len(c.items))
	for key := range c.items {
		keys = append(keys, key)
	}

	return keys
}
