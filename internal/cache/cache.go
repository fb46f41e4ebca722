// Package cache keeps the results of earlier queries so repeated queries
// against the same sequences skip the tree walk.
package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/go-redis/redis/v8"
	"github.com/sbliven/biojava-sub014/config"
)

// KeyNotFound is returned for a key that is not in the cache.
type KeyNotFound struct {
	Key string
}

func (e KeyNotFound) Error() string {
	return e.Key + " not found"
}

// KeyExpired is returned for a key whose entry outlived the expiry.
type KeyExpired struct {
	Key string
}

func (e KeyExpired) Error() string {
	return e.Key + " expired"
}

// CacheIsFull is returned when a new key would exceed the cache's size.
type CacheIsFull struct{}

func (e CacheIsFull) Error() string {
	return "cache is full"
}

// Cache stores encoded query results by key.
type Cache interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Exists(key string) bool
	Remove(key string) error
	Full() bool
}

// New returns the cache conf asks for, nil if caching is off.
func New(conf config.CacheConfig) (Cache, error) {
	expire := time.Duration(conf.Expire) * time.Second

	switch strings.ToLower(conf.Backend) {
	case "", "none":
		return nil, nil
	case "memory":
		return NewMemoryCache(expire, conf.MaxCount), nil
	case "redis":
		return NewRedisCache(conf.Addr, conf.Password, conf.DB, expire), nil
	case "memcache":
		return NewMemcacheCache(strings.Split(conf.Addr, ","), int32(conf.Expire)), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q, use one of none, memory, redis or memcache", conf.Backend)
}

// Key hashes parts into a key safe for every backend.
func Key(parts ...string) string {
	sum := md5.Sum([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}

type entry struct {
	value  []byte
	expire time.Time
}

// MemoryCache is an in process cache. It is safe for concurrent use.
type MemoryCache struct {
	backend  map[string]entry
	expire   time.Duration
	maxCount int
	mu       sync.RWMutex
}

// NewMemoryCache returns a cache whose entries live for expire and which
// holds at most maxCount entries, no limit if maxCount is 0.
func NewMemoryCache(expire time.Duration, maxCount int) *MemoryCache {
	return &MemoryCache{
		backend:  make(map[string]entry),
		expire:   expire,
		maxCount: maxCount,
	}
}

// Get returns the value stored under key.
func (c *MemoryCache) Get(key string) ([]byte, error) {
	c.mu.RLock()
	e, ok := c.backend[key]
	c.mu.RUnlock()
	if !ok {
		return nil, KeyNotFound{key}
	}

	if e.expire.Before(time.Now()) {
		c.Remove(key)
		return nil, KeyExpired{key}
	}

	return e.value, nil
}

// Set stores value under key.
func (c *MemoryCache) Set(key string, value []byte) error {
	if c.Full() && !c.Exists(key) {
		return CacheIsFull{}
	}

	c.mu.Lock()
	c.backend[key] = entry{value: value, expire: time.Now().Add(c.expire)}
	c.mu.Unlock()
	return nil
}

// Remove deletes key.
func (c *MemoryCache) Remove(key string) error {
	c.mu.Lock()
	delete(c.backend, key)
	c.mu.Unlock()
	return nil
}

// Exists reports whether key is stored, expired or not.
func (c *MemoryCache) Exists(key string) bool {
	c.mu.RLock()
	_, ok := c.backend[key]
	c.mu.RUnlock()
	return ok
}

// Length returns the number of entries stored.
func (c *MemoryCache) Length() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.backend)
}

// Full reports whether the cache holds its maximum number of entries.
func (c *MemoryCache) Full() bool {
	// if maxCount is zero the cache is never full
	if c.maxCount == 0 {
		return false
	}
	return c.Length() >= c.maxCount
}

// RedisCache keeps entries in a redis server.
type RedisCache struct {
	backend *redis.Client
	expire  time.Duration
	timeout time.Duration
}

// NewRedisCache connects lazily to the redis server at addr.
func NewRedisCache(addr, password string, db int, expire time.Duration) *RedisCache {
	return &RedisCache{
		backend: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		expire:  expire,
		timeout: time.Second,
	}
}

func (r *RedisCache) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.timeout)
}

// Get returns the value stored under key.
func (r *RedisCache) Get(key string) ([]byte, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	value, err := r.backend.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, KeyNotFound{key}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s from redis: %v", key, err)
	}
	return value, nil
}

// Set stores value under key.
func (r *RedisCache) Set(key string, value []byte) error {
	ctx, cancel := r.ctx()
	defer cancel()

	return r.backend.Set(ctx, key, value, r.expire).Err()
}

// Exists reports whether key is stored.
func (r *RedisCache) Exists(key string) bool {
	ctx, cancel := r.ctx()
	defer cancel()

	n, err := r.backend.Exists(ctx, key).Result()
	return err == nil && n > 0
}

// Remove deletes key.
func (r *RedisCache) Remove(key string) error {
	ctx, cancel := r.ctx()
	defer cancel()

	return r.backend.Del(ctx, key).Err()
}

// Full is always false, redis evicts by its own policy.
func (r *RedisCache) Full() bool {
	return false
}

// MemcacheCache keeps entries in memcached servers.
type MemcacheCache struct {
	backend *memcache.Client
	expire  int32
}

// NewMemcacheCache returns a cache over servers whose entries live for
// expire seconds.
func NewMemcacheCache(servers []string, expire int32) *MemcacheCache {
	return &MemcacheCache{
		backend: memcache.New(servers...),
		expire:  expire,
	}
}

// Get returns the value stored under key.
func (m *MemcacheCache) Get(key string) ([]byte, error) {
	item, err := m.backend.Get(key)
	if err == memcache.ErrCacheMiss {
		return nil, KeyNotFound{key}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s from memcache: %v", key, err)
	}
	return item.Value, nil
}

// Set stores value under key.
func (m *MemcacheCache) Set(key string, value []byte) error {
	return m.backend.Set(&memcache.Item{Key: key, Value: value, Expiration: m.expire})
}

// Exists reports whether key is stored.
func (m *MemcacheCache) Exists(key string) bool {
	_, err := m.backend.Get(key)
	return err == nil
}

// Remove deletes key.
func (m *MemcacheCache) Remove(key string) error {
	if err := m.backend.Delete(key); err != nil && err != memcache.ErrCacheMiss {
		return err
	}
	return nil
}

// Full is always false, memcached evicts least recently used entries.
func (m *MemcacheCache) Full() bool {
	return false
}
