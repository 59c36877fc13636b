// Package ristretto backs the cache port with an in-process ristretto
// instance. Its main consumer is the chatbot ownership lookup, which runs on
// every block operation, so entries are small (a uuid mapped to a uuid) and
// short-lived.
package ristretto

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Cache is a byte-value cache with per-entry TTLs. Cost accounting uses the
// value length, so maxCostBytes bounds the total cached payload size.
type Cache struct {
	c *ristretto.Cache[string, []byte]
}

func New(maxCostBytes int64) (*Cache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		// Counters sized for ~10x the expected entry count at an
		// average cost of 100 bytes per entry.
		NumCounters: maxCostBytes / 100 * 10,
		MaxCost:     maxCostBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{c: c}, nil
}

// Get reports whether key was present. Ristretto reads cannot fail; the
// error return satisfies the port interface.
func (c *Cache) Get(_ context.Context, key string) (data []byte, ok bool, err error) {
	val, found := c.c.Get(key)
	if !found {
		return nil, false, nil
	}
	return val, true, nil
}

// Set stores value under key for at most ttl. Admission is best-effort;
// a rejected write is indistinguishable from an eviction.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.c.SetWithTTL(key, value, int64(len(value)), ttl)
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.c.Del(key)
	return nil
}

func (c *Cache) Close() {
	c.c.Close()
}
