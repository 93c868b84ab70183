// Package cache provides an in-process implementation of ports.Cache.
package cache

import (
	"context"
	"slices"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jsamuelsen/natal-chart-service/internal/domain"
	"github.com/jsamuelsen/natal-chart-service/internal/ports"
)

var _ ports.Cache = (*Memory)(nil)

// Memory is a TTL cache held in process memory. Values are copied on the
// way in and out, so callers may reuse their buffers.
type Memory struct {
	items *gocache.Cache
}

// NewMemory creates a cache whose entries live for defaultTTL unless Set
// says otherwise. Expired entries are swept every cleanup interval.
func NewMemory(defaultTTL, cleanup time.Duration) *Memory {
	return &Memory{items: gocache.New(defaultTTL, cleanup)}
}

// Get implements ports.Cache.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v, ok := m.items.Get(key)
	if !ok {
		return nil, domain.NewNotFoundError("cache entry", key)
	}

	b, ok := v.([]byte)
	if !ok {
		return nil, domain.NewNotFoundError("cache entry", key)
	}

	return slices.Clone(b), nil
}

// Set implements ports.Cache. A ttlSeconds of 0 or less uses the default TTL.
func (m *Memory) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ttl := gocache.DefaultExpiration
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}

	m.items.Set(key, slices.Clone(value), ttl)

	return nil
}

// Delete implements ports.Cache.
func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.items.Delete(key)

	return nil
}

// Len returns the number of entries, including expired ones not yet swept.
func (m *Memory) Len() int {
	return m.items.ItemCount()
}

// Flush drops every entry.
func (m *Memory) Flush() {
	m.items.Flush()
}
