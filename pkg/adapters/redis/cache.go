// Package redis caches reservation search results in Redis.
package redis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/ecoguia/pkg/domain"
	"github.com/aretw0/ecoguia/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every cached search.
const DefaultPrefix = "ecoguia:search:"

// Cache implements ports.SearchCache using Redis.
// Results are stored as JSON strings with an optional TTL.
type Cache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

var _ ports.SearchCache = (*Cache)(nil)

type Option func(*Cache)

// WithTTL sets the expiration of cached results. Zero means no expiration.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// New creates a Redis cache connected to address.
func New(address, password string, db int, opts ...Option) *Cache {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Cache {
	c := &Cache{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) key(query string) string {
	return c.prefix + query
}

// Get returns the cached results for key. The boolean is false on a miss.
func (c *Cache) Get(ctx context.Context, key string) ([]domain.Record, bool, error) {
	val, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read from redis: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(val))
	dec.UseNumber()
	var records []domain.Record
	if err := dec.Decode(&records); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached results: %w", err)
	}
	if records == nil {
		records = []domain.Record{}
	}
	return records, true, nil
}

// Set stores results for key, empty results included.
func (c *Cache) Set(ctx context.Context, key string, records []domain.Record) error {
	if records == nil {
		records = []domain.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := c.client.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}
