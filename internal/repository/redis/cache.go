package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/linklytics/linklytics/internal/domain"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned for an absent or expired key. Callers treat
// any other error the same way; the cache is advisory.
var ErrCacheMiss = errors.New("cache miss")

// Cache holds both the redirect fast-path entries and the memoized
// analytics payloads, each under its own key prefix and TTL.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) GetRedirect(ctx context.Context, slug string) (*domain.RedirectEntry, error) {
	key := fmt.Sprintf("redirect:%s", slug)

	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var entry domain.RedirectEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (c *Cache) SetRedirect(ctx context.Context, slug string, entry *domain.RedirectEntry, ttl time.Duration) error {
	key := fmt.Sprintf("redirect:%s", slug)

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// GetReport returns a memoized analytics payload verbatim. The bytes
// are what was stored, so two reads inside the TTL are byte-identical.
func (c *Cache) GetReport(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Cache) SetReport(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, payload, ttl).Err()
}
