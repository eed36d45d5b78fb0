package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"smartclinic-backend/internal/platform/redis"
)

// Service is a thin JSON cache over Redis used in front of read-mostly
// catalog queries. Cache failures are reported to callers, which degrade
// to direct reads.
type Service struct {
	client *redis.Client
}

func NewService(client *redis.Client) *Service {
	return &Service{client: client}
}

func (c *Service) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(data), dest)
}

func (c *Service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return c.client.Set(ctx, key, string(data), ttl).Err()
}

func (c *Service) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *Service) DeletePattern(ctx context.Context, pattern string) error {
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return c.client.Del(ctx, keys...).Err()
	}

	return nil
}

// InvalidateCatalog drops cached catalog pages and category lists after
// curation updates content.
func (c *Service) InvalidateCatalog(ctx context.Context) error {
	for _, pattern := range []string{"catalog:list:*", "catalog:categories", "catalog:upcoming:*"} {
		if err := c.DeletePattern(ctx, pattern); err != nil {
			return fmt.Errorf("failed to delete pattern %s: %w", pattern, err)
		}
	}
	return nil
}
