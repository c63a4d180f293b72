package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	apperrors "github.com/yourusername/survey-api/internal/pkg/errors"
)

// CacheRepo implements repository.CacheRepository on Redis
type CacheRepo struct {
	client redis.UniversalClient
	prefix string
	ctx    context.Context
}

// NewCacheRepo creates a cache repository; every key is stored under prefix
func NewCacheRepo(client redis.UniversalClient, prefix string) (*CacheRepo, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil for CacheRepo")
	}
	return &CacheRepo{
		client: client,
		prefix: prefix,
		ctx:    context.Background(),
	}, nil
}

func (r *CacheRepo) key(k string) string {
	return r.prefix + k
}

// SetJSON stores value as JSON
func (r *CacheRepo) SetJSON(key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(r.ctx, r.key(key), data, expiration).Err()
}

// GetJSON decodes the cached value into dest; a miss is apperrors.ErrNotFound
func (r *CacheRepo) GetJSON(key string, dest interface{}) error {
	data, err := r.client.Get(r.ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return apperrors.ErrNotFound
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

// Delete removes a key
func (r *CacheRepo) Delete(key string) error {
	return r.client.Del(r.ctx, r.key(key)).Err()
}
