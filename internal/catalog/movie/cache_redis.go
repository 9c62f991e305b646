// Copyright (c) 2026 Cinelog. All rights reserved.

package movie

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cinelog/cinelog/internal/platform/constants"
)

// cacheTTL keeps detail entries short-lived: the like counter is derived
// data and a stale value self-heals quickly even without invalidation.
const cacheTTL = 5 * time.Minute

// RedisCache is a read-through cache for movie detail lookups.
//
// # Keys
//
// Entries live under the "catalog:movie:<public_id>" prefix and store the
// JSON-marshalled entity.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache constructs a [RedisCache] on the shared client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func cacheKey(publicID string) string {
	return constants.RedisPrefixMovie + publicID
}

/*
Get returns the cached movie for a public UUID.

Parameters:
  - context: context.Context
  - publicID: string

Returns:
  - *Movie: Cached entity, nil on a miss
  - error: Redis failures (a miss is not an error)
*/
func (cache *RedisCache) Get(context context.Context, publicID string) (*Movie, error) {
	payload, err := cache.client.Get(context, cacheKey(publicID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	m := &Movie{}
	if err := json.Unmarshal(payload, m); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		return nil, nil
	}

	return m, nil
}

/*
Set stores a movie under its public UUID for [cacheTTL].

Parameters:
  - context: context.Context
  - movie: *Movie

Returns:
  - error: Redis failures
*/
func (cache *RedisCache) Set(context context.Context, movie *Movie) error {
	payload, err := json.Marshal(movie)
	if err != nil {
		return err
	}

	return cache.client.Set(context, cacheKey(movie.PublicID), payload, cacheTTL).Err()
}

/*
Invalidate drops the cached entry for a public UUID. Called after every
like and unlike so the counter never serves stale beyond one round-trip.

Parameters:
  - context: context.Context
  - publicID: string

Returns:
  - error: Redis failures
*/
func (cache *RedisCache) Invalidate(context context.Context, publicID string) error {
	return cache.client.Del(context, cacheKey(publicID)).Err()
}
