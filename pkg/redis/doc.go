// Package redis connects to an optional Redis server.
//
// Redis is only used to share rate limit buckets between instances. When
// REDIS_URL is empty Connect returns ErrNotConfigured and the caller keeps
// limits in memory.
//
//	client, err := redis.Connect(ctx, cfg)
//	switch {
//	case errors.Is(err, redis.ErrNotConfigured):
//		// use ratelimiter.NewMemoryStore
//	case err != nil:
//		return err
//	}
package redis
