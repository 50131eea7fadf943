// Package ratelimiter implements a token bucket limiter with in-memory and
// Redis-backed stores, plus an HTTP middleware.
//
// The contact form endpoint is limited per client IP. A single instance can
// use MemoryStore; deployments with several instances should configure
// REDIS_URL so the buckets are shared through RedisStore.
//
//	bucket, _ := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       5,
//		RefillRate:     5,
//		RefillInterval: time.Minute,
//	})
//	r.With(ratelimiter.Middleware(bucket, clientip.Key)).Post("/api/contacts", create)
package ratelimiter
