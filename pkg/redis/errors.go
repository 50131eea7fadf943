package redis

import "errors"

var (
	ErrNotConfigured                = errors.New("redis: REDIS_URL is not set")
	ErrFailedToParseRedisConnString = errors.New("redis: invalid connection string")
	ErrRedisNotReady                = errors.New("redis: server not reachable")
	ErrHealthcheckFailed            = errors.New("redis: healthcheck failed")
)
