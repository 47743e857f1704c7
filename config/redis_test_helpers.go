package config

import (
	"sync"

	"github.com/redis/go-redis/v9"
)

// SetRedisClientForTest swaps the singleton client so tests can inject a
// redismock instance, or nil to exercise the redis-unavailable paths
// (rate limiting, snapshot persistence). Test seam only.
func SetRedisClientForTest(client *redis.Client) {
	redisClient = client
}

// ResetRedisClientForTest clears the singleton and its once guard so a
// later ConnectRedis dials again. Test seam only.
func ResetRedisClientForTest() {
	redisClient = nil
	redisOnce = sync.Once{}
}
