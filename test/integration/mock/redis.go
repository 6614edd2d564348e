package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisConn *redis.Client

// NewRedis returns a client against an in-process miniredis. The suite plugs
// it into the change bus, so statement-watch scenarios exercise the same
// pub/sub path the server uses in production.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		srv, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisConn = redis.NewClient(&redis.Options{Addr: srv.Addr()})
	})
	return redisConn
}

// ClearRedis flushes everything between scenarios. Pub/sub subscriptions
// survive a flush, so the running server keeps its change streams.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.Background()).Err()
}
