package solvecache

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-mazeviz/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "mazeviz:solve"
	lockSuffix    = ":fill_lock"
	lockExpiry    = 30 * time.Second
	lockTries     = 64
)

var ErrInvalidTTL = errors.New("solvecache: ttl must be positive")

// RedisSolveCache keeps solve results in Redis with a TTL and serializes
// cache fills with a redsync mutex per key.
type RedisSolveCache struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
	prefix string
}

// NewRedisSolveCache initializes a RedisSolveCache with the provided Redis client and TTL.
func NewRedisSolveCache(client *redis.Client, ttl time.Duration) (i.SolveCache, error) {
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}

	cache := &RedisSolveCache{
		client: client,
		ttl:    ttl,
		prefix: defaultPrefix,
	}
	pool := goredis.NewPool(client)
	cache.locker = redsync.New(pool)
	return cache, nil
}

// Get returns the value stored for key, if any.
func (c *RedisSolveCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set stores value under key, expiring after the cache TTL.
func (c *RedisSolveCache) Set(ctx context.Context, key string, value []byte) error {
	return c.client.Set(ctx, c.key(key), value, c.ttl).Err()
}

// Lock blocks until the fill lock for key is held or ctx is done.
func (c *RedisSolveCache) Lock(ctx context.Context, key string) (func(), error) {
	mutex := c.locker.NewMutex(c.key(key)+lockSuffix, redsync.WithExpiry(lockExpiry), redsync.WithTries(lockTries))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	return func() {
		_, _ = mutex.UnlockContext(context.Background())
	}, nil
}

func (c *RedisSolveCache) key(k string) string {
	return c.prefix + ":" + k
}
