package cache

import (
	"context"
	"errors"
	"fmt"
	"github.com/csr-ugra/matrouh-rentals/internal/log"
	"github.com/redis/go-redis/v9"
	"strings"
	"time"
)

const scanCount = 100

type Redis struct {
	client *redis.Client
}

// NewRedis connects to addr, which is either a redis:// URL or host:port.
func NewRedis(ctx context.Context, addr string, password string) (*Redis, error) {
	options, err := redisOptions(addr, password)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(options)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("error connecting to redis at %s: %w", options.Addr, err)
	}

	return &Redis{client: client}, nil
}

func redisOptions(addr string, password string) (*redis.Options, error) {
	var options *redis.Options
	if strings.Contains(addr, "://") {
		var err error
		options, err = redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("error parsing redis url: %w", err)
		}
	} else {
		options = &redis.Options{Addr: addr}
	}

	if password != "" {
		options.Password = password
	}

	return options, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return b, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTtl
	}

	return r.client.Set(ctx, key, value, ttl).Err()
}

// InvalidateAll scans for listing keys and deletes them in one pipeline.
func (r *Redis) InvalidateAll(ctx context.Context) (int, error) {
	var keys []string
	var cursor uint64

	for {
		var batch []string
		var err error
		batch, cursor, err = r.client.Scan(ctx, cursor, Prefix+"*", scanCount).Result()
		if err != nil {
			return 0, fmt.Errorf("error scanning listing keys: %w", err)
		}
		keys = append(keys, batch...)
		if cursor == 0 {
			break
		}
	}

	if len(keys) == 0 {
		return 0, nil
	}

	pipe := r.client.Pipeline()
	for _, key := range keys {
		pipe.Del(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("error deleting %d listing keys: %w", len(keys), err)
	}

	log.GetLogger().WithField("Count", len(keys)).Debug("invalidated listing cache")

	return len(keys), nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
