package credentials

import (
	"context"
	"errors"

	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/prtracker/internal/telemetry/tracing"
)

const storageKeyPrefix = "prtracker-storage||"

// RedisStore shares the token between machines using the same redis instance.
type RedisStore struct {
	origin      string
	redisClient *redis.Client
	tracer      *tracing.StorageTracer
}

// NewRedisClient returns a client whose commands show up as spans of the
// global tracer provider.
func NewRedisClient(addr, password string) *redis.Client {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	redisClient.AddHook(redisotel.NewTracingHook())
	return redisClient
}

func NewRedisStore(origin string, redisClient *redis.Client, tracer *tracing.StorageTracer) *RedisStore {
	return &RedisStore{
		origin:      origin,
		redisClient: redisClient,
		tracer:      tracer,
	}
}

func (s *RedisStore) key() string {
	return storageKeyPrefix + s.origin + "||" + TokenKey
}

func (s *RedisStore) Get(ctx context.Context) (string, bool) {
	ctx, end := s.tracer.Start(ctx, "redis", "get")
	cmd := s.redisClient.Get(ctx, s.key())
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			end(nil)
		} else {
			log.Errorf("redis store, get token: %s", err)
			end(err)
		}
		return "", false
	}
	end(nil)
	return cmd.Val(), true
}

func (s *RedisStore) Set(ctx context.Context, token string) error {
	ctx, end := s.tracer.Start(ctx, "redis", "set")
	// no expiration, the token is never refreshed client side
	err := s.redisClient.Set(ctx, s.key(), token, 0).Err()
	end(err)
	return err
}

func (s *RedisStore) Clear(ctx context.Context) error {
	ctx, end := s.tracer.Start(ctx, "redis", "clear")
	err := s.redisClient.Del(ctx, s.key()).Err()
	end(err)
	return err
}
