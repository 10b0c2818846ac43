package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/raywall/onet-interest-profiler/errs"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey é usada quando a localização não informa ?key=.
const DefaultRedisKey = "onet:interest_profiler:questions"

// RedisAPI é o subconjunto de *redis.Client usado pelo backend.
type RedisAPI interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisBackend guarda o documento em uma única chave string.
type RedisBackend struct {
	client RedisAPI
	addr   string
	key    string
	ttl    time.Duration
}

// NewRedisBackend cria o backend. ttl zero mantém a chave sem expiração.
func NewRedisBackend(client RedisAPI, addr, key string, ttl time.Duration) *RedisBackend {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisBackend{client: client, addr: addr, key: key, ttl: ttl}
}

// OpenRedis interpreta redis://[:senha@]host:porta/db?key=...&ttl=24h.
// key e ttl são removidos antes de repassar a URL ao go-redis, que rejeita
// opções desconhecidas.
func OpenRedis(location string) (*RedisBackend, error) {
	u, err := parseLocation(location)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	key := q.Get("key")

	var ttl time.Duration
	if raw := q.Get("ttl"); raw != "" {
		if ttl, err = time.ParseDuration(raw); err != nil {
			return nil, &errs.ConfigurationError{Key: "output", Reason: fmt.Sprintf("invalid redis ttl %q", raw)}
		}
	}
	q.Del("key")
	q.Del("ttl")
	u.RawQuery = q.Encode()

	opts, err := redis.ParseURL(u.String())
	if err != nil {
		return nil, &errs.ConfigurationError{Key: "output", Reason: err.Error()}
	}
	return NewRedisBackend(redis.NewClient(opts), opts.Addr, key, ttl), nil
}

func (b *RedisBackend) Location() string { return "redis://" + b.addr + "/" + b.key }

func (b *RedisBackend) Put(ctx context.Context, data []byte) error {
	if err := b.client.Set(ctx, b.key, string(data), b.ttl).Err(); err != nil {
		return &errs.IOError{Op: "redis set", Path: b.Location(), Err: err}
	}
	return nil
}

func (b *RedisBackend) Get(ctx context.Context) ([]byte, error) {
	val, err := b.client.Get(ctx, b.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, &errs.NotFoundError{Path: b.Location(), Err: err}
	} else if err != nil {
		return nil, &errs.IOError{Op: "redis get", Path: b.Location(), Err: err}
	}
	return []byte(val), nil
}
