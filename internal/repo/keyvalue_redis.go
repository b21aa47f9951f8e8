package repo

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/storefront/internal/obs"
)

// RedisKeyValueRepository stores keys in Redis and announces every write on a
// pub/sub channel so other storefront instances can reload.
type RedisKeyValueRepository struct {
	rdb     *redis.Client
	channel string

	watchers watchers
	subMu    sync.Mutex
	pubsub   *redis.PubSub
}

func NewRedisKeyValueRepository(rdb *redis.Client, channel string) *RedisKeyValueRepository {
	return &RedisKeyValueRepository{rdb: rdb, channel: channel}
}

func (r *RedisKeyValueRepository) Rdb() *redis.Client {
	return r.rdb
}

func (r *RedisKeyValueRepository) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	return v, err
}

func (r *RedisKeyValueRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := r.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return err
	}
	r.publish(ctx, key)
	return nil
}

func (r *RedisKeyValueRepository) Delete(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		return err
	}
	r.publish(ctx, key)
	return nil
}

func (r *RedisKeyValueRepository) publish(ctx context.Context, key string) {
	if r.channel == "" {
		return
	}
	if err := r.rdb.Publish(ctx, r.channel, key).Err(); err != nil {
		obs.Logger.Warn("redis change publish failed", "key", key, "error", err)
	}
}

// Watch subscribes to the change channel once and fans messages out to the
// subscribers of each key.
func (r *RedisKeyValueRepository) Watch(ctx context.Context, key string, fn func()) (func(), error) {
	r.subMu.Lock()
	defer r.subMu.Unlock()

	if r.pubsub == nil {
		ps := r.rdb.Subscribe(context.Background(), r.channel)
		if _, err := ps.Receive(ctx); err != nil {
			ps.Close()
			return nil, err
		}
		r.pubsub = ps
		go func() {
			for msg := range ps.Channel() {
				r.watchers.notify(msg.Payload)
			}
		}()
	}
	return r.watchers.add(key, fn), nil
}

// Close ends the change subscription. The client itself is owned by the caller.
func (r *RedisKeyValueRepository) Close() error {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	if r.pubsub == nil {
		return nil
	}
	err := r.pubsub.Close()
	r.pubsub = nil
	return err
}
