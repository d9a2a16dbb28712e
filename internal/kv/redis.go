package kv

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const redisChangeChannel = "ramadan:kv:changes"

// RedisStore keeps values under a key prefix and announces writes on a
// pub/sub channel. Messages carry the writer's instance id so every process
// can drop notifications for its own writes.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	id     string
	pubsub *redis.PubSub

	mu   sync.Mutex
	subs map[string][]func()
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(addr, username, password string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       0,
	})
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("kv: redis ping: %w", err)
	}

	rs := &RedisStore{
		rdb:    rdb,
		prefix: "ramadan:kv:",
		id:     instanceID(),
		subs:   map[string][]func(){},
	}
	rs.pubsub = rdb.Subscribe(ctx, redisChangeChannel)
	go rs.listen()
	return rs, nil
}

func (rs *RedisStore) Get(key string) ([]byte, bool) {
	raw, err := rs.rdb.Get(context.Background(), rs.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("kv: redis read failed")
		return nil, false
	}
	return raw, true
}

func (rs *RedisStore) Set(key string, value []byte) error {
	ctx := context.Background()
	if err := rs.rdb.Set(ctx, rs.prefix+key, value, 0).Err(); err != nil {
		return err
	}
	// Best-effort announcement; a missed publish only delays other processes
	// until their next read.
	payload := rs.id + " " + key
	if err := rs.rdb.Publish(ctx, redisChangeChannel, payload).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("kv: change publish failed")
	}
	return nil
}

func (rs *RedisStore) Subscribe(key string, fn func()) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.subs[key] = append(rs.subs[key], fn)
}

func (rs *RedisStore) Close() error {
	if err := rs.pubsub.Close(); err != nil {
		return err
	}
	return rs.rdb.Close()
}

func (rs *RedisStore) listen() {
	for msg := range rs.pubsub.Channel() {
		writer, key, ok := strings.Cut(msg.Payload, " ")
		if !ok || writer == rs.id {
			continue
		}

		rs.mu.Lock()
		fns := append([]func(){}, rs.subs[key]...)
		rs.mu.Unlock()

		log.Debug().Str("key", key).Msg("kv: external change")
		for _, fn := range fns {
			fn()
		}
	}
}
