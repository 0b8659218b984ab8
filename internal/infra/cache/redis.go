package cache

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
)

// キーの接頭辞（Invalidateで消す範囲）
const keyPrefix = "littlelemon:menu:"

// NewRedisClient はURLから接続してPingで確認する。
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// RedisMenuCache はメニュー一覧のキャッシュ。
// Redisのエラーはログに出してキャッシュなしとして扱う。
type RedisMenuCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

func NewRedisMenuCache(client *redis.Client, ttl time.Duration, logger *log.Logger) *RedisMenuCache {
	return &RedisMenuCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisMenuCache) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.Warnf("menu cache get %s: %v", key, err)
		return nil, false
	}
	return b, true
}

func (c *RedisMenuCache) Set(ctx context.Context, key string, value []byte) {
	if err := c.client.Set(ctx, keyPrefix+key, value, c.ttl).Err(); err != nil {
		c.logger.Warnf("menu cache set %s: %v", key, err)
	}
}

// Invalidate は接頭辞に一致するキーをすべて削除する
func (c *RedisMenuCache) Invalidate(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warnf("menu cache scan: %v", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warnf("menu cache invalidate: %v", err)
	}
}
