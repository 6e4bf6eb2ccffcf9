package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Cache 读穿缓存；nil *Cache 表示未启用，直接回源
type Cache struct {
	RDB *redis.Client
	TTL time.Duration
	// Redelete 写后第二次删除的延迟；<=0 时只删一次
	Redelete time.Duration
	log      *zap.Logger
	sf       singleflight.Group
}

// DefaultRedelete 覆盖一次回源读库 + 回写的耗时
const DefaultRedelete = 500 * time.Millisecond

func New(addr, pass string, db int, ttl time.Duration, l *zap.Logger) *Cache {
	if l == nil {
		l = zap.NewNop()
	}
	return &Cache{
		RDB:      redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		TTL:      ttl,
		Redelete: DefaultRedelete,
		log:      l,
	}
}

func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.RDB.Ping(ctx).Err()
}

func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if c == nil {
		return load(ctx)
	}
	b, err := c.RDB.Get(ctx, key).Bytes()
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, redis.Nil) {
		// redis 故障不影响主流程，回源即可
		c.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	}
	// single flight 合并回源
	v, err, _ := c.sf.Do(key, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		if e := c.RDB.Set(ctx, key, b, ttl).Err(); e != nil {
			c.log.Warn("cache set failed", zap.String("key", key), zap.Error(e))
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Invalidate 写操作提交后删除相关 key，并在 Redelete 后再删一次：
// 提交前已读到旧数据的并发回源可能在第一次删除之后才回写
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	c.del(ctx, keys)
	if c.Redelete <= 0 {
		return
	}
	// 请求结束后 ctx 会被取消，延迟删除不跟随
	bg := context.WithoutCancel(ctx)
	time.AfterFunc(c.Redelete, func() {
		ctx, cancel := context.WithTimeout(bg, time.Second)
		defer cancel()
		c.del(ctx, keys)
	})
}

func (c *Cache) del(ctx context.Context, keys []string) {
	if err := c.RDB.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.RDB.Close()
}

const keyPrefix = "plantya:"

// Key 统一 key 格式：plantya:<resource>:<id>
func Key(resource, id string) string { return keyPrefix + resource + ":" + id }
