package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/hmtmcse-com/queryset/cache"
)

// ProviderOption is a function type for configuring a Provider.
type ProviderOption func(p *Provider)

// Provider 基于 Redis 的查询结果缓存，多实例之间可以共享
type Provider struct {
	prefix string // redis 中 key 的前缀
	client redis.Cmdable
}

var _ cache.Provider = &Provider{}

// NewProvider creates a new Redis-backed Provider.
func NewProvider(client redis.Cmdable, opts ...ProviderOption) *Provider {
	res := &Provider{
		client: client,
		prefix: "queryset",
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// WithPrefix 重置 key 的前缀，多个业务共用一个 Redis 的时候用来隔离
func WithPrefix(prefix string) ProviderOption {
	return func(p *Provider) {
		p.prefix = prefix
	}
}

func (p *Provider) key(key string) string {
	return fmt.Sprintf("%s_%s", p.prefix, key)
}

func (p *Provider) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := p.client.Get(ctx, p.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cache.ErrKeyNotFound
	}
	return val, err
}

func (p *Provider) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return p.client.Set(ctx, p.key(key), val, ttl).Err()
}

func (p *Provider) Del(ctx context.Context, key string) error {
	return p.client.Del(ctx, p.key(key)).Err()
}
