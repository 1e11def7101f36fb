package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/hmtmcse-com/queryset/cache"
)

// Provider 进程内缓存，适合单实例部署和测试
// 利用 go-cache 来帮助我们管理过期时间
type Provider struct {
	c *gocache.Cache
}

var _ cache.Provider = &Provider{}

// NewProvider creates a new in-memory Provider.
// defaultTTL 是 Set 传 0 时使用的过期时间
func NewProvider(defaultTTL time.Duration) *Provider {
	return &Provider{
		c: gocache.New(defaultTTL, time.Minute),
	}
}

func (p *Provider) Get(ctx context.Context, key string) ([]byte, error) {
	val, ok := p.c.Get(key)
	if !ok {
		return nil, cache.ErrKeyNotFound
	}
	return val.([]byte), nil
}

func (p *Provider) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	p.c.Set(key, val, ttl)
	return nil
}

func (p *Provider) Del(ctx context.Context, key string) error {
	p.c.Delete(key)
	return nil
}
