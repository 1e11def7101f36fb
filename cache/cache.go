package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrKeyNotFound 缓存里没有这个 key
var ErrKeyNotFound = errors.New("cache: 找不到 key")

// Provider 查询结果缓存的抽象
// 值统一是序列化好的字节，序列化方案由上层决定
type Provider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Key 从 SQL 和参数生成缓存 key
// md5 只是用来缩短 key，不承担任何安全职责
func Key(sql string, args ...any) string {
	h := md5.New()
	h.Write([]byte(sql))
	for _, arg := range args {
		_, _ = fmt.Fprintf(h, "|%v", arg)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Remember 读穿缓存：命中直接反序列化返回，
// 没命中就执行 load，把结果写回缓存再返回
func Remember[T any](ctx context.Context, p Provider, key string,
	ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	var res T

	data, err := p.Get(ctx, key)
	if err == nil {
		err = json.Unmarshal(data, &res)
		return res, err
	}
	if !errors.Is(err, ErrKeyNotFound) {
		return res, err
	}

	res, err = load(ctx)
	if err != nil {
		return res, err
	}

	data, err = json.Marshal(res)
	if err != nil {
		return res, err
	}
	// 回填失败不影响本次结果，下次再走 load 就是了
	_ = p.Set(ctx, key, data, ttl)
	return res, nil
}
