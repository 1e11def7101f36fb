package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmtmcse-com/queryset/cache"
)

func TestProvider(t *testing.T) {
	p := NewProvider(time.Minute)
	ctx := context.Background()

	_, err := p.Get(ctx, "key1")
	assert.Equal(t, cache.ErrKeyNotFound, err)

	require.NoError(t, p.Set(ctx, "key1", []byte("value1"), time.Minute))
	val, err := p.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, []byte("value1"), val)

	require.NoError(t, p.Del(ctx, "key1"))
	_, err = p.Get(ctx, "key1")
	assert.Equal(t, cache.ErrKeyNotFound, err)
}

func TestProvider_Expire(t *testing.T) {
	p := NewProvider(time.Minute)
	ctx := context.Background()

	require.NoError(t, p.Set(ctx, "key1", []byte("value1"), time.Millisecond))
	time.Sleep(time.Millisecond * 10)
	_, err := p.Get(ctx, "key1")
	assert.Equal(t, cache.ErrKeyNotFound, err)
}
