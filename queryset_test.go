package queryset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmtmcse-com/queryset/internal/test"
)

// 覆盖 JsonColumn 这类自定义类型的完整链路：建表、插入、查询
func TestComplexTypeRoundTrip(t *testing.T) {
	db := memoryDB(t, DBWithDialect(SQLite3))
	ctx := context.Background()

	res := NewCreator[test.SimpleStruct](db).IfNotExists().Exec(ctx)
	require.NoError(t, res.Err())
	defer func() {
		res := NewDropper[test.SimpleStruct](db).Exec(ctx)
		require.NoError(t, res.Err())
	}()

	entity := test.NewSimpleStruct(1)
	res = NewInserter[test.SimpleStruct](db).Values(entity).Exec(ctx)
	require.NoError(t, res.Err())

	got, err := NewSelector[test.SimpleStruct](db).
		Where(C("Id").EQ(1)).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity, got)
}
