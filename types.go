package queryset

import (
	"context"
)

// Querier 查询类语句的终结方法
type Querier[T any] interface {
	// Get retrieves a T object from the database.
	Get(ctx context.Context) (*T, error)
	// GetMulti retrieves all matched T objects from the database.
	GetMulti(ctx context.Context) ([]*T, error)
}

// Executor 写入类语句的终结方法
type Executor interface {
	Exec(ctx context.Context) Result
}

// Query 延迟拼接出来的最终结果，SQL 里全部使用占位符
type Query struct {
	SQL  string
	Args []any
}

type QueryBuilder interface {
	Build() (*Query, error)
}
