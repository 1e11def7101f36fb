package queryset

import (
	"context"
	"database/sql"
)

// RawQuerier 原生 SQL 的出口
// queryset 不会对语句做任何处理，只负责执行和结果映射
type RawQuerier[T any] struct {
	core
	sess Session
	sql  string
	args []any
}

// RawQuery 创建一个 RawQuerier 实例
// 泛型参数 T 是结果映射的目标类型，只执行不查询的时候随便填一个注册过的类型即可
func RawQuery[T any](sess Session, query string, args ...any) *RawQuerier[T] {
	return &RawQuerier[T]{
		core: sess.getCore(),
		sess: sess,
		sql:  query,
		args: args,
	}
}

func (r *RawQuerier[T]) Build() (*Query, error) {
	return &Query{
		SQL:  r.sql,
		Args: r.args,
	}, nil
}

func (r *RawQuerier[T]) Get(ctx context.Context) (*T, error) {
	m, err := r.r.Get(new(T))
	if err != nil {
		return nil, err
	}

	res := get[T](ctx, r.core, r.sess, &QueryContext{
		Type:    "RAW",
		Builder: r,
		Model:   m,
	})
	if res.Result != nil {
		return res.Result.(*T), res.Err
	}
	return nil, res.Err
}

func (r *RawQuerier[T]) GetMulti(ctx context.Context) ([]*T, error) {
	m, err := r.r.Get(new(T))
	if err != nil {
		return nil, err
	}

	res := getMulti[T](ctx, r.core, r.sess, &QueryContext{
		Type:    "RAW",
		Builder: r,
		Model:   m,
	})
	if res.Result != nil {
		return res.Result.([]*T), res.Err
	}
	return nil, res.Err
}

func (r *RawQuerier[T]) Exec(ctx context.Context) Result {
	m, err := r.r.Get(new(T))
	if err != nil {
		return Result{err: err}
	}

	res := exec(ctx, r.core, r.sess, &QueryContext{
		Type:    "RAW",
		Builder: r,
		Model:   m,
	})

	var sqlRes sql.Result
	if res.Result != nil {
		sqlRes = res.Result.(sql.Result)
	}
	return Result{
		err: res.Err,
		res: sqlRes,
	}
}
