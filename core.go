package queryset

import (
	"context"

	"github.com/hmtmcse-com/queryset/internal/errs"
	"github.com/hmtmcse-com/queryset/internal/valuer"
	"github.com/hmtmcse-com/queryset/model"
)

// core 每个语句 builder 都会携带的核心配置
type core struct {
	dialect    Dialect
	r          model.Registry // 存储数据库表和 struct 映射关系的实例
	valCreator valuer.Creator // 与 DB 交互映射的实现
	mdls       []Middleware
}

// get 单行查询走中间件链，最里面是真正执行 SQL 的 getHandler
func get[T any](ctx context.Context, c core, sess Session, qc *QueryContext) *QueryResult {
	var handler Handler = func(ctx context.Context, qc *QueryContext) *QueryResult {
		return getHandler[T](ctx, sess, c, qc)
	}
	ms := c.mdls
	for i := len(ms) - 1; i >= 0; i-- {
		handler = ms[i](handler)
	}
	return handler(ctx, qc)
}

func getHandler[T any](ctx context.Context, sess Session, c core, qc *QueryContext) *QueryResult {
	q, err := qc.Query()
	if err != nil {
		return &QueryResult{Err: err}
	}

	rows, err := sess.queryContext(ctx, q.SQL, q.Args...)
	if err != nil {
		return &QueryResult{Err: err}
	}
	defer func() {
		_ = rows.Close()
	}()

	if !rows.Next() {
		return &QueryResult{Err: errs.ErrNoRows}
	}

	tp := new(T)
	val := c.valCreator(tp, qc.Model)
	err = val.SetColumns(rows)
	return &QueryResult{
		Result: tp,
		Err:    err,
	}
}

func getMulti[T any](ctx context.Context, c core, sess Session, qc *QueryContext) *QueryResult {
	var handler Handler = func(ctx context.Context, qc *QueryContext) *QueryResult {
		return getMultiHandler[T](ctx, sess, c, qc)
	}
	ms := c.mdls
	for i := len(ms) - 1; i >= 0; i-- {
		handler = ms[i](handler)
	}
	return handler(ctx, qc)
}

func getMultiHandler[T any](ctx context.Context, sess Session, c core, qc *QueryContext) *QueryResult {
	q, err := qc.Query()
	if err != nil {
		return &QueryResult{Err: err}
	}

	rows, err := sess.queryContext(ctx, q.SQL, q.Args...)
	if err != nil {
		return &QueryResult{Err: err}
	}
	defer func() {
		_ = rows.Close()
	}()

	res := make([]*T, 0, 16)
	for rows.Next() {
		tp := new(T)
		val := c.valCreator(tp, qc.Model)
		if err = val.SetColumns(rows); err != nil {
			return &QueryResult{Err: err}
		}
		res = append(res, tp)
	}
	return &QueryResult{
		Result: res,
		Err:    rows.Err(),
	}
}

// exec INSERT UPDATE DELETE 和 DDL 共用的执行入口
func exec(ctx context.Context, c core, sess Session, qc *QueryContext) *QueryResult {
	var handler Handler = func(ctx context.Context, qc *QueryContext) *QueryResult {
		q, err := qc.Query()
		if err != nil {
			return &QueryResult{Err: err}
		}
		res, err := sess.execContext(ctx, q.SQL, q.Args...)
		return &QueryResult{
			Result: res,
			Err:    err,
		}
	}
	ms := c.mdls
	for i := len(ms) - 1; i >= 0; i-- {
		handler = ms[i](handler)
	}
	return handler(ctx, qc)
}
