package querylog

import (
	"context"
	"log"

	"github.com/hmtmcse-com/queryset"
)

// MiddlewareBuilder 把每一条语句和参数送进日志
// 默认使用标准库 log，线上接入自己的日志框架时换掉 LogFunc 即可
type MiddlewareBuilder struct {
	logFunc func(query string, args []any)
}

func (m *MiddlewareBuilder) LogFunc(fn func(query string, args []any)) *MiddlewareBuilder {
	m.logFunc = fn
	return m
}

func (m *MiddlewareBuilder) Build() queryset.Middleware {
	if m.logFunc == nil {
		m.logFunc = func(query string, args []any) {
			log.Printf("sql: %s, args: %v", query, args)
		}
	}
	return func(next queryset.Handler) queryset.Handler {
		return func(ctx context.Context, qc *queryset.QueryContext) *queryset.QueryResult {
			q, err := qc.Query()
			if err != nil {
				// 构造失败也要往里传，让最终的调用者拿到错误
				return next(ctx, qc)
			}
			m.logFunc(q.SQL, q.Args)
			return next(ctx, qc)
		}
	}
}
