package queryset

import (
	"context"

	"github.com/hmtmcse-com/queryset/model"
)

// QueryContext 中间件的上下文
// 冗余了 Builder 和 Model，是因为有的中间件在语句执行之前就需要这些信息
type QueryContext struct {
	// Type 声明语句类型，即 SELECT, UPDATE, DELETE, INSERT, RAW 和 DDL
	Type string

	// Builder 使用的时候，大多数情况下你需要转换到具体的类型才能篡改查询
	Builder QueryBuilder

	// Model 主表的元数据
	Model *model.Model

	q *Query
}

// Query 拼接 SQL。结果缓存下来，多个中间件访问时只拼接一次
func (qc *QueryContext) Query() (*Query, error) {
	if qc.q != nil {
		return qc.q, nil
	}
	var err error
	qc.q, err = qc.Builder.Build()
	return qc.q, err
}

type QueryResult struct {
	// Result 在不同的查询里面类型是不同的
	// Selector.Get 里面，这会是 *T
	// Selector.GetMulti，这会是 []*T
	// 其它情况下，它是 sql.Result
	Result any
	Err    error
}

type Middleware func(next Handler) Handler

type Handler func(ctx context.Context, qc *QueryContext) *QueryResult
