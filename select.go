package queryset

import (
	"context"

	"github.com/hmtmcse-com/queryset/internal/errs"
)

// Selector represents a query selector that allows building SQL SELECT statements.
// 状态全部先攒在这里，Build 的时候才拼成一条 SQL
type Selector[T any] struct {
	builder
	sess Session

	table   TableReference
	columns []Selectable
	where   []Predicate
	groupBy []Column
	having  []Predicate
	orderBy []OrderBy
	offset  int
	limit   int
}

// NewSelector creates a new instance of Selector.
func NewSelector[T any](sess Session) *Selector[T] {
	return &Selector[T]{
		sess:    sess,
		builder: newBuilder(sess),
	}
}

// Select 检索指定列、聚合函数或者原生表达式
func (s *Selector[T]) Select(cols ...Selectable) *Selector[T] {
	s.columns = cols
	return s
}

// From sets the table for the selector.
// 不调用或者传 nil 的时候使用 T 对应的表
func (s *Selector[T]) From(tbl TableReference) *Selector[T] {
	s.table = tbl
	return s
}

// Where 用于构造 WHERE 查询条件。如果 ps 长度为 0，那么不会构造 WHERE 部分
// 多个条件之间是 AND 的关系
func (s *Selector[T]) Where(ps ...Predicate) *Selector[T] {
	s.where = ps
	return s
}

func (s *Selector[T]) GroupBy(cols ...Column) *Selector[T] {
	s.groupBy = cols
	return s
}

func (s *Selector[T]) Having(ps ...Predicate) *Selector[T] {
	s.having = ps
	return s
}

func (s *Selector[T]) OrderBy(orderBys ...OrderBy) *Selector[T] {
	s.orderBy = orderBys
	return s
}

func (s *Selector[T]) Offset(offset int) *Selector[T] {
	s.offset = offset
	return s
}

func (s *Selector[T]) Limit(limit int) *Selector[T] {
	s.limit = limit
	return s
}

// Paginate 按页号换算 LIMIT/OFFSET，页号从 1 开始
func (s *Selector[T]) Paginate(page, pageSize int) *Selector[T] {
	if page < 1 {
		page = 1
	}
	s.limit = pageSize
	s.offset = (page - 1) * pageSize
	return s
}

// Build generates the SELECT statement.
// It returns the generated query as a *Query struct or an error if there was any.
func (s *Selector[T]) Build() (*Query, error) {
	var err error
	if s.model == nil {
		s.model, err = s.r.Get(new(T))
		if err != nil {
			return nil, err
		}
	}

	s.sb.WriteString("SELECT ")
	if err = s.buildColumns(); err != nil {
		return nil, err
	}
	s.sb.WriteString(" FROM ")
	if err = s.buildTable(s.table); err != nil {
		return nil, err
	}

	// 类似这种可有可无的部分，都要在前面加一个空格
	if len(s.where) > 0 {
		s.sb.WriteString(" WHERE ")
		if err = s.buildPredicates(s.where); err != nil {
			return nil, err
		}
	}

	if len(s.groupBy) > 0 {
		s.sb.WriteString(" GROUP BY ")
		for i, c := range s.groupBy {
			if i > 0 {
				s.sb.WriteByte(',')
			}
			if err = s.buildColumn(c); err != nil {
				return nil, err
			}
		}
	}

	if len(s.having) > 0 {
		s.sb.WriteString(" HAVING ")
		if err = s.buildPredicates(s.having); err != nil {
			return nil, err
		}
	}

	if len(s.orderBy) > 0 {
		s.sb.WriteString(" ORDER BY ")
		if err = s.buildOrderBy(); err != nil {
			return nil, err
		}
	}

	if s.limit > 0 {
		s.sb.WriteString(" LIMIT ?")
		s.addArgs(s.limit)
	}

	if s.offset > 0 {
		s.sb.WriteString(" OFFSET ?")
		s.addArgs(s.offset)
	}

	s.sb.WriteByte(';')

	return &Query{
		SQL:  s.sb.String(),
		Args: s.args,
	}, nil
}

func (s *Selector[T]) buildTable(table TableReference) error {
	switch tab := table.(type) {
	case nil:
		s.quote(s.model.TableName)
	case Table:
		m, err := s.r.Get(tab.entity)
		if err != nil {
			return err
		}
		s.quote(m.TableName)
		if tab.alias != "" {
			s.sb.WriteString(" AS ")
			s.quote(tab.alias)
		}
	case Join:
		return s.buildJoin(tab)
	default:
		return errs.NewErrUnsupportedTable(table)
	}
	return nil
}

func (s *Selector[T]) buildJoin(tab Join) error {
	s.sb.WriteByte('(')
	if err := s.buildTable(tab.left); err != nil {
		return err
	}
	s.sb.WriteByte(' ')
	s.sb.WriteString(tab.typ)
	s.sb.WriteByte(' ')
	if err := s.buildTable(tab.right); err != nil {
		return err
	}
	if len(tab.using) > 0 {
		s.sb.WriteString(" USING (")
		for i, col := range tab.using {
			if i > 0 {
				s.sb.WriteByte(',')
			}
			if err := s.buildColumn(Column{name: col}); err != nil {
				return err
			}
		}
		s.sb.WriteByte(')')
	}
	if len(tab.on) > 0 {
		s.sb.WriteString(" ON ")
		if err := s.buildPredicates(tab.on); err != nil {
			return err
		}
	}
	s.sb.WriteByte(')')
	return nil
}

func (s *Selector[T]) buildColumns() error {
	if len(s.columns) == 0 {
		s.sb.WriteByte('*')
		return nil
	}

	for i, c := range s.columns {
		if i > 0 {
			s.sb.WriteByte(',')
		}

		switch val := c.(type) {
		case Column:
			if err := s.buildColumn(val); err != nil {
				return err
			}
			s.buildAs(val.alias)
		case Aggregate:
			if err := s.buildAggregate(val, true); err != nil {
				return err
			}
		case RawExpr:
			s.sb.WriteString(val.raw)
			if len(val.args) != 0 {
				s.addArgs(val.args...)
			}
		default:
			return errs.NewErrUnsupportedSelectable(c)
		}
	}

	return nil
}

func (s *Selector[T]) buildOrderBy() error {
	for i, ob := range s.orderBy {
		if i > 0 {
			s.sb.WriteByte(',')
		}
		if err := s.buildColumn(Column{name: ob.col}); err != nil {
			return err
		}
		s.sb.WriteByte(' ')
		s.sb.WriteString(ob.order)
	}
	return nil
}

// Get 执行查询并返回第一行数据，没有数据返回 ErrNoRows
func (s *Selector[T]) Get(ctx context.Context) (*T, error) {
	var err error
	if s.model == nil {
		s.model, err = s.r.Get(new(T))
		if err != nil {
			return nil, err
		}
	}

	res := get[T](ctx, s.core, s.sess, &QueryContext{
		Type:    "SELECT",
		Builder: s,
		Model:   s.model,
	})
	if res.Result != nil {
		return res.Result.(*T), res.Err
	}
	return nil, res.Err
}

// GetMulti 执行查询并返回全部匹配行
func (s *Selector[T]) GetMulti(ctx context.Context) ([]*T, error) {
	var err error
	if s.model == nil {
		s.model, err = s.r.Get(new(T))
		if err != nil {
			return nil, err
		}
	}

	res := getMulti[T](ctx, s.core, s.sess, &QueryContext{
		Type:    "SELECT",
		Builder: s,
		Model:   s.model,
	})
	if res.Result != nil {
		return res.Result.([]*T), res.Err
	}
	return nil, res.Err
}

// Count 复用 WHERE 条件执行 SELECT COUNT(*)，其余子句全部丢弃
func (s *Selector[T]) Count(ctx context.Context) (int64, error) {
	m, err := s.r.Get(new(T))
	if err != nil {
		return 0, err
	}

	cs := &Selector[T]{
		sess:    s.sess,
		builder: newBuilder(s.sess),
		table:   s.table,
		where:   s.where,
		columns: []Selectable{Count("*")},
	}

	var handler Handler = func(ctx context.Context, qc *QueryContext) *QueryResult {
		q, err := qc.Query()
		if err != nil {
			return &QueryResult{Err: err}
		}
		rows, err := s.sess.queryContext(ctx, q.SQL, q.Args...)
		if err != nil {
			return &QueryResult{Err: err}
		}
		defer func() {
			_ = rows.Close()
		}()
		if !rows.Next() {
			return &QueryResult{Err: errs.ErrNoRows}
		}
		var cnt int64
		if err = rows.Scan(&cnt); err != nil {
			return &QueryResult{Err: err}
		}
		return &QueryResult{Result: cnt}
	}
	ms := s.mdls
	for i := len(ms) - 1; i >= 0; i-- {
		handler = ms[i](handler)
	}

	res := handler(ctx, &QueryContext{
		Type:    "SELECT",
		Builder: cs,
		Model:   m,
	})
	if res.Err != nil {
		return 0, res.Err
	}
	return res.Result.(int64), nil
}

// GetPage 分页查询，额外发一条 COUNT 语句拿总行数
func (s *Selector[T]) GetPage(ctx context.Context, page, pageSize int) (*Page[T], error) {
	total, err := s.Count(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.Paginate(page, pageSize).GetMulti(ctx)
	if err != nil {
		return nil, err
	}
	return NewPage(list, page, pageSize, total), nil
}

// Selectable 是一个标记接口，
// 让聚合函数、列以及 RawExpr 都能作为检索目标传入同一个方法
type Selectable interface {
	selectable()
}

type OrderBy struct {
	col   string
	order string
}

func Asc(col string) OrderBy {
	return OrderBy{
		col:   col,
		order: "ASC",
	}
}

func Desc(col string) OrderBy {
	return OrderBy{
		col:   col,
		order: "DESC",
	}
}
