package queryset

import (
	"context"
	"database/sql"
)

// Creator 按模型元数据生成建表语句
// 只服务于示例和测试场景的单表 DDL，不是迁移工具
type Creator[T any] struct {
	builder
	sess Session

	ifNotExists bool
}

func NewCreator[T any](sess Session) *Creator[T] {
	return &Creator[T]{
		sess:    sess,
		builder: newBuilder(sess),
	}
}

func (c *Creator[T]) IfNotExists() *Creator[T] {
	c.ifNotExists = true
	return c
}

func (c *Creator[T]) Build() (*Query, error) {
	var err error
	if c.model == nil {
		c.model, err = c.r.Get(new(T))
		if err != nil {
			return nil, err
		}
	}

	c.sb.WriteString("CREATE TABLE ")
	if c.ifNotExists {
		c.sb.WriteString("IF NOT EXISTS ")
	}
	c.quote(c.model.TableName)
	c.sb.WriteString(" (")

	for i, fd := range c.model.Fields {
		if i > 0 {
			c.sb.WriteByte(',')
		}
		c.quote(fd.ColName)
		c.sb.WriteByte(' ')

		var ct string
		if fd.Primary {
			ct, err = c.dialect.primaryKeyType(fd)
		} else {
			ct, err = c.dialect.colType(fd)
		}
		if err != nil {
			return nil, err
		}
		c.sb.WriteString(ct)
	}

	c.sb.WriteString(");")
	return &Query{
		SQL: c.sb.String(),
	}, nil
}

func (c *Creator[T]) Exec(ctx context.Context) Result {
	var err error
	if c.model == nil {
		c.model, err = c.r.Get(new(T))
		if err != nil {
			return Result{err: err}
		}
	}

	res := exec(ctx, c.core, c.sess, &QueryContext{
		Type:    "DDL",
		Builder: c,
		Model:   c.model,
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

// Dropper 生成删表语句，默认带 IF EXISTS
type Dropper[T any] struct {
	builder
	sess Session
}

func NewDropper[T any](sess Session) *Dropper[T] {
	return &Dropper[T]{
		sess:    sess,
		builder: newBuilder(sess),
	}
}

func (d *Dropper[T]) Build() (*Query, error) {
	var err error
	if d.model == nil {
		d.model, err = d.r.Get(new(T))
		if err != nil {
			return nil, err
		}
	}

	d.sb.WriteString("DROP TABLE IF EXISTS ")
	d.quote(d.model.TableName)
	d.sb.WriteByte(';')
	return &Query{
		SQL: d.sb.String(),
	}, nil
}

func (d *Dropper[T]) Exec(ctx context.Context) Result {
	var err error
	if d.model == nil {
		d.model, err = d.r.Get(new(T))
		if err != nil {
			return Result{err: err}
		}
	}

	res := exec(ctx, d.core, d.sess, &QueryContext{
		Type:    "DDL",
		Builder: d,
		Model:   d.model,
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
