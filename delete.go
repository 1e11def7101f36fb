package queryset

import (
	"context"
	"database/sql"

	"github.com/hmtmcse-com/queryset/internal/errs"
)

type Deleter[T any] struct {
	builder
	sess Session

	table TableReference
	where []Predicate
}

func NewDeleter[T any](sess Session) *Deleter[T] {
	return &Deleter[T]{
		sess:    sess,
		builder: newBuilder(sess),
	}
}

// From sets the table for the Deleter.
// 不指定的时候使用 T 对应的表
func (d *Deleter[T]) From(table TableReference) *Deleter[T] {
	d.table = table
	return d
}

// Where accepts predicates and adds them to the Deleter's where clause.
func (d *Deleter[T]) Where(predicates ...Predicate) *Deleter[T] {
	d.where = predicates
	return d
}

// Build generates the DELETE statement.
func (d *Deleter[T]) Build() (*Query, error) {
	var err error
	if d.model == nil {
		d.model, err = d.r.Get(new(T))
		if err != nil {
			return nil, err
		}
	}

	d.sb.WriteString("DELETE FROM ")
	switch tab := d.table.(type) {
	case nil:
		d.quote(d.model.TableName)
	case Table:
		m, err := d.r.Get(tab.entity)
		if err != nil {
			return nil, err
		}
		d.quote(m.TableName)
	default:
		// DELETE 不支持 JOIN
		return nil, errs.NewErrUnsupportedTable(d.table)
	}

	if len(d.where) > 0 {
		d.sb.WriteString(" WHERE ")
		if err = d.buildPredicates(d.where); err != nil {
			return nil, err
		}
	}

	d.sb.WriteByte(';')
	return &Query{
		SQL:  d.sb.String(),
		Args: d.args,
	}, nil
}

func (d *Deleter[T]) Exec(ctx context.Context) Result {
	var err error
	if d.model == nil {
		d.model, err = d.r.Get(new(T))
		if err != nil {
			return Result{err: err}
		}
	}

	res := exec(ctx, d.core, d.sess, &QueryContext{
		Type:    "DELETE",
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
