package queryset

import (
	"context"
	"database/sql"

	"github.com/hmtmcse-com/queryset/internal/errs"
)

type Updater[T any] struct {
	builder
	sess Session

	val     *T           // 更新用的结构体，Set(C("Xxx")) 的时候从它身上取值
	assigns []Assignable
	where   []Predicate
}

func NewUpdater[T any](sess Session) *Updater[T] {
	return &Updater[T]{
		sess:    sess,
		builder: newBuilder(sess),
	}
}

// Update 指定取值用的结构体
func (u *Updater[T]) Update(t *T) *Updater[T] {
	u.val = t
	return u
}

// Set 指定要更新的内容
// C("Xxx") 代表用 val 里对应字段的值，Assign 可以直接给值或者表达式
func (u *Updater[T]) Set(assigns ...Assignable) *Updater[T] {
	u.assigns = assigns
	return u
}

func (u *Updater[T]) Where(ps ...Predicate) *Updater[T] {
	u.where = ps
	return u
}

func (u *Updater[T]) Build() (*Query, error) {
	if len(u.assigns) == 0 {
		return nil, errs.ErrNoUpdatedColumns
	}

	var err error
	if u.model == nil {
		u.model, err = u.r.Get(new(T))
		if err != nil {
			return nil, err
		}
	}

	u.sb.WriteString("UPDATE ")
	u.quote(u.model.TableName)
	u.sb.WriteString(" SET ")

	if u.val == nil {
		u.val = new(T)
	}
	val := u.valCreator(u.val, u.model)
	for i, a := range u.assigns {
		if i > 0 {
			u.sb.WriteByte(',')
		}
		switch assign := a.(type) {
		case Column:
			if err = u.buildColumn(Column{name: assign.name}); err != nil {
				return nil, err
			}
			u.sb.WriteString("=?")
			arg, err := val.Field(assign.name)
			if err != nil {
				return nil, err
			}
			u.addArgs(arg)
		case Assignment:
			if err = u.buildAssignment(assign); err != nil {
				return nil, err
			}
		default:
			return nil, errs.NewErrUnsupportedAssignableType(a)
		}
	}

	if len(u.where) > 0 {
		u.sb.WriteString(" WHERE ")
		if err = u.buildPredicates(u.where); err != nil {
			return nil, err
		}
	}

	u.sb.WriteByte(';')
	return &Query{
		SQL:  u.sb.String(),
		Args: u.args,
	}, nil
}

func (u *Updater[T]) buildAssignment(assign Assignment) error {
	if err := u.buildColumn(Column{name: assign.column}); err != nil {
		return err
	}
	u.sb.WriteByte('=')
	return u.buildExpression(assign.val)
}

func (u *Updater[T]) Exec(ctx context.Context) Result {
	var err error
	if u.model == nil {
		u.model, err = u.r.Get(new(T))
		if err != nil {
			return Result{err: err}
		}
	}

	res := exec(ctx, u.core, u.sess, &QueryContext{
		Type:    "UPDATE",
		Builder: u,
		Model:   u.model,
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

// BulkUpdate 在一个事务里按 keyField 定位并逐行更新 vals
// 每一行更新除 keyField 之外的全部字段
func BulkUpdate[T any](ctx context.Context, db *DB, keyField string, vals ...*T) error {
	if len(vals) == 0 {
		return nil
	}
	return db.DoTx(ctx, func(ctx context.Context, tx *Tx) error {
		c := tx.getCore()
		m, err := c.r.Get(vals[0])
		if err != nil {
			return err
		}
		if _, ok := m.FieldMap[keyField]; !ok {
			return errs.NewErrUnknownField(keyField)
		}

		assigns := make([]Assignable, 0, len(m.Fields)-1)
		for _, fd := range m.Fields {
			if fd.GoName == keyField {
				continue
			}
			assigns = append(assigns, C(fd.GoName))
		}

		for _, val := range vals {
			key, err := c.valCreator(val, m).Field(keyField)
			if err != nil {
				return err
			}
			res := NewUpdater[T](tx).
				Update(val).
				Set(assigns...).
				Where(C(keyField).EQ(key)).
				Exec(ctx)
			if err = res.Err(); err != nil {
				return err
			}
		}
		return nil
	}, nil)
}
