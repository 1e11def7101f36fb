package queryset

import (
	"context"
	"database/sql"
	"reflect"

	"github.com/hmtmcse-com/queryset/internal/errs"
	"github.com/hmtmcse-com/queryset/model"
)

type Inserter[T any] struct {
	builder
	sess Session

	values  []*T     // 要插入的数据
	columns []string // 只插入部分列的时候使用
	upsert  *Upsert
}

func NewInserter[T any](sess Session) *Inserter[T] {
	return &Inserter[T]{
		sess:    sess,
		builder: newBuilder(sess),
	}
}

// Values 指定要插入的数据，可以一次插入多行
func (i *Inserter[T]) Values(vals ...*T) *Inserter[T] {
	i.values = vals
	return i
}

// Columns 只插入指定的列
func (i *Inserter[T]) Columns(cols ...string) *Inserter[T] {
	i.columns = cols
	return i
}

// OnDuplicateKey 进入 UPSERT 的构造分支
// 具体生成什么样的语句由方言决定
func (i *Inserter[T]) OnDuplicateKey() *UpsertBuilder[T] {
	return &UpsertBuilder[T]{
		i: i,
	}
}

type UpsertBuilder[T any] struct {
	i               *Inserter[T]
	conflictColumns []string
}

// Upsert 方言构造 UPSERT 部分需要的数据
type Upsert struct {
	assigns         []Assignable
	conflictColumns []string
}

// ConflictColumns SQLite 的 ON CONFLICT(...) 需要指定冲突列，MySQL 会忽略
func (o *UpsertBuilder[T]) ConflictColumns(cols ...string) *UpsertBuilder[T] {
	o.conflictColumns = cols
	return o
}

// Update 指定冲突之后要更新的内容，返回 Inserter 继续构造
func (o *UpsertBuilder[T]) Update(assigns ...Assignable) *Inserter[T] {
	o.i.upsert = &Upsert{
		assigns:         assigns,
		conflictColumns: o.conflictColumns,
	}
	return o.i
}

func (i *Inserter[T]) Build() (*Query, error) {
	if len(i.values) == 0 {
		return nil, errs.ErrInsertZeroRow
	}

	// 多行数据都是同一个结构体，处理第一行就能拿到元数据
	var err error
	if i.model == nil {
		i.model, err = i.r.Get(i.values[0])
		if err != nil {
			return nil, err
		}
	}
	m := i.model

	i.sb.WriteString("INSERT INTO ")
	i.quote(m.TableName)
	i.sb.WriteString(" (")

	fields := m.Fields
	if len(i.columns) != 0 {
		fields = make([]*model.Field, 0, len(i.columns))
		for _, c := range i.columns {
			field, ok := m.FieldMap[c]
			if !ok {
				return nil, errs.NewErrUnknownField(c)
			}
			fields = append(fields, field)
		}
	}

	// +1 是考虑到 UPSERT 语句会带额外的参数
	i.args = make([]any, 0, len(fields)*len(i.values)+1)
	for idx, fd := range fields {
		if idx > 0 {
			i.sb.WriteByte(',')
		}
		i.quote(fd.ColName)
	}

	i.sb.WriteString(") VALUES ")
	for vIdx, val := range i.values {
		// 构建 VALUES (?,?,?),(?,?,?)
		if vIdx > 0 {
			i.sb.WriteByte(',')
		}
		refVal := reflect.ValueOf(val).Elem()
		i.sb.WriteByte('(')
		for fIdx, field := range fields {
			if fIdx > 0 {
				i.sb.WriteByte(',')
			}
			i.sb.WriteByte('?')
			fdVal := refVal.Field(field.Index)
			i.addArgs(fdVal.Interface())
		}
		i.sb.WriteByte(')')
	}

	if i.upsert != nil {
		if err = i.dialect.buildUpsert(&i.builder, i.upsert); err != nil {
			return nil, err
		}
	}

	i.sb.WriteByte(';')
	return &Query{
		SQL:  i.sb.String(),
		Args: i.args,
	}, nil
}

func (i *Inserter[T]) Exec(ctx context.Context) Result {
	// 元数据提前解析出来，拦截器里需要
	var err error
	if i.model == nil {
		i.model, err = i.r.Get(new(T))
		if err != nil {
			return Result{err: err}
		}
	}

	res := exec(ctx, i.core, i.sess, &QueryContext{
		Type:    "INSERT",
		Builder: i,
		Model:   i.model,
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
