package valuer

import (
	"database/sql"
	"reflect"

	"github.com/hmtmcse-com/queryset/internal/errs"
	"github.com/hmtmcse-com/queryset/model"
)

// reflectValue 基于反射的 Value
type reflectValue struct {
	val  reflect.Value
	meta *model.Model
}

var _ Creator = NewReflectValue

// NewReflectValue 返回一个封装好的，基于反射实现的 Value
// 输入 val 必须是一个指向结构体实例的指针，而不能是任何其它类型
func NewReflectValue(val any, meta *model.Model) Value {
	return reflectValue{
		val:  reflect.ValueOf(val).Elem(),
		meta: meta,
	}
}

func (r reflectValue) Field(name string) (any, error) {
	fd, ok := r.meta.FieldMap[name]
	if !ok {
		return nil, errs.NewErrUnknownField(name)
	}
	return r.val.Field(fd.Index).Interface(), nil
}

// SetColumns sets the values from the database to the corresponding struct fields.
func (r reflectValue) SetColumns(rows *sql.Rows) error {
	columnNames, err := rows.Columns()
	if err != nil {
		return err
	}

	if len(columnNames) > len(r.meta.ColumnMap) {
		return errs.ErrTooManyReturnedColumns
	}

	// colValues 和 colEleValues 实质上指向同一批对象
	// Scan 需要 []any，赋值需要 reflect.Value，所以存两份
	colValues := make([]any, len(columnNames))
	colEleValues := make([]reflect.Value, len(columnNames))

	for i, name := range columnNames {
		field, ok := r.meta.ColumnMap[name]
		if !ok {
			return errs.NewErrUnknownColumn(name)
		}

		value := reflect.New(field.Type)
		colValues[i] = value.Interface()
		colEleValues[i] = value.Elem()
	}

	if err = rows.Scan(colValues...); err != nil {
		return err
	}

	for i, c := range columnNames {
		cm := r.meta.ColumnMap[c]
		fd := r.val.Field(cm.Index)
		fd.Set(colEleValues[i])
	}
	return nil
}
