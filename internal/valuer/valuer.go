package valuer

import (
	"database/sql"

	"github.com/hmtmcse-com/queryset/model"
)

// Value 是对结构体实例的内部抽象
// 屏蔽反射和 unsafe 两种取值、赋值方案的差异
type Value interface {
	// Field 返回字段对应的值
	Field(name string) (any, error)
	// SetColumns 把 rows 里面的数据设置到结构体对应字段上
	SetColumns(rows *sql.Rows) error
}

// Creator 本质上也是一种工厂模式的变体
// val 必须是指向结构体实例的指针
type Creator func(val any, meta *model.Model) Value
