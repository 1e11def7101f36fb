package model

import "reflect"

// Option is a function type that modifies a Model.
type Option func(model *Model) error

// Model 结构体映射 db 表之后的元数据
type Model struct {
	// TableName 结构体对应的表名
	TableName string
	// Fields 按照结构体字段声明顺序排列，INSERT 依赖这个顺序
	Fields    []*Field
	FieldMap  map[string]*Field // 结构体属性名为 key，例如 ItemId
	ColumnMap map[string]*Field // DB 列名为 key，例如 item_id
}

// Field 字段相关的属性
type Field struct {
	ColName string       // 数据库中的字段名
	GoName  string       // go struct 中的名字
	Type    reflect.Type // go 中的数据类型，扫描结果集的时候需要还原出来
	// Offset 相对于对象起始地址的字段偏移量，unsafe 取值方案使用
	Offset uintptr
	// Index 结构体内的字段下标
	Index int
	// Primary 主键标记，建表 DDL 使用
	Primary bool
}

// 我们支持的全部标签上的 key 都放在这里
// 方便用户查找，和我们后期维护
const (
	tagKeyColumn  = "column"
	tagKeyPrimary = "primary_key"
	tagORMName    = "orm"
)

// TableName 用户实现这个接口来返回自定义的表名
type TableName interface {
	TableName() string
}
