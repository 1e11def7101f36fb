package model

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/hmtmcse-com/queryset/internal/errs"
)

type Registry interface {
	Get(val any) (*Model, error)
	Register(val any, opts ...Option) (*Model, error)
}

// registry 元数据注册中心
// 使用 sync.Map 而不是类型名做 key 的普通 map：
// 1. 类型名会冲突，例如两个包里都有 User
// 2. 并发不安全
type registry struct {
	models sync.Map
}

func NewRegistry() Registry {
	return &registry{}
}

// Get fetches the model associated with a given value.
// If the model is not found in the registry, it is parsed and stored for future use.
func (r *registry) Get(val any) (*Model, error) {
	typ := reflect.TypeOf(val)

	m, ok := r.models.Load(typ)
	if ok {
		return m.(*Model), nil
	}

	return r.Register(val)
}

// Register registers a model in the registry with the given options.
// It parses the model if it is not found and applies the provided options.
func (r *registry) Register(val any, opts ...Option) (*Model, error) {
	m, err := r.parseModel(val)
	if err != nil {
		return nil, err
	}

	for _, opt := range opts {
		err = opt(m)
		if err != nil {
			return nil, err
		}
	}

	typ := reflect.TypeOf(val)
	r.models.Store(typ, m)

	return m, nil
}

// parseModel 解析结构体，生成字段名到列名的双向映射
// 标签形式 orm:"key1=value1,key2=value2"
func (r *registry) parseModel(val any) (*Model, error) {
	typ := reflect.TypeOf(val)

	// 只支持一级指针，*User 可以，**User 和 User 不行
	if typ.Kind() != reflect.Ptr || typ.Elem().Kind() != reflect.Struct {
		return nil, errs.ErrPointerOnly
	}

	typ = typ.Elem()
	numField := typ.NumField()

	fields := make([]*Field, 0, numField)
	fds := make(map[string]*Field, numField)
	colMap := make(map[string]*Field, numField)

	for i := 0; i < numField; i++ {
		fdStruct := typ.Field(i)

		tags, err := r.parseTag(fdStruct.Tag)
		if err != nil {
			return nil, err
		}

		colName := tags[tagKeyColumn]
		if colName == "" {
			// 没有指定列名则使用默认转换，ItemId -> item_id
			colName = underscoreName(fdStruct.Name)
		}

		f := &Field{
			ColName: colName,
			GoName:  fdStruct.Name,
			Type:    fdStruct.Type,
			Offset:  fdStruct.Offset,
			Index:   i,
			Primary: tags[tagKeyPrimary] == "true",
		}
		fields = append(fields, f)
		fds[fdStruct.Name] = f
		colMap[colName] = f
	}

	var tableName string
	if tn, ok := val.(TableName); ok {
		tableName = tn.TableName()
	}
	if tableName == "" {
		tableName = underscoreName(typ.Name())
	}

	return &Model{
		TableName: tableName,
		Fields:    fields,
		FieldMap:  fds,
		ColumnMap: colMap,
	}, nil
}

// parseTag parses the given struct tag and returns a map of key-value pairs.
func (r *registry) parseTag(tag reflect.StructTag) (map[string]string, error) {
	ormTag := tag.Get(tagORMName)
	if ormTag == "" {
		// 返回一个空的 map，这样调用者就不需要判 nil
		return map[string]string{}, nil
	}

	res := make(map[string]string, 2)

	pairs := strings.Split(ormTag, ",")
	for _, pair := range pairs {
		kv := strings.Split(pair, "=")
		if len(kv) != 2 {
			return nil, errs.NewErrInvalidTagContent(pair)
		}
		res[kv[0]] = kv[1]
	}

	return res, nil
}

// underscoreName converts a given name to underscore case.
// UserName -> user_name
func underscoreName(tableName string) string {
	var buf []byte
	for i, v := range tableName {
		if unicode.IsUpper(v) {
			if i != 0 {
				buf = append(buf, '_')
			}
			buf = append(buf, byte(unicode.ToLower(v)))
		} else {
			buf = append(buf, byte(v))
		}
	}
	return string(buf)
}

// WithTableName is an Option function that sets the table name for a Model.
func WithTableName(tableName string) Option {
	return func(model *Model) error {
		model.TableName = tableName
		return nil
	}
}

// WithColumnName 重置某个字段映射的列名
func WithColumnName(field, columnName string) Option {
	return func(model *Model) error {
		fd, ok := model.FieldMap[field]
		if !ok {
			return errs.NewErrUnknownField(field)
		}

		// 旧列名的映射一并调整，否则扫描结果集的时候会找不到字段
		delete(model.ColumnMap, fd.ColName)
		fd.ColName = columnName
		model.ColumnMap[columnName] = fd
		return nil
	}
}
