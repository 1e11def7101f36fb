package model

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmtmcse-com/queryset/internal/errs"
)

type TestModel struct {
	Id        int64 `orm:"primary_key=true"`
	FirstName string
	Age       int8
	LastName  *sql.NullString
}

func TestRegistry_Get(t *testing.T) {
	testCases := []struct {
		name      string
		val       any
		wantModel *Model
		wantErr   error

		fields []*Field
	}{
		{
			name:    "struct",
			val:     TestModel{},
			wantErr: errs.ErrPointerOnly,
		},
		{
			name:    "multiple pointer",
			val:     func() any { tm := &TestModel{}; return &tm }(),
			wantErr: errs.ErrPointerOnly,
		},
		{
			name:    "map",
			val:     map[string]string{},
			wantErr: errs.ErrPointerOnly,
		},
		{
			name:    "slice",
			val:     []int{},
			wantErr: errs.ErrPointerOnly,
		},
		{
			name: "pointer",
			val:  &TestModel{},
			wantModel: &Model{
				TableName: "test_model",
			},
			fields: []*Field{
				{
					ColName: "id",
					GoName:  "Id",
					Index:   0,
					Primary: true,
				},
				{
					ColName: "first_name",
					GoName:  "FirstName",
					Index:   1,
				},
				{
					ColName: "age",
					GoName:  "Age",
					Index:   2,
				},
				{
					ColName: "last_name",
					GoName:  "LastName",
					Index:   3,
				},
			},
		},
		{
			name: "column tag",
			val: func() any {
				type ColumnTag struct {
					ID uint64 `orm:"column=id"`
				}
				return &ColumnTag{}
			}(),
			wantModel: &Model{
				TableName: "column_tag",
			},
			fields: []*Field{
				{
					ColName: "id",
					GoName:  "ID",
					Index:   0,
				},
			},
		},
		{
			// 没有指定列名，用默认的驼峰转下划线
			name: "empty column",
			val: func() any {
				type EmptyColumn struct {
					FirstName string `orm:"column="`
				}
				return &EmptyColumn{}
			}(),
			wantModel: &Model{
				TableName: "empty_column",
			},
			fields: []*Field{
				{
					ColName: "first_name",
					GoName:  "FirstName",
					Index:   0,
				},
			},
		},
		{
			name: "invalid tag",
			val: func() any {
				type InvalidTag struct {
					FirstName string `orm:"column"`
				}
				return &InvalidTag{}
			}(),
			wantErr: errs.NewErrInvalidTagContent("column"),
		},
		{
			// 不认识的 key 直接忽略
			name: "ignore unknown tag key",
			val: func() any {
				type IgnoreTag struct {
					FirstName string `orm:"abc=abc"`
				}
				return &IgnoreTag{}
			}(),
			wantModel: &Model{
				TableName: "ignore_tag",
			},
			fields: []*Field{
				{
					ColName: "first_name",
					GoName:  "FirstName",
					Index:   0,
				},
			},
		},
		{
			name: "custom table name",
			val:  &CustomTableName{},
			wantModel: &Model{
				TableName: "custom_table_name_t",
			},
			fields: []*Field{
				{
					ColName: "name",
					GoName:  "Name",
					Index:   0,
				},
			},
		},
		{
			name: "custom table name ptr",
			val:  &CustomTableNamePtr{},
			wantModel: &Model{
				TableName: "custom_table_name_ptr_t",
			},
			fields: []*Field{
				{
					ColName: "name",
					GoName:  "Name",
					Index:   0,
				},
			},
		},
		{
			// TableName 返回空字符串的时候退回默认转换
			name: "empty table name",
			val:  &EmptyTableName{},
			wantModel: &Model{
				TableName: "empty_table_name",
			},
			fields: []*Field{
				{
					ColName: "name",
					GoName:  "Name",
					Index:   0,
				},
			},
		},
	}

	r := NewRegistry()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := r.Get(tc.val)
			assert.Equal(t, tc.wantErr, err)
			if err != nil {
				return
			}

			fieldMap := make(map[string]*Field, len(tc.fields))
			columnMap := make(map[string]*Field, len(tc.fields))
			for _, f := range tc.fields {
				fieldMap[f.GoName] = f
				columnMap[f.ColName] = f
			}
			tc.wantModel.Fields = tc.fields
			tc.wantModel.FieldMap = fieldMap
			tc.wantModel.ColumnMap = columnMap

			// Type 和 Offset 和具体的平台相关，单独校验之后清零再比较
			for _, f := range m.Fields {
				assert.NotNil(t, f.Type)
				f.Type = nil
				f.Offset = 0
			}
			assert.Equal(t, tc.wantModel, m)
		})
	}
}

func TestRegistry_Register(t *testing.T) {
	testCases := []struct {
		name     string
		val      any
		opts     []Option
		wantErr  error
		validate func(t *testing.T, m *Model)
	}{
		{
			name: "with table name",
			val:  &TestModel{},
			opts: []Option{WithTableName("test_model_tbl")},
			validate: func(t *testing.T, m *Model) {
				assert.Equal(t, "test_model_tbl", m.TableName)
			},
		},
		{
			name: "with column name",
			val:  &TestModel{},
			opts: []Option{WithColumnName("FirstName", "first_name_new")},
			validate: func(t *testing.T, m *Model) {
				assert.Equal(t, "first_name_new", m.FieldMap["FirstName"].ColName)
				// 旧列名的映射被删除
				_, ok := m.ColumnMap["first_name"]
				assert.False(t, ok)
				fd, ok := m.ColumnMap["first_name_new"]
				require.True(t, ok)
				assert.Equal(t, "FirstName", fd.GoName)
			},
		},
		{
			name:    "with invalid column name",
			val:     &TestModel{},
			opts:    []Option{WithColumnName("Invalid", "invalid")},
			wantErr: errs.NewErrUnknownField("Invalid"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRegistry()
			m, err := r.Register(tc.val, tc.opts...)
			assert.Equal(t, tc.wantErr, err)
			if err != nil {
				return
			}
			tc.validate(t, m)
		})
	}
}

func TestUnderscoreName(t *testing.T) {
	testCases := []struct {
		name    string
		srcStr  string
		wantStr string
	}{
		{
			name:    "upper cases",
			srcStr:  "ID",
			wantStr: "i_d",
		},
		{
			name:    "use number",
			srcStr:  "Table1Name",
			wantStr: "table1_name",
		},
		{
			name:    "camel",
			srcStr:  "FirstName",
			wantStr: "first_name",
		},
		{
			name:    "lower",
			srcStr:  "name",
			wantStr: "name",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantStr, underscoreName(tc.srcStr))
		})
	}
}

type CustomTableName struct {
	Name string
}

func (c CustomTableName) TableName() string {
	return "custom_table_name_t"
}

type CustomTableNamePtr struct {
	Name string
}

func (c *CustomTableNamePtr) TableName() string {
	return "custom_table_name_ptr_t"
}

type EmptyTableName struct {
	Name string
}

func (c *EmptyTableName) TableName() string {
	return ""
}
