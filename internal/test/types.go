// Package test 放着各个包的测试共用的模型
package test

import (
	"database/sql"

	"github.com/gotomicro/ekit/sqlx"
)

type Profile struct {
	Bio     string `json:"bio"`
	Website string `json:"website"`
}

// SimpleStruct 覆盖我们支持的典型列类型
type SimpleStruct struct {
	Id            int64 `orm:"primary_key=true"`
	Bool          bool
	Int           int
	Int64         int64
	Float64       float64
	String        string
	ByteArray     []byte
	NullStringPtr *sql.NullString
	JsonColumn    *sqlx.JsonColumn[Profile]
}

func NewSimpleStruct(id int64) *SimpleStruct {
	return &SimpleStruct{
		Id:        id,
		Bool:      true,
		Int:       12,
		Int64:     64,
		Float64:   6.4,
		String:    "world",
		ByteArray: []byte("hello"),
		NullStringPtr: &sql.NullString{
			String: "null string",
			Valid:  true,
		},
		JsonColumn: &sqlx.JsonColumn[Profile]{
			Val:   Profile{Bio: "Tom", Website: "toml.example.com"},
			Valid: true,
		},
	}
}
