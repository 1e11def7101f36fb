package queryset

import (
	"database/sql"
	"database/sql/driver"
	"reflect"
	"time"

	"github.com/hmtmcse-com/queryset/internal/errs"
	"github.com/hmtmcse-com/queryset/model"
)

var (
	MySQL   Dialect = &mysqlDialect{}
	SQLite3 Dialect = &sqlite3Dialect{}
)

// Dialect 方言，抽象不同数据库之间的差异
// 这里只放了我们真正用到的三个点：引号、UPSERT 和建表的列类型
type Dialect interface {
	quoter() byte
	buildUpsert(b *builder, u *Upsert) error
	// colType 建表 DDL 中普通列的类型
	colType(fd *model.Field) (string, error)
	// primaryKeyType 建表 DDL 中主键列的完整类型子句
	primaryKeyType(fd *model.Field) (string, error)
}

var (
	timeType       = reflect.TypeOf(time.Time{})
	nullStringType = reflect.TypeOf(sql.NullString{})
	nullInt64Type  = reflect.TypeOf(sql.NullInt64{})
	nullBoolType   = reflect.TypeOf(sql.NullBool{})
	nullFloatType  = reflect.TypeOf(sql.NullFloat64{})
	nullTimeType   = reflect.TypeOf(sql.NullTime{})

	valuerType = reflect.TypeOf((*driver.Valuer)(nil)).Elem()
)

type standardSQL struct {
}

// derefType 指针字段建表时用指向的类型
func derefType(typ reflect.Type) reflect.Type {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	return typ
}

type mysqlDialect struct {
	standardSQL
}

func (m *mysqlDialect) quoter() byte {
	return '`'
}

func (m *mysqlDialect) buildUpsert(b *builder, u *Upsert) error {
	b.sb.WriteString(" ON DUPLICATE KEY UPDATE ")
	for idx, a := range u.assigns {
		if idx > 0 {
			b.sb.WriteByte(',')
		}

		switch assign := a.(type) {
		case Column:
			// 沿用原本要插入的值
			// ... ON DUPLICATE KEY UPDATE `first_name`=VALUES(`first_name`)
			fd, ok := b.model.FieldMap[assign.name]
			if !ok {
				return errs.NewErrUnknownField(assign.name)
			}
			b.quote(fd.ColName)
			b.sb.WriteString("=VALUES(")
			b.quote(fd.ColName)
			b.sb.WriteByte(')')
		case Assignment:
			// ... ON DUPLICATE KEY UPDATE `first_name`=?
			if err := b.buildColumn(Column{name: assign.column}); err != nil {
				return err
			}
			b.sb.WriteByte('=')
			if err := b.buildExpression(assign.val); err != nil {
				return err
			}
		default:
			return errs.NewErrUnsupportedAssignableType(assign)
		}
	}
	return nil
}

func (m *mysqlDialect) colType(fd *model.Field) (string, error) {
	typ := derefType(fd.Type)
	switch typ {
	case timeType, nullTimeType:
		return "DATETIME", nil
	case nullStringType:
		return "VARCHAR(255)", nil
	case nullInt64Type:
		return "BIGINT", nil
	case nullBoolType:
		return "BOOLEAN", nil
	case nullFloatType:
		return "DOUBLE", nil
	}
	// JsonColumn 这类自定义类型自己负责和驱动之间的转换，统一存 TEXT
	if typ.Implements(valuerType) {
		return "TEXT", nil
	}
	switch typ.Kind() {
	case reflect.Bool:
		return "BOOLEAN", nil
	case reflect.Int8:
		return "TINYINT", nil
	case reflect.Int16:
		return "SMALLINT", nil
	case reflect.Int32:
		return "INT", nil
	case reflect.Int, reflect.Int64:
		return "BIGINT", nil
	case reflect.Uint8:
		return "TINYINT UNSIGNED", nil
	case reflect.Uint16:
		return "SMALLINT UNSIGNED", nil
	case reflect.Uint32:
		return "INT UNSIGNED", nil
	case reflect.Uint, reflect.Uint64:
		return "BIGINT UNSIGNED", nil
	case reflect.Float32:
		return "FLOAT", nil
	case reflect.Float64:
		return "DOUBLE", nil
	case reflect.String:
		return "VARCHAR(255)", nil
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.Uint8 {
			return "BLOB", nil
		}
	}
	return "", errs.NewErrUnsupportedColumnType(fd.Type)
}

func (m *mysqlDialect) primaryKeyType(fd *model.Field) (string, error) {
	ct, err := m.colType(fd)
	if err != nil {
		return "", err
	}
	switch derefType(fd.Type).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return ct + " AUTO_INCREMENT PRIMARY KEY", nil
	default:
		return ct + " PRIMARY KEY", nil
	}
}

type sqlite3Dialect struct {
	standardSQL
}

func (s *sqlite3Dialect) quoter() byte {
	return '`'
}

func (s *sqlite3Dialect) buildUpsert(b *builder, u *Upsert) error {
	b.sb.WriteString(" ON CONFLICT")
	if len(u.conflictColumns) > 0 {
		b.sb.WriteByte('(')
		for i, col := range u.conflictColumns {
			if i > 0 {
				b.sb.WriteByte(',')
			}
			if err := b.buildColumn(Column{name: col}); err != nil {
				return err
			}
		}
		b.sb.WriteByte(')')
	}
	b.sb.WriteString(" DO UPDATE SET ")

	for idx, a := range u.assigns {
		if idx > 0 {
			b.sb.WriteByte(',')
		}
		switch assign := a.(type) {
		case Column:
			fd, ok := b.model.FieldMap[assign.name]
			if !ok {
				return errs.NewErrUnknownField(assign.name)
			}
			b.quote(fd.ColName)
			b.sb.WriteString("=excluded.")
			b.quote(fd.ColName)
		case Assignment:
			if err := b.buildColumn(Column{name: assign.column}); err != nil {
				return err
			}
			b.sb.WriteByte('=')
			if err := b.buildExpression(assign.val); err != nil {
				return err
			}
		default:
			return errs.NewErrUnsupportedAssignableType(a)
		}
	}
	return nil
}

func (s *sqlite3Dialect) colType(fd *model.Field) (string, error) {
	typ := derefType(fd.Type)
	switch typ {
	case timeType, nullTimeType:
		return "DATETIME", nil
	case nullStringType:
		return "TEXT", nil
	case nullInt64Type, nullBoolType:
		return "INTEGER", nil
	case nullFloatType:
		return "REAL", nil
	}
	if typ.Implements(valuerType) {
		return "TEXT", nil
	}
	switch typ.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "INTEGER", nil
	case reflect.Float32, reflect.Float64:
		return "REAL", nil
	case reflect.String:
		return "TEXT", nil
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.Uint8 {
			return "BLOB", nil
		}
	}
	return "", errs.NewErrUnsupportedColumnType(fd.Type)
}

func (s *sqlite3Dialect) primaryKeyType(fd *model.Field) (string, error) {
	switch derefType(fd.Type).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		// SQLite 的自增主键必须是 INTEGER PRIMARY KEY
		return "INTEGER PRIMARY KEY AUTOINCREMENT", nil
	default:
		ct, err := s.colType(fd)
		if err != nil {
			return "", err
		}
		return ct + " PRIMARY KEY", nil
	}
}
