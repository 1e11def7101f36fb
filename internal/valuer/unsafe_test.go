package valuer

import (
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/hmtmcse-com/queryset/model"
)

func TestUnsafeValue_Field(t *testing.T) {
	testField(t, NewUnsafeValue)
}

func TestUnsafeValue_SetColumns(t *testing.T) {
	testSetColumns(t, NewUnsafeValue)
}

// BenchmarkSetColumns 对比反射和 unsafe 两种方案
// 在我们的测试里，unsafe 要快百分之三十左右
func BenchmarkSetColumns(b *testing.B) {
	fn := func(b *testing.B, creator Creator) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(b, err)
		defer func() {
			_ = mockDB.Close()
		}()

		mockRows := sqlmock.NewRows([]string{"id", "first_name", "age", "last_name"})
		row := []driver.Value{[]byte("1"), []byte("Da"), []byte("18"), []byte("Ming")}
		for i := 0; i < b.N; i++ {
			mockRows.AddRow(row...)
		}
		mock.ExpectQuery("SELECT .*").WillReturnRows(mockRows)
		rows, err := mockDB.Query("SELECT XXX")
		require.NoError(b, err)

		meta, err := model.NewRegistry().Get(&TestModel{})
		require.NoError(b, err)

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			rows.Next()
			val := creator(&TestModel{}, meta)
			_ = val.SetColumns(rows)
		}
	}

	b.Run("reflect", func(b *testing.B) {
		fn(b, NewReflectValue)
	})
	b.Run("unsafe", func(b *testing.B) {
		fn(b, NewUnsafeValue)
	})
}
