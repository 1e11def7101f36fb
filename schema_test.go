package queryset

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreator_Build(t *testing.T) {
	testCases := []struct {
		name      string
		q         QueryBuilder
		wantQuery *Query
		wantErr   error
	}{
		{
			name: "mysql",
			q:    NewCreator[TestModel](memoryDB(t)),
			wantQuery: &Query{
				SQL: "CREATE TABLE `test_model` (`id` BIGINT AUTO_INCREMENT PRIMARY KEY," +
					"`first_name` VARCHAR(255),`age` TINYINT,`last_name` VARCHAR(255));",
			},
		},
		{
			name: "mysql if not exists",
			q:    NewCreator[TestModel](memoryDB(t)).IfNotExists(),
			wantQuery: &Query{
				SQL: "CREATE TABLE IF NOT EXISTS `test_model` (`id` BIGINT AUTO_INCREMENT PRIMARY KEY," +
					"`first_name` VARCHAR(255),`age` TINYINT,`last_name` VARCHAR(255));",
			},
		},
		{
			name: "sqlite3",
			q:    NewCreator[TestModel](memoryDB(t, DBWithDialect(SQLite3))).IfNotExists(),
			wantQuery: &Query{
				SQL: "CREATE TABLE IF NOT EXISTS `test_model` (`id` INTEGER PRIMARY KEY AUTOINCREMENT," +
					"`first_name` TEXT,`age` INTEGER,`last_name` TEXT);",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			query, err := tc.q.Build()
			assert.Equal(t, tc.wantErr, err)
			if err != nil {
				return
			}
			assert.Equal(t, tc.wantQuery, query)
		})
	}
}

func TestDropper_Build(t *testing.T) {
	db := memoryDB(t)
	query, err := NewDropper[TestModel](db).Build()
	require.NoError(t, err)
	assert.Equal(t, &Query{
		SQL: "DROP TABLE IF EXISTS `test_model`;",
	}, query)
}

// 建表删表在真正的 sqlite 上走一遍
func TestCreator_Exec(t *testing.T) {
	db := memoryDB(t, DBWithDialect(SQLite3))
	ctx := context.Background()

	res := NewCreator[TestModel](db).IfNotExists().Exec(ctx)
	require.NoError(t, res.Err())

	res = NewInserter[TestModel](db).
		Values(&TestModel{
			Id:        1,
			FirstName: "Da",
			Age:       18,
			LastName:  &sql.NullString{String: "Ming", Valid: true},
		}).
		OnDuplicateKey().ConflictColumns("Id").Update(C("FirstName")).
		Exec(ctx)
	require.NoError(t, res.Err())

	found, err := NewSelector[TestModel](db).Where(C("Id").EQ(1)).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Da", found.FirstName)

	res = NewDropper[TestModel](db).Exec(ctx)
	require.NoError(t, res.Err())
}

func TestDDL_ExecError(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() {
		_ = mockDB.Close()
	}()
	db, err := OpenDB(mockDB)
	require.NoError(t, err)

	mock.ExpectExec("CREATE TABLE .*").WillReturnResult(sqlmock.NewResult(0, 0))
	res := NewCreator[TestModel](db).Exec(context.Background())
	require.NoError(t, res.Err())
}
