package queryset

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawQuerier_Get(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() {
		_ = mockDB.Close()
	}()
	db, err := OpenDB(mockDB)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "first_name", "age", "last_name"})
	rows.AddRow([]byte("1"), []byte("Da"), []byte("18"), []byte("Ming"))
	mock.ExpectQuery("SELECT .*").WillReturnRows(rows)

	res, err := RawQuery[TestModel](db,
		"SELECT * FROM `test_model` WHERE `id`=?;", 1).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &TestModel{
		Id:        1,
		FirstName: "Da",
		Age:       18,
		LastName:  &sql.NullString{String: "Ming", Valid: true},
	}, res)
}

func TestRawQuerier_Exec(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() {
		_ = mockDB.Close()
	}()
	db, err := OpenDB(mockDB)
	require.NoError(t, err)

	mock.ExpectExec("UPDATE .*").WillReturnResult(sqlmock.NewResult(0, 2))

	res := RawQuery[TestModel](db,
		"UPDATE `test_model` SET `age`=`age`+1;").Exec(context.Background())
	require.NoError(t, res.Err())
	affected, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
}
