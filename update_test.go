package queryset

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmtmcse-com/queryset/internal/errs"
)

func TestUpdater_Build(t *testing.T) {
	db := memoryDB(t)
	testCases := []struct {
		name      string
		q         QueryBuilder
		wantQuery *Query
		wantErr   error
	}{
		{
			name:    "no columns",
			q:       NewUpdater[TestModel](db),
			wantErr: errs.ErrNoUpdatedColumns,
		},
		{
			name: "assign value",
			q:    NewUpdater[TestModel](db).Set(Assign("Age", 19)),
			wantQuery: &Query{
				SQL:  "UPDATE `test_model` SET `age`=?;",
				Args: []any{19},
			},
		},
		{
			// C("Xxx") 表示从 Update 指定的结构体里面取值
			name: "column from struct",
			q: NewUpdater[TestModel](db).
				Update(&TestModel{Age: 18}).
				Set(C("Age")),
			wantQuery: &Query{
				SQL:  "UPDATE `test_model` SET `age`=?;",
				Args: []any{int8(18)},
			},
		},
		{
			name: "multiple assign with where",
			q: NewUpdater[TestModel](db).
				Update(&TestModel{FirstName: "Deng", Age: 18}).
				Set(C("FirstName"), Assign("Age", 19)).
				Where(C("Id").EQ(1)),
			wantQuery: &Query{
				SQL:  "UPDATE `test_model` SET `first_name`=?,`age`=? WHERE `id` = ?;",
				Args: []any{"Deng", 19, 1},
			},
		},
		{
			// 自增
			name: "math expr",
			q: NewUpdater[TestModel](db).
				Set(Assign("Age", C("Age").Add(1))),
			wantQuery: &Query{
				SQL:  "UPDATE `test_model` SET `age`=`age`+?;",
				Args: []any{1},
			},
		},
		{
			name: "math expr chain",
			q: NewUpdater[TestModel](db).
				Set(Assign("Age", C("Age").Add(1).Multi(2))),
			wantQuery: &Query{
				SQL:  "UPDATE `test_model` SET `age`=(`age`+?)*?;",
				Args: []any{1, 2},
			},
		},
		{
			name:    "invalid column",
			q:       NewUpdater[TestModel](db).Set(Assign("Invalid", 19)),
			wantErr: errs.NewErrUnknownField("Invalid"),
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

func TestBulkUpdate(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() {
		_ = mockDB.Close()
	}()
	db, err := OpenDB(mockDB)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `test_model` .*").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `test_model` .*").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = BulkUpdate[TestModel](context.Background(), db, "Id",
		&TestModel{
			Id:        1,
			FirstName: "Da",
			Age:       18,
			LastName:  &sql.NullString{String: "Ming", Valid: true},
		},
		&TestModel{
			Id:        2,
			FirstName: "Xiao",
			Age:       16,
			LastName:  &sql.NullString{String: "Ming", Valid: true},
		})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkUpdate_UnknownKey(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() {
		_ = mockDB.Close()
	}()
	db, err := OpenDB(mockDB)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err = BulkUpdate[TestModel](context.Background(), db, "Invalid",
		&TestModel{Id: 1})
	assert.Equal(t, errs.NewErrUnknownField("Invalid"), err)
}
