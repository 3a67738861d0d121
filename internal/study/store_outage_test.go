package study

import (
	"context"
	"errors"
	"testing"

	"studynotes/internal/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupOutageDB wires the postgres dialector to sqlmock so the service can be
// driven against a database that fails every query.
func setupOutageDB(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	return &Service{DB: gdb}, mock
}

func TestListCategories_StoreUnavailable(t *testing.T) {
	s, mock := setupOutageDB(t)
	cause := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

	mock.ExpectQuery(`SELECT \* FROM "categories" WHERE user_id = \$1`).
		WithArgs(uint64(1)).
		WillReturnError(cause)

	_, err := s.ListCategories(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.StoreUnavailable), "got %v", err)
	assert.ErrorIs(t, err, cause)

	var ae *apperror.AppError
	require.ErrorAs(t, err, &ae)
	assert.NotContains(t, ae.ToResponse().Message, "5432", "client message must not leak store details")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCategories_PostgresQueryShape(t *testing.T) {
	s, mock := setupOutageDB(t)

	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "description", "icon", "color", "total_topics"}).
		AddRow(1, 3, "Development", "", "Monitor", "from-purple-500 to-pink-600", 30)
	mock.ExpectQuery(`SELECT \* FROM "categories" WHERE user_id = \$1 ORDER BY id asc`).
		WithArgs(uint64(3)).
		WillReturnRows(rows)

	got, err := s.ListCategories(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Development", got[0].Name)
	assert.Equal(t, 30, got[0].TotalTopics)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteNote_StoreUnavailable(t *testing.T) {
	s, mock := setupOutageDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "notes"`).WillReturnError(errors.New("connection reset by peer"))
	mock.ExpectRollback()

	err := s.DeleteNote(context.Background(), 1, 2)
	assert.True(t, apperror.Is(err, apperror.StoreUnavailable), "got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
