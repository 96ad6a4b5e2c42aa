package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/jkuschner/Document-Storage-App/internal/common"
	"github.com/jkuschner/Document-Storage-App/internal/server/models"
)

func testUser(id, email string) *models.User {
	return &models.User{ID: id, Email: email, PasswordHash: []byte("hash"), ConfirmationCode: "123456"}
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return db, mock
}

func TestCreate(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("u1", "a@b.c", []byte("hash"), false, "123456").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	r := NewPostgresRepository(db)
	u, err := r.Create(context.Background(), testUser("u1", "a@b.c"))
	require.NoError(t, err)
	require.Equal(t, now, u.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

	r := NewPostgresRepository(db)
	_, err := r.Create(context.Background(), testUser("u1", "a@b.c"))
	require.ErrorIs(t, err, common.ErrUserAlreadyExists)
}

func TestGetByEmailNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, email").
		WithArgs("missing@b.c").
		WillReturnError(sql.ErrNoRows)

	r := NewPostgresRepository(db)
	_, err := r.GetByEmail(context.Background(), "missing@b.c")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestConfirm(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users SET email_verified=true").
		WithArgs("a@b.c").
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := NewPostgresRepository(db)
	require.NoError(t, r.Confirm(context.Background(), "a@b.c"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users SET email_verified=true").
		WithArgs("a@b.c").
		WillReturnResult(sqlmock.NewResult(0, 0))

	r := NewPostgresRepository(db)
	require.ErrorIs(t, r.Confirm(context.Background(), "a@b.c"), common.ErrorNotFound)
}
