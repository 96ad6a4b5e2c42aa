package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jkuschner/Document-Storage-App/internal/common"
	"github.com/jkuschner/Document-Storage-App/internal/dbx"
	"github.com/jkuschner/Document-Storage-App/internal/server/models"
)

// PostgresRepository implements user storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user row. A duplicate email yields
// common.ErrUserAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (id, email, password_hash, email_verified, confirmation_code)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at;
	`
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.EmailVerified, user.ConfirmationCode).
		Scan(&user.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, common.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// GetByEmail returns the user with the given email, or common.ErrorNotFound.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, email_verified, confirmation_code, created_at
		FROM users WHERE email=$1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// GetByID returns the user with the given id, or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, email_verified, confirmation_code, created_at
		FROM users WHERE id=$1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// SetConfirmationCode stores a pending signup or reset code for the user.
func (r *PostgresRepository) SetConfirmationCode(ctx context.Context, email, code string) error {
	return r.execOne(ctx, `UPDATE users SET confirmation_code=$2 WHERE email=$1`, email, code)
}

// Confirm marks the user's email verified and clears the pending code.
func (r *PostgresRepository) Confirm(ctx context.Context, email string) error {
	return r.execOne(ctx, `UPDATE users SET email_verified=true, confirmation_code='' WHERE email=$1`, email)
}

// UpdatePassword replaces the stored hash and clears the pending code.
func (r *PostgresRepository) UpdatePassword(ctx context.Context, email string, passwordHash []byte) error {
	return r.execOne(ctx, `UPDATE users SET password_hash=$2, confirmation_code='' WHERE email=$1`, email, passwordHash)
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.EmailVerified, &u.ConfirmationCode, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select user: %w", err)
	}
	return u, nil
}

func (r *PostgresRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
