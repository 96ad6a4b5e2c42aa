package shares

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jkuschner/Document-Storage-App/internal/common"
	"github.com/jkuschner/Document-Storage-App/internal/dbx"
	"github.com/jkuschner/Document-Storage-App/internal/server/models"
)

// PostgresRepository implements share grant storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new share grant.
func (r *PostgresRepository) Create(ctx context.Context, share *models.Share) error {
	query := `
		INSERT INTO shares (token, file_id, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.db.ExecContext(ctx, query,
		share.Token, share.FileID, share.UserID, share.CreatedAt, share.ExpiresAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetByToken returns the grant for token, or common.ErrorNotFound.
// Expiry is the service's concern; expired rows are still returned.
func (r *PostgresRepository) GetByToken(ctx context.Context, token string) (*models.Share, error) {
	query := `SELECT token, file_id, user_id, created_at, expires_at FROM shares WHERE token=$1`

	var s models.Share
	err := r.db.QueryRowContext(ctx, query, token).
		Scan(&s.Token, &s.FileID, &s.UserID, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select share: %w", err)
	}
	return &s, nil
}

// DeleteExpired drops grants past their expiry and reports how many.
func (r *PostgresRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM shares WHERE expires_at < now()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired shares: %w", err)
	}
	return result.RowsAffected()
}
