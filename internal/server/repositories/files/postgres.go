package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jkuschner/Document-Storage-App/internal/common"
	"github.com/jkuschner/Document-Storage-App/internal/dbx"
	"github.com/jkuschner/Document-Storage-App/internal/server/models"
)

// PostgresRepository implements file metadata storage over a dbx.DBTX
// (*sql.DB or *sql.Tx). Every query is scoped by user_id so a row is never
// visible outside its owner.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new metadata row, normally with status 'pending'.
func (r *PostgresRepository) Create(ctx context.Context, file *models.File) error {
	query := `
		INSERT INTO files (id, user_id, file_name, storage_key, content_type, size, folder, status, upload_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.ExecContext(ctx, query,
		file.ID, file.UserID, file.FileName, file.StorageKey, file.ContentType,
		file.Size, file.Folder, file.Status, file.UploadDate)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListByOwner returns all files belonging to userID, newest first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]*models.File, error) {
	query := `
		SELECT id, user_id, file_name, storage_key, content_type, size, folder, status, upload_date
		FROM files WHERE user_id=$1
		ORDER BY upload_date DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	var result []*models.File
	for rows.Next() {
		var item models.File
		if err := rows.Scan(&item.ID, &item.UserID, &item.FileName, &item.StorageKey,
			&item.ContentType, &item.Size, &item.Folder, &item.Status, &item.UploadDate); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns the file row only when it belongs to userID.
func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.File, error) {
	query := `
		SELECT id, user_id, file_name, storage_key, content_type, size, folder, status, upload_date
		FROM files WHERE id=$1 AND user_id=$2
	`
	var item models.File
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&item.ID, &item.UserID, &item.FileName, &item.StorageKey,
		&item.ContentType, &item.Size, &item.Folder, &item.Status, &item.UploadDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select file: %w", err)
	}
	return &item, nil
}

// MarkCompleted flips the upload status pending -> completed. Exactly one
// row must be affected.
func (r *PostgresRepository) MarkCompleted(ctx context.Context, userID, id string) error {
	query := `UPDATE files SET status='completed' WHERE id=$1 AND user_id=$2 AND status='pending'`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark completed: %w", err)
	}
	ra, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return common.ErrorNotFound
	}
	return nil
}

// Delete removes the metadata row, scoped by owner.
func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	ra, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return common.ErrorNotFound
	}
	return nil
}
