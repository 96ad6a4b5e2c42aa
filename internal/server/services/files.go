package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jkuschner/Document-Storage-App/internal/common"
	"github.com/jkuschner/Document-Storage-App/internal/logging"
	"github.com/jkuschner/Document-Storage-App/internal/server/models"
	"github.com/jkuschner/Document-Storage-App/internal/server/repositories/repomanager"
	"github.com/jkuschner/Document-Storage-App/internal/server/storage"
)

// ObjectStorage is the slice of the object store the file-related services
// need. *storage.ObjectStore satisfies it.
type ObjectStorage interface {
	PresignPut(ctx context.Context, key, contentType string) (string, error)
	PresignGet(ctx context.Context, key string) (string, error)
	ReadObject(ctx context.Context, key string, limit int64) ([]byte, error)
	DeleteObject(ctx context.Context, key string) error
}

// UploadSlot is what a client needs to push file content directly to object
// storage: the presigned PUT URL and the id of the pending metadata record.
type UploadSlot struct {
	FileID    string
	UploadURL string
}

// DownloadLink pairs a presigned GET URL with the original file name.
type DownloadLink struct {
	FileID      string
	FileName    string
	DownloadURL string
}

// FileService implements the file catalog: upload slots, listing, downloads
// and deletion. Content never passes through this process; clients talk to
// object storage directly via presigned URLs.
type FileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       ObjectStorage
	logger      logging.Logger
}

func NewFileService(db *sql.DB, m repomanager.RepositoryManager, store ObjectStorage, l logging.Logger) *FileService {
	return &FileService{db: db, repomanager: m, store: store, logger: l.With("module", "files")}
}

// RequestUpload allocates a storage key, presigns a PUT URL for it and
// records a pending metadata row. The row flips to completed only when the
// client acknowledges the transfer via Complete.
func (s *FileService) RequestUpload(ctx context.Context, userID, fileName, contentType string, size int64) (*UploadSlot, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return nil, fmt.Errorf("%w: file name is required", common.ErrorValidation)
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: negative size", common.ErrorValidation)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := storage.StorageKeyFor(userID)

	uploadURL, err := s.store.PresignPut(ctx, key, contentType)
	if err != nil {
		s.logger.Error(ctx, "presign put failed", "error", err)
		return nil, common.ErrorInternal
	}

	file := &models.File{
		ID:          uuid.NewString(),
		UserID:      userID,
		FileName:    fileName,
		StorageKey:  key,
		ContentType: contentType,
		Size:        size,
		Status:      models.StatusPending,
		UploadDate:  time.Now(),
	}
	if err := s.repomanager.Files(s.db).Create(ctx, file); err != nil {
		return nil, fmt.Errorf("error creating file record: %w", err)
	}

	s.logger.Info(ctx, "upload slot issued", "file_id", file.ID, "user_id", userID)
	return &UploadSlot{FileID: file.ID, UploadURL: uploadURL}, nil
}

// Complete marks a pending upload as completed. Unknown ids, foreign ids and
// already-completed files all come back as ErrorNotFound.
func (s *FileService) Complete(ctx context.Context, userID, fileID string) error {
	return s.repomanager.Files(s.db).MarkCompleted(ctx, userID, fileID)
}

// List returns the owner's files, newest first.
func (s *FileService) List(ctx context.Context, userID string) ([]*models.File, error) {
	return s.repomanager.Files(s.db).ListByOwner(ctx, userID)
}

// Download presigns a GET URL for the owner's file.
func (s *FileService) Download(ctx context.Context, userID, fileID string) (*DownloadLink, error) {
	file, err := s.repomanager.Files(s.db).GetByID(ctx, userID, fileID)
	if err != nil {
		return nil, err
	}

	url, err := s.store.PresignGet(ctx, file.StorageKey)
	if err != nil {
		s.logger.Error(ctx, "presign get failed", "error", err)
		return nil, common.ErrorInternal
	}

	return &DownloadLink{FileID: file.ID, FileName: file.FileName, DownloadURL: url}, nil
}

// Delete removes the stored object and then the metadata row. A missing
// object is not an error; the row is the source of truth.
func (s *FileService) Delete(ctx context.Context, userID, fileID string) error {
	file, err := s.repomanager.Files(s.db).GetByID(ctx, userID, fileID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteObject(ctx, file.StorageKey); err != nil {
		s.logger.Warn(ctx, "object delete failed", "key", file.StorageKey, "error", err)
	}

	if err := s.repomanager.Files(s.db).Delete(ctx, userID, fileID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return common.ErrorInternal
	}

	s.logger.Info(ctx, "file deleted", "file_id", fileID, "user_id", userID)
	return nil
}
