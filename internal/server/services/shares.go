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
	"github.com/jkuschner/Document-Storage-App/internal/server/config"
	"github.com/jkuschner/Document-Storage-App/internal/server/models"
	"github.com/jkuschner/Document-Storage-App/internal/server/repositories/repomanager"
)

// ShareGrant is a created share link.
type ShareGrant struct {
	Token     string
	ShareURL  string
	ExpiresAt time.Time
}

// ShareService manages time-limited public links to files. Grants are
// resolved without authentication; expiry is enforced at resolution time.
type ShareService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	store           ObjectStorage
	logger          logging.Logger
	shareBaseURL    string
	defaultValidity time.Duration
}

func NewShareService(db *sql.DB, m repomanager.RepositoryManager, store ObjectStorage, cfg *config.Config, l logging.Logger) *ShareService {
	return &ShareService{
		db:              db,
		repomanager:     m,
		store:           store,
		logger:          l.With("module", "shares"),
		shareBaseURL:    strings.TrimRight(cfg.ShareBaseURL, "/"),
		defaultValidity: cfg.DefaultShareValidity,
	}
}

// Create issues a share grant for the owner's file. A non-positive validity
// falls back to the configured default.
func (s *ShareService) Create(ctx context.Context, userID, fileID string, validity time.Duration) (*ShareGrant, error) {
	if validity <= 0 {
		validity = s.defaultValidity
	}

	// Ownership check; also rejects ids that do not exist.
	if _, err := s.repomanager.Files(s.db).GetByID(ctx, userID, fileID); err != nil {
		return nil, err
	}

	share := &models.Share{
		Token:     uuid.NewString(),
		FileID:    fileID,
		UserID:    userID,
		ExpiresAt: time.Now().Add(validity),
	}
	if err := s.repomanager.Shares(s.db).Create(ctx, share); err != nil {
		return nil, fmt.Errorf("error creating share: %w", err)
	}

	s.logger.Info(ctx, "share created", "file_id", fileID, "token", share.Token)
	return &ShareGrant{
		Token:     share.Token,
		ShareURL:  s.shareBaseURL + "/" + share.Token,
		ExpiresAt: share.ExpiresAt,
	}, nil
}

// Resolve exchanges a share token for a presigned download link. Expired
// grants yield ErrShareExpired, unknown tokens ErrorNotFound.
func (s *ShareService) Resolve(ctx context.Context, token string) (*DownloadLink, error) {
	share, err := s.repomanager.Shares(s.db).GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if time.Now().After(share.ExpiresAt) {
		return nil, common.ErrShareExpired
	}

	file, err := s.repomanager.Files(s.db).GetByID(ctx, share.UserID, share.FileID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// The underlying file was deleted after the grant was made.
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	url, err := s.store.PresignGet(ctx, file.StorageKey)
	if err != nil {
		s.logger.Error(ctx, "presign get failed", "error", err)
		return nil, common.ErrorInternal
	}

	return &DownloadLink{FileID: file.ID, FileName: file.FileName, DownloadURL: url}, nil
}

// PurgeExpired deletes grants whose expiry has passed. Intended to run
// periodically from the app loop.
func (s *ShareService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repomanager.Shares(s.db).DeleteExpired(ctx)
}
