package files

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/jkuschner/Document-Storage-App/internal/client/api"
	"github.com/jkuschner/Document-Storage-App/internal/logging"
)

// Principal exposes the signed-in user's id. The session resolver satisfies
// it.
type Principal interface {
	UserID() string
}

// Service drives the file catalog over the REST API. Every operation needs
// a resolved principal; a missing one fails before any network I/O.
type Service struct {
	api       *api.Client
	principal Principal
	storeHTTP *http.Client
	logger    logging.Logger
}

// NewService builds a Service. storeHTTP talks directly to object storage
// through presigned URLs; nil means http.DefaultClient semantics.
func NewService(apiClient *api.Client, principal Principal, storeHTTP *http.Client, logger logging.Logger) *Service {
	if storeHTTP == nil {
		storeHTTP = &http.Client{}
	}
	return &Service{
		api:       apiClient,
		principal: principal,
		storeHTTP: storeHTTP,
		logger:    logger.With("module", "files"),
	}
}

func (s *Service) userID() (string, error) {
	id := s.principal.UserID()
	if id == "" {
		return "", api.NewValidationError("not signed in")
	}
	return id, nil
}

// List fetches the signed-in user's files.
func (s *Service) List(ctx context.Context) ([]FileMetadata, error) {
	userID, err := s.userID()
	if err != nil {
		return nil, err
	}

	var resp ListResponse
	if err := s.api.Get(ctx, "/files?userId="+url.QueryEscape(userID), &resp); err != nil {
		return nil, err
	}
	return resp.Files, nil
}

// Download asks the backend for a presigned GET URL.
func (s *Service) Download(ctx context.Context, fileID string) (*DownloadResponse, error) {
	userID, err := s.userID()
	if err != nil {
		return nil, err
	}
	if fileID == "" {
		return nil, api.NewValidationError("file id is required")
	}

	var resp DownloadResponse
	endpoint := "/files/" + url.PathEscape(fileID) + "?userId=" + url.QueryEscape(userID)
	if err := s.api.Get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SaveTo downloads the file content through its presigned URL into dir and
// returns the written path.
func (s *Service) SaveTo(ctx context.Context, fileID, dir string) (string, error) {
	link, err := s.Download(ctx, fileID)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link.DownloadURL, nil)
	if err != nil {
		return "", &api.Error{Kind: api.KindValidation, Message: err.Error()}
	}
	resp, err := s.storeHTTP.Do(req)
	if err != nil {
		return "", &api.Error{Kind: api.KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &api.Error{Kind: api.KindHTTP, Status: resp.StatusCode, Message: "object storage refused the download"}
	}

	path := filepath.Join(dir, filepath.Base(link.FileName))
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("cannot create %s: %w", path, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("cannot write %s: %w", path, err)
	}

	s.logger.Info(ctx, "file downloaded", "file_id", fileID, "path", path)
	return path, nil
}

// Delete removes a file. The caller is expected to re-fetch the list.
func (s *Service) Delete(ctx context.Context, fileID string) error {
	userID, err := s.userID()
	if err != nil {
		return err
	}
	if fileID == "" {
		return api.NewValidationError("file id is required")
	}

	endpoint := "/files/" + url.PathEscape(fileID) + "?userId=" + url.QueryEscape(userID)
	return s.api.Delete(ctx, endpoint, nil)
}

// Share creates a time-limited public link for a file. A non-positive
// expirationHours lets the server apply its default.
func (s *Service) Share(ctx context.Context, fileID string, expirationHours int) (*ShareResponse, error) {
	userID, err := s.userID()
	if err != nil {
		return nil, err
	}
	if fileID == "" {
		return nil, api.NewValidationError("file id is required")
	}

	var resp ShareResponse
	endpoint := "/files/" + url.PathEscape(fileID) + "/share?userId=" + url.QueryEscape(userID)
	body := map[string]int{"expirationHours": expirationHours}
	if err := s.api.Post(ctx, endpoint, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Summarize asks the backend for a model-generated summary of the document.
func (s *Service) Summarize(ctx context.Context, fileID, fileName string) (*SummaryResponse, error) {
	userID, err := s.userID()
	if err != nil {
		return nil, err
	}
	if fileID == "" {
		return nil, api.NewValidationError("file id is required")
	}

	var resp SummaryResponse
	body := map[string]string{"file_name": fileName, "fileId": fileID, "userId": userID}
	if err := s.api.Post(ctx, "/chat", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
