package files

import (
	"bytes"
	"context"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jkuschner/Document-Storage-App/internal/client/api"
)

// UploadPhase is where an upload currently stands. Failures while requesting
// the slot never touch object storage; a retry starts over from requesting.
type UploadPhase string

const (
	PhaseIdle         UploadPhase = "idle"
	PhaseRequesting   UploadPhase = "requesting"
	PhaseTransferring UploadPhase = "transferring"
	PhaseDone         UploadPhase = "done"
	PhaseFailed       UploadPhase = "failed"
)

// ProgressFunc observes upload state. progress is 0-100 and only meaningful
// while transferring.
type ProgressFunc func(phase UploadPhase, progress int)

// countingReader reports transfer progress as a percentage of total.
type countingReader struct {
	r        *bytes.Reader
	total    int64
	read     int64
	progress ProgressFunc
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.read += int64(n)
	if c.progress != nil && c.total > 0 {
		c.progress(PhaseTransferring, int(c.read*100/c.total))
	}
	return n, err
}

// Upload pushes a local file to object storage: it requests a presigned
// upload slot, PUTs the raw bytes to the returned URL, then acknowledges the
// transfer so the catalog entry flips from pending to completed. The
// backend-issued file id is returned on success.
func (s *Service) Upload(ctx context.Context, path string, onProgress ProgressFunc) (string, error) {
	notify := func(phase UploadPhase, progress int) {
		if onProgress != nil {
			onProgress(phase, progress)
		}
	}

	userID, err := s.userID()
	if err != nil {
		notify(PhaseFailed, 0)
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		notify(PhaseFailed, 0)
		return "", api.NewValidationError("cannot read file: " + err.Error())
	}

	fileName := filepath.Base(path)
	contentType := mime.TypeByExtension(filepath.Ext(fileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	notify(PhaseRequesting, 0)

	var slot UploadResponse
	body := map[string]any{
		"fileName":    fileName,
		"userId":      userID,
		"contentType": contentType,
		"size":        len(data),
	}
	if err := s.api.Post(ctx, "/files", body, &slot); err != nil {
		notify(PhaseFailed, 0)
		return "", err
	}

	notify(PhaseTransferring, 0)

	reader := &countingReader{r: bytes.NewReader(data), total: int64(len(data)), progress: notify}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, slot.UploadURL, reader)
	if err != nil {
		notify(PhaseFailed, 0)
		return "", &api.Error{Kind: api.KindValidation, Message: err.Error()}
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(data))

	resp, err := s.storeHTTP.Do(req)
	if err != nil {
		notify(PhaseFailed, 0)
		return "", &api.Error{Kind: api.KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		notify(PhaseFailed, 0)
		return "", &api.Error{Kind: api.KindHTTP, Status: resp.StatusCode, Message: "object storage refused the upload"}
	}

	// Acknowledge so the pending catalog entry completes.
	endpoint := "/files/" + slot.FileID + "/complete"
	if err := s.api.Post(ctx, endpoint, nil, nil); err != nil {
		notify(PhaseFailed, 100)
		return "", err
	}

	notify(PhaseDone, 100)
	s.logger.Info(ctx, "file uploaded", "file_id", slot.FileID, "name", fileName)
	return slot.FileID, nil
}
