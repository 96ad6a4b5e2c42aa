// Package files implements the client side of the file catalog: listing,
// uploads through presigned URLs, downloads, deletion, sharing and
// summarization, plus the pure formatting helpers the views use.
package files

import "time"

// FileMetadata is one catalog entry as the backend reports it.
type FileMetadata struct {
	FileID      string    `json:"fileId"`
	UserID      string    `json:"userId"`
	FileName    string    `json:"fileName"`
	StorageKey  string    `json:"storageKey,omitempty"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	Folder      string    `json:"folder,omitempty"`
	Status      string    `json:"status"`
	UploadDate  time.Time `json:"uploadDate"`
}

type UploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileID    string `json:"fileId"`
	Message   string `json:"message"`
}

type ListResponse struct {
	Files []FileMetadata `json:"files"`
	Count int            `json:"count"`
}

type DownloadResponse struct {
	DownloadURL string `json:"downloadUrl"`
	FileName    string `json:"fileName"`
	FileID      string `json:"fileId"`
}

type DeleteResponse struct {
	Message string `json:"message"`
	FileID  string `json:"fileId"`
}

type ShareResponse struct {
	ShareURL   string `json:"shareUrl"`
	ShareToken string `json:"shareToken"`
	ExpiresAt  string `json:"expiresAt"`
	Message    string `json:"message"`
}

type SummaryResponse struct {
	Summary       string `json:"summary"`
	FileName      string `json:"fileName"`
	ContentLength int    `json:"contentLength"`
	Model         string `json:"model"`
}
