package models

import "time"

// Upload status values for a file record.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// File describes metadata for a stored object. The binary content itself
// lives in object storage under StorageKey; this row only tracks ownership
// and upload state.
type File struct {
	// ID is the server-assigned file id (uuid).
	ID string
	// UserID is the owner. Rows are only ever returned to their owner.
	UserID string
	// FileName is the original client-side name.
	FileName string
	// StorageKey is the object-storage key of the blob.
	StorageKey string
	// ContentType is the MIME type declared at upload time.
	ContentType string
	// Size in bytes, as declared by the client when requesting the slot.
	Size int64
	// Folder is an optional logical grouping, empty for the root.
	Folder string
	// Status tracks upload state: pending until the object-store write is
	// acknowledged, then completed.
	Status string
	// UploadDate is when the upload slot was issued.
	UploadDate time.Time
}
