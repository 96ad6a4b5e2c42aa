package models

import "time"

// Share is a time-bound grant permitting file retrieval without the owner's
// credentials. The token is the only secret; anyone holding it can resolve
// the file until ExpiresAt.
type Share struct {
	// Token is the share token (uuid).
	Token string
	// FileID is the shared file.
	FileID string
	// UserID is the owner who issued the grant.
	UserID string
	// CreatedAt is when the grant was issued.
	CreatedAt time.Time
	// ExpiresAt is when the grant stops resolving.
	ExpiresAt time.Time
}
