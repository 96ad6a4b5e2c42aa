package models

import "time"

// RefreshToken is a server-stored, rotating credential used to mint new
// access tokens. A token is deleted on use (rotation) and on sign-out.
type RefreshToken struct {
	Token   string
	UserID  string
	Expires time.Time
}
