// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. Passwords are stored as bcrypt hashes only.
type User struct {
	// ID is the server-assigned principal id (uuid). File ownership and all
	// list/download/delete/share scoping use this value.
	ID string
	// Email doubles as the login name.
	Email string
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash []byte
	// EmailVerified is set once the signup confirmation code is accepted.
	EmailVerified bool
	// ConfirmationCode is the pending signup or password-reset code, empty
	// when none is outstanding.
	ConfirmationCode string
	// CreatedAt is the registration timestamp.
	CreatedAt time.Time
}
