// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Accounts come from two paths: email/password signup, and OAuth delegation
// (Google, GitHub, Naver, Discord). OAuth accounts have an empty PasswordHash —
// they can never log in with a password because bcrypt will refuse to match
// against an empty hash.
//
// ResetToken/ResetTokenExpires carry an in-flight password reset. Both are nil
// when no reset is pending; the token is single-use and cleared the moment a
// reset succeeds.
//
// PasswordHash and the reset fields are never serialized — note the json:"-".
type User struct {
	ID                string     `json:"id"`
	Email             string     `json:"email"` // unique across all accounts
	PasswordHash      string     `json:"-"`
	Name              string     `json:"name"`
	CreatedAt         time.Time  `json:"createdAt"`
	ResetToken        *string    `json:"-"`
	ResetTokenExpires *time.Time `json:"-"`
}

// PublicUser is the account projection returned by the auth endpoints.
// Everything else on User stays server-side.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Public returns the externally visible fields of the account.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name}
}
