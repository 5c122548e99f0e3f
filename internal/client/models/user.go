// Package models defines client-side data models used by the questionnaire CLI.
package models

// User is the authenticated principal as returned by the API. It is only
// ever replaced as a whole; a new login overwrites it.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Email    string `json:"email,omitempty"`
}

// AuthResult is the payload of a successful login.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterRequest carries the fields of a new account.
type RegisterRequest struct {
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}
