package models

import "time"

// User represents an account in the system
type User struct {
	ID            int64
	Username      string
	Email         string
	PasswordHash  string
	OAuthProvider string
	OAuthSubject  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Settings holds per-user display preferences, one row per user
type Settings struct {
	ID     int64
	UserID int64
	Theme  string
	Font   string
}

// PasswordResetToken represents a single-use token for password reset
type PasswordResetToken struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
	Used      bool
}

// IsExpired checks if the reset token has expired
func (t *PasswordResetToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
