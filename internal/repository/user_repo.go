package repository

import (
	"database/sql"
	"fmt"
	"time"

	"brainsmath/internal/database"
	"brainsmath/internal/models"
)

// UserRepository handles database operations for users and reset tokens
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user into the database
func (r *UserRepository) CreateUser(username, email, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES (?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, username, email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &models.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}, nil
}

const userColumns = `id, username, email, password_hash, COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), created_at, updated_at`

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.OAuthProvider,
		&user.OAuthSubject,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = ?"
	return r.scanUser(r.db.QueryRow(query, id))
}

// GetUserByUsername retrieves a user by username
func (r *UserRepository) GetUserByUsername(username string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE username = ?"
	return r.scanUser(r.db.QueryRow(query, username))
}

// GetUserByEmail retrieves a user by email address
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = ?"
	return r.scanUser(r.db.QueryRow(query, email))
}

// GetUserByOAuth retrieves a user by OAuth provider and subject
func (r *UserRepository) GetUserByOAuth(provider, subject string) (*models.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE oauth_provider = ? AND oauth_subject = ?"
	return r.scanUser(r.db.QueryRow(query, provider, subject))
}

// LinkOAuthProvider links an existing user to an OAuth provider
func (r *UserRepository) LinkOAuthProvider(userID int64, provider, subject string) error {
	query := `
		UPDATE users
		SET oauth_provider = ?, oauth_subject = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
		AND (oauth_provider IS NULL OR oauth_provider = '')
	`
	result, err := r.db.Exec(query, provider, subject, userID)
	if err != nil {
		return fmt.Errorf("failed to link oauth provider: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read link result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("oauth provider already linked")
	}

	return nil
}

// UpdatePassword sets a new password hash for a user
func (r *UserRepository) UpdatePassword(userID int64, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	if _, err := r.db.Exec(query, passwordHash, userID); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// CreatePasswordResetToken stores a new reset token
func (r *UserRepository) CreatePasswordResetToken(token string, userID int64, expiresAt time.Time) error {
	query := `
		INSERT INTO password_reset_tokens (token, user_id, expires_at)
		VALUES (?, ?, ?)
	`
	if _, err := r.db.Exec(query, token, userID, expiresAt); err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}
	return nil
}

// GetPasswordResetToken retrieves a reset token
func (r *UserRepository) GetPasswordResetToken(token string) (*models.PasswordResetToken, error) {
	query := `
		SELECT token, user_id, expires_at, created_at, used
		FROM password_reset_tokens
		WHERE token = ?
	`
	resetToken := &models.PasswordResetToken{}
	err := r.db.QueryRow(query, token).Scan(
		&resetToken.Token,
		&resetToken.UserID,
		&resetToken.ExpiresAt,
		&resetToken.CreatedAt,
		&resetToken.Used,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}
	return resetToken, nil
}

// MarkPasswordResetTokenAsUsed invalidates a consumed token
func (r *UserRepository) MarkPasswordResetTokenAsUsed(token string) error {
	query := "UPDATE password_reset_tokens SET used = ? WHERE token = ?"
	if _, err := r.db.Exec(query, true, token); err != nil {
		return fmt.Errorf("failed to mark token as used: %w", err)
	}
	return nil
}

// DeleteUserPasswordResetTokens removes all reset tokens for a user
func (r *UserRepository) DeleteUserPasswordResetTokens(userID int64) error {
	query := "DELETE FROM password_reset_tokens WHERE user_id = ?"
	if _, err := r.db.Exec(query, userID); err != nil {
		return fmt.Errorf("failed to delete reset tokens: %w", err)
	}
	return nil
}

// DeleteExpiredPasswordResetTokens removes expired reset tokens
func (r *UserRepository) DeleteExpiredPasswordResetTokens() error {
	query := "DELETE FROM password_reset_tokens WHERE expires_at < ?"
	if _, err := r.db.Exec(query, time.Now()); err != nil {
		return fmt.Errorf("failed to delete expired reset tokens: %w", err)
	}
	return nil
}

// GetAllUsers retrieves all users, newest first
func (r *UserRepository) GetAllUsers() ([]models.User, error) {
	query := "SELECT " + userColumns + " FROM users ORDER BY created_at DESC"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.PasswordHash,
			&user.OAuthProvider,
			&user.OAuthSubject,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}
