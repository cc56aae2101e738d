package service

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"brainsmath/internal/models"
	"brainsmath/internal/repository"
	"brainsmath/internal/security"
	"brainsmath/internal/validation"
)

// Default display preferences for new accounts
const (
	DefaultTheme = "dark"
	DefaultFont  = "Arial"
)

const resetTokenTTL = 1 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("username or email already taken")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

// AuthService handles registration, login and password recovery
type AuthService struct {
	userRepo     *repository.UserRepository
	settingsRepo *repository.SettingsRepository
	tokens       *security.TokenManager
	email        *EmailService
	appBaseURL   string
}

// NewAuthService creates a new auth service. email may be nil when outbound
// mail is not configured.
func NewAuthService(
	userRepo *repository.UserRepository,
	settingsRepo *repository.SettingsRepository,
	tokens *security.TokenManager,
	email *EmailService,
	appBaseURL string,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		tokens:       tokens,
		email:        email,
		appBaseURL:   appBaseURL,
	}
}

// Register creates a new account with default settings
func (s *AuthService) Register(username, email, password string) (*models.User, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.GetUserByUsername(username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrUserExists
	}
	if existing, err := s.userRepo.GetUserByEmail(email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.CreateUser(username, email, hash)
	if err != nil {
		return nil, err
	}

	if _, err := s.settingsRepo.Create(user.ID, DefaultTheme, DefaultFont); err != nil {
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}

	if s.email != nil {
		if err := s.email.SendWelcomeEmail(user.Email, user.Username); err != nil {
			log.Printf("failed to send welcome email to %s: %v", user.Email, err)
		}
	}

	return user, nil
}

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(username, password string) (*security.TokenPair, error) {
	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil || !security.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.tokens.Issue(user)
}

// Refresh exchanges a valid refresh token for a fresh access token
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims, err := s.tokens.Parse(refreshToken, security.TokenTypeRefresh)
	if err != nil {
		return "", err
	}

	user, err := s.userFromClaims(claims)
	if err != nil {
		return "", err
	}
	return s.tokens.IssueAccess(user)
}

// Authenticate resolves an access token to its user
func (s *AuthService) Authenticate(accessToken string) (*models.User, error) {
	claims, err := s.tokens.Parse(accessToken, security.TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	return s.userFromClaims(claims)
}

func (s *AuthService) userFromClaims(claims *security.Claims) (*models.User, error) {
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, security.ErrInvalidToken
	}
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, security.ErrInvalidToken
	}
	return user, nil
}

// OAuthLogin signs a user in through an external provider, creating or
// linking the account as needed, and issues a token pair.
func (s *AuthService) OAuthLogin(provider, subject, email, suggestedName string) (*security.TokenPair, error) {
	user, err := s.userRepo.GetUserByOAuth(provider, subject)
	if err != nil {
		return nil, err
	}

	if user == nil {
		// Link by verified email if the account already exists
		user, err = s.userRepo.GetUserByEmail(email)
		if err != nil {
			return nil, err
		}
		if user != nil {
			if err := s.userRepo.LinkOAuthProvider(user.ID, provider, subject); err != nil {
				return nil, err
			}
		}
	}

	if user == nil {
		username, err := s.availableUsername(suggestedName)
		if err != nil {
			return nil, err
		}
		// Random unusable password; the account signs in via the provider
		hash, err := security.HashPassword(uuid.New().String())
		if err != nil {
			return nil, fmt.Errorf("failed to hash placeholder password: %w", err)
		}
		user, err = s.userRepo.CreateUser(username, email, hash)
		if err != nil {
			return nil, err
		}
		if err := s.userRepo.LinkOAuthProvider(user.ID, provider, subject); err != nil {
			return nil, err
		}
		if _, err := s.settingsRepo.Create(user.ID, DefaultTheme, DefaultFont); err != nil {
			return nil, fmt.Errorf("failed to create default settings: %w", err)
		}
	}

	return s.tokens.Issue(user)
}

func (s *AuthService) availableUsername(suggested string) (string, error) {
	base := suggested
	if validation.ValidateUsername(base) != nil {
		base = "player"
	}
	for i := 0; i < 10; i++ {
		candidate := base
		if i > 0 {
			candidate = fmt.Sprintf("%s_%04d", base, time.Now().UnixNano()%10000)
		}
		existing, err := s.userRepo.GetUserByUsername(candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not find an available username for %q", suggested)
}

// RequestPasswordReset issues a reset token and mails it to the user. It
// succeeds silently for unknown emails so the endpoint does not leak which
// addresses have accounts.
func (s *AuthService) RequestPasswordReset(email string) error {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	if err := s.userRepo.DeleteUserPasswordResetTokens(user.ID); err != nil {
		return err
	}

	token := uuid.New().String()
	if err := s.userRepo.CreatePasswordResetToken(token, user.ID, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	if s.email != nil {
		resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.appBaseURL, token)
		if err := s.email.SendPasswordResetEmail(user.Email, user.Username, resetURL); err != nil {
			return fmt.Errorf("failed to send reset email: %w", err)
		}
	}

	return nil
}

// ResetPassword consumes a reset token and sets the new password
func (s *AuthService) ResetPassword(token, newPassword string) error {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}

	resetToken, err := s.userRepo.GetPasswordResetToken(token)
	if err != nil {
		return err
	}
	if resetToken == nil || resetToken.Used || resetToken.IsExpired() {
		return ErrInvalidResetToken
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(resetToken.UserID, hash); err != nil {
		return err
	}
	return s.userRepo.MarkPasswordResetTokenAsUsed(token)
}
