package validation

import (
	"fmt"
	"regexp"
	"strings"

	"brainsmath/internal/models"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
)

// ValidationError represents a validation error on a single field
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateUsername checks if a username is acceptable
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ValidationError{Field: "username", Message: "username is required"}
	}
	if !usernameRegex.MatchString(username) {
		return ValidationError{Field: "username", Message: "username must be 3-30 letters, digits or underscores"}
	}
	return nil
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateResult checks a submitted test result. The mode dictates which of
// number/time carries the bucket; the other must stay at its zero sentinel.
func ValidateResult(result *models.Result) error {
	if result.QPM < 0 {
		return ValidationError{Field: "qpm", Message: "qpm must not be negative"}
	}
	if result.Raw < 0 {
		return ValidationError{Field: "raw", Message: "raw must not be negative"}
	}
	if result.Accuracy < 0 || result.Accuracy > 100 {
		return ValidationError{Field: "accuracy", Message: "accuracy must be between 0 and 100"}
	}
	if !models.ValidDifficulty(result.Difficulty) {
		return ValidationError{Field: "difficulty", Message: "difficulty must be between 1 and 5"}
	}

	switch result.Mode {
	case models.ModeTime:
		if !models.ValidTimeBucket(result.TimeMs) {
			return ValidationError{Field: "time", Message: "time must be one of 30000, 60000, 120000, 180000"}
		}
		if result.Number != 0 {
			return ValidationError{Field: "number", Message: "number must be 0 for time mode"}
		}
	case models.ModeQuestions:
		if !models.ValidQuestionBucket(result.Number) {
			return ValidationError{Field: "number", Message: "number must be one of 5, 10, 15, 25"}
		}
		if result.TimeMs != 0 {
			return ValidationError{Field: "time", Message: "time must be 0 for questions mode"}
		}
	default:
		return ValidationError{Field: "mode", Message: "mode must be 'time' or 'questions'"}
	}

	return nil
}
