package validation

import (
	"testing"

	"brainsmath/internal/models"
)

func validTimeResult() *models.Result {
	return &models.Result{
		Mode:       models.ModeTime,
		QPM:        72.5,
		Raw:        68,
		Accuracy:   94,
		Difficulty: 3,
		TimeMs:     60000,
	}
}

func TestValidateResult(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *models.Result)
		wantErr bool
	}{
		{"valid time result", func(r *models.Result) {}, false},
		{"valid questions result", func(r *models.Result) {
			r.Mode = models.ModeQuestions
			r.TimeMs = 0
			r.Number = 10
		}, false},
		{"unknown mode", func(r *models.Result) { r.Mode = "marathon" }, true},
		{"negative qpm", func(r *models.Result) { r.QPM = -1 }, true},
		{"accuracy over 100", func(r *models.Result) { r.Accuracy = 101 }, true},
		{"difficulty zero", func(r *models.Result) { r.Difficulty = 0 }, true},
		{"difficulty six", func(r *models.Result) { r.Difficulty = 6 }, true},
		{"off-bucket time", func(r *models.Result) { r.TimeMs = 45000 }, true},
		{"time mode with number set", func(r *models.Result) { r.Number = 10 }, true},
		{"questions mode with time set", func(r *models.Result) {
			r.Mode = models.ModeQuestions
			r.Number = 10
			r.TimeMs = 60000
		}, true},
		{"off-bucket question count", func(r *models.Result) {
			r.Mode = models.ModeQuestions
			r.TimeMs = 0
			r.Number = 7
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validTimeResult()
			tt.mutate(result)
			err := ValidateResult(result)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateResult() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid", "speedy_42", false},
		{"empty", "", true},
		{"too short", "ab", true},
		{"spaces", "speedy gonzales", true},
		{"punctuation", "speedy!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUsername(%q) error = %v, wantErr %v", tt.username, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "user@example.com", false},
		{"empty", "", true},
		{"missing domain", "user@", true},
		{"missing at", "user.example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("longenough"); err != nil {
		t.Errorf("ValidatePassword() unexpected error: %v", err)
	}
	if err := ValidatePassword("short"); err == nil {
		t.Error("ValidatePassword() should reject short passwords")
	}
	if err := ValidatePassword(""); err == nil {
		t.Error("ValidatePassword() should reject empty passwords")
	}
}
