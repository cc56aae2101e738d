package service

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"brainsmath/internal/models"
	"brainsmath/internal/repository"
	"brainsmath/internal/validation"
)

// BackupService exports and restores the full dataset as a JSON snapshot
type BackupService struct {
	userRepo     *repository.UserRepository
	resultRepo   *repository.ResultRepository
	settingsRepo *repository.SettingsRepository
}

// NewBackupService creates a new backup service
func NewBackupService(
	userRepo *repository.UserRepository,
	resultRepo *repository.ResultRepository,
	settingsRepo *repository.SettingsRepository,
) *BackupService {
	return &BackupService{
		userRepo:     userRepo,
		resultRepo:   resultRepo,
		settingsRepo: settingsRepo,
	}
}

type backupUser struct {
	ID            int64           `json:"id"`
	Username      string          `json:"username"`
	Email         string          `json:"email"`
	PasswordHash  string          `json:"password_hash"`
	OAuthProvider string          `json:"oauth_provider,omitempty"`
	OAuthSubject  string          `json:"oauth_subject,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	Settings      *backupSettings `json:"settings,omitempty"`
	Results       []backupResult  `json:"results,omitempty"`
}

type backupSettings struct {
	Theme string `json:"theme"`
	Font  string `json:"font"`
}

type backupResult struct {
	Mode       string    `json:"mode"`
	QPM        float64   `json:"qpm"`
	Raw        float64   `json:"raw"`
	Accuracy   int       `json:"accuracy"`
	Difficulty int       `json:"difficulty"`
	Number     int       `json:"number"`
	TimeMs     int       `json:"time"`
	Creation   time.Time `json:"creation"`
}

type backupFile struct {
	ExportedAt time.Time    `json:"exported_at"`
	Users      []backupUser `json:"users"`
}

// Export writes a snapshot of all users, settings and results to path
func (s *BackupService) Export(path string) error {
	users, err := s.userRepo.GetAllUsers()
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	snapshot := backupFile{ExportedAt: time.Now(), Users: make([]backupUser, 0, len(users))}
	for _, user := range users {
		entry := backupUser{
			ID:            user.ID,
			Username:      user.Username,
			Email:         user.Email,
			PasswordHash:  user.PasswordHash,
			OAuthProvider: user.OAuthProvider,
			OAuthSubject:  user.OAuthSubject,
			CreatedAt:     user.CreatedAt,
		}

		settings, err := s.settingsRepo.GetByUser(user.ID)
		if err != nil {
			return fmt.Errorf("failed to load settings for %s: %w", user.Username, err)
		}
		if settings != nil {
			entry.Settings = &backupSettings{Theme: settings.Theme, Font: settings.Font}
		}

		results, err := s.resultRepo.GetByUser(user.ID)
		if err != nil {
			return fmt.Errorf("failed to load results for %s: %w", user.Username, err)
		}
		for _, result := range results {
			entry.Results = append(entry.Results, backupResult{
				Mode:       result.Mode,
				QPM:        result.QPM,
				Raw:        result.Raw,
				Accuracy:   result.Accuracy,
				Difficulty: result.Difficulty,
				Number:     result.Number,
				TimeMs:     result.TimeMs,
				Creation:   result.Creation,
			})
		}

		snapshot.Users = append(snapshot.Users, entry)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// Import restores a snapshot into the database. Users already present (by
// username) are skipped, so restoring into a non-empty database is additive.
func (s *BackupService) Import(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read backup: %w", err)
	}

	var snapshot backupFile
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return 0, fmt.Errorf("failed to parse backup: %w", err)
	}

	restored := 0
	for _, entry := range snapshot.Users {
		existing, err := s.userRepo.GetUserByUsername(entry.Username)
		if err != nil {
			return restored, err
		}
		if existing != nil {
			continue
		}

		user, err := s.userRepo.CreateUser(entry.Username, entry.Email, entry.PasswordHash)
		if err != nil {
			return restored, fmt.Errorf("failed to restore user %s: %w", entry.Username, err)
		}
		if entry.OAuthProvider != "" {
			if err := s.userRepo.LinkOAuthProvider(user.ID, entry.OAuthProvider, entry.OAuthSubject); err != nil {
				return restored, fmt.Errorf("failed to restore oauth link for %s: %w", entry.Username, err)
			}
		}

		theme, font := DefaultTheme, DefaultFont
		if entry.Settings != nil {
			theme, font = entry.Settings.Theme, entry.Settings.Font
		}
		if _, err := s.settingsRepo.Create(user.ID, theme, font); err != nil {
			return restored, fmt.Errorf("failed to restore settings for %s: %w", entry.Username, err)
		}

		for _, result := range entry.Results {
			restoredResult := &models.Result{
				UserID:     user.ID,
				Mode:       result.Mode,
				QPM:        result.QPM,
				Raw:        result.Raw,
				Accuracy:   result.Accuracy,
				Difficulty: result.Difficulty,
				Number:     result.Number,
				TimeMs:     result.TimeMs,
				Creation:   result.Creation,
			}
			// Snapshots can be hand-edited; off-bucket rows would vanish
			// from every best-score cell, so reject them outright
			if err := validation.ValidateResult(restoredResult); err != nil {
				return restored, fmt.Errorf("invalid result in backup for %s: %w", entry.Username, err)
			}
			if err := s.resultRepo.Restore(restoredResult); err != nil {
				return restored, fmt.Errorf("failed to restore results for %s: %w", entry.Username, err)
			}
		}

		restored++
	}

	return restored, nil
}
