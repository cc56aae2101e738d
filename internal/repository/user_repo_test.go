package repository

import (
	"testing"
	"time"
)

func TestUserRepositoryLookups(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database integration test")
	}

	db := openTestDB(t)
	users := NewUserRepository(db)

	created := mustCreateUser(t, users, "alice")

	byID, err := users.GetUserByID(created.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error: %v", err)
	}
	if byID == nil || byID.Username != "alice" {
		t.Errorf("GetUserByID() = %+v, want alice", byID)
	}

	byName, err := users.GetUserByUsername("alice")
	if err != nil {
		t.Fatalf("GetUserByUsername() error: %v", err)
	}
	if byName == nil || byName.ID != created.ID {
		t.Errorf("GetUserByUsername() = %+v, want id %d", byName, created.ID)
	}

	missing, err := users.GetUserByUsername("nobody")
	if err != nil {
		t.Fatalf("GetUserByUsername() error: %v", err)
	}
	if missing != nil {
		t.Errorf("GetUserByUsername(nobody) = %+v, want nil", missing)
	}
}

func TestPasswordResetTokenLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database integration test")
	}

	db := openTestDB(t)
	users := NewUserRepository(db)

	user := mustCreateUser(t, users, "alice")

	if err := users.CreatePasswordResetToken("tok-1", user.ID, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("CreatePasswordResetToken() error: %v", err)
	}

	token, err := users.GetPasswordResetToken("tok-1")
	if err != nil {
		t.Fatalf("GetPasswordResetToken() error: %v", err)
	}
	if token == nil || token.UserID != user.ID || token.Used {
		t.Fatalf("GetPasswordResetToken() = %+v, want unused token for user %d", token, user.ID)
	}
	if token.IsExpired() {
		t.Error("fresh token reported as expired")
	}

	if err := users.MarkPasswordResetTokenAsUsed("tok-1"); err != nil {
		t.Fatalf("MarkPasswordResetTokenAsUsed() error: %v", err)
	}
	token, err = users.GetPasswordResetToken("tok-1")
	if err != nil {
		t.Fatalf("GetPasswordResetToken() error: %v", err)
	}
	if !token.Used {
		t.Error("token should be marked as used")
	}

	if err := users.DeleteUserPasswordResetTokens(user.ID); err != nil {
		t.Fatalf("DeleteUserPasswordResetTokens() error: %v", err)
	}
	token, err = users.GetPasswordResetToken("tok-1")
	if err != nil {
		t.Fatalf("GetPasswordResetToken() error: %v", err)
	}
	if token != nil {
		t.Errorf("token still present after delete: %+v", token)
	}
}

func TestSettingsRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database integration test")
	}

	db := openTestDB(t)
	users := NewUserRepository(db)
	settings := NewSettingsRepository(db)

	user := mustCreateUser(t, users, "alice")

	if _, err := settings.Create(user.ID, "dark", "Arial"); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	got, err := settings.GetByUser(user.ID)
	if err != nil {
		t.Fatalf("GetByUser() error: %v", err)
	}
	if got == nil || got.Theme != "dark" || got.Font != "Arial" {
		t.Fatalf("GetByUser() = %+v, want dark/Arial", got)
	}

	if err := settings.Update(user.ID, "light", "Courier"); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	got, err = settings.GetByUser(user.ID)
	if err != nil {
		t.Fatalf("GetByUser() error: %v", err)
	}
	if got.Theme != "light" || got.Font != "Courier" {
		t.Errorf("GetByUser() after update = %+v, want light/Courier", got)
	}
}
