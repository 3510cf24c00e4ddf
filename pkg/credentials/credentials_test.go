package credentials

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/retrospace/messenger-cli/pkg/config"
)

func initTempConfig(t *testing.T) {
	t.Helper()
	if err := config.Init(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
}

func TestSaveLoadDelete_RoundTrip(t *testing.T) {
	initTempConfig(t)

	creds := &Credentials{
		AccessToken:  "token-123",
		RefreshToken: "refresh-456",
		ExpiresAt:    time.Now().Add(time.Hour),
		UserID:       "user-1",
		Username:     "tester",
		Email:        "tester@example.com",
	}

	if err := Save(creds); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load returned nil after Save")
	}
	if loaded.AccessToken != "token-123" || loaded.Username != "tester" {
		t.Errorf("Loaded credentials mismatch: %+v", loaded)
	}
	if loaded.SavedAt.IsZero() {
		t.Error("Save should stamp SavedAt")
	}

	if err := Delete(); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	loaded, err = Load()
	if err != nil {
		t.Fatalf("Load after delete failed: %v", err)
	}
	if loaded != nil {
		t.Error("Load should return nil after Delete")
	}
}

func TestLoad_MissingFileIsNil(t *testing.T) {
	initTempConfig(t)

	creds, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if creds != nil {
		t.Errorf("Expected nil for missing credentials, got %+v", creds)
	}
}

func TestIsExpired(t *testing.T) {
	expired := &Credentials{AccessToken: "t", ExpiresAt: time.Now().Add(-time.Minute)}
	if !expired.IsExpired() {
		t.Error("Past expiry should report expired")
	}
	if expired.IsValid() {
		t.Error("Expired credentials are not valid")
	}

	fresh := &Credentials{AccessToken: "t", ExpiresAt: time.Now().Add(time.Hour)}
	if fresh.IsExpired() {
		t.Error("Future expiry should not report expired")
	}
	if !fresh.IsValid() {
		t.Error("Fresh credentials with a token are valid")
	}

	empty := &Credentials{ExpiresAt: time.Now().Add(time.Hour)}
	if empty.IsValid() {
		t.Error("Credentials without a token are not valid")
	}

	// Inside the refresh slack counts as expired so the token refreshes
	// before a request can race its real expiry
	closeCall := &Credentials{AccessToken: "t", ExpiresAt: time.Now().Add(30 * time.Second)}
	if !closeCall.IsExpired() {
		t.Error("A token inside the refresh slack should report expired")
	}
}
