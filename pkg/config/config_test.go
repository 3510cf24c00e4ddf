package config

import (
	"path/filepath"
	"testing"
)

func TestInit_WithExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := Init(path); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if GetConfigDir() != dir {
		t.Errorf("Config dir should be %s, got %s", dir, GetConfigDir())
	}
	if GetCredentialsPath() != filepath.Join(dir, "credentials") {
		t.Errorf("Unexpected credentials path: %s", GetCredentialsPath())
	}
}

func TestDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := Init(filepath.Join(dir, "config.toml")); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if got := GetString("api.base_url"); got == "" {
		t.Error("api.base_url should have a development default")
	}
	if got := GetInt("api.timeout"); got != 30 {
		t.Errorf("api.timeout default should be 30, got %d", got)
	}
	if got := GetString("ws.path"); got != "/ws" {
		t.Errorf("ws.path default should be /ws, got %s", got)
	}
	if got := GetInt("ws.max_reconnect_attempts"); got != 5 {
		t.Errorf("ws.max_reconnect_attempts default should be 5, got %d", got)
	}
	if got := GetInt("ws.reconnect_base_delay_ms"); got != 1000 {
		t.Errorf("ws.reconnect_base_delay_ms default should be 1000, got %d", got)
	}
	if GetBool("ws.use_tls") {
		t.Error("ws.use_tls should default to false for development")
	}
}

func TestSetString_Persists(t *testing.T) {
	dir := t.TempDir()
	if err := Init(filepath.Join(dir, "config.toml")); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if err := SetString("output.format", "json"); err != nil {
		t.Fatalf("SetString failed: %v", err)
	}
	if got := GetString("output.format"); got != "json" {
		t.Errorf("output.format should be json, got %s", got)
	}
}
