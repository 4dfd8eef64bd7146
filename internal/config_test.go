package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/solmara/cuna/pkg/config"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.App.HTTP.Address() != ":5000" {
		t.Errorf("address = %q", cfg.App.HTTP.Address())
	}
	if cfg.Auth.AuthEnabled() {
		t.Error("auth enabled by default")
	}
}

func TestConfigRejectsBadDailyAt(t *testing.T) {
	for _, bad := range []string{"2am", "26:00", "0200"} {
		cfg := NewDefaultConfig()
		cfg.Backups.DailyAt = bad
		if err := cfg.Validate(); err == nil {
			t.Errorf("daily_at %q accepted", bad)
		}
	}
}

func TestConfigRejectsTokenModeWithoutToken(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = AuthModeToken
	if err := cfg.Validate(); err == nil {
		t.Fatal("token mode without token accepted")
	}

	cfg.Auth.Token = "secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token rejected: %v", err)
	}
	if !cfg.Auth.AuthEnabled() {
		t.Error("AuthEnabled = false in token mode")
	}
}

func TestConfigRejectsBadAuthMode(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "basic"
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown auth mode accepted")
	}
}

func TestConfigLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
app:
  http:
    port: 8080
backups:
  daily_at: "03:30"
  keep_count: 5
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := config.LoadIfExists(path, cfg); err != nil {
		t.Fatalf("LoadIfExists: %v", err)
	}
	if cfg.App.HTTP.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.App.HTTP.Port)
	}
	if cfg.Backups.DailyAt != "03:30" || cfg.Backups.KeepCount != 5 {
		t.Errorf("backups = %+v", cfg.Backups)
	}
	// Untouched sections keep their defaults.
	if cfg.Uploads.MaxBytes != 50<<20 {
		t.Errorf("max bytes = %d", cfg.Uploads.MaxBytes)
	}
}

func TestConfigLoadExpandsEnv(t *testing.T) {
	t.Setenv("CUNA_TEST_TOKEN", "from-env")
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
auth:
  mode: token
  token: $CUNA_TEST_TOKEN
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := config.LoadIfExists(path, cfg); err != nil {
		t.Fatalf("LoadIfExists: %v", err)
	}
	if cfg.Auth.Token != "from-env" {
		t.Errorf("token = %q", cfg.Auth.Token)
	}
}

func TestConfigLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := config.LoadIfExists(filepath.Join(t.TempDir(), "absent.yaml"), cfg); err != nil {
		t.Fatalf("LoadIfExists: %v", err)
	}
	if cfg.App.HTTP.Port != 5000 {
		t.Errorf("port = %d, want default", cfg.App.HTTP.Port)
	}
}
