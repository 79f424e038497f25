package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Setenv("FONT_SIZE", "42")
	t.Setenv("SYNC_MODE", "true")
	t.Setenv("GLOW", "false")
	t.Setenv("POLL_INTERVAL_MS", "300")
	t.Setenv("HOTKEY", "Ctrl+Shift+T")
	t.Setenv("ENABLE_FILE_LOGGING", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.FontSize != 42 {
		t.Errorf("Expected FontSize to be 42, got %v", cfg.FontSize)
	}
	if !cfg.SyncMode {
		t.Errorf("Expected SyncMode to be true")
	}
	if cfg.Glow {
		t.Errorf("Expected Glow to be false")
	}
	if cfg.PollInterval != 300*time.Millisecond {
		t.Errorf("Expected PollInterval 300ms, got %v", cfg.PollInterval)
	}
	if cfg.Hotkey != "Ctrl+Shift+T" {
		t.Errorf("Expected Hotkey to be 'Ctrl+Shift+T', got '%s'", cfg.Hotkey)
	}
	if !cfg.EnableFileLogging {
		t.Errorf("Expected EnableFileLogging to be true")
	}
}

func TestLoadFallsBackOnInvalidNumbers(t *testing.T) {
	t.Setenv("FONT_SIZE", "huge")
	t.Setenv("POLL_INTERVAL_MS", "-5")
	t.Setenv("POLL_TIMEOUT_MS", "abc")
	t.Setenv("FADE_MS", "0")
	t.Setenv("SINGLEINSTANCE_PORT", "80")
	t.Setenv("GLOW", "maybe")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.FontSize != DefaultFontSize {
		t.Errorf("Expected default font size, got %v", cfg.FontSize)
	}
	if cfg.PollInterval != DefaultPollIntervalMS*time.Millisecond {
		t.Errorf("Expected default poll interval, got %v", cfg.PollInterval)
	}
	if cfg.PollTimeout != DefaultPollTimeoutMS*time.Millisecond {
		t.Errorf("Expected default poll timeout, got %v", cfg.PollTimeout)
	}
	if cfg.FadeDuration != DefaultFadeMS*time.Millisecond {
		t.Errorf("Expected default fade, got %v", cfg.FadeDuration)
	}
	if cfg.SingleInstancePort != DefaultSingleInstancePort {
		t.Errorf("Expected default port, got %d", cfg.SingleInstancePort)
	}
	if !cfg.Glow {
		t.Errorf("Expected default glow on unparsable value")
	}
	if cfg.StatusURL != DefaultStatusURL {
		t.Errorf("Expected default status URL, got %s", cfg.StatusURL)
	}
}

func TestLoadOptionsOverride(t *testing.T) {
	t.Setenv("FONT_SIZE", "30")
	t.Setenv("SYNC_MODE", "true")
	t.Setenv("REMINDERS_FILE", "/env/reminders.yaml")

	off := false
	cfg, err := LoadWithOptions(LoadOptions{
		SyncMode:      &off,
		FontSize:      "72",
		RemindersFile: "/flag/reminders.yaml",
		StatusURL:     "http://127.0.0.1:9999/status",
	})
	if err != nil {
		t.Fatalf("LoadWithOptions failed: %v", err)
	}
	if cfg.SyncMode {
		t.Error("Expected flag to disable sync mode")
	}
	if cfg.FontSize != 72 {
		t.Errorf("Expected font size 72, got %v", cfg.FontSize)
	}
	if cfg.RemindersFile != "/flag/reminders.yaml" {
		t.Errorf("Unexpected reminders file %s", cfg.RemindersFile)
	}
	if cfg.StatusURL != "http://127.0.0.1:9999/status" {
		t.Errorf("Unexpected status URL %s", cfg.StatusURL)
	}

	// An invalid flag value falls back to the env value, then the default.
	cfg, _ = LoadWithOptions(LoadOptions{FontSize: "-1"})
	if cfg.FontSize != 30 {
		t.Errorf("Expected env font size 30, got %v", cfg.FontSize)
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.env")
	if err := os.WriteFile(path, []byte("COMPANION_SCRIPT=lyrics.py\nFADE_MS=350\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvFileEnvVar, path)
	// godotenv.Load does not override existing variables; start from unset.
	t.Setenv("COMPANION_SCRIPT", "")
	os.Unsetenv("COMPANION_SCRIPT")
	t.Setenv("FADE_MS", "")
	os.Unsetenv("FADE_MS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.CompanionScript != "lyrics.py" {
		t.Errorf("Expected companion script from env file, got %s", cfg.CompanionScript)
	}
	if cfg.FadeDuration != 350*time.Millisecond {
		t.Errorf("Expected fade from env file, got %v", cfg.FadeDuration)
	}
}
