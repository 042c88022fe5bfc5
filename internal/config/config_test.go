package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	data := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.AutosaveInterval != 30*time.Second {
		t.Errorf("AutosaveInterval = %v, want 30s", cfg.AutosaveInterval)
	}
	if cfg.AdvanceDelay != 2*time.Second {
		t.Errorf("AdvanceDelay = %v, want 2s", cfg.AdvanceDelay)
	}
	if cfg.NoticeDuration != 3*time.Second {
		t.Errorf("NoticeDuration = %v, want 3s", cfg.NoticeDuration)
	}
	if cfg.Resume {
		t.Error("Resume should default to false")
	}

	want := filepath.Join(data, "phishcourse", "phishcourse.db")
	if cfg.DBPath != want {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, want)
	}
	if !strings.HasPrefix(cfg.ExportDir, filepath.Join(data, "phishcourse")) {
		t.Errorf("ExportDir = %q, want under data dir", cfg.ExportDir)
	}
	if !strings.HasSuffix(cfg.LogFile, "phishcourse.log") {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PHISHCOURSE_DB", "/tmp/x.db")
	t.Setenv("PHISHCOURSE_EXPORT_DIR", "/tmp/out")
	t.Setenv("PHISHCOURSE_LOG_FILE", "/tmp/x.log")
	t.Setenv("PHISHCOURSE_LOG_LEVEL", "debug")
	t.Setenv("PHISHCOURSE_ADVANCE_DELAY", "500ms")
	t.Setenv("PHISHCOURSE_RESUME", "true")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.DBPath != "/tmp/x.db" || cfg.ExportDir != "/tmp/out" || cfg.LogFile != "/tmp/x.log" {
		t.Errorf("paths not overridden: %+v", cfg)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.AdvanceDelay != 500*time.Millisecond {
		t.Errorf("AdvanceDelay = %v", cfg.AdvanceDelay)
	}
	if !cfg.Resume {
		t.Error("Resume not set")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name, key, value, prefix string
	}{
		{"bad duration", "PHISHCOURSE_AUTOSAVE_INTERVAL", "soon", "parse env:"},
		{"bad bool", "PHISHCOURSE_RESUME", "maybe", "parse env:"},
		{"bad level", "PHISHCOURSE_LOG_LEVEL", "loud", "validate config:"},
		{"zero autosave", "PHISHCOURSE_AUTOSAVE_INTERVAL", "0s", "validate config:"},
		{"zero advance delay", "PHISHCOURSE_ADVANCE_DELAY", "0s", "validate config:"},
		{"negative notice", "PHISHCOURSE_NOTICE_DURATION", "-1s", "validate config:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_DATA_HOME", t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := Parse()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.HasPrefix(err.Error(), tt.prefix) {
				t.Fatalf("expected %q prefix, got %v", tt.prefix, err)
			}
		})
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PHISHCOURSE_LOG_LEVEL=warn\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	// godotenv does not override variables that are already set.
	os.Unsetenv("PHISHCOURSE_LOG_LEVEL")
	t.Cleanup(func() { os.Unsetenv("PHISHCOURSE_LOG_LEVEL") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestLoadWithoutDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	t.Chdir(dir)

	if _, err := Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
}
