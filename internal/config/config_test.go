package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/signcall/signcall/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_ENV", "dev")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 3000 {
		t.Fatalf("port = %d, want 3000", cfg.Port)
	}
	if cfg.Mode != "release" {
		t.Fatalf("mode = %q, want release", cfg.Mode)
	}
	if cfg.InputSize != 64 {
		t.Fatalf("input_size = %d, want 64", cfg.InputSize)
	}
	if cfg.PingPeriod != 54*time.Second {
		t.Fatalf("ping_period = %v, want 54s", cfg.PingPeriod)
	}
	if cfg.ClassifierURL != "" {
		t.Fatalf("classifier_url = %q, want empty", cfg.ClassifierURL)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("CONFIG_ENV", "test")

	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	yaml := "mode: debug\nport: 8123\nclassifier_url: http://localhost:9000/classify\ninput_size: 128\n"
	if err := os.WriteFile(filepath.Join(dir, "config", "config.test.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8123 {
		t.Fatalf("port = %d, want 8123", cfg.Port)
	}
	if cfg.Mode != "debug" {
		t.Fatalf("mode = %q, want debug", cfg.Mode)
	}
	if cfg.ClassifierURL != "http://localhost:9000/classify" {
		t.Fatalf("classifier_url = %q", cfg.ClassifierURL)
	}
	if cfg.InputSize != 128 {
		t.Fatalf("input_size = %d, want 128", cfg.InputSize)
	}
	// Unset keys still fall back to defaults.
	if cfg.ReadLimit != 1<<20 {
		t.Fatalf("read_limit = %d, want %d", cfg.ReadLimit, 1<<20)
	}
}

func TestLoadMalformedValue(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("CONFIG_ENV", "test")

	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config", "config.test.yaml"), []byte("port: not-a-number\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load()
	if err == nil {
		t.Fatalf("Load accepted a non-numeric port")
	}
	if cfg != nil {
		t.Fatalf("Load returned cfg %+v alongside an error", cfg)
	}
}
