package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORAGE_BACKEND", "EXTRACT_CONCURRENCY", "ROSTER"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Backend != "sqlite" {
		t.Errorf("Backend = %q, want sqlite", cfg.Backend)
	}
	if cfg.ExtractConcurrency != 3 {
		t.Errorf("ExtractConcurrency = %d, want 3", cfg.ExtractConcurrency)
	}
	if cfg.Roster != nil {
		t.Errorf("Roster = %v, want nil (default household)", cfg.Roster)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("EXTRACT_CONCURRENCY", "8")
	t.Setenv("ROSTER", "Alice, Bob ,,Carol")

	cfg := Load()
	if cfg.Port != "9000" || cfg.Backend != "memory" || cfg.ExtractConcurrency != 8 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if want := []string{"Alice", "Bob", "Carol"}; !reflect.DeepEqual(cfg.Roster, want) {
		t.Errorf("Roster = %v, want %v", cfg.Roster, want)
	}
}

func TestLoadBadInt(t *testing.T) {
	t.Setenv("EXTRACT_CONCURRENCY", "not-a-number")
	if cfg := Load(); cfg.ExtractConcurrency != 3 {
		t.Errorf("bad int should fall back to default, got %d", cfg.ExtractConcurrency)
	}
}
