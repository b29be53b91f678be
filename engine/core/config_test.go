package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Width == 0 || cfg.Height == 0 {
		t.Errorf("DefaultConfig() has zero dimensions: %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Backend != "auto" {
		t.Errorf("DefaultConfig().Backend = %q, want %q", cfg.Backend, "auto")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.toml")
	content := []byte("name = \"Sandbox\"\nwidth = 800\nheight = 600\nvsync = false\nbackend = \"null\"\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Name != "Sandbox" {
		t.Errorf("Name = %q, want %q", cfg.Name, "Sandbox")
	}
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("dimensions = %dx%d, want 800x600", cfg.Width, cfg.Height)
	}
	if cfg.VSync {
		t.Error("VSync = true, want false")
	}
	if cfg.Backend != "null" {
		t.Errorf("Backend = %q, want %q", cfg.Backend, "null")
	}
	// Unset fields keep defaults.
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default %q", cfg.LogLevel, "info")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("LoadConfig() on missing file should return an error")
	}
}

func TestClock(t *testing.T) {
	c := NewClock()
	c.Update()
	if c.Elapsed() != 0 {
		t.Errorf("non-started clock Elapsed() = %v, want 0", c.Elapsed())
	}
	c.Start()
	c.Update()
	if c.Elapsed() < 0 {
		t.Errorf("Elapsed() = %v, want >= 0", c.Elapsed())
	}
}
