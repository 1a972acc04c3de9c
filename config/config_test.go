package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.CCompiler != "cc" {
		t.Errorf("expected default c-compiler cc, got %q", cfg.CCompiler)
	}
	if cfg.Std != "c11" {
		t.Errorf("expected default std c11, got %q", cfg.Std)
	}
	if cfg.Optimization != 2 {
		t.Errorf("expected default optimization 2, got %d", cfg.Optimization)
	}
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CCompiler != "cc" || cfg.Std != "c11" || cfg.Optimization != 2 {
		t.Errorf("expected default config when zinc.toml is absent, got %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()

	contents := []byte(`
output = "myprog"
c-compiler = "clang"
std = "c17"
optimization = 3
link = ["m", "raylib"]
`)
	if err := os.WriteFile(filepath.Join(dir, FileName), contents, 0644); err != nil {
		t.Fatalf("failed writing zinc.toml: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Output != "myprog" {
		t.Errorf("expected output myprog, got %q", cfg.Output)
	}
	if cfg.CCompiler != "clang" {
		t.Errorf("expected c-compiler clang, got %q", cfg.CCompiler)
	}
	if cfg.Std != "c17" {
		t.Errorf("expected std c17, got %q", cfg.Std)
	}
	if cfg.Optimization != 3 {
		t.Errorf("expected optimization 3, got %d", cfg.Optimization)
	}
	if len(cfg.Link) != 2 || cfg.Link[0] != "m" || cfg.Link[1] != "raylib" {
		t.Errorf("expected link [m raylib], got %v", cfg.Link)
	}
}

func TestLoadSearchesParentDirectory(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "nested")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("failed creating nested dir: %v", err)
	}

	contents := []byte(`optimization = 0` + "\n")
	if err := os.WriteFile(filepath.Join(root, FileName), contents, 0644); err != nil {
		t.Fatalf("failed writing zinc.toml: %v", err)
	}

	cfg, err := Load(sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Optimization != 0 {
		t.Errorf("expected optimization 0 from parent zinc.toml, got %d", cfg.Optimization)
	}
}
