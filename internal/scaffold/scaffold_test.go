package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jorge-barreto/specflow/internal/config"
	"github.com/jorge-barreto/specflow/internal/state"
)

func TestInit(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(filepath.Join(dir, ".specflow", "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FeatureDir != "specs" {
		t.Fatalf("FeatureDir = %q", cfg.FeatureDir)
	}

	if _, err := os.Stat(filepath.Join(dir, "ROADMAP.md")); err != nil {
		t.Fatal("ROADMAP.md not scaffolded")
	}
	if _, err := state.Load(filepath.Join(dir, ".specflow")); err != nil {
		t.Fatalf("state not initialized: %v", err)
	}
}

func TestInit_RefusesExisting(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir); err != nil {
		t.Fatal(err)
	}
	if err := Init(dir); err == nil {
		t.Fatal("second init should fail")
	}
}

func TestInit_KeepsExistingRoadmap(t *testing.T) {
	dir := t.TempDir()
	custom := "Project: existing\n\n| Phase | Name | Status |\n|---|---|---|\n"
	if err := os.WriteFile(filepath.Join(dir, "ROADMAP.md"), []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Init(dir); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "ROADMAP.md"))
	if string(data) != custom {
		t.Fatal("existing roadmap must not be overwritten")
	}
}
