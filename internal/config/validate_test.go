package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate_Defaults(t *testing.T) {
	cfg := &Config{Name: "demo"}
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.FeatureDir != "specs" {
		t.Fatalf("FeatureDir = %q", cfg.FeatureDir)
	}
	if cfg.Roadmap != "ROADMAP.md" {
		t.Fatalf("Roadmap = %q", cfg.Roadmap)
	}
	if cfg.PhaseNumberPattern != `^\d{4}$` {
		t.Fatalf("PhaseNumberPattern = %q", cfg.PhaseNumberPattern)
	}
	if cfg.NextPhaseOrder != "document" {
		t.Fatalf("NextPhaseOrder = %q", cfg.NextPhaseOrder)
	}
}

func TestValidate_NameRequired(t *testing.T) {
	if err := Validate(&Config{}); err == nil {
		t.Fatal("missing name should fail")
	}
}

func TestValidate_BadOrder(t *testing.T) {
	if err := Validate(&Config{Name: "demo", NextPhaseOrder: "random"}); err == nil {
		t.Fatal("unknown order should fail")
	}
}

func TestValidate_BadPattern(t *testing.T) {
	if err := Validate(&Config{Name: "demo", PhaseNumberPattern: "("}); err == nil {
		t.Fatal("invalid regexp should fail")
	}
}

func TestValidatePhaseNumber(t *testing.T) {
	cfg := &Config{Name: "demo"}
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
	if err := cfg.ValidatePhaseNumber("0020"); err != nil {
		t.Fatal(err)
	}
	for _, bad := range []string{"20", "00200", "ab20"} {
		if err := cfg.ValidatePhaseNumber(bad); err == nil {
			t.Fatalf("%q should be rejected", bad)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "name: demo\nfeature-dir: work\nnext-phase-order: number\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FeatureDir != "work" || cfg.NextPhaseOrder != "number" {
		t.Fatalf("cfg = %+v", cfg)
	}
}
