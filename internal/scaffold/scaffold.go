// Package scaffold creates the .specflow/ directory and starter artifacts
// for a new project.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/specflow/internal/flowerr"
	"github.com/jorge-barreto/specflow/internal/state"
	"github.com/jorge-barreto/specflow/internal/ux"
)

const configTemplate = `name: %s

# Directory holding per-phase spec/plan/tasks artifacts.
feature-dir: specs

# Roadmap file, relative to the project root.
roadmap: ROADMAP.md

# Phase numbers are 4 digits; the last digit is a hotfix slot.
phase-number-pattern: '^\d{4}$'

# How 'next phase' is chosen: document (table order) or number.
next-phase-order: document
`

const roadmapTemplate = `Project: %s
Schema-Version: 1

# Roadmap

| Phase | Name | Status | Verification Gate |
|-------|------|--------|-------------------|
| 0010 | Setup | Not Started | Project builds and tests pass |
`

// Init creates the .specflow/ directory, a starter roadmap, the feature
// directory, and the initial state document. Refuses to touch a project
// that already has a .specflow/ directory.
func Init(dir string) error {
	specflowDir := filepath.Join(dir, ".specflow")
	if _, err := os.Stat(specflowDir); err == nil {
		return flowerr.Validation(
			"delete .specflow/ first if you really want to start over",
			".specflow/ already exists in %s", dir)
	}
	if err := os.MkdirAll(specflowDir, 0755); err != nil {
		return err
	}

	projectName := filepath.Base(dir)

	configPath := filepath.Join(specflowDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(fmt.Sprintf(configTemplate, projectName)), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	roadmapPath := filepath.Join(dir, "ROADMAP.md")
	if _, err := os.Stat(roadmapPath); os.IsNotExist(err) {
		if err := os.WriteFile(roadmapPath, []byte(fmt.Sprintf(roadmapTemplate, projectName)), 0644); err != nil {
			return fmt.Errorf("writing roadmap: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Join(dir, "specs"), 0755); err != nil {
		return err
	}

	if _, err := state.Init(specflowDir, projectName, dir); err != nil {
		return err
	}

	ux.Successf("initialized %s", specflowDir)
	fmt.Printf("\n  %sCustomize .specflow/config.yaml and ROADMAP.md for your project.%s\n", ux.Dim, ux.Reset)
	fmt.Printf("\n  Next: %sspecflow status%s\n\n", ux.Cyan, ux.Reset)
	return nil
}
