package backlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jorge-barreto/specflow/internal/roadmap"
	"github.com/jorge-barreto/specflow/internal/tasks"
)

func TestScanDeferred(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "0010-setup")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	content := `# Tasks

- [x] T001 Done work
- [~] T002 Polish pass, pushed out

DEFERRED: revisit error copy before GA
`
	if err := os.WriteFile(filepath.Join(sub, "tasks.md"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	// Non-markdown files and skip dirs are ignored.
	if err := os.WriteFile(filepath.Join(sub, "notes.txt"), []byte("- [~] T099 Not scanned\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".git", "x.md"), []byte("- [~] T098 Hidden\n"), 0644); err != nil {
		t.Fatal(err)
	}

	items, err := ScanDeferred(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %+v, want 2", items)
	}
	if items[0].ID != "T002" {
		t.Fatalf("items[0] = %+v", items[0])
	}
	if items[1].Text != "revisit error copy before GA" {
		t.Fatalf("items[1] = %+v", items[1])
	}
}

func TestAppend_CreatesWithHeader(t *testing.T) {
	root := t.TempDir()
	items := []Item{{Source: "0010/tasks.md", ID: "T002", Text: "Polish pass"}}
	if err := Append(root, items); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(root, "BACKLOG.md"))
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.HasPrefix(s, "# Backlog") {
		t.Fatalf("content = %q", s)
	}
	if !strings.Contains(s, "- [ ] T002 Polish pass (from 0010/tasks.md)") {
		t.Fatalf("content = %q", s)
	}
}

func TestAppend_PreservesExisting(t *testing.T) {
	root := t.TempDir()
	if err := Append(root, []Item{{Source: "a.md", Text: "first"}}); err != nil {
		t.Fatal(err)
	}
	if err := Append(root, []Item{{Source: "b.md", Text: "second"}}); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(filepath.Join(root, "BACKLOG.md"))
	s := string(data)
	if !strings.Contains(s, "first") || !strings.Contains(s, "second") {
		t.Fatalf("content = %q", s)
	}
	if strings.Count(s, "# Backlog") != 1 {
		t.Fatal("header duplicated")
	}
}

func TestAppend_EmptyRejected(t *testing.T) {
	if err := Append(t.TempDir(), nil); err == nil {
		t.Fatal("empty defer list should be rejected")
	}
}

func TestArchivePhase(t *testing.T) {
	root := t.TempDir()
	phaseDir := filepath.Join(root, "specs", "0020-auth")
	if err := os.MkdirAll(phaseDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(phaseDir, "tasks.md"), []byte("- [x] T001 Done\n"), 0644); err != nil {
		t.Fatal(err)
	}

	phase := &roadmap.Phase{Number: "0020", Name: "Auth", VerificationGate: "Login works"}
	progress := tasks.Progress{Total: 1, Completed: 1, Percentage: 100}

	dest, err := ArchivePhase(root, phaseDir, phase, progress)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dest, "tasks.md")); err != nil {
		t.Fatalf("archived tasks.md missing: %v", err)
	}

	hist, err := os.ReadFile(filepath.Join(root, "HISTORY.md"))
	if err != nil {
		t.Fatal(err)
	}
	s := string(hist)
	if !strings.Contains(s, "## Phase 0020 — Auth") || !strings.Contains(s, "Tasks: 1/1") {
		t.Fatalf("history = %q", s)
	}
}

func TestArchivePhase_NoFeatureDir(t *testing.T) {
	root := t.TempDir()
	phase := &roadmap.Phase{Number: "0030", Name: "Cleanup"}
	dest, err := ArchivePhase(root, "", phase, tasks.Progress{})
	if err != nil {
		t.Fatal(err)
	}
	if dest != "" {
		t.Fatalf("dest = %q, want empty", dest)
	}
	if _, err := os.Stat(filepath.Join(root, "HISTORY.md")); err != nil {
		t.Fatal("history record should still be written")
	}
}
