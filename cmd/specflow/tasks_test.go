package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jorge-barreto/specflow/internal/flowerr"
)

// writeProject lays down a minimal .specflow project in a temp dir and
// chdirs into it for the duration of the test.
func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".specflow"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".specflow", "config.yaml"), []byte("name: demo\n"), 0644); err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func TestTasksCycles_CycleIsStateError(t *testing.T) {
	dir := writeProject(t)
	tasksPath := filepath.Join(dir, "tasks.md")
	content := "- [ ] T001 First, After T002\n- [ ] T002 Second, After T001\n"
	if err := os.WriteFile(tasksPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := tasksCyclesCmd().Run(context.Background(), []string{"cycles", "--tasks", tasksPath})
	fe, ok := err.(*flowerr.Error)
	if !ok {
		t.Fatalf("err = %v, want a flow error", err)
	}
	if fe.Kind != flowerr.KindState {
		t.Fatalf("kind = %v, want KindState", fe.Kind)
	}
	if fe.ExitCode() != 1 {
		t.Fatalf("exit code = %d, want 1", fe.ExitCode())
	}
}

func TestTasksCycles_AcyclicSucceeds(t *testing.T) {
	dir := writeProject(t)
	tasksPath := filepath.Join(dir, "tasks.md")
	if err := os.WriteFile(tasksPath, []byte("- [ ] T001 First\n- [ ] T002 Second, After T001\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := tasksCyclesCmd().Run(context.Background(), []string{"cycles", "--tasks", tasksPath}); err != nil {
		t.Fatalf("acyclic document must pass, got %v", err)
	}
}
