// Package backlog scans specs for deferred work, maintains the backlog
// file, and archives completed phases.
package backlog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jorge-barreto/specflow/internal/tasks"
)

// skipDirs are directories excluded from scanning.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	".venv":        true,
	"__pycache__":  true,
	".specflow":    true,
	"archive":      true,
}

// Item is one deferred piece of work found during a scan.
type Item struct {
	Source string `json:"source"` // path relative to the scanned dir
	ID     string `json:"id,omitempty"`
	Text   string `json:"text"`
}

// ScanDeferred walks dir looking for deferred work in markdown files:
// tasks with the [~] glyph and prose lines starting with "DEFERRED:".
// Unreadable files are skipped, not errors.
func ScanDeferred(dir string) ([]Item, error) {
	var items []Item
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		rel, _ := filepath.Rel(dir, path)
		items = append(items, scanContent(string(data), rel)...)
		return nil
	})
	return items, err
}

func scanContent(content, source string) []Item {
	var items []Item
	doc := tasks.Parse(content, source)
	for _, t := range doc.Tasks {
		if t.Status == tasks.StatusDeferred {
			items = append(items, Item{Source: source, ID: t.ID, Text: t.Description})
		}
	}
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(trimmed, "DEFERRED:"); ok {
			items = append(items, Item{Source: source, Text: strings.TrimSpace(rest)})
		}
	}
	return items
}
