// Package evidence keeps the side ledger of verification evidence: free
// text recorded by an operator against verification-item IDs. An absent
// ledger is a normal state, not an error.
package evidence

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jorge-barreto/specflow/internal/atomicfile"
	"github.com/jorge-barreto/specflow/internal/flowerr"
)

const fileName = "verification-evidence.json"

// Item is one evidence record. When a batch of IDs is satisfied by one
// evidence string, each item lists the rest of the batch in SharedWith so
// any record reads standalone while showing joint satisfaction.
type Item struct {
	ItemID     string   `json:"itemId"`
	Timestamp  string   `json:"timestamp"`
	Evidence   string   `json:"evidence"`
	SharedWith []string `json:"sharedWith,omitempty"`
}

// File is the evidence ledger document.
type File struct {
	Version    string          `json:"version"`
	FeatureDir string          `json:"featureDir"`
	Items      map[string]Item `json:"items"`
}

func path(featureDir string) string {
	return filepath.Join(featureDir, fileName)
}

// Load reads the ledger for a feature dir. A missing file returns
// (nil, nil): callers treat nil as "no evidence recorded yet".
func Load(featureDir string) (*File, error) {
	data, err := os.ReadFile(path(featureDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, flowerr.State(
			"the evidence file is corrupt; remove it and re-record",
			"parsing %s: %v", path(featureDir), err)
	}
	if f.Items == nil {
		f.Items = map[string]Item{}
	}
	return &f, nil
}

func (f *File) save(featureDir string) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(path(featureDir), data, 0644)
}

// Record merges evidence for the given IDs into the ledger, creating it if
// absent. Unrelated items survive. For a multi-ID batch every item's
// SharedWith is the complement of the batch (full mesh, no primary).
func Record(featureDir string, ids []string, evidenceText string) (*File, error) {
	if len(ids) == 0 {
		return nil, flowerr.Validation("pass at least one verification-item ID", "empty ID list")
	}
	f, err := Load(featureDir)
	if err != nil {
		return nil, err
	}
	if f == nil {
		f = &File{Version: "1", FeatureDir: featureDir, Items: map[string]Item{}}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, id := range ids {
		f.Items[id] = Item{
			ItemID:     id,
			Timestamp:  now,
			Evidence:   evidenceText,
			SharedWith: complement(ids, id),
		}
	}
	if err := f.save(featureDir); err != nil {
		return nil, err
	}
	return f, nil
}

func complement(ids []string, self string) []string {
	var rest []string
	for _, id := range ids {
		if id != self {
			rest = append(rest, id)
		}
	}
	return rest
}

// CheckResult reports which of a set of required IDs lack evidence.
type CheckResult struct {
	Complete bool     `json:"complete"`
	Missing  []string `json:"missing"`
}

// Has checks the requested IDs against the ledger. With a nil file every
// ID is missing, so an empty ID list is vacuously complete regardless of
// file presence: "nothing required" always passes.
func Has(f *File, ids []string) CheckResult {
	res := CheckResult{Missing: []string{}}
	for _, id := range ids {
		if f == nil {
			res.Missing = append(res.Missing, id)
			continue
		}
		if _, ok := f.Items[id]; !ok {
			res.Missing = append(res.Missing, id)
		}
	}
	res.Complete = len(res.Missing) == 0
	return res
}

// Remove deletes the named IDs from the ledger and rewrites it. A missing
// file is a no-op with no write.
func Remove(featureDir string, ids []string) error {
	f, err := Load(featureDir)
	if err != nil {
		return err
	}
	if f == nil {
		return nil
	}
	for _, id := range ids {
		delete(f.Items, id)
	}
	return f.save(featureDir)
}
