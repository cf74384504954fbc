// Package state owns the orchestration-state JSON document, the single
// source of truth for where a project is in its workflow. All mutation goes
// through dotted-path Set calls; writes are atomic replace-on-write.
package state

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jorge-barreto/specflow/internal/atomicfile"
	"github.com/jorge-barreto/specflow/internal/flowerr"
)

// SchemaVersion is written into new state documents.
const SchemaVersion = "1"

// State wraps the raw document. The zero value is not usable; obtain a
// State from Load or Init.
type State struct {
	doc map[string]any
}

func statePath(dir string) string {
	return filepath.Join(dir, "state.json")
}

// Load reads the state document from dir. A missing file is a distinct
// NotFound condition so callers can tell "not initialized" from "corrupt".
func Load(dir string) (*State, error) {
	path := statePath(dir)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, flowerr.NotFound(
				"run 'specflow state init' first",
				"no state file at %s", path)
		}
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, flowerr.State(
			"the state file is corrupt; restore it from version control or re-init",
			"parsing %s: %v", path, err)
	}
	return &State{doc: doc}, nil
}

// Save writes the state document to dir atomically.
func (s *State) Save(dir string) error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(statePath(dir), data, 0644)
}

// Init creates a fresh state document in dir. Errors if one already exists.
func Init(dir, projectName, projectPath string) (*State, error) {
	path := statePath(dir)
	if _, err := os.Stat(path); err == nil {
		return nil, flowerr.Validation(
			"state already initialized; use 'specflow state set' to change it",
			"state file already exists at %s", path)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	s := &State{doc: map[string]any{
		"schema_version": SchemaVersion,
		"project": map[string]any{
			"id":   uuid.NewString(),
			"name": projectName,
			"path": projectPath,
		},
		"orchestration": map[string]any{
			"phase":    emptyPhase(),
			"step":     emptyStep(),
			"progress": emptyProgress(),
			"steps":    map[string]any{},
		},
		"history": []any{},
	}}
	if err := s.Save(dir); err != nil {
		return nil, err
	}
	return s, nil
}

func emptyPhase() map[string]any {
	return map[string]any{
		"number":      "",
		"name":        "",
		"branch":      "",
		"status":      "",
		"hasUserGate": false,
	}
}

func emptyStep() map[string]any {
	return map[string]any{
		"current": "",
		"index":   float64(0),
		"status":  "",
	}
}

func emptyProgress() map[string]any {
	return map[string]any{
		"tasks_completed": float64(0),
		"tasks_total":     float64(0),
		"percentage":      float64(0),
	}
}

// OpenPhase records a phase as in progress.
func (s *State) OpenPhase(number, name, branch string, hasUserGate bool) {
	orch := s.ensureMap("orchestration")
	orch["phase"] = map[string]any{
		"number":      number,
		"name":        name,
		"branch":      branch,
		"status":      "in_progress",
		"hasUserGate": hasUserGate,
	}
	orch["step"] = map[string]any{
		"current": "design",
		"index":   float64(0),
		"status":  "pending",
	}
	orch["progress"] = emptyProgress()
}

// ResetPhase appends the closing phase to history and restores the
// "no active phase" defaults.
func (s *State) ResetPhase() {
	orch := s.ensureMap("orchestration")
	if phase, ok := orch["phase"].(map[string]any); ok && phase["number"] != "" {
		record := map[string]any{
			"number":    phase["number"],
			"name":      phase["name"],
			"closed_at": time.Now().UTC().Format(time.RFC3339),
		}
		if hist, ok := s.doc["history"].([]any); ok {
			s.doc["history"] = append(hist, record)
		} else {
			s.doc["history"] = []any{record}
		}
	}
	orch["phase"] = emptyPhase()
	orch["step"] = emptyStep()
	orch["progress"] = emptyProgress()
	orch["steps"] = map[string]any{}
}

// SetProgress overwrites the orchestration progress counters.
func (s *State) SetProgress(completed, total, percentage int) {
	orch := s.ensureMap("orchestration")
	orch["progress"] = map[string]any{
		"tasks_completed": float64(completed),
		"tasks_total":     float64(total),
		"percentage":      float64(percentage),
	}
}

// PhaseStatus returns orchestration.phase.status, or "" when unset.
func (s *State) PhaseStatus() string {
	v, _ := s.Get("orchestration.phase.status")
	str, _ := v.(string)
	return str
}

// PhaseNumber returns orchestration.phase.number, or "".
func (s *State) PhaseNumber() string {
	v, _ := s.Get("orchestration.phase.number")
	str, _ := v.(string)
	return str
}

// CurrentStep returns orchestration.step.current, or "".
func (s *State) CurrentStep() string {
	v, _ := s.Get("orchestration.step.current")
	str, _ := v.(string)
	return str
}

// HasUserGate returns orchestration.phase.hasUserGate.
func (s *State) HasUserGate() bool {
	v, _ := s.Get("orchestration.phase.hasUserGate")
	b, _ := v.(bool)
	return b
}

// Document returns the raw document for rendering.
func (s *State) Document() map[string]any {
	return s.doc
}

func (s *State) ensureMap(key string) map[string]any {
	if m, ok := s.doc[key].(map[string]any); ok {
		return m
	}
	m := map[string]any{}
	s.doc[key] = m
	return m
}
