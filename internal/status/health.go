package status

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jorge-barreto/specflow/internal/config"
	"github.com/jorge-barreto/specflow/internal/flowerr"
	"github.com/jorge-barreto/specflow/internal/roadmap"
	"github.com/jorge-barreto/specflow/internal/state"
)

// Check is one health probe result.
type Check struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // ok, warn, error
	Message string `json:"message,omitempty"`
}

// Health rolls up individual checks; the worst check wins.
type Health struct {
	Status string  `json:"status"` // ok, warn, error
	Checks []Check `json:"checks"`
}

func (h *Health) add(name, status, message string) {
	h.Checks = append(h.Checks, Check{Name: name, Status: status, Message: message})
	if status == "error" || (status == "warn" && h.Status == "ok") {
		h.Status = status
	}
	if status == "error" {
		h.Status = "error"
	}
}

// RunHealthCheck probes the project's on-disk artifacts: state file
// readable, roadmap parseable, at most one active phase, and a tasks file
// present when a phase is open.
func RunHealthCheck(projectRoot string, cfg *config.Config) Health {
	h := Health{Status: "ok"}

	if cfg == nil {
		h.add("config", "error", "no .specflow/config.yaml found")
		return h
	}
	h.add("config", "ok", "")

	st, err := state.Load(filepath.Join(projectRoot, ".specflow"))
	switch {
	case flowerr.IsNotFound(err):
		h.add("state", "error", "state not initialized (run 'specflow state init')")
	case err != nil:
		h.add("state", "error", err.Error())
	default:
		h.add("state", "ok", "")
	}

	roadmapPath := filepath.Join(projectRoot, cfg.Roadmap)
	data, rerr := os.ReadFile(roadmapPath)
	if rerr != nil {
		h.add("roadmap", "error", fmt.Sprintf("cannot read %s", cfg.Roadmap))
	} else {
		rm := roadmap.Parse(string(data), roadmapPath)
		active := 0
		for _, p := range rm.Phases {
			if p.Status == roadmap.InProgress {
				active++
			}
		}
		switch {
		case len(rm.Phases) == 0:
			h.add("roadmap", "warn", "no phases found in roadmap")
		case active > 1:
			h.add("roadmap", "warn", fmt.Sprintf("%d phases marked In Progress; expected at most one", active))
		default:
			h.add("roadmap", "ok", "")
		}
	}

	if st != nil && st.PhaseStatus() == "in_progress" {
		if p := PhaseDir(projectRoot, cfg, st.PhaseNumber()); p == "" {
			h.add("feature-dir", "warn", fmt.Sprintf("no feature directory for phase %s under %s", st.PhaseNumber(), cfg.FeatureDir))
		} else if _, err := os.Stat(filepath.Join(p, "tasks.md")); err != nil {
			h.add("feature-dir", "warn", fmt.Sprintf("phase %s has no tasks.md yet", st.PhaseNumber()))
		} else {
			h.add("feature-dir", "ok", "")
		}
	}

	return h
}

// PhaseDir locates the feature directory for a phase number: the first
// subdirectory of the feature dir whose name starts with the number.
// Returns "" when none exists.
func PhaseDir(projectRoot string, cfg *config.Config, number string) string {
	if number == "" {
		return ""
	}
	base := filepath.Join(projectRoot, cfg.FeatureDir)
	entries, err := os.ReadDir(base)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), number) {
			return filepath.Join(base, e.Name())
		}
	}
	return ""
}
