package state

import (
	"github.com/jorge-barreto/specflow/internal/roadmap"
	"github.com/jorge-barreto/specflow/internal/tasks"
)

// SyncFrom reconciles the state document with the markdown artifacts:
// progress counters from the tasks document and phase fields from the
// roadmap's active phase. Nil arguments skip their half, so callers can
// sync whatever artifacts exist.
func (s *State) SyncFrom(doc *tasks.Document, rm *roadmap.Roadmap) {
	if doc != nil {
		s.SetProgress(doc.Progress.Completed, doc.Progress.Total, doc.Progress.Percentage)
	}
	if rm != nil {
		if active := rm.ActivePhase(); active != nil {
			orch := s.ensureMap("orchestration")
			phase, ok := orch["phase"].(map[string]any)
			if !ok {
				phase = emptyPhase()
				orch["phase"] = phase
			}
			phase["number"] = active.Number
			phase["name"] = active.Name
			phase["status"] = string(active.Status)
			phase["hasUserGate"] = active.HasUserGate
		}
	}
}
