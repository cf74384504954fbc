package status

import (
	"os"
	"path/filepath"

	"github.com/jorge-barreto/specflow/internal/config"
	"github.com/jorge-barreto/specflow/internal/roadmap"
	"github.com/jorge-barreto/specflow/internal/state"
	"github.com/jorge-barreto/specflow/internal/tasks"
)

// Snapshot is the unified view of a project: state, roadmap, task progress,
// health, and the derived next action. It is the primary UI artifact, so it
// is produced even for broken projects (with health.status = error).
type Snapshot struct {
	Project         string           `json:"project,omitempty"`
	Health          Health           `json:"health"`
	PhaseNumber     string           `json:"phaseNumber,omitempty"`
	PhaseName       string           `json:"phaseName,omitempty"`
	PhaseStatus     string           `json:"phaseStatus,omitempty"`
	Step            string           `json:"step,omitempty"`
	HasUserGate     bool             `json:"hasUserGate"`
	RoadmapProgress roadmap.Progress `json:"roadmapProgress"`
	TaskProgress    tasks.Progress   `json:"taskProgress"`
	NextAction      NextAction       `json:"nextAction"`
}

// Collect builds a Snapshot. It never returns an error: any failure to
// read the project surfaces as health.status = error with next action
// fix_health.
func Collect(projectRoot string, cfg *config.Config) Snapshot {
	snap := Snapshot{}
	snap.Health = RunHealthCheck(projectRoot, cfg)
	if cfg != nil {
		snap.Project = cfg.Name
	}
	if snap.Health.Status == "error" {
		snap.NextAction = ActionFixHealth
		return snap
	}

	st, err := state.Load(filepath.Join(projectRoot, ".specflow"))
	if err != nil {
		// RunHealthCheck already passed, so this is a race with another
		// writer; degrade the same way.
		snap.Health.Status = "error"
		snap.NextAction = ActionFixHealth
		return snap
	}
	snap.PhaseNumber = st.PhaseNumber()
	snap.PhaseStatus = st.PhaseStatus()
	snap.Step = st.CurrentStep()
	snap.HasUserGate = st.HasUserGate()
	if v, ok := st.Get("orchestration.phase.name"); ok {
		snap.PhaseName, _ = v.(string)
	}

	if data, err := os.ReadFile(filepath.Join(projectRoot, cfg.Roadmap)); err == nil {
		snap.RoadmapProgress = roadmap.Parse(string(data), cfg.Roadmap).Progress
	}

	allTasksDone := false
	hasMinArtifacts := false
	if dir := PhaseDir(projectRoot, cfg, snap.PhaseNumber); dir != "" {
		if data, err := os.ReadFile(filepath.Join(dir, "tasks.md")); err == nil {
			doc := tasks.Parse(string(data), "tasks.md")
			snap.TaskProgress = doc.Progress
			allTasksDone = tasksDone(doc)
		}
		hasMinArtifacts = fileExists(filepath.Join(dir, "spec.md")) && fileExists(filepath.Join(dir, "plan.md"))
	}

	snap.NextAction = DetermineNextAction(
		snap.PhaseStatus, snap.Step, "", snap.Health.Status,
		allTasksDone, hasMinArtifacts, snap.HasUserGate)
	return snap
}

// tasksDone reports whether every task is done or deferred. An empty
// document is not "done"; there is nothing to verify yet.
func tasksDone(doc *tasks.Document) bool {
	if doc.Progress.Total == 0 {
		return false
	}
	for _, t := range doc.Tasks {
		if t.Status != tasks.StatusDone && t.Status != tasks.StatusDeferred {
			return false
		}
	}
	return true
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
