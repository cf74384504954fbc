package ux

import (
	"fmt"

	"github.com/jorge-barreto/specflow/internal/status"
)

// actionHints maps each next action to a one-line operator hint.
var actionHints = map[status.NextAction]string{
	status.ActionFixHealth:         "fix the failing health checks below",
	status.ActionStartPhase:        "specflow phase open <number>",
	status.ActionAwaitingUserGate:  "review the gate, then 'specflow phase close'",
	status.ActionArchivePhase:      "specflow phase archive",
	status.ActionRunDesign:         "run the design step",
	status.ActionRunAnalyze:        "run the analyze step",
	status.ActionRunVerify:         "run the verify step ('specflow check')",
	status.ActionContinueImplement: "keep implementing ('specflow tasks next')",
	status.ActionReadyToMerge:      "merge the phase branch",
}

// RenderStatus prints the full human-readable status snapshot.
func RenderStatus(snap status.Snapshot) {
	if snap.Project != "" {
		fmt.Printf("%sProject:%s %s\n", Bold, Reset, snap.Project)
	}

	healthColor := Green
	switch snap.Health.Status {
	case "warn":
		healthColor = Yellow
	case "error":
		healthColor = Red
	}
	fmt.Printf("%sHealth:%s  %s%s%s\n", Bold, Reset, healthColor, snap.Health.Status, Reset)
	for _, c := range snap.Health.Checks {
		if c.Status == "ok" {
			continue
		}
		fmt.Printf("  %s%s:%s %s\n", Dim, c.Name, Reset, c.Message)
	}

	if snap.PhaseNumber != "" {
		fmt.Printf("%sPhase:%s   %s %s (%s)\n", Bold, Reset, snap.PhaseNumber, snap.PhaseName, snap.PhaseStatus)
		if snap.Step != "" {
			fmt.Printf("%sStep:%s    %s\n", Bold, Reset, snap.Step)
		}
	} else {
		fmt.Printf("%sPhase:%s   %snone open%s\n", Bold, Reset, Dim, Reset)
	}

	if snap.RoadmapProgress.Total > 0 {
		fmt.Printf("%sRoadmap:%s %d/%d phases complete (%d%%)\n", Bold, Reset,
			snap.RoadmapProgress.Completed, snap.RoadmapProgress.Total, snap.RoadmapProgress.Percentage)
	}
	if snap.TaskProgress.Total > 0 {
		fmt.Printf("%sTasks:%s   %d/%d complete (%d%%)", Bold, Reset,
			snap.TaskProgress.Completed, snap.TaskProgress.Total, snap.TaskProgress.Percentage)
		if snap.TaskProgress.Deferred > 0 {
			fmt.Printf(", %d deferred", snap.TaskProgress.Deferred)
		}
		if snap.TaskProgress.Blocked > 0 {
			fmt.Printf(", %d blocked", snap.TaskProgress.Blocked)
		}
		fmt.Println()
	}

	fmt.Printf("\n%sNext:%s %s%s%s", Bold, Reset, Cyan, snap.NextAction, Reset)
	if hint, ok := actionHints[snap.NextAction]; ok {
		fmt.Printf(" %s— %s%s", Dim, hint, Reset)
	}
	fmt.Println()
}
