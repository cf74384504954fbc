package status

// NextAction is the single recommended next move for a project.
type NextAction string

const (
	ActionFixHealth         NextAction = "fix_health"
	ActionStartPhase        NextAction = "start_phase"
	ActionAwaitingUserGate  NextAction = "awaiting_user_gate"
	ActionArchivePhase      NextAction = "archive_phase"
	ActionRunDesign         NextAction = "run_design"
	ActionRunAnalyze        NextAction = "run_analyze"
	ActionRunVerify         NextAction = "run_verify"
	ActionContinueImplement NextAction = "continue_implement"
	ActionReadyToMerge      NextAction = "ready_to_merge"
)

// DetermineNextAction is a pure decision table, evaluated top to bottom
// with first match winning. It has no I/O and no hidden state. stepStatus
// is accepted for signature stability with the snapshot collector even
// though no current rule consults it. Unknown step names fall through to
// continue_implement rather than failing.
func DetermineNextAction(phaseStatus, step, stepStatus, healthStatus string, allTasksDone, hasMinArtifacts, hasUserGate bool) NextAction {
	_ = stepStatus

	if healthStatus == "error" {
		return ActionFixHealth
	}
	if phaseStatus == "" || phaseStatus == "not_started" {
		return ActionStartPhase
	}
	if phaseStatus == "awaiting_user" || phaseStatus == "awaiting_user_gate" {
		return ActionAwaitingUserGate
	}
	if phaseStatus == "complete" {
		return ActionArchivePhase
	}

	switch step {
	case "":
		return ActionRunDesign
	case "design":
		if !hasMinArtifacts {
			return ActionRunDesign
		}
		return ActionRunAnalyze
	case "analyze":
		return ActionRunAnalyze
	case "implement":
		if allTasksDone {
			return ActionRunVerify
		}
		return ActionContinueImplement
	case "verify":
		if allTasksDone && hasUserGate {
			return ActionAwaitingUserGate
		}
		if allTasksDone {
			return ActionReadyToMerge
		}
	}
	return ActionContinueImplement
}
