package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with specflow",
		Content: topicQuickstart,
	},
	{
		Name:    "tasks",
		Title:   "Tasks Format",
		Summary: "Checkbox syntax, tags, dependencies, and ranges",
		Content: topicTasks,
	},
	{
		Name:    "roadmap",
		Title:   "Roadmap Format",
		Summary: "Phase table, statuses, user gates, and hotfix slots",
		Content: topicRoadmap,
	},
	{
		Name:    "state",
		Title:   "Orchestration State",
		Summary: "The state.json document and dotted-path access",
		Content: topicState,
	},
	{
		Name:    "workflow",
		Title:   "Workflow Steps",
		Summary: "Phase lifecycle and the next-action decision table",
		Content: topicWorkflow,
	},
	{
		Name:    "evidence",
		Title:   "Verification Evidence",
		Summary: "Recording and checking evidence for [V] items",
		Content: topicEvidence,
	},
}

const topicQuickstart = `
QUICK START

  1. cd into your project and run:

       specflow init

     This creates .specflow/ (config + state), a starter ROADMAP.md,
     and a specs/ directory.

  2. Check where you are at any time:

       specflow status

  3. Open the first phase:

       specflow phase open 0010

  4. Create specs/0010-<name>/ with spec.md, plan.md, and tasks.md,
     then work through tasks:

       specflow tasks next
       specflow tasks mark T001 --status done

  5. When everything is done and verified:

       specflow check
       specflow phase close

Every data-bearing command accepts --json for programmatic use.
`

const topicTasks = `
TASKS FORMAT

Tasks live in markdown files as checkbox lines:

  - [ ] T001 Description text
  - [x] T002 [P] Parallel task, After T001
  - [~] T003 Deferred task
  - [ ] T004 [V] [US2] Verification task, Requires T002, T003

Glyphs: [ ] todo, [x] done, [~] deferred. Blocked is an authored
annotation in the description, not a glyph:

  - [ ] T005 Waiting on review [BLOCKED: legal sign-off]

Tags: [P] parallel-safe, [V] verification item, [USn] user story,
[P1]/[P2]/[P3] priority.

Dependencies are phrases in the description: "After T001",
"Requires T002, T003", "Depends on T004". Multiple phrases accumulate.

IDs are T + three digits, optionally sub-lettered (T008a). Commands
accept ranges: T001..T005 expands to every ID in the span (sub-lettered
IDs are never produced by expansion).

Sections are headings. A heading containing "COMPLETE" or a checkmark
forces the section complete regardless of its tasks.
`

const topicRoadmap = `
ROADMAP FORMAT

The roadmap is a markdown table:

  | Phase | Name | Status | Verification Gate |
  |-------|------|--------|-------------------|
  | 0010  | Setup | Complete | All tests pass |
  | 0020  | Auth  | In Progress | USER GATE: manual review |

Optional metadata lines above the table:

  Project: my-project
  Schema-Version: 1

Statuses accept synonyms on read (DONE, PENDING, ...) and are written
back canonically: Not Started, In Progress, Complete, Blocked,
Awaiting User.

"USER GATE" anywhere in the gate column means the phase needs explicit
human sign-off before it can close; the marker stays in the text.

Phase numbers are 4 digits. The last digit is a hotfix slot: base phase
0020 owns 0021..0029. 'specflow phase add --hotfix' picks the lowest
free slot and fails when all nine are taken.
`

const topicState = `
ORCHESTRATION STATE

.specflow/state.json is the single source of truth for the current
phase, step, and progress. Mutate it only through the CLI:

  specflow state get orchestration.step.current
  specflow state set orchestration.step.current implement
  specflow state sync

'state set' coerces obvious type mismatches against a fixed schema
(numeric strings to numbers, "true"/"false" to booleans) and passes
anything else through untouched. With --json it reports the previous
value for auditability.

'state sync' recomputes progress counters from the tasks file and the
phase fields from the roadmap.

Writes are atomic (temp file + rename), so a crash never leaves a
truncated state file. Concurrent writers are not serialized — keep one
orchestrator per project.
`

const topicWorkflow = `
WORKFLOW STEPS

Each phase moves through steps: design, analyze, implement, verify,
merge. 'specflow status' derives a single next action from the state,
roadmap, tasks, and health check, in priority order:

  health error                  -> fix_health
  no phase / not started        -> start_phase
  awaiting user gate            -> awaiting_user_gate
  phase complete                -> archive_phase
  no step yet                   -> run_design
  design without spec+plan      -> run_design
  design with artifacts         -> run_analyze
  analyze                       -> run_analyze
  implement, tasks open         -> continue_implement
  implement, tasks done         -> run_verify
  verify, done, user gate       -> awaiting_user_gate
  verify, done, no gate         -> ready_to_merge
  anything else                 -> continue_implement

'specflow phase close' checks the gate, marks the roadmap row Complete,
archives the phase artifacts, and resets the state.
`

const topicEvidence = `
VERIFICATION EVIDENCE

[V] tasks are verification items. Evidence is free text recorded
against their IDs in <feature-dir>/verification-evidence.json:

  specflow check record T009 --evidence "manual login walkthrough passed"
  specflow check record T009 T010 --evidence "verified together"

A batch shares one evidence string; every item records the others in
sharedWith so each reads standalone.

  specflow check            # report which [V] items lack evidence
  specflow check --require-evidence   # exit 2 when any are missing

No evidence file is a normal state: a phase with no [V] items passes
vacuously.
`
