package roadmap

import (
	"testing"
)

const sampleRoadmap = `Project: Billing Revamp
Schema-Version: 1

# Roadmap

| Phase | Name | Status | Verification Gate |
|-------|------|--------|-------------------|
| 0010 | Setup | Complete | All tests pass |
| 0020 | Auth | In Progress | USER GATE: manual review |
| 0030 | Billing | Pending | Invoices reconcile |
`

func TestParse_Metadata(t *testing.T) {
	rm := Parse(sampleRoadmap, "ROADMAP.md")
	if rm.ProjectName != "Billing Revamp" {
		t.Fatalf("ProjectName = %q", rm.ProjectName)
	}
	if rm.SchemaVersion != "1" {
		t.Fatalf("SchemaVersion = %q", rm.SchemaVersion)
	}
}

func TestParse_Phases(t *testing.T) {
	rm := Parse(sampleRoadmap, "ROADMAP.md")
	if len(rm.Phases) != 3 {
		t.Fatalf("phases = %d, want 3", len(rm.Phases))
	}
	p := rm.PhaseByNumber("0020")
	if p == nil {
		t.Fatal("0020 not found")
	}
	if p.Status != InProgress {
		t.Fatalf("0020 status = %q", p.Status)
	}
	if !p.HasUserGate {
		t.Fatal("0020 should carry a user gate")
	}
	if p.VerificationGate != "USER GATE: manual review" {
		t.Fatalf("gate text = %q (marker must be preserved verbatim)", p.VerificationGate)
	}
}

func TestParse_StatusSynonyms(t *testing.T) {
	cases := map[string]PhaseStatus{
		"DONE":        Complete,
		"Complete":    Complete,
		"PENDING":     NotStarted,
		"in progress": InProgress,
		"BLOCKED":     Blocked,
		"user gate":   AwaitingUser,
		"gibberish":   NotStarted,
	}
	for text, want := range cases {
		if got := NormalizeStatus(text); got != want {
			t.Fatalf("NormalizeStatus(%q) = %q, want %q", text, got, want)
		}
	}
}

func TestParse_ActiveAndNext(t *testing.T) {
	rm := Parse(sampleRoadmap, "ROADMAP.md")
	if a := rm.ActivePhase(); a == nil || a.Number != "0020" {
		t.Fatalf("active = %v", a)
	}
	if n := rm.NextPhase("document"); n == nil || n.Number != "0030" {
		t.Fatalf("next = %v", n)
	}
}

func TestParse_NextPhaseByNumberOrder(t *testing.T) {
	content := `| Phase | Name | Status |
|-------|------|--------|
| 0040 | Later | Pending |
| 0030 | Sooner | Pending |
`
	rm := Parse(content, "ROADMAP.md")
	if n := rm.NextPhase("document"); n.Number != "0040" {
		t.Fatalf("document order next = %s, want 0040", n.Number)
	}
	if n := rm.NextPhase("number"); n.Number != "0030" {
		t.Fatalf("number order next = %s, want 0030", n.Number)
	}
}

func TestParse_MultipleInProgressDoesNotCrash(t *testing.T) {
	content := `| Phase | Name | Status |
|-------|------|--------|
| 0010 | A | In Progress |
| 0020 | B | In Progress |
`
	rm := Parse(content, "ROADMAP.md")
	if len(rm.Phases) != 2 {
		t.Fatalf("phases = %d", len(rm.Phases))
	}
	if rm.ActivePhase().Number != "0010" {
		t.Fatalf("active = %s, want first in document order", rm.ActivePhase().Number)
	}
}

func TestParse_Progress(t *testing.T) {
	rm := Parse(sampleRoadmap, "ROADMAP.md")
	if rm.Progress.Total != 3 || rm.Progress.Completed != 1 || rm.Progress.Percentage != 33 {
		t.Fatalf("progress = %+v", rm.Progress)
	}
}

func TestParse_NoTable(t *testing.T) {
	rm := Parse("just prose, no table\n", "ROADMAP.md")
	if len(rm.Phases) != 0 {
		t.Fatalf("phases = %d", len(rm.Phases))
	}
	if rm.Progress.Percentage != 0 {
		t.Fatalf("percentage = %d", rm.Progress.Percentage)
	}
}

func TestParse_Reparse_Idempotent(t *testing.T) {
	rm := Parse(sampleRoadmap, "ROADMAP.md")
	again := Parse(rm.Serialize(), "ROADMAP.md")
	if len(again.Phases) != len(rm.Phases) || again.Progress != rm.Progress {
		t.Fatal("re-parse of serialized roadmap drifted")
	}
	if again.Serialize() != sampleRoadmap {
		t.Fatal("serialize must round-trip the source bytes")
	}
}
