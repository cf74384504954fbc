package roadmap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeRoadmap(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ROADMAP.md")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestUpdatePhaseStatus_RowRewrite(t *testing.T) {
	src := `| Phase | Name | Status | Verification Gate |
|-------|------|--------|-------------------|
| 0010 | Setup | Complete | All tests pass |
| 0080 | Rollout | In Progress | Canary clean |
`
	path := writeRoadmap(t, src)

	updated, err := UpdatePhaseStatus(path, "0080", Complete)
	if err != nil {
		t.Fatal(err)
	}
	if !updated {
		t.Fatal("expected updated=true")
	}

	after, _ := os.ReadFile(path)
	beforeLines := strings.Split(src, "\n")
	afterLines := strings.Split(string(after), "\n")
	changed := 0
	for i := range beforeLines {
		if beforeLines[i] != afterLines[i] {
			changed++
			if afterLines[i] != "| 0080 | Rollout | Complete | Canary clean |" {
				t.Fatalf("changed line = %q", afterLines[i])
			}
		}
	}
	if changed != 1 {
		t.Fatalf("changed lines = %d, want exactly 1", changed)
	}
}

func TestUpdatePhaseStatus_UnknownNumberNoWrite(t *testing.T) {
	src := "| Phase | Name | Status |\n|---|---|---|\n| 0010 | Setup | Pending |\n"
	path := writeRoadmap(t, src)

	updated, err := UpdatePhaseStatus(path, "0099", Complete)
	if err != nil {
		t.Fatal(err)
	}
	if updated {
		t.Fatal("unknown number must report updated=false")
	}
	after, _ := os.ReadFile(path)
	if string(after) != src {
		t.Fatal("unknown number must not write")
	}
}

func TestInsertPhaseRow_Append(t *testing.T) {
	src := `# Roadmap

| Phase | Name | Status | Verification Gate |
|-------|------|--------|-------------------|
| 0010 | Setup | Complete | All tests pass |

Trailing notes stay put.
`
	path := writeRoadmap(t, src)

	res, err := InsertPhaseRow(path, "0020", "Auth", NotStarted, "Login works")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Inserted {
		t.Fatal("expected inserted=true")
	}

	after, _ := os.ReadFile(path)
	rm := Parse(string(after), path)
	if len(rm.Phases) != 2 {
		t.Fatalf("phases after insert = %d", len(rm.Phases))
	}
	p := rm.PhaseByNumber("0020")
	if p == nil || p.Status != NotStarted || p.Name != "Auth" {
		t.Fatalf("inserted phase = %+v", p)
	}
	if !strings.Contains(string(after), "Trailing notes stay put.") {
		t.Fatal("content outside the table must be preserved")
	}
}

func TestInsertPhaseRow_EmptyTable(t *testing.T) {
	src := "| Phase | Name | Status | Verification Gate |\n|-------|------|--------|-------------------|\n"
	path := writeRoadmap(t, src)

	res, err := InsertPhaseRow(path, "0010", "Setup", InProgress, "")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Inserted {
		t.Fatal("expected inserted=true")
	}
	after, _ := os.ReadFile(path)
	if Parse(string(after), path).PhaseByNumber("0010") == nil {
		t.Fatal("0010 should parse after insert")
	}
}

func TestInsertPhaseRow_DuplicateFails(t *testing.T) {
	src := "| Phase | Name | Status |\n|---|---|---|\n| 0010 | Setup | Pending |\n"
	path := writeRoadmap(t, src)

	res, err := InsertPhaseRow(path, "0010", "Again", NotStarted, "")
	if err == nil || res.Inserted {
		t.Fatal("duplicate number must fail without writing")
	}
	after, _ := os.ReadFile(path)
	if string(after) != src {
		t.Fatal("failed insert must not write")
	}
}

func TestInsertPhaseRow_NonFourDigitRejected(t *testing.T) {
	src := "| Phase | Name | Status |\n|---|---|---|\n| 0010 | Setup | Pending |\n"
	path := writeRoadmap(t, src)

	for _, number := range []string{"10", "00100", "hotfix", "001a"} {
		res, err := InsertPhaseRow(path, number, "Bad", NotStarted, "")
		if err == nil || res.Inserted {
			t.Fatalf("number %q must be rejected", number)
		}
	}
	after, _ := os.ReadFile(path)
	if string(after) != src {
		t.Fatal("rejected insert must not write")
	}
}

func TestInsertPhaseRow_NoTable(t *testing.T) {
	path := writeRoadmap(t, "no table here\n")
	res, err := InsertPhaseRow(path, "0010", "Setup", NotStarted, "")
	if err == nil || res.Inserted {
		t.Fatal("missing table must fail")
	}
}

func TestNextHotfix(t *testing.T) {
	content := `| Phase | Name | Status |
|---|---|---|
| 0020 | Auth | In Progress |
| 0021 | Fix one | Complete |
| 0022 | Fix two | Complete |
`
	rm := Parse(content, "ROADMAP.md")
	if got := NextHotfix(rm); got != "0023" {
		t.Fatalf("NextHotfix = %q, want 0023", got)
	}
}

func TestNextHotfix_AllSlotsTaken(t *testing.T) {
	content := "| Phase | Name | Status |\n|---|---|---|\n| 0020 | Auth | In Progress |\n"
	for i := 1; i <= 9; i++ {
		content += "| 002" + string(rune('0'+i)) + " | Fix | Complete |\n"
	}
	rm := Parse(content, "ROADMAP.md")
	if got := NextHotfix(rm); got != "" {
		t.Fatalf("NextHotfix = %q, want empty", got)
	}
}

func TestNextHotfix_NoActiveUsesLastPhase(t *testing.T) {
	content := `| Phase | Name | Status |
|---|---|---|
| 0010 | Setup | Complete |
| 0030 | Billing | Complete |
`
	rm := Parse(content, "ROADMAP.md")
	if got := NextHotfix(rm); got != "0031" {
		t.Fatalf("NextHotfix = %q, want 0031", got)
	}
}

func TestNextHotfix_EmptyRoadmap(t *testing.T) {
	rm := Parse("no phases\n", "ROADMAP.md")
	if got := NextHotfix(rm); got != "" {
		t.Fatalf("NextHotfix = %q, want empty", got)
	}
}
