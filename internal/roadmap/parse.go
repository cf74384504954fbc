// Package roadmap parses and mutates the markdown roadmap table. Like the
// tasks package, parsing is total and mutation rewrites single lines so the
// rest of the file is preserved byte-for-byte.
package roadmap

import (
	"regexp"
	"strings"
)

// PhaseStatus is the canonical lifecycle state of a roadmap phase.
type PhaseStatus string

const (
	NotStarted   PhaseStatus = "not_started"
	InProgress   PhaseStatus = "in_progress"
	Complete     PhaseStatus = "complete"
	Blocked      PhaseStatus = "blocked"
	AwaitingUser PhaseStatus = "awaiting_user"
)

// statusSynonyms maps the free text found in Status cells to the canonical
// enum. Unknown text reads as not_started rather than failing the row.
var statusSynonyms = map[string]PhaseStatus{
	"complete":      Complete,
	"completed":     Complete,
	"done":          Complete,
	"in progress":   InProgress,
	"in_progress":   InProgress,
	"active":        InProgress,
	"wip":           InProgress,
	"not started":   NotStarted,
	"not_started":   NotStarted,
	"pending":       NotStarted,
	"todo":          NotStarted,
	"blocked":       Blocked,
	"awaiting user": AwaitingUser,
	"awaiting_user": AwaitingUser,
	"user gate":     AwaitingUser,
}

// displayStatus is the canonical string written back into Status cells.
var displayStatus = map[PhaseStatus]string{
	NotStarted:   "Not Started",
	InProgress:   "In Progress",
	Complete:     "Complete",
	Blocked:      "Blocked",
	AwaitingUser: "Awaiting User",
}

// Phase is one row of the roadmap table.
type Phase struct {
	Number           string      `json:"number"` // 4-digit, human-authored
	Name             string      `json:"name"`
	Status           PhaseStatus `json:"status"`
	HasUserGate      bool        `json:"hasUserGate"`
	VerificationGate string      `json:"verificationGate,omitempty"`
	Line             int         `json:"line"` // 1-based source line
}

// Progress summarizes phase completion.
type Progress struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Percentage int `json:"percentage"`
}

// Roadmap is the parsed view of a roadmap file.
type Roadmap struct {
	ProjectName   string   `json:"projectName,omitempty"`
	SchemaVersion string   `json:"schemaVersion,omitempty"`
	Phases        []*Phase `json:"phases"`
	Progress      Progress `json:"progress"`
	SourcePath    string   `json:"sourcePath"`

	lines       []string
	headerLine  int // 1-based line of the table header, 0 if absent
	lastRowLine int // 1-based line of the last phase row
}

var (
	projectRe   = regexp.MustCompile(`^Project:\s*(.+)$`)
	schemaRe    = regexp.MustCompile(`^Schema-Version:\s*(.+)$`)
	headerRowRe = regexp.MustCompile(`(?i)^\s*\|\s*phase\s*\|`)
	phaseNumRe  = regexp.MustCompile(`^\d{4}$`)
)

// Parse builds a Roadmap from markdown content. Rows whose first cell is
// not a 4-digit number are skipped as prose. Multiple In Progress rows are
// representable; callers decide how to react.
func Parse(content, sourcePath string) *Roadmap {
	rm := &Roadmap{
		SourcePath: sourcePath,
		lines:      strings.Split(content, "\n"),
	}

	for i, line := range rm.lines {
		if m := projectRe.FindStringSubmatch(line); m != nil && rm.ProjectName == "" {
			rm.ProjectName = strings.TrimSpace(m[1])
			continue
		}
		if m := schemaRe.FindStringSubmatch(line); m != nil && rm.SchemaVersion == "" {
			rm.SchemaVersion = strings.TrimSpace(m[1])
			continue
		}
		if headerRowRe.MatchString(line) && rm.headerLine == 0 {
			rm.headerLine = i + 1
			continue
		}
		cells := splitRow(line)
		if len(cells) < 3 || !phaseNumRe.MatchString(cells[0]) {
			continue
		}
		p := &Phase{
			Number: cells[0],
			Name:   cells[1],
			Status: NormalizeStatus(cells[2]),
			Line:   i + 1,
		}
		if len(cells) > 3 {
			p.VerificationGate = cells[3]
			if strings.Contains(cells[3], "USER GATE") {
				p.HasUserGate = true
			}
		}
		rm.Phases = append(rm.Phases, p)
		rm.lastRowLine = i + 1
	}

	rm.Progress = computeProgress(rm.Phases)
	return rm
}

// NormalizeStatus maps free status text to the canonical enum.
func NormalizeStatus(text string) PhaseStatus {
	key := strings.ToLower(strings.TrimSpace(text))
	if s, ok := statusSynonyms[key]; ok {
		return s
	}
	return NotStarted
}

// DisplayStatus returns the canonical cell text for a status.
func DisplayStatus(s PhaseStatus) string {
	if d, ok := displayStatus[s]; ok {
		return d
	}
	return displayStatus[NotStarted]
}

// splitRow splits a markdown table row into trimmed cell values, or nil if
// the line is not a table row.
func splitRow(line string) []string {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "|") {
		return nil
	}
	parts := strings.Split(trimmed, "|")
	if len(parts) < 3 {
		return nil
	}
	cells := parts[1 : len(parts)-1]
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

func computeProgress(phases []*Phase) Progress {
	p := Progress{Total: len(phases)}
	for _, ph := range phases {
		if ph.Status == Complete {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percentage = int(float64(p.Completed)/float64(p.Total)*100 + 0.5)
	}
	return p
}

// ActivePhase returns the first In Progress phase in document order, or nil.
func (r *Roadmap) ActivePhase() *Phase {
	for _, p := range r.Phases {
		if p.Status == InProgress {
			return p
		}
	}
	return nil
}

// NextPhase returns the first Not Started phase. Order is "document"
// (table order, the historical behavior) or "number" (numerically lowest).
func (r *Roadmap) NextPhase(order string) *Phase {
	var next *Phase
	for _, p := range r.Phases {
		if p.Status != NotStarted {
			continue
		}
		if order != "number" {
			return p
		}
		if next == nil || p.Number < next.Number {
			next = p
		}
	}
	return next
}

// PhaseByNumber returns the phase with the given number, or nil.
func (r *Roadmap) PhaseByNumber(number string) *Phase {
	for _, p := range r.Phases {
		if p.Number == number {
			return p
		}
	}
	return nil
}

// Serialize returns the roadmap's source text unchanged.
func (r *Roadmap) Serialize() string {
	return strings.Join(r.lines, "\n")
}
