package roadmap

import (
	"fmt"
	"os"
	"strings"

	"github.com/jorge-barreto/specflow/internal/atomicfile"
	"github.com/jorge-barreto/specflow/internal/flowerr"
)

// UpdatePhaseStatus rewrites the Status cell of the row with the given
// number to the canonical display string. All other cells and rows are
// left byte-identical. Returns updated=false with no write if the number
// is not present; callers use this speculatively, so that is not an error.
func UpdatePhaseStatus(path, number string, status PhaseStatus) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, flowerr.NotFound(
				"run 'specflow init' to scaffold a roadmap",
				"roadmap %s not found", path)
		}
		return false, err
	}

	rm := Parse(string(data), path)
	p := rm.PhaseByNumber(number)
	if p == nil {
		return false, nil
	}

	idx := p.Line - 1
	row, ok := replaceStatusCell(rm.lines[idx], status)
	if !ok {
		return false, flowerr.State(
			"the roadmap row for this phase is malformed; fix it by hand",
			"cannot rewrite status cell on line %d of %s", p.Line, path)
	}
	rm.lines[idx] = row

	if err := atomicfile.WriteFile(path, []byte(rm.Serialize()), 0644); err != nil {
		return false, err
	}
	return true, nil
}

// replaceStatusCell swaps the third cell of a table row, preserving every
// other segment of the line exactly.
func replaceStatusCell(line string, status PhaseStatus) (string, bool) {
	parts := strings.Split(line, "|")
	// "| num | name | status | ... |" splits into at least 5 parts with
	// the status at index 3.
	if len(parts) < 5 {
		return "", false
	}
	parts[3] = " " + DisplayStatus(status) + " "
	return strings.Join(parts, "|"), true
}

// InsertResult reports the outcome of InsertPhaseRow.
type InsertResult struct {
	Inserted bool   `json:"inserted"`
	FilePath string `json:"filePath"`
	Line     int    `json:"line,omitempty"`
}

// InsertPhaseRow appends a new row to the phase table in canonical column
// format. Everything outside the inserted line is preserved byte-for-byte.
// Fails without writing if the table cannot be located or the number is
// already taken.
func InsertPhaseRow(path, number, name string, status PhaseStatus, gateText string) (InsertResult, error) {
	res := InsertResult{FilePath: path}

	// The parser only reads rows with a 4-digit first cell; inserting
	// anything else would write a row no later read can see.
	if !phaseNumRe.MatchString(number) {
		return res, flowerr.Validation(
			"phase numbers are 4 digits (the last digit is a hotfix slot)",
			"phase number %q is not a 4-digit number", number)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return res, flowerr.NotFound(
				"run 'specflow init' to scaffold a roadmap",
				"roadmap %s not found", path)
		}
		return res, err
	}

	rm := Parse(string(data), path)
	if rm.headerLine == 0 {
		return res, flowerr.State(
			"the roadmap needs a '| Phase | Name | Status | Verification Gate |' table",
			"phase table not found in %s", path)
	}
	if rm.PhaseByNumber(number) != nil {
		return res, flowerr.Validation(
			"pick an unused phase number ('specflow phase add' computes hotfix slots)",
			"phase %s already exists in %s", number, path)
	}

	row := fmt.Sprintf("| %s | %s | %s | %s |", number, name, DisplayStatus(status), gateText)

	// Insert after the last phase row, or after the header (and its
	// separator row, if present) when the table is empty.
	at := rm.lastRowLine
	if at == 0 {
		at = rm.headerLine
		if at < len(rm.lines) && isSeparatorRow(rm.lines[at]) {
			at++
		}
	}

	lines := make([]string, 0, len(rm.lines)+1)
	lines = append(lines, rm.lines[:at]...)
	lines = append(lines, row)
	lines = append(lines, rm.lines[at:]...)

	if err := atomicfile.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return res, err
	}
	res.Inserted = true
	res.Line = at + 1
	return res, nil
}

func isSeparatorRow(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "|") && strings.Contains(t, "---")
}
