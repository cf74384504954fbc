package tasks

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/jorge-barreto/specflow/internal/atomicfile"
	"github.com/jorge-barreto/specflow/internal/flowerr"
)

var rangeRe = regexp.MustCompile(`^T(\d{3})\.\.T(\d{3})$`)

// ExpandIDs expands a mix of plain IDs and inclusive range tokens
// (T001..T005) into a flat ID list. Sub-lettered IDs are valid as plain
// tokens but never produced by range expansion. Reversed or malformed
// ranges are validation errors, never silently empty.
func ExpandIDs(tokens []string) ([]string, error) {
	var ids []string
	for _, tok := range tokens {
		if !strings.Contains(tok, "..") {
			ids = append(ids, tok)
			continue
		}
		m := rangeRe.FindStringSubmatch(tok)
		if m == nil {
			return nil, flowerr.Validation(
				"ranges look like T001..T005",
				"malformed range %q", tok)
		}
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		if lo > hi {
			return nil, flowerr.Validation(
				"range start must not exceed range end",
				"reversed range %q", tok)
		}
		for n := lo; n <= hi; n++ {
			ids = append(ids, fmt.Sprintf("T%03d", n))
		}
	}
	if len(ids) == 0 {
		return nil, flowerr.Validation("pass at least one task ID or range", "empty task ID list")
	}
	return ids, nil
}

// statusGlyph maps a writable status to its checkbox character. Blocked is
// an authored annotation in the description, not a checkbox state, so it
// is not writable through Mark.
func statusGlyph(status Status) (byte, error) {
	switch status {
	case StatusTodo:
		return ' ', nil
	case StatusDone:
		return 'x', nil
	case StatusDeferred:
		return '~', nil
	default:
		return 0, flowerr.Validation(
			"writable statuses are todo, done, and deferred; blocked is a [BLOCKED: ...] annotation",
			"cannot mark tasks as %q", status)
	}
}

// Mark flips the checkbox of every listed task to status and rewrites the
// file once, atomically. The batch is all-or-nothing: one unknown ID fails
// the whole call with no write, so the reported updated set always matches
// the file. The returned document is a fresh parse of the written content.
func Mark(path string, ids []string, status Status) (*Document, error) {
	glyph, err := statusGlyph(status)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, flowerr.NotFound(
				"run from a directory with a tasks file, or pass --tasks",
				"tasks file %s not found", path)
		}
		return nil, err
	}

	doc := Parse(string(data), path)

	// Locate every target first so a miss fails before any substitution.
	lineFor := make(map[string]int, len(ids))
	for _, id := range ids {
		t := doc.TaskByID(id)
		if t == nil {
			return nil, flowerr.NotFound(
				"run 'specflow tasks list' to see known IDs",
				"task %s not found in %s", id, path)
		}
		lineFor[id] = t.Line
	}

	for _, id := range ids {
		idx := lineFor[id] - 1
		line := doc.lines[idx]
		open := strings.Index(line, "[")
		// The task-line pattern guarantees "[g] " with one glyph char.
		doc.lines[idx] = line[:open+1] + string(glyph) + line[open+2:]
	}

	out := doc.Serialize()
	if err := atomicfile.WriteFile(path, []byte(out), 0644); err != nil {
		return nil, err
	}

	// Re-parse rather than hand-adjusting progress, so the returned figures
	// always follow the parser's own classification rules.
	return Parse(out, path), nil
}
