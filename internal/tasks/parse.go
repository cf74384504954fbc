// Package tasks parses and mutates markdown task lists. Parsing is total:
// malformed lines are treated as prose, never errors. Mutation rewrites
// single lines in place so unrelated content survives byte-for-byte.
package tasks

import (
	"fmt"
	"regexp"
	"strings"
)

// Status is the lifecycle state of a single task.
type Status string

const (
	StatusTodo     Status = "todo"
	StatusDone     Status = "done"
	StatusBlocked  Status = "blocked"
	StatusDeferred Status = "deferred"
)

// Task is one checkbox line in a tasks document.
type Task struct {
	ID             string   `json:"id"`
	Description    string   `json:"description"`
	Status         Status   `json:"status"`
	Line           int      `json:"line"` // 1-based source line
	Section        string   `json:"section"`
	IsParallel     bool     `json:"isParallel"`
	IsVerification bool     `json:"isVerification"`
	UserStory      string   `json:"userStory,omitempty"`
	Priority       string   `json:"priority,omitempty"`
	Dependencies   []string `json:"dependencies,omitempty"`
}

// Section is a named group of tasks under one heading.
type Section struct {
	Name       string  `json:"name"`
	Tasks      []*Task `json:"tasks"`
	IsComplete bool    `json:"isComplete"`
	StartLine  int     `json:"startLine"`
	EndLine    int     `json:"endLine"`
}

// Progress summarizes a document's task counts.
type Progress struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Blocked    int `json:"blocked"`
	Deferred   int `json:"deferred"`
	Percentage int `json:"percentage"`
}

// Document is the parsed view of a tasks file plus the raw line array
// that mutation and serialization operate on.
type Document struct {
	Title          string     `json:"title"`
	SourcePath     string     `json:"sourcePath"`
	Sections       []*Section `json:"sections"`
	Tasks          []*Task    `json:"tasks"`
	Progress       Progress   `json:"progress"`
	CurrentSection string     `json:"currentSection,omitempty"`
	Warnings       []string   `json:"warnings,omitempty"`

	lines []string
}

var (
	taskLineRe  = regexp.MustCompile(`^\s*- \[(.)\] (T\d{3}[a-z]?)(?:\s+(.*))?$`)
	headingRe   = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	blockedRe   = regexp.MustCompile(`\[BLOCKED\b[^\]]*\]`)
	userStoryRe = regexp.MustCompile(`\[US(\d+)\]`)
	priorityRe  = regexp.MustCompile(`\[(P[123])\]`)
	depPhraseRe = regexp.MustCompile(`(?i)\b(?:after|requires|depends on)\b:?\s+(T\d{3}[a-z]?(?:\s*,\s*T\d{3}[a-z]?)*)`)
	depIDRe     = regexp.MustCompile(`T\d{3}[a-z]?`)
	completeRe  = regexp.MustCompile(`(?i)\bcomplete\b|✅`)
)

// Parse builds a Document from markdown content. It never fails: content
// with no recognizable tasks yields an empty document with zero progress.
func Parse(content, sourcePath string) *Document {
	doc := &Document{
		SourcePath: sourcePath,
		lines:      strings.Split(content, "\n"),
	}

	var current *Section
	currentLevel := 0
	for i, line := range doc.lines {
		if m := headingRe.FindStringSubmatch(line); m != nil {
			level := len(m[1])
			name := strings.TrimSpace(m[2])
			if level == 1 && doc.Title == "" && current == nil {
				doc.Title = name
				continue
			}
			// Sections close only on a heading of equal-or-higher level;
			// a deeper sub-heading is prose inside the current section.
			if current != nil && level > currentLevel {
				continue
			}
			if current != nil {
				current.EndLine = i // line before this heading, 1-based
			}
			current = &Section{
				Name:       name,
				IsComplete: completeRe.MatchString(name),
				StartLine:  i + 1,
				EndLine:    len(doc.lines),
			}
			currentLevel = level
			doc.Sections = append(doc.Sections, current)
			continue
		}

		m := taskLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		t := parseTask(m, i+1)
		if current != nil {
			t.Section = current.Name
			current.Tasks = append(current.Tasks, t)
		}
		doc.Tasks = append(doc.Tasks, t)
	}

	deriveSectionCompletion(doc)
	doc.Progress = computeProgress(doc.Tasks)
	doc.CurrentSection = pickCurrentSection(doc.Sections)
	doc.Warnings = collectWarnings(doc.Tasks)
	return doc
}

func parseTask(m []string, line int) *Task {
	t := &Task{
		ID:          m[2],
		Description: m[3],
		Line:        line,
	}
	switch m[1] {
	case "x", "X":
		t.Status = StatusDone
	case "~":
		t.Status = StatusDeferred
	default:
		// Unknown glyphs read as todo rather than failing the line.
		t.Status = StatusTodo
	}
	if t.Status == StatusTodo && blockedRe.MatchString(t.Description) {
		t.Status = StatusBlocked
	}
	if strings.Contains(t.Description, "[P]") {
		t.IsParallel = true
	}
	if strings.Contains(t.Description, "[V]") {
		t.IsVerification = true
	}
	if us := userStoryRe.FindStringSubmatch(t.Description); us != nil {
		t.UserStory = "US" + us[1]
	}
	if pr := priorityRe.FindStringSubmatch(t.Description); pr != nil {
		t.Priority = pr[1]
	}
	for _, phrase := range depPhraseRe.FindAllStringSubmatch(t.Description, -1) {
		t.Dependencies = append(t.Dependencies, depIDRe.FindAllString(phrase[1], -1)...)
	}
	return t
}

func deriveSectionCompletion(doc *Document) {
	for _, s := range doc.Sections {
		if s.IsComplete {
			continue // authored override wins
		}
		done := true
		for _, t := range s.Tasks {
			if t.Status != StatusDone && t.Status != StatusDeferred {
				done = false
				break
			}
		}
		s.IsComplete = done
	}
}

func computeProgress(ts []*Task) Progress {
	p := Progress{Total: len(ts)}
	for _, t := range ts {
		switch t.Status {
		case StatusDone:
			p.Completed++
		case StatusBlocked:
			p.Blocked++
		case StatusDeferred:
			p.Deferred++
		}
	}
	if p.Total > 0 {
		p.Percentage = int(float64(p.Completed)/float64(p.Total)*100 + 0.5)
	}
	return p
}

func pickCurrentSection(sections []*Section) string {
	for _, s := range sections {
		if len(s.Tasks) == 0 {
			continue
		}
		if !s.IsComplete {
			return s.Name
		}
	}
	return ""
}

func collectWarnings(ts []*Task) []string {
	known := make(map[string]bool, len(ts))
	for _, t := range ts {
		known[t.ID] = true
	}
	var warnings []string
	for _, t := range ts {
		for _, dep := range t.Dependencies {
			if !known[dep] {
				warnings = append(warnings, fmt.Sprintf("%s depends on %s, which is not defined", t.ID, dep))
			}
		}
	}
	return warnings
}

// Serialize returns the document's source text unchanged. Mutation edits
// the line array directly, so round-tripping is exact.
func (d *Document) Serialize() string {
	return strings.Join(d.lines, "\n")
}

// TaskByID returns the task with the given ID, or nil.
func (d *Document) TaskByID(id string) *Task {
	for _, t := range d.Tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}
