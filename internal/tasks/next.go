package tasks

// FindNextTask returns the first actionable task in document order: status
// todo with every dependency done. Blocked and deferred tasks are never
// candidates, and a dependency that is deferred, blocked, or undefined does
// not satisfy the gate, so a dependency on a deferred task gates its
// dependents until the deferral is reversed. Returns nil when nothing is
// actionable.
func FindNextTask(doc *Document) *Task {
	for _, t := range doc.Tasks {
		if t.Status != StatusTodo {
			continue
		}
		if depsSatisfied(doc, t) {
			return t
		}
	}
	return nil
}

func depsSatisfied(doc *Document, t *Task) bool {
	for _, dep := range t.Dependencies {
		d := doc.TaskByID(dep)
		if d == nil || d.Status != StatusDone {
			return false
		}
	}
	return true
}
