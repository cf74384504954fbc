package tasks

import (
	"sort"
	"strings"
)

// DetectCycles finds dependency cycles in the document's task graph.
// Each cycle is reported once as an ordered path string such as
// "T001 → T002 → T001". Edges to undefined IDs cannot close a cycle and
// are ignored here (they surface as parse warnings instead).
func DetectCycles(doc *Document) []string {
	graph := make(map[string][]string, len(doc.Tasks))
	for _, t := range doc.Tasks {
		for _, dep := range t.Dependencies {
			if doc.TaskByID(dep) != nil {
				graph[t.ID] = append(graph[t.ID], dep)
			}
		}
	}

	ids := make([]string, 0, len(doc.Tasks))
	for _, t := range doc.Tasks {
		ids = append(ids, t.ID)
	}

	const (
		white = iota // unvisited
		gray         // on the recursion stack
		black        // fully explored
	)
	color := make(map[string]int, len(ids))
	seen := make(map[string]bool)
	var cycles []string
	var stack []string

	var visit func(id string)
	visit = func(id string) {
		color[id] = gray
		stack = append(stack, id)
		for _, dep := range graph[id] {
			switch color[dep] {
			case white:
				visit(dep)
			case gray:
				// Back edge: the cycle is the stack suffix from dep onward.
				start := 0
				for i, s := range stack {
					if s == dep {
						start = i
						break
					}
				}
				path := append(append([]string{}, stack[start:]...), dep)
				key := cycleKey(path[:len(path)-1])
				if !seen[key] {
					seen[key] = true
					cycles = append(cycles, strings.Join(path, " → "))
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
	}

	for _, id := range ids {
		if color[id] == white {
			visit(id)
		}
	}
	return cycles
}

// cycleKey normalizes a cycle to a rotation-independent identity so the
// same loop discovered from two entry points is reported once.
func cycleKey(path []string) string {
	sorted := append([]string{}, path...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
