package state

import (
	"strings"

	"github.com/jorge-barreto/specflow/internal/flowerr"
)

// Get resolves a dotted path against the document. The second return is
// false when any segment is missing or a non-object is traversed.
func (s *State) Get(path string) (any, bool) {
	segs := strings.Split(path, ".")
	var cur any = s.doc
	for _, seg := range segs {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Set returns a new State with value written at the dotted path, leaving
// the receiver untouched, plus the previous value at that path (nil if
// absent). The value is coerced against the schema first. Intermediate
// objects are created as needed so free-form per-step sub-state can grow;
// overwriting a non-object intermediate is an error.
func (s *State) Set(path string, value any) (*State, any, error) {
	segs := strings.Split(path, ".")
	if path == "" || len(segs) == 0 {
		return nil, nil, flowerr.Validation("pass a dotted path like orchestration.step.current", "empty state path")
	}

	coerced := CoerceValue(path, value)
	prev, _ := s.Get(path)

	next := &State{doc: deepCopyMap(s.doc)}
	cur := next.doc
	for _, seg := range segs[:len(segs)-1] {
		child, ok := cur[seg]
		if !ok {
			m := map[string]any{}
			cur[seg] = m
			cur = m
			continue
		}
		m, ok := child.(map[string]any)
		if !ok {
			return nil, nil, flowerr.Validation(
				"an intermediate segment of this path holds a non-object value",
				"cannot descend into %q in path %q", seg, path)
		}
		cur = m
	}
	cur[segs[len(segs)-1]] = coerced
	return next, prev, nil
}

func deepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopyMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopyValue(e)
		}
		return out
	default:
		// JSON scalars are immutable.
		return v
	}
}
