package state

import (
	"strconv"
	"strings"
)

// Kind is the expected type of an addressable leaf in the state schema.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBoolean
	KindArray
	KindObject
)

type schemaNode struct {
	kind     Kind
	children map[string]*schemaNode
	// open objects accept arbitrary child keys (per-step sub-state)
	open bool
}

func leaf(k Kind) *schemaNode { return &schemaNode{kind: k} }

func object(children map[string]*schemaNode) *schemaNode {
	return &schemaNode{kind: KindObject, children: children}
}

// schemaRoot is the fixed, hand-maintained description of the known state
// shape. It exists so generic Set calls can coerce obvious type mismatches;
// anything outside it is passed through untouched.
var schemaRoot = object(map[string]*schemaNode{
	"schema_version": leaf(KindString),
	"project": object(map[string]*schemaNode{
		"id":   leaf(KindString),
		"name": leaf(KindString),
		"path": leaf(KindString),
	}),
	"orchestration": object(map[string]*schemaNode{
		"phase": object(map[string]*schemaNode{
			"number":      leaf(KindString),
			"name":        leaf(KindString),
			"branch":      leaf(KindString),
			"status":      leaf(KindString),
			"hasUserGate": leaf(KindBoolean),
		}),
		"step": object(map[string]*schemaNode{
			"current": leaf(KindString),
			"index":   leaf(KindNumber),
			"status":  leaf(KindString),
		}),
		"progress": object(map[string]*schemaNode{
			"tasks_completed": leaf(KindNumber),
			"tasks_total":     leaf(KindNumber),
			"percentage":      leaf(KindNumber),
		}),
		"steps": &schemaNode{kind: KindObject, open: true},
	}),
	"history": leaf(KindArray),
})

// ResolveSchemaType walks the schema tree for a dotted path. The second
// return is false for any path the schema does not describe, including
// paths one level past a leaf; that is the signal to skip coercion.
func ResolveSchemaType(path string) (Kind, bool) {
	node := schemaRoot
	rest := path
	for rest != "" {
		seg := rest
		if i := strings.IndexByte(rest, '.'); i >= 0 {
			seg, rest = rest[:i], rest[i+1:]
		} else {
			rest = ""
		}
		if node.open {
			// Free-form subtree: shape unknown, no coercion.
			return 0, false
		}
		child, ok := node.children[seg]
		if !ok {
			return 0, false
		}
		node = child
	}
	return node.kind, true
}

// CoerceValue adjusts value toward the schema type for path, handling only
// unambiguous cases: number→string, numeric string→number, and the literal
// strings "true"/"false"→bool. Arrays, objects, unknown paths, and anything
// else pass through unchanged. Leaving an obviously wrong type for a later
// validator beats silently corrupting a user-supplied value.
func CoerceValue(path string, value any) any {
	kind, ok := ResolveSchemaType(path)
	if !ok {
		return value
	}
	switch kind {
	case KindString:
		switch v := value.(type) {
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			return strconv.Itoa(v)
		}
	case KindNumber:
		if v, ok := value.(string); ok {
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				return n
			}
		}
	case KindBoolean:
		switch value {
		case "true":
			return true
		case "false":
			return false
		}
	}
	return value
}
