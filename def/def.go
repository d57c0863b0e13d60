// Package def models the definition graph consumed by the translator.
//
// A definition graph is a zod-style description of a validated data type.
// Nodes live in an append-only arena (Graph) and are addressed by ID; the ID
// is the node's identity. The same ID may be referenced from several parents
// (sharing), and lazy nodes may eventually point back at an ancestor
// (recursion), so consumers must not assume tree shape.
package def

import "sync"

// ID addresses a node inside one Graph. The zero value is NoID.
type ID int

// NoID marks an absent child (for example a tuple without a rest element).
const NoID ID = 0

// Kind identifies a node variant. The set is closed: translators keep a table
// indexed by Kind and sized by KindCount.
type Kind uint8

const (
	KindString Kind = iota
	KindNumber
	KindBigInt
	KindBoolean
	KindDate
	KindNull
	KindUndefined
	KindAny
	KindUnknown
	KindNever
	KindVoid
	KindLiteral
	KindEnum
	KindNativeEnum
	KindArray
	KindTuple
	KindObject
	KindRecord
	KindMap
	KindSet
	KindUnion
	KindIntersection
	KindNullable
	KindOptional
	KindDefault
	KindLazy
	KindEffect
	KindPromise
	KindBranded
	KindFunction

	// KindCount is the number of kinds; keep it last.
	KindCount
)

var kindNames = [KindCount]string{
	KindString:       "string",
	KindNumber:       "number",
	KindBigInt:       "bigint",
	KindBoolean:      "boolean",
	KindDate:         "date",
	KindNull:         "null",
	KindUndefined:    "undefined",
	KindAny:          "any",
	KindUnknown:      "unknown",
	KindNever:        "never",
	KindVoid:         "void",
	KindLiteral:      "literal",
	KindEnum:         "enum",
	KindNativeEnum:   "nativeEnum",
	KindArray:        "array",
	KindTuple:        "tuple",
	KindObject:       "object",
	KindRecord:       "record",
	KindMap:          "map",
	KindSet:          "set",
	KindUnion:        "union",
	KindIntersection: "intersection",
	KindNullable:     "nullable",
	KindOptional:     "optional",
	KindDefault:      "default",
	KindLazy:         "lazy",
	KindEffect:       "effect",
	KindPromise:      "promise",
	KindBranded:      "branded",
	KindFunction:     "function",
}

func (k Kind) String() string {
	if k < KindCount {
		return kindNames[k]
	}
	return "kind(?)"
}

// UnknownPolicy controls how an object treats keys it does not declare.
type UnknownPolicy int

const (
	UnknownStrip       UnknownPolicy = iota // Drop unknown keys (default).
	UnknownStrict                           // Reject unknown keys.
	UnknownPassthrough                      // Keep unknown keys as-is.
	UnknownCatchall                         // Validate unknown keys against Node.Catchall.
)

// EffectKind distinguishes effect wrappers.
type EffectKind int

const (
	EffectRefine EffectKind = iota
	EffectTransform
	EffectPreprocess
)

// Field is one declared object property. Order is significant.
type Field struct {
	Name string
	Type ID
}

// Node is one definition. Only the payload fields relevant to Kind are set.
type Node struct {
	Kind        Kind
	Description string
	Checks      []Check

	// Literal value (KindLiteral) and enum members (KindEnum, KindNativeEnum).
	Value  any
	Values []any

	// Elem is the inner node of wrappers (nullable, optional, default, effect,
	// promise, branded), the element of arrays and sets, and the value of
	// records and maps. Key is the key of records and maps.
	Elem ID
	Key  ID

	// Tuple positions and optional variadic rest element.
	Items []ID
	Rest  ID

	// Object shape.
	Fields   []Field
	Unknown  UnknownPolicy
	Catchall ID

	// Union and intersection members.
	Options []ID

	// Default value (KindDefault).
	Default any

	// Getter resolves a lazy node (KindLazy).
	Getter func() ID

	// Effect kind and an optional author-supplied output shape. Hint must be
	// a JSON-compatible value; it is emitted verbatim.
	Effect EffectKind
	Hint   any
}

// Unvalidated reports whether n is a primitive carrying no refinement checks.
// Such nodes may be collapsed into type lists.
func (n Node) Unvalidated() bool {
	switch n.Kind {
	case KindString, KindNumber, KindBigInt, KindBoolean, KindNull:
		return len(n.Checks) == 0
	}
	return false
}

// Optional reports whether a property holding n may be absent.
func (n Node) Optional() bool {
	return n.Kind == KindOptional || n.Kind == KindDefault
}

// Graph is an append-only arena of nodes. It is safe for concurrent use;
// readers receive copies.
type Graph struct {
	mu    sync.RWMutex
	nodes []Node
}

// NewGraph returns an empty graph.
func NewGraph() *Graph { return &Graph{} }

// Add appends n and returns its ID.
func (g *Graph) Add(n Node) ID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes = append(g.nodes, n)
	return ID(len(g.nodes))
}

// Node returns a copy of the node with the given ID.
func (g *Graph) Node(id ID) (Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if id <= NoID || int(id) > len(g.nodes) {
		return Node{}, false
	}
	return g.nodes[id-1], true
}

// Update mutates a node in place. It is meant for builders; translators only
// read.
func (g *Graph) Update(id ID, fn func(*Node)) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id <= NoID || int(id) > len(g.nodes) {
		return false
	}
	fn(&g.nodes[id-1])
	return true
}

// Len reports the number of nodes.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}
