// Package refs tracks where each definition was first rendered and decides,
// on every later encounter, whether to render it again, point at the first
// rendering, or break a cycle.
package refs

import (
	"strconv"
	"strings"

	"github.com/go-openapi/jsonpointer"

	"github.com/reoring/skemajs/def"
)

// Strategy selects how repeated definitions are emitted.
type Strategy int

const (
	// RootAnchored emits "#/a/b" pointers from the document root.
	RootAnchored Strategy = iota
	// Relative emits relative JSON pointers ("1/foo").
	Relative
	// Disabled re-renders repeated definitions and truncates cycles.
	Disabled
)

func (s Strategy) String() string {
	switch s {
	case RootAnchored:
		return "root"
	case Relative:
		return "relative"
	case Disabled:
		return "none"
	}
	return "strategy(" + strconv.Itoa(int(s)) + ")"
}

// Path is a location in the output document. The first segment is the base
// ("#" by default); the rest are unescaped keys and indexes.
type Path []string

// Child returns p extended by segs. p is never modified.
func (p Path) Child(segs ...string) Path {
	out := make(Path, len(p), len(p)+len(segs))
	copy(out, p)
	return append(out, segs...)
}

// Index returns p extended by key and a numeric index.
func (p Path) Index(key string, i int) Path {
	return p.Child(key, strconv.Itoa(i))
}

// String renders p as a root-anchored reference. The root renders as "#".
func (p Path) String() string {
	if len(p) == 0 {
		return "#"
	}
	var b strings.Builder
	b.WriteString(p[0])
	for _, s := range p[1:] {
		b.WriteByte('/')
		b.WriteString(jsonpointer.Escape(s))
	}
	return b.String()
}

func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// State classifies an encounter with a definition.
type State int

const (
	// Fresh is the first encounter; the definition is rendered here.
	Fresh State = iota
	// SeenAt means the definition was rendered before at Visit.Path.
	SeenAt
	// CycleAt means the definition is an ancestor of the current location.
	CycleAt
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case SeenAt:
		return "seen"
	case CycleAt:
		return "cycle"
	}
	return "state(" + strconv.Itoa(int(s)) + ")"
}

// Visit is the outcome of Enter.
type Visit struct {
	State State
	Path  Path
}

// Tracker holds per-translation reference state. It is not safe for
// concurrent use; each translation owns one.
type Tracker struct {
	strategy Strategy
	seen     map[def.ID]Path
	active   map[def.ID]int
}

func New(s Strategy) *Tracker {
	return &Tracker{
		strategy: s,
		seen:     map[def.ID]Path{},
		active:   map[def.ID]int{},
	}
}

func (t *Tracker) Strategy() Strategy { return t.strategy }

// Enter records id at path on first encounter and pushes it on the ancestor
// stack. SeenAt and CycleAt do not push; under Disabled call Reenter before
// rendering a SeenAt definition again.
func (t *Tracker) Enter(id def.ID, at Path) Visit {
	if p, ok := t.seen[id]; ok {
		if t.active[id] > 0 {
			return Visit{State: CycleAt, Path: p}
		}
		return Visit{State: SeenAt, Path: p}
	}
	t.seen[id] = at
	t.active[id]++
	return Visit{State: Fresh, Path: at}
}

// Reenter pushes an already seen id on the ancestor stack.
func (t *Tracker) Reenter(id def.ID) { t.active[id]++ }

// Leave pops id from the ancestor stack.
func (t *Tracker) Leave(id def.ID) {
	if t.active[id] <= 1 {
		delete(t.active, id)
		return
	}
	t.active[id]--
}

// Forget drops the first-occurrence record of id if it was made at path.
// Used when the fragment rendered there does not appear in the output.
func (t *Tracker) Forget(id def.ID, at Path) {
	if p, ok := t.seen[id]; ok && p.Equal(at) {
		delete(t.seen, id)
	}
}

// Ref renders a reference from the location from to the location to.
func (t *Tracker) Ref(from, to Path) string {
	if t.strategy == Relative {
		return relative(from, to)
	}
	return to.String()
}

// relative renders a relative JSON pointer: the number of levels to climb
// from the referencing location, then the remaining target segments.
func relative(from, to Path) string {
	common := 0
	for common < len(from) && common < len(to) && from[common] == to[common] {
		common++
	}
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(from) - common))
	for _, s := range to[common:] {
		b.WriteByte('/')
		b.WriteString(jsonpointer.Escape(s))
	}
	return b.String()
}
