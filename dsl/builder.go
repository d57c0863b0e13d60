package dsl

import (
	"slices"
	"sync"

	"github.com/reoring/skemajs/def"
)

// Builder allocates definition nodes in one graph.
type Builder struct {
	g *def.Graph
}

// New returns a builder over a fresh graph.
func New() *Builder { return &Builder{g: def.NewGraph()} }

// On returns a builder appending to an existing graph.
func On(g *def.Graph) *Builder { return &Builder{g: g} }

// Graph returns the graph the builder writes to.
func (b *Builder) Graph() *def.Graph { return b.g }

func (b *Builder) add(n def.Node) Type {
	return Type{b: b, id: b.g.Add(n)}
}

// Typer is implemented by every builder handle.
type Typer interface {
	T() Type
}

// Type is a handle to one node. Wrapper and check methods allocate new nodes
// and never modify the receiver, except Describe which annotates it.
type Type struct {
	b  *Builder
	id def.ID
}

func (t Type) T() Type { return t }

// ID returns the node identity.
func (t Type) ID() def.ID { return t.id }

// Graph returns the graph holding the node.
func (t Type) Graph() *def.Graph { return t.b.g }

// Node returns a copy of the node.
func (t Type) Node() def.Node {
	n, _ := t.b.g.Node(t.id)
	return n
}

func (t Type) update(fn func(*def.Node)) { t.b.g.Update(t.id, fn) }

// check returns a new node equal to t with c appended.
func (t Type) check(c def.Check) Type {
	n := t.Node()
	n.Checks = append(slices.Clip(n.Checks), c)
	return t.b.add(n)
}

func (t Type) wrap(k def.Kind) Type {
	return t.b.add(def.Node{Kind: k, Elem: t.id})
}

// Describe attaches a description to the node.
func (t Type) Describe(s string) Type {
	t.update(func(n *def.Node) { n.Description = s })
	return t
}

func (t Type) Optional() Type { return t.wrap(def.KindOptional) }
func (t Type) Nullable() Type { return t.wrap(def.KindNullable) }
func (t Type) Promise() Type  { return t.wrap(def.KindPromise) }
func (t Type) Brand() Type    { return t.wrap(def.KindBranded) }

// Default wraps the node with a default value. The property becomes optional.
func (t Type) Default(v any) Type {
	return t.b.add(def.Node{Kind: def.KindDefault, Elem: t.id, Default: v})
}

// Refine wraps the node with a refinement that does not change its shape.
func (t Type) Refine() Type {
	return t.b.add(def.Node{Kind: def.KindEffect, Elem: t.id, Effect: def.EffectRefine})
}

// Transform wraps the node with a transform. A non-nil hint is emitted in
// place of the inner node's shape.
func (t Type) Transform(hint any) Type {
	return t.b.add(def.Node{Kind: def.KindEffect, Elem: t.id, Effect: def.EffectTransform, Hint: hint})
}

func (t Type) Preprocess() Type {
	return t.b.add(def.Node{Kind: def.KindEffect, Elem: t.id, Effect: def.EffectPreprocess})
}

// Array returns an array of t.
func (t Type) Array() ArrayType { return t.b.Array(t) }

// Or returns the union of t and others.
func (t Type) Or(others ...Typer) Type {
	return t.b.Union(append([]Typer{t}, others...)...)
}

// And returns the intersection of t and other.
func (t Type) And(other Typer) Type { return t.b.Intersection(t, other) }

func (b *Builder) BigInt() Type    { return b.add(def.Node{Kind: def.KindBigInt}) }
func (b *Builder) Boolean() Type   { return b.add(def.Node{Kind: def.KindBoolean}) }
func (b *Builder) Date() Type      { return b.add(def.Node{Kind: def.KindDate}) }
func (b *Builder) Null() Type      { return b.add(def.Node{Kind: def.KindNull}) }
func (b *Builder) Undefined() Type { return b.add(def.Node{Kind: def.KindUndefined}) }
func (b *Builder) Any() Type       { return b.add(def.Node{Kind: def.KindAny}) }
func (b *Builder) Unknown() Type   { return b.add(def.Node{Kind: def.KindUnknown}) }
func (b *Builder) Never() Type     { return b.add(def.Node{Kind: def.KindNever}) }
func (b *Builder) Void() Type      { return b.add(def.Node{Kind: def.KindVoid}) }
func (b *Builder) Function() Type  { return b.add(def.Node{Kind: def.KindFunction}) }

// Literal accepts exactly v. v must be a string, number, bool or nil.
func (b *Builder) Literal(v any) Type {
	return b.add(def.Node{Kind: def.KindLiteral, Value: v})
}

// Enum accepts one of the given strings.
func (b *Builder) Enum(values ...string) Type {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return b.add(def.Node{Kind: def.KindEnum, Values: vs})
}

// NativeEnum accepts one of the given string or number values.
func (b *Builder) NativeEnum(values ...any) Type {
	return b.add(def.Node{Kind: def.KindNativeEnum, Values: append([]any(nil), values...)})
}

func ids(ts []Typer) []def.ID {
	out := make([]def.ID, len(ts))
	for i, t := range ts {
		out[i] = t.T().id
	}
	return out
}

// Union accepts a value matching any of the options.
func (b *Builder) Union(options ...Typer) Type {
	return b.add(def.Node{Kind: def.KindUnion, Options: ids(options)})
}

// Intersection accepts a value matching every option.
func (b *Builder) Intersection(options ...Typer) Type {
	return b.add(def.Node{Kind: def.KindIntersection, Options: ids(options)})
}

// Lazy defers construction of a node, which lets a definition refer to
// itself. fn runs at most once.
//
//	var category dsl.Type
//	category = b.Object().
//	    Field("name", b.String()).
//	    Field("subcategories", b.Lazy(func() dsl.Typer { return category }).Array()).T()
func (b *Builder) Lazy(fn func() Typer) Type {
	get := sync.OnceValue(func() def.ID {
		t := fn()
		if t == nil {
			return def.NoID
		}
		return t.T().id
	})
	return b.add(def.Node{Kind: def.KindLazy, Getter: get})
}
