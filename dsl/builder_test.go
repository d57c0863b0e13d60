package dsl_test

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/reoring/skemajs/def"
	"github.com/reoring/skemajs/dsl"
)

func TestBuilder_WrappersAllocateNewNodes(t *testing.T) {
	b := dsl.New()
	s := b.String()
	opt := s.Optional()
	nul := s.Nullable()
	dflt := s.Default("x")

	require.NotEqual(t, s.ID(), opt.ID())
	require.Equal(t, def.KindOptional, opt.Node().Kind)
	require.Equal(t, s.ID(), opt.Node().Elem)
	require.Equal(t, def.KindNullable, nul.Node().Kind)
	require.Equal(t, def.KindDefault, dflt.Node().Kind)
	require.Equal(t, "x", dflt.Node().Default)
	require.True(t, dflt.Node().Optional())

	require.Equal(t, def.KindPromise, s.Promise().Node().Kind)
	require.Equal(t, def.KindBranded, s.Brand().Node().Kind)
	require.Equal(t, def.KindString, s.Node().Kind, "receiver must be untouched")
}

func TestBuilder_ChecksAccumulate(t *testing.T) {
	b := dsl.New()
	s := b.String().Min(1).Max(10).Email()
	got := s.Node().Checks
	want := []def.Check{def.Min(1), def.Max(10), {Kind: def.CheckEmail}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("checks mismatch (-want +got):\n%s", diff)
	}

	n := b.Number().Int().Positive().Max(5).MultipleOf(2)
	want = []def.Check{{Kind: def.CheckInt}, def.Gt(0), def.Max(5), {Kind: def.CheckMultipleOf, Value: 2}}
	if diff := cmp.Diff(want, n.Node().Checks); diff != "" {
		t.Fatalf("checks mismatch (-want +got):\n%s", diff)
	}

	a := b.Array(b.Boolean()).Nonempty().Max(3)
	require.Equal(t, []def.Check{def.Min(1), def.Max(3)}, a.Node().Checks)
}

func TestBuilder_ChecksLeaveReceiverUnchanged(t *testing.T) {
	b := dsl.New()
	base := b.String().Min(1)
	short := base.Max(3)
	long := base.Max(100)
	require.NotEqual(t, base.ID(), short.ID())
	require.Equal(t, []def.Check{def.Min(1)}, base.Node().Checks)
	require.Equal(t, []def.Check{def.Min(1), def.Max(3)}, short.Node().Checks)
	require.Equal(t, []def.Check{def.Min(1), def.Max(100)}, long.Node().Checks)

	arr := b.Array(b.Number())
	_ = arr.Nonempty()
	require.Empty(t, arr.Node().Checks)

	tup := b.Tuple(b.String())
	rest := tup.Rest(b.Number())
	require.Equal(t, def.NoID, tup.Node().Rest)
	require.NotEqual(t, def.NoID, rest.Node().Rest)
}

func TestBuilder_Describe(t *testing.T) {
	b := dsl.New()
	s := b.String()
	d := s.Describe("name")
	require.Equal(t, s.ID(), d.ID())
	require.Equal(t, "name", s.Node().Description)
}

func TestObject_FieldOrderAndRedeclare(t *testing.T) {
	b := dsl.New()
	first := b.String()
	second := b.Number()
	o := b.Object().
		Field("a", first).
		Field("b", b.Boolean()).
		Field("a", second)

	fields := o.Node().Fields
	require.Len(t, fields, 2)
	require.Equal(t, "a", fields[0].Name)
	require.Equal(t, second.ID(), fields[0].Type)
	require.Equal(t, "b", fields[1].Name)
}

func TestObject_Policies(t *testing.T) {
	b := dsl.New()
	o := b.Object()
	require.Equal(t, def.UnknownStrip, o.Node().Unknown)

	o.Strict()
	require.Equal(t, def.UnknownStrict, o.Node().Unknown)

	extra := b.Number()
	o.Catchall(extra)
	require.Equal(t, def.UnknownCatchall, o.Node().Unknown)
	require.Equal(t, extra.ID(), o.Node().Catchall)

	o.Passthrough()
	require.Equal(t, def.UnknownPassthrough, o.Node().Unknown)
	require.Equal(t, def.NoID, o.Node().Catchall)
}

func TestComposites(t *testing.T) {
	b := dsl.New()
	s, n := b.String(), b.Number()

	tup := b.Tuple(s, n).Rest(b.Boolean())
	require.Equal(t, []def.ID{s.ID(), n.ID()}, tup.Node().Items)
	require.NotEqual(t, def.NoID, tup.Node().Rest)

	rec := b.Record(n)
	key, _ := b.Graph().Node(rec.Node().Key)
	require.Equal(t, def.KindString, key.Kind)
	require.Equal(t, n.ID(), rec.Node().Elem)

	m := b.Map(s, n)
	require.Equal(t, def.KindMap, m.Node().Kind)
	require.Equal(t, s.ID(), m.Node().Key)

	u := s.Or(n, b.Null())
	require.Equal(t, def.KindUnion, u.Node().Kind)
	require.Len(t, u.Node().Options, 3)

	i := s.And(n)
	require.Equal(t, []def.ID{s.ID(), n.ID()}, i.Node().Options)

	set := b.Set(s).Min(1)
	require.Equal(t, def.KindSet, set.Node().Kind)
}

func TestEnums(t *testing.T) {
	b := dsl.New()
	e := b.Enum("a", "b")
	require.Equal(t, []any{"a", "b"}, e.Node().Values)

	ne := b.NativeEnum("x", 1)
	require.Equal(t, []any{"x", 1}, ne.Node().Values)
}

func TestLazy_ResolvesOnceAndSupportsRecursion(t *testing.T) {
	b := dsl.New()
	calls := 0
	var category dsl.ObjectType
	lazy := b.Lazy(func() dsl.Typer {
		calls++
		return category
	})
	category = b.Object().
		Field("name", b.String()).
		Field("children", lazy.Array())

	get := lazy.Node().Getter
	require.NotNil(t, get)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.Equal(t, category.ID(), get())
		}()
	}
	wg.Wait()
	require.Equal(t, 1, calls)
}

func TestLazy_NilResolvesToNoID(t *testing.T) {
	b := dsl.New()
	lazy := b.Lazy(func() dsl.Typer { return nil })
	require.Equal(t, def.NoID, lazy.Node().Getter())
}

func TestEffects(t *testing.T) {
	b := dsl.New()
	s := b.String()
	hint := map[string]any{"type": "number"}

	tr := s.Transform(hint)
	if diff := cmp.Diff(def.Node{Kind: def.KindEffect, Elem: s.ID(), Effect: def.EffectTransform, Hint: hint},
		tr.Node(), cmpopts.IgnoreFields(def.Node{}, "Getter")); diff != "" {
		t.Fatalf("transform node mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, def.EffectRefine, s.Refine().Node().Effect)
	require.Equal(t, def.EffectPreprocess, s.Preprocess().Node().Effect)
}

func TestOn_SharesGraph(t *testing.T) {
	g := def.NewGraph()
	b1, b2 := dsl.On(g), dsl.On(g)
	x := b1.String()
	y := b2.Array(x)
	require.Same(t, g, y.Graph())
	require.Equal(t, x.ID(), y.Node().Elem)
}
