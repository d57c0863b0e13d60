package leaf_test

import (
	"math/big"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/reoring/skemajs/def"
	"github.com/reoring/skemajs/internal/leaf"
	js "github.com/reoring/skemajs/jsonschema"
)

var (
	draft   = leaf.For(js.TargetJSONSchema7)
	openAPI = leaf.For(js.TargetOpenAPI3)
)

func render(t *testing.T, s *js.Schema) string {
	t.Helper()
	b, err := json.Marshal(s)
	require.NoError(t, err)
	return string(b)
}

func TestString_Checks(t *testing.T) {
	n := &def.Node{Kind: def.KindString, Checks: []def.Check{
		def.Min(1), def.Max(10), {Kind: def.CheckEmail},
	}}
	require.JSONEq(t, `{"type":"string","format":"email","minLength":1,"maxLength":10}`, render(t, draft.String(n)))

	n = &def.Node{Kind: def.KindString, Checks: []def.Check{{Kind: def.CheckLength, Value: 4}, {Kind: def.CheckUUID}}}
	require.JSONEq(t, `{"type":"string","format":"uuid","minLength":4,"maxLength":4}`, render(t, draft.String(n)))
}

func TestString_Patterns(t *testing.T) {
	n := &def.Node{Kind: def.KindString, Checks: []def.Check{{Kind: def.CheckCUID}}}
	require.JSONEq(t, `{"type":"string","pattern":"^c[^\\s-]{8,}$"}`, render(t, draft.String(n)))

	n = &def.Node{Kind: def.KindString, Checks: []def.Check{
		{Kind: def.CheckStartsWith, Pattern: "a.b"},
		{Kind: def.CheckEndsWith, Pattern: "(x)"},
		{Kind: def.CheckRegex, Pattern: "^[a-z]+$"},
	}}
	require.JSONEq(t,
		`{"type":"string","pattern":"^a\\.b","allOf":[{"pattern":"\\(x\\)$"},{"pattern":"^[a-z]+$"}]}`,
		render(t, draft.String(n)))
}

func TestNumber_Bounds(t *testing.T) {
	n := &def.Node{Kind: def.KindNumber, Checks: []def.Check{
		{Kind: def.CheckInt}, def.Gt(0), def.Lt(100), {Kind: def.CheckMultipleOf, Value: 5},
	}}
	require.JSONEq(t,
		`{"type":"integer","exclusiveMinimum":0,"exclusiveMaximum":100,"multipleOf":5}`,
		render(t, draft.Number(n)))
	require.JSONEq(t,
		`{"type":"integer","minimum":0,"exclusiveMinimum":true,"maximum":100,"exclusiveMaximum":true,"multipleOf":5}`,
		render(t, openAPI.Number(n)))

	// the last bound on a side wins
	n = &def.Node{Kind: def.KindNumber, Checks: []def.Check{def.Gt(0), def.Min(1)}}
	require.JSONEq(t, `{"type":"number","minimum":1}`, render(t, draft.Number(n)))
}

func TestNull_PerTarget(t *testing.T) {
	require.JSONEq(t, `{"type":"null"}`, render(t, draft.Null()))
	require.JSONEq(t, `{"nullable":true,"enum":[null]}`, render(t, openAPI.Null()))
	require.JSONEq(t, `{"type":"null"}`, render(t, draft.Literal(nil)))
}

func TestLiteral_PerTarget(t *testing.T) {
	require.JSONEq(t, `{"type":"string","const":"a"}`, render(t, draft.Literal("a")))
	require.JSONEq(t, `{"type":"string","enum":["a"]}`, render(t, openAPI.Literal("a")))
	require.JSONEq(t, `{"type":"number","const":42}`, render(t, draft.Literal(42)))
	require.JSONEq(t, `{"type":"boolean","const":true}`, render(t, draft.Literal(true)))
}

func TestEnums(t *testing.T) {
	require.JSONEq(t, `{"type":"string","enum":["a","b"]}`, render(t, draft.Enum([]any{"a", "b"})))
	require.JSONEq(t, `{"type":["string","number"],"enum":["a",1]}`, render(t, draft.NativeEnum([]any{"a", 1})))
	require.JSONEq(t, `{"enum":["a",1]}`, render(t, openAPI.NativeEnum([]any{"a", 1})))
	require.JSONEq(t, `{"type":"number","enum":[1,2]}`, render(t, openAPI.NativeEnum([]any{1, 2})))
}

func TestPrimitives(t *testing.T) {
	require.JSONEq(t, `{}`, render(t, draft.Any()))
	require.JSONEq(t, `{"not":{}}`, render(t, draft.Never()))
	require.JSONEq(t, `{"type":"integer","format":"int64"}`, render(t, draft.BigInt()))
	require.JSONEq(t, `{"type":"string","format":"date-time"}`, render(t, draft.Date()))
	require.JSONEq(t, `{"type":"boolean"}`, render(t, draft.Primitive(def.KindBoolean)))
	require.JSONEq(t, `{"nullable":true,"enum":[null]}`, render(t, openAPI.Primitive(def.KindNull)))
}

func TestValueType(t *testing.T) {
	require.Equal(t, "null", leaf.ValueType(nil))
	require.Equal(t, "string", leaf.ValueType("x"))
	require.Equal(t, "boolean", leaf.ValueType(false))
	require.Equal(t, "number", leaf.ValueType(int8(1)))
	require.Equal(t, "number", leaf.ValueType(1.5))
	require.Equal(t, "integer", leaf.ValueType(big.NewInt(1)))
	require.Equal(t, "array", leaf.ValueType([]any{}))
	require.Equal(t, "object", leaf.ValueType(map[string]any{}))

	name, ok := leaf.TypeName(def.KindBigInt)
	require.True(t, ok)
	require.Equal(t, "integer", name)
	_, ok = leaf.TypeName(def.KindDate)
	require.False(t, ok)
}
