package skemajs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/skemajs"
	"github.com/reoring/skemajs/dsl"
	"github.com/reoring/skemajs/verify"
)

// allKinds builds one property per supported definition kind. Every
// property is optional and the object carries a default and a description.
func allKinds() dsl.Type {
	b := dsl.New()
	fooBar := func() dsl.ObjectType {
		return b.Object().Field("foo", b.String()).Field("bar", b.Number().Optional())
	}
	fields := []struct {
		name string
		t    dsl.Typer
	}{
		{"any", b.Any()},
		{"array", b.Array(b.Any())},
		{"arrayMin", b.Array(b.Any()).Min(1)},
		{"arrayMax", b.Array(b.Any()).Max(1)},
		{"arrayMinMax", b.Array(b.Any()).Min(1).Max(1)},
		{"bigInt", b.BigInt()},
		{"boolean", b.Boolean()},
		{"date", b.Date()},
		{"default", b.Any().Default(42)},
		{"effectRefine", b.String().Refine()},
		{"effectTransform", b.String().Transform(nil)},
		{"effectPreprocess", b.String().Preprocess()},
		{"enum", b.Enum("hej", "svejs")},
		{"intersection", b.Intersection(b.String().Min(1), b.String().Max(4))},
		{"literal", b.Literal("hej")},
		{"map", b.Map(b.String().UUID(), b.Boolean())},
		{"nativeEnum", b.NativeEnum(0, 1, 2)},
		{"never", b.Never()},
		{"null", b.Null()},
		{"nullablePrimitive", b.String().Nullable()},
		{"nullableObject", b.Object().Field("hello", b.String()).Nullable()},
		{"number", b.Number()},
		{"numberGt", b.Number().Gt(1)},
		{"numberLt", b.Number().Lt(1)},
		{"numberGtLt", b.Number().Gt(1).Lt(1)},
		{"numberGte", b.Number().Min(1)},
		{"numberLte", b.Number().Max(1)},
		{"numberGteLte", b.Number().Min(1).Max(1)},
		{"numberMultipleOf", b.Number().MultipleOf(2)},
		{"numberInt", b.Number().Int()},
		{"objectPasstrough", fooBar().Passthrough()},
		{"objectCatchall", fooBar().Catchall(b.Boolean())},
		{"objectStrict", fooBar().Strict()},
		{"objectStrip", fooBar().Strip()},
		{"promise", b.String().Promise()},
		{"recordStringBoolean", b.Record(b.Boolean())},
		{"recordUuidBoolean", b.RecordOf(b.String().UUID(), b.Boolean())},
		{"recordBooleanBoolean", b.RecordOf(b.Boolean(), b.Boolean())},
		{"set", b.Set(b.String())},
		{"string", b.String()},
		{"stringMin", b.String().Min(1)},
		{"stringMax", b.String().Max(1)},
		{"stringEmail", b.String().Email()},
		{"stringUrl", b.String().URL()},
		{"stringUuid", b.String().UUID()},
		{"stringRegEx", b.String().Regex("abc")},
		{"stringCuid", b.String().CUID()},
		{"tuple", b.Tuple(b.String(), b.Number(), b.Boolean())},
		{"undefined", b.Undefined()},
		{"unionPrimitives", b.Union(b.String(), b.Number(), b.Boolean(), b.BigInt(), b.Null())},
		{"unionPrimitiveLiterals", b.Union(b.Literal(123), b.Literal("abc"), b.Literal(nil), b.Literal(true))},
		{"unionNonPrimitives", b.Union(b.String(), fooBar())},
		{"unknown", b.Unknown()},
	}
	o := b.Object()
	for _, f := range fields {
		o = o.Field(f.name, f.t.T().Optional())
	}
	return o.Default(map[string]any{"string": "hello"}).Describe("watup")
}

func golden(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(b)
}

func TestConvert_AllKinds_JSONSchema7(t *testing.T) {
	doc, d, err := skemajs.ConvertType(allKinds(), skemajs.Options{Target: skemajs.TargetJSONSchema7})
	require.NoError(t, err)
	require.False(t, d.HasWarnings(), "warnings: %v", d.Warnings())

	out, err := doc.JSON()
	require.NoError(t, err)
	require.JSONEq(t, golden(t, "all_kinds.jsonschema7.json"), string(out))
	require.NoError(t, verify.Draft7(doc))
}

func TestConvert_AllKinds_OpenAPI3(t *testing.T) {
	doc, d, err := skemajs.ConvertType(allKinds(), skemajs.Options{Target: skemajs.TargetOpenAPI3})
	require.NoError(t, err)
	require.False(t, d.HasWarnings(), "warnings: %v", d.Warnings())

	out, err := doc.JSON()
	require.NoError(t, err)
	require.JSONEq(t, golden(t, "all_kinds.openapi3.json"), string(out))
}
