package verify_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	js "github.com/reoring/skemajs/jsonschema"
	"github.com/reoring/skemajs/verify"
)

func object(props map[string]*js.Schema, order ...string) *js.Schema {
	p := js.NewProperties()
	for _, k := range order {
		p.Set(k, props[k])
	}
	return &js.Schema{Type: js.Types("object"), Properties: p, AdditionalProperties: false}
}

func TestDraft7(t *testing.T) {
	doc := object(map[string]*js.Schema{
		"a": {Type: js.Types("string"), MinLength: js.Int(1)},
		"b": {Ref: "#/properties/a"},
		"c": {Type: js.Types("array"), Items: &js.Schema{Ref: "#"}},
	}, "a", "b", "c")
	doc.Schema = js.Draft7URI
	require.NoError(t, verify.Draft7(doc))
}

func TestDraft7_Rejects(t *testing.T) {
	dangling := object(map[string]*js.Schema{"b": {Ref: "#/properties/missing"}}, "b")
	require.Error(t, verify.Draft7(dangling))

	badKeyword := &js.Schema{Type: js.Types("string"), Raw: map[string]any{"minLength": "one"}}
	require.Error(t, verify.Draft7(badKeyword))
}

func TestOpenAPI3(t *testing.T) {
	ctx := context.Background()
	doc := object(map[string]*js.Schema{
		"a": {Type: js.Types("string"), Nullable: true},
		"b": {AllOf: []*js.Schema{{Ref: "#/properties/a"}}, Nullable: true},
		"n": {Type: js.Types("number"), Minimum: js.Float(0), ExclusiveMinimum: true},
		"r": {Type: js.Types("object"), AdditionalProperties: &js.Schema{Type: js.Types("boolean")}, PropertyNames: &js.Schema{Format: "uuid"}},
	}, "a", "b", "n", "r")
	require.NoError(t, verify.OpenAPI3(ctx, doc))
}

func TestOpenAPI3_Rejects(t *testing.T) {
	ctx := context.Background()

	recursive := object(map[string]*js.Schema{
		"children": {Type: js.Types("array"), Items: &js.Schema{Ref: "#"}},
	}, "children")
	require.ErrorIs(t, verify.OpenAPI3(ctx, recursive), js.ErrCyclicRef)

	unknownType := &js.Schema{Type: js.Types("strin")}
	require.Error(t, verify.OpenAPI3(ctx, unknownType))
}
