// Package kubeopenapi imports OpenAPI v3 schemas, including Kubernetes CRD
// openAPIV3Schema blocks, into a definition graph.
//
// Local $refs become shared nodes, and refs that reach back into a schema
// still being imported become lazy nodes, so converting the graph again
// re-emits $refs instead of expanding them.
package kubeopenapi

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/reoring/skemajs/def"
	"github.com/reoring/skemajs/dsl"
)

// Import builds a definition graph from an OpenAPI v3 schema. The input can
// be raw JSON bytes, a decoded map[string]any, a CRD document, or any value
// that marshals to one of those.
func Import(schema any, opts Options) (*def.Graph, def.ID, Diag, error) {
	d := &simpleDiag{}
	root, err := decodeRoot(schema)
	if err != nil {
		return nil, def.NoID, d, err
	}
	if oas := schemaOf(root); oas != nil {
		root = oas
	}

	im := newImporter(root, opts, d)
	t := im.schema(root, "")
	return im.b.Graph(), t.ID(), d, nil
}

func decodeRoot(schema any) (map[string]any, error) {
	var raw []byte
	switch t := schema.(type) {
	case nil:
		return nil, errors.New("kubeopenapi: nil schema")
	case map[string]any:
		return t, nil
	case []byte:
		raw = t
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("kubeopenapi: cannot marshal input: %w", err)
		}
		raw = b
	}
	var root map[string]any
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("kubeopenapi: invalid JSON: %w", err)
	}
	if root == nil {
		return nil, errors.New("kubeopenapi: schema is not an object")
	}
	return root, nil
}

// schemaOf finds the openAPIV3Schema in a wrapper or CRD document: a bare
// wrapper first, then spec.versions (first served version, else the first
// one with a schema), then the legacy spec.validation. It returns nil when
// root is itself the schema.
func schemaOf(root map[string]any) map[string]any {
	if oas := mapAt(root, "openAPIV3Schema"); oas != nil {
		return oas
	}
	spec := mapAt(root, "spec")
	if spec == nil {
		return nil
	}
	var fallback map[string]any
	versions, _ := spec["versions"].([]any)
	for _, v := range versions {
		vm, _ := v.(map[string]any)
		oas := mapAt(mapAt(vm, "schema"), "openAPIV3Schema")
		if oas == nil {
			continue
		}
		if served, ok := vm["served"].(bool); !ok || served {
			return oas
		}
		if fallback == nil {
			fallback = oas
		}
	}
	if fallback != nil {
		return fallback
	}
	return mapAt(mapAt(spec, "validation"), "openAPIV3Schema")
}

func mapAt(m map[string]any, key string) map[string]any {
	v, _ := m[key].(map[string]any)
	return v
}

// importer walks one document. refs holds finished $ref targets and
// building the ones currently being imported.
type importer struct {
	b        *dsl.Builder
	doc      map[string]any
	opts     Options
	d        *simpleDiag
	refs     map[string]dsl.Type
	building map[string]bool
}

func newImporter(doc map[string]any, opts Options, d *simpleDiag) *importer {
	return &importer{
		b:        dsl.New(),
		doc:      doc,
		opts:     opts,
		d:        d,
		refs:     map[string]dsl.Type{},
		building: map[string]bool{},
	}
}
