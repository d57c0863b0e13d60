// Package verify checks produced documents against their dialect.
//
// Draft7 compiles a document with a draft-07 validator, which checks it
// against the meta-schema and resolves every root-anchored $ref. OpenAPI3
// inlines references and validates the result as an OpenAPI 3.0 schema
// object. Neither check validates data.
package verify

import (
	"bytes"
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/goccy/go-json"
	sjs "github.com/santhosh-tekuri/jsonschema/v6"

	js "github.com/reoring/skemajs/jsonschema"
)

const resourceURL = "skemajs.json"

// Draft7 reports whether doc is a valid draft-07 schema whose references
// all resolve. Relative JSON pointer references are not URI references and
// fail here.
func Draft7(doc *js.Schema) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("verify: marshal: %w", err)
	}
	v, err := sjs.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("verify: decode: %w", err)
	}
	c := sjs.NewCompiler()
	c.DefaultDraft(sjs.Draft7)
	if err := c.AddResource(resourceURL, v); err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if _, err := c.Compile(resourceURL); err != nil {
		return fmt.Errorf("verify: draft-07: %w", err)
	}
	return nil
}

// OpenAPI3 reports whether doc is a valid OpenAPI 3.0 schema object.
// References are inlined first, so recursive documents are rejected with
// jsonschema.ErrCyclicRef.
func OpenAPI3(ctx context.Context, doc *js.Schema) error {
	g, err := doc.Generic()
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	in, err := js.Inline(g)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("verify: marshal: %w", err)
	}
	var s openapi3.Schema
	if err := s.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("verify: decode: %w", err)
	}
	if err := s.Validate(ctx, openapi3.AllowExtraSiblingFields("propertyNames", "additionalItems")); err != nil {
		return fmt.Errorf("verify: openapi 3.0: %w", err)
	}
	return nil
}
