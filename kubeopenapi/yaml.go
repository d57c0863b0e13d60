package kubeopenapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"

	"gopkg.in/yaml.v3"

	"github.com/reoring/skemajs/def"
)

// DuplicateKeyError reports a duplicate key found in a YAML mapping with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// ImportYAML imports a single YAML (or JSON) document holding a schema or a
// CRD. Duplicate keys are rejected.
func ImportYAML(data []byte, opts Options) (*def.Graph, def.ID, Diag, error) {
	for doc, err := range documents(data) {
		if err != nil {
			return nil, def.NoID, &simpleDiag{}, fmt.Errorf("kubeopenapi: invalid YAML: %w", err)
		}
		m, ok := doc.(map[string]any)
		if !ok {
			return nil, def.NoID, &simpleDiag{}, errors.New("kubeopenapi: YAML document is not a mapping")
		}
		return Import(m, opts)
	}
	return nil, def.NoID, &simpleDiag{}, errors.New("kubeopenapi: empty YAML input")
}

// ImportYAMLForCRDKind scans a multi-document YAML (e.g., CRD bundle) and imports
// the first CustomResourceDefinition matching the given spec.names.kind.
// If no matching CRD is found, returns an error.
func ImportYAMLForCRDKind(data []byte, kind string, opts Options) (*def.Graph, def.ID, Diag, error) {
	return importMatchingCRD(data, opts, func(m map[string]any) bool {
		spec, _ := m["spec"].(map[string]any)
		names, _ := spec["names"].(map[string]any)
		k, _ := names["kind"].(string)
		return k == kind
	}, "kind "+kind)
}

// ImportYAMLForCRDName scans a multi-document YAML and imports the CRD
// with given metadata.name.
func ImportYAMLForCRDName(data []byte, name string, opts Options) (*def.Graph, def.ID, Diag, error) {
	return importMatchingCRD(data, opts, func(m map[string]any) bool {
		meta, _ := m["metadata"].(map[string]any)
		n, _ := meta["name"].(string)
		return n == name
	}, "name "+name)
}

func importMatchingCRD(data []byte, opts Options, match func(map[string]any) bool, what string) (*def.Graph, def.ID, Diag, error) {
	for doc, err := range documents(data) {
		if err != nil {
			return nil, def.NoID, &simpleDiag{}, err
		}
		m, _ := doc.(map[string]any)
		if k, _ := m["kind"].(string); k != "CustomResourceDefinition" {
			continue
		}
		if match(m) {
			return Import(m, opts)
		}
	}
	return nil, def.NoID, &simpleDiag{}, fmt.Errorf("kubeopenapi: CRD %s not found in YAML bundle", what)
}

// documents decodes a multi-document YAML stream into JSON-like values. The
// sequence stops after the first error.
func documents(data []byte) iter.Seq2[any, error] {
	return func(yield func(any, error) bool) {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		for {
			var root yaml.Node
			if err := dec.Decode(&root); err != nil {
				if !errors.Is(err, io.EOF) {
					yield(nil, err)
				}
				return
			}
			v, err := nodeValue(&root)
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}

// nodeValue converts a yaml.Node into map[string]any, []any and scalars,
// rejecting duplicate mapping keys.
func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		first := make(map[string]*yaml.Node, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if prev, dup := first[k.Value]; dup {
				return nil, &DuplicateKeyError{Key: k.Value, FirstLine: prev.Line, FirstCol: prev.Column, Line: k.Line, Col: k.Column}
			}
			first[k.Value] = k
			val, err := nodeValue(v)
			if err != nil {
				return nil, err
			}
			m[k.Value] = val
		}
		return m, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return n.Value, nil
		}
		return v, nil
	}
	return nil, nil
}
