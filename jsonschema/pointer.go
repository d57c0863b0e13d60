package jsonschema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-openapi/jsonpointer"
	"github.com/goccy/go-json"
)

var (
	// ErrUnsupportedRef is returned for references that are not root-anchored
	// JSON pointers, such as relative pointers or remote URIs.
	ErrUnsupportedRef = errors.New("jsonschema: unsupported reference")
	// ErrCyclicRef is returned by Inline when a reference reaches itself.
	ErrCyclicRef = errors.New("jsonschema: cyclic reference")
)

const maxRefHops = 64

// Generic decodes the marshaled fragment into maps, slices and scalars.
func (s *Schema) Generic() (any, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Resolve returns the value a root-anchored reference ("#", "#/a/b") points
// to inside doc.
func Resolve(doc any, ref string) (any, error) {
	if !strings.HasPrefix(ref, "#") {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedRef, ref)
	}
	p, err := jsonpointer.New(strings.TrimPrefix(ref, "#"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnsupportedRef, ref, err)
	}
	v, _, err := p.Get(doc)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", ref, err)
	}
	return v, nil
}

func refOf(v any) (string, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	ref, ok := m["$ref"].(string)
	return ref, ok
}

// follow resolves chains of reference objects.
func follow(doc any, ref string) (any, error) {
	for range maxRefHops {
		v, err := Resolve(doc, ref)
		if err != nil {
			return nil, err
		}
		next, ok := refOf(v)
		if !ok {
			return v, nil
		}
		ref = next
	}
	return nil, fmt.Errorf("%w: %q", ErrCyclicRef, ref)
}

// Deref replaces every reference object below the root of a generic document
// with the value it points to, in place. Targets are shared, not copied, so
// a recursive document becomes a cyclic value; do not marshal the result.
func Deref(doc any) (any, error) {
	var walk func(v any) error
	swap := func(c any) (any, bool, error) {
		ref, ok := refOf(c)
		if !ok {
			return nil, false, nil
		}
		t, err := follow(doc, ref)
		return t, true, err
	}
	walk = func(v any) error {
		switch t := v.(type) {
		case map[string]any:
			for k, c := range t {
				r, ok, err := swap(c)
				if err != nil {
					return err
				}
				if ok {
					t[k] = r
					continue
				}
				if err := walk(c); err != nil {
					return err
				}
			}
		case []any:
			for i, c := range t {
				r, ok, err := swap(c)
				if err != nil {
					return err
				}
				if ok {
					t[i] = r
					continue
				}
				if err := walk(c); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := walk(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Inline returns a copy of a generic document with every reference replaced
// by a copy of its target. Recursive documents cannot be inlined and yield
// ErrCyclicRef.
func Inline(doc any) (any, error) {
	return inline(doc, doc, nil)
}

func inline(doc, v any, stack []string) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		if ref, ok := refOf(t); ok {
			for _, s := range stack {
				if s == ref {
					return nil, fmt.Errorf("%w: %s", ErrCyclicRef, ref)
				}
			}
			target, err := Resolve(doc, ref)
			if err != nil {
				return nil, err
			}
			return inline(doc, target, append(stack[:len(stack):len(stack)], ref))
		}
		out := make(map[string]any, len(t))
		for k, c := range t {
			x, err := inline(doc, c, stack)
			if err != nil {
				return nil, err
			}
			out[k] = x
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, c := range t {
			x, err := inline(doc, c, stack)
			if err != nil {
				return nil, err
			}
			out[i] = x
		}
		return out, nil
	}
	return v, nil
}
