package jsonschema

import (
	"bytes"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

type member struct {
	key string
	val any
}

// members lists the emitted keywords in output order.
func (s *Schema) members() []member {
	var ms []member
	add := func(k string, v any) { ms = append(ms, member{k, v}) }

	if s.Schema != "" {
		add("$schema", s.Schema)
	}
	if s.Ref != "" {
		add("$ref", s.Ref)
	}
	switch len(s.Type) {
	case 0:
	case 1:
		add("type", s.Type[0])
	default:
		add("type", []string(s.Type))
	}
	if s.Format != "" {
		add("format", s.Format)
	}
	if s.Const != nil {
		add("const", s.Const.V)
	}
	if s.Enum != nil {
		add("enum", s.Enum)
	}
	if s.Nullable {
		add("nullable", true)
	}
	if s.Minimum != nil {
		add("minimum", *s.Minimum)
	}
	if s.ExclusiveMinimum != nil {
		add("exclusiveMinimum", s.ExclusiveMinimum)
	}
	if s.Maximum != nil {
		add("maximum", *s.Maximum)
	}
	if s.ExclusiveMaximum != nil {
		add("exclusiveMaximum", s.ExclusiveMaximum)
	}
	if s.MultipleOf != nil {
		add("multipleOf", *s.MultipleOf)
	}
	if s.MinLength != nil {
		add("minLength", *s.MinLength)
	}
	if s.MaxLength != nil {
		add("maxLength", *s.MaxLength)
	}
	if s.Pattern != "" {
		add("pattern", s.Pattern)
	}
	if s.Items != nil {
		add("items", s.Items)
	} else if s.TupleItems != nil {
		add("items", s.TupleItems)
	}
	if s.AdditionalItems != nil {
		add("additionalItems", s.AdditionalItems)
	}
	if s.MinItems != nil {
		add("minItems", *s.MinItems)
	}
	if s.MaxItems != nil {
		add("maxItems", *s.MaxItems)
	}
	if s.Properties != nil {
		add("properties", s.Properties)
	}
	if len(s.Required) > 0 {
		add("required", s.Required)
	}
	if s.AdditionalProperties != nil {
		add("additionalProperties", s.AdditionalProperties)
	}
	if s.PropertyNames != nil {
		add("propertyNames", s.PropertyNames)
	}
	if s.OneOf != nil {
		add("oneOf", s.OneOf)
	}
	if s.AllOf != nil {
		add("allOf", s.AllOf)
	}
	if s.Not != nil {
		add("not", s.Not)
	}
	if s.Default != nil {
		add("default", s.Default.V)
	}
	if s.Description != "" {
		add("description", s.Description)
	}
	if s.Definitions != nil {
		key := s.DefinitionsKey
		if key == "" {
			key = "definitions"
		}
		add(key, s.Definitions)
	}
	return ms
}

// MarshalJSON writes keywords in a fixed order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s.Raw != nil {
		return s.marshalRaw()
	}
	return marshalObject(s.members())
}

// marshalRaw emits Raw with the keywords set around it. Keywords join a raw
// object unless it already has them; any other raw value moves under allOf.
func (s *Schema) marshalRaw() ([]byte, error) {
	raw, err := json.Marshal(s.Raw)
	if err != nil {
		return nil, err
	}
	ms := s.members()
	if len(ms) == 0 {
		return raw, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return marshalObject(append([]member{{"allOf", []json.RawMessage{raw}}}, ms...))
	}
	extra := ms[:0]
	for _, m := range ms {
		if _, ok := obj[m.key]; !ok {
			extra = append(extra, m)
		}
	}
	if len(extra) == 0 {
		return raw, nil
	}
	tail, err := marshalObject(extra)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	var buf bytes.Buffer
	buf.Write(raw[:len(raw)-1])
	if len(obj) > 0 {
		buf.WriteByte(',')
	}
	buf.Write(tail[1:])
	return buf.Bytes(), nil
}

// MarshalJSON writes properties in insertion order.
func (p *Properties) MarshalJSON() ([]byte, error) {
	ms := make([]member, 0, p.Len())
	for k, v := range p.All() {
		ms = append(ms, member{k, v})
	}
	return marshalObject(ms)
}

func marshalObject(ms []member) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range ms {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.val)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML renders the fragment as a block-style mapping with the same key
// order as MarshalJSON.
func (s *Schema) MarshalYAML() (any, error) {
	b, err := s.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	plain(&doc)
	if doc.Kind == yaml.DocumentNode && len(doc.Content) == 1 {
		return doc.Content[0], nil
	}
	return &doc, nil
}

// plain drops the flow and quoting styles inherited from JSON. The encoder
// re-quotes strings that would otherwise read as another type.
func plain(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		plain(c)
	}
}

// YAML returns the document as YAML.
func (s *Schema) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}

// JSON returns the document as indented JSON.
func (s *Schema) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
