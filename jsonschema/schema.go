package jsonschema

// Target names the dialect a document is written in.
type Target string

const (
	TargetJSONSchema7 Target = "jsonSchema7"
	TargetOpenAPI3    Target = "openApi3"
)

// Draft7URI is the $schema header of draft-07 documents.
const Draft7URI = "http://json-schema.org/draft-07/schema#"

// Schema is one fragment of an output document. Zero-valued fields are not
// emitted, so &Schema{} renders as the unconstrained schema {}.
type Schema struct {
	Schema      string // $schema
	Ref         string // $ref
	Type        TypeList
	Format      string
	Description string
	Const       *Value
	Enum        []any
	Default     *Value
	Nullable    bool

	// Number
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum any // float64 (draft-07) or bool (OpenAPI 3.0)
	ExclusiveMaximum any
	MultipleOf       *float64

	// String
	MinLength *int
	MaxLength *int
	Pattern   string

	// Array
	Items           *Schema
	TupleItems      []*Schema
	AdditionalItems *Schema
	MinItems        *int
	MaxItems        *int

	// Object
	Properties           *Properties
	Required             []string
	AdditionalProperties any // bool or *Schema
	PropertyNames        *Schema

	// Composition
	OneOf []*Schema
	AllOf []*Schema
	Not   *Schema

	// Definitions container; DefinitionsKey is "definitions" or "$defs".
	DefinitionsKey string
	Definitions    *Properties

	// Raw, when set, replaces the whole fragment with a verbatim value.
	Raw any
}

// Value wraps a JSON value so that null can be told apart from absence.
type Value struct{ V any }

// NewValue returns a Value holding v.
func NewValue(v any) *Value { return &Value{V: v} }

// TypeList is the "type" keyword. One name renders as a string.
type TypeList []string

// Add appends name unless already present.
func (l TypeList) Add(name string) TypeList {
	for _, t := range l {
		if t == name {
			return l
		}
	}
	return append(l, name)
}

// Types builds a TypeList from names, dropping duplicates.
func Types(names ...string) TypeList {
	var l TypeList
	for _, n := range names {
		l = l.Add(n)
	}
	return l
}

// IsEmpty reports whether s is the unconstrained schema {}.
func (s *Schema) IsEmpty() bool {
	return s != nil && s.Raw == nil && len(s.members()) == 0
}

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }
