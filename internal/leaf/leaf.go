// Package leaf renders definitions without children. Encoders are pure: the
// same node and target always give the same fragment.
package leaf

import (
	"math/big"
	"reflect"
	"regexp"

	"github.com/reoring/skemajs/def"
	js "github.com/reoring/skemajs/jsonschema"
)

// cuidPattern matches collision-resistant ids.
const cuidPattern = `^c[^\s-]{8,}$`

// Encoder renders leaves for one target.
type Encoder struct {
	target js.Target
}

func For(t js.Target) Encoder { return Encoder{target: t} }

func (e Encoder) openAPI() bool { return e.target == js.TargetOpenAPI3 }

// TypeName maps an unvalidated primitive kind to its type keyword.
func TypeName(k def.Kind) (string, bool) {
	switch k {
	case def.KindString:
		return "string", true
	case def.KindNumber:
		return "number", true
	case def.KindBigInt:
		return "integer", true
	case def.KindBoolean:
		return "boolean", true
	case def.KindNull:
		return "null", true
	}
	return "", false
}

// ValueType names the JSON type of a literal value.
func ValueType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case *big.Int:
		return "integer"
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	}
	return "object"
}

// Primitive renders an unvalidated primitive kind.
func (e Encoder) Primitive(k def.Kind) *js.Schema {
	if k == def.KindNull {
		return e.Null()
	}
	if k == def.KindBigInt {
		return e.BigInt()
	}
	name, _ := TypeName(k)
	return &js.Schema{Type: js.Types(name)}
}

func (e Encoder) Any() *js.Schema   { return &js.Schema{} }
func (e Encoder) Never() *js.Schema { return &js.Schema{Not: &js.Schema{}} }

func (e Encoder) Boolean() *js.Schema { return &js.Schema{Type: js.Types("boolean")} }

func (e Encoder) BigInt() *js.Schema {
	return &js.Schema{Type: js.Types("integer"), Format: "int64"}
}

func (e Encoder) Date() *js.Schema {
	return &js.Schema{Type: js.Types("string"), Format: "date-time"}
}

// Null renders the null type. OpenAPI 3.0 has no null type, so it is an
// enum holding only null.
func (e Encoder) Null() *js.Schema {
	if e.openAPI() {
		return &js.Schema{Nullable: true, Enum: []any{nil}}
	}
	return &js.Schema{Type: js.Types("null")}
}

// String renders a string node and its checks.
func (e Encoder) String(n *def.Node) *js.Schema {
	s := &js.Schema{Type: js.Types("string")}
	var patterns []string
	for _, c := range n.Checks {
		switch c.Kind {
		case def.CheckMin:
			s.MinLength = js.Int(int(c.Value))
		case def.CheckMax:
			s.MaxLength = js.Int(int(c.Value))
		case def.CheckLength:
			s.MinLength = js.Int(int(c.Value))
			s.MaxLength = js.Int(int(c.Value))
		case def.CheckEmail:
			s.Format = "email"
		case def.CheckURL:
			s.Format = "uri"
		case def.CheckUUID:
			s.Format = "uuid"
		case def.CheckDateTime:
			s.Format = "date-time"
		case def.CheckCUID:
			patterns = append(patterns, cuidPattern)
		case def.CheckRegex:
			patterns = append(patterns, c.Pattern)
		case def.CheckStartsWith:
			patterns = append(patterns, "^"+regexp.QuoteMeta(c.Pattern))
		case def.CheckEndsWith:
			patterns = append(patterns, regexp.QuoteMeta(c.Pattern)+"$")
		}
	}
	if len(patterns) > 0 {
		s.Pattern = patterns[0]
		for _, p := range patterns[1:] {
			s.AllOf = append(s.AllOf, &js.Schema{Pattern: p})
		}
	}
	return s
}

// Number renders a number node. An int check makes it an integer.
func (e Encoder) Number(n *def.Node) *js.Schema {
	s := &js.Schema{Type: js.Types("number")}
	for _, c := range n.Checks {
		switch c.Kind {
		case def.CheckInt:
			s.Type = js.Types("integer")
		case def.CheckMultipleOf:
			s.MultipleOf = js.Float(c.Value)
		case def.CheckMin:
			if c.Inclusive {
				s.Minimum, s.ExclusiveMinimum = js.Float(c.Value), nil
			} else if e.openAPI() {
				s.Minimum, s.ExclusiveMinimum = js.Float(c.Value), true
			} else {
				s.Minimum, s.ExclusiveMinimum = nil, c.Value
			}
		case def.CheckMax:
			if c.Inclusive {
				s.Maximum, s.ExclusiveMaximum = js.Float(c.Value), nil
			} else if e.openAPI() {
				s.Maximum, s.ExclusiveMaximum = js.Float(c.Value), true
			} else {
				s.Maximum, s.ExclusiveMaximum = nil, c.Value
			}
		}
	}
	return s
}

// Literal renders a single accepted value.
func (e Encoder) Literal(v any) *js.Schema {
	if v == nil {
		return e.Null()
	}
	s := &js.Schema{Type: js.Types(ValueType(v))}
	if e.openAPI() {
		s.Enum = []any{v}
	} else {
		s.Const = js.NewValue(v)
	}
	return s
}

// Enum renders a string enum.
func (e Encoder) Enum(values []any) *js.Schema {
	return &js.Schema{Type: js.Types("string"), Enum: append([]any{}, values...)}
}

// NativeEnum renders an enum of strings and numbers. A mixed enum gets a type
// list in draft-07 and no type in OpenAPI.
func (e Encoder) NativeEnum(values []any) *js.Schema {
	var types js.TypeList
	for _, v := range values {
		types = types.Add(ValueType(v))
	}
	s := &js.Schema{Enum: append([]any{}, values...)}
	if len(types) == 1 || !e.openAPI() {
		s.Type = types
	}
	return s
}
