package kubeopenapi

import (
	"slices"
	"sort"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/reoring/skemajs/dsl"
	"github.com/reoring/skemajs/i18n"
)

// keywords understood by the importer; anything else draws a warning.
var knownKeywords = map[string]bool{
	"$ref": true, "$defs": true, "definitions": true, "$schema": true, "$id": true,
	"type": true, "format": true, "description": true, "title": true, "example": true,
	"enum": true, "default": true, "nullable": true, "readOnly": true, "writeOnly": true,
	"minLength": true, "maxLength": true, "pattern": true,
	"minimum": true, "maximum": true, "exclusiveMinimum": true, "exclusiveMaximum": true, "multipleOf": true,
	"items": true, "additionalItems": true, "minItems": true, "maxItems": true, "uniqueItems": true,
	"properties": true, "required": true, "additionalProperties": true,
	"allOf": true, "oneOf": true, "anyOf": true,
	"x-kubernetes-preserve-unknown-fields": true, "x-kubernetes-int-or-string": true,
	"x-kubernetes-embedded-resource": true, "x-kubernetes-list-type": true,
	"x-kubernetes-list-map-keys": true, "x-kubernetes-map-type": true,
	"x-kubernetes-validations": true,
}

// schema imports one schema object located at path (a JSON pointer).
func (im *importer) schema(m map[string]any, path string) dsl.Type {
	if m == nil {
		return im.b.Any()
	}
	if ref, ok := m["$ref"].(string); ok {
		return im.ref(ref, path)
	}
	im.warnUnknownKeywords(m, path)

	t := im.composite(m, path)
	if nullableTrue(m) {
		t = t.Nullable()
	}
	if v, ok := m["default"]; ok && im.opts.DefaultMode == DefaultAnnotate {
		t = t.Default(v)
	}
	if desc, _ := m["description"].(string); desc != "" {
		t = t.Describe(desc)
	}
	return t
}

func (im *importer) warnUnknownKeywords(m map[string]any, path string) {
	var unknown []string
	for k := range m {
		if !knownKeywords[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		im.d.warnf("%s at %s ignored", i18n.T("unsupported_keyword", map[string]string{"keyword": k}), pathOrRoot(path))
	}
}

// composite handles allOf/oneOf/anyOf. Sibling type keywords join an allOf
// as its first member.
func (im *importer) composite(m map[string]any, path string) dsl.Type {
	parts := func(key string) []dsl.Typer {
		list, _ := m[key].([]any)
		out := make([]dsl.Typer, 0, len(list))
		for i, raw := range list {
			sm, _ := raw.(map[string]any)
			out = append(out, im.schema(sm, path+"/"+key+"/"+strconv.Itoa(i)))
		}
		return out
	}
	var alts []dsl.Typer
	alts = append(alts, parts("oneOf")...)
	alts = append(alts, parts("anyOf")...)
	all := parts("allOf")
	if len(alts) == 0 && len(all) == 0 {
		return im.typed(m, path)
	}
	if hasTypeKeywords(m) {
		all = append([]dsl.Typer{im.typed(m, path)}, all...)
	}
	if len(alts) > 0 {
		all = append(all, im.b.Union(alts...))
	}
	if len(all) == 1 {
		return all[0].T()
	}
	return im.b.Intersection(all...)
}

func hasTypeKeywords(m map[string]any) bool {
	for _, k := range []string{"type", "properties", "items", "enum", "additionalProperties"} {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

// typed imports the type-specific keywords of m.
func (im *importer) typed(m map[string]any, path string) dsl.Type {
	if isIntOrString(m) {
		return im.b.Union(im.b.Number().Int(), im.b.String())
	}
	if list, ok := m["type"].([]any); ok {
		return im.typeList(m, list, path)
	}
	typ, _ := m["type"].(string)
	if typ == "" {
		typ = inferType(m)
	}
	return im.ofType(m, typ, path)
}

// typeList handles JSON Schema style type arrays.
func (im *importer) typeList(m map[string]any, list []any, path string) dsl.Type {
	var types []string
	nullable := false
	for _, v := range list {
		s, _ := v.(string)
		if s == "null" {
			nullable = true
			continue
		}
		types = append(types, s)
	}
	var t dsl.Type
	switch len(types) {
	case 0:
		return im.b.Null()
	case 1:
		t = im.ofType(m, types[0], path)
	default:
		opts := make([]dsl.Typer, len(types))
		for i, ty := range types {
			opts[i] = im.ofType(m, ty, path)
		}
		t = im.b.Union(opts...)
	}
	if nullable {
		t = t.Nullable()
	}
	return t
}

func inferType(m map[string]any) string {
	switch {
	case m["properties"] != nil || m["additionalProperties"] != nil:
		return "object"
	case m["items"] != nil:
		return "array"
	}
	return ""
}

func (im *importer) ofType(m map[string]any, typ, path string) dsl.Type {
	if enum, ok := m["enum"].([]any); ok && len(enum) > 0 {
		return im.enum(enum)
	}
	switch typ {
	case "string":
		return im.str(m)
	case "integer":
		return im.number(m).Int().Type
	case "number":
		return im.number(m).Type
	case "boolean":
		return im.b.Boolean()
	case "null":
		return im.b.Null()
	case "array":
		return im.array(m, path)
	case "object":
		return im.object(m, path)
	case "":
		return im.b.Any()
	}
	im.d.warnf("unknown type %q at %s treated as any", typ, pathOrRoot(path))
	return im.b.Any()
}

func (im *importer) enum(values []any) dsl.Type {
	if len(values) == 1 {
		return im.b.Literal(values[0])
	}
	strs := make([]string, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			return im.b.NativeEnum(values...)
		}
		strs = append(strs, s)
	}
	return im.b.Enum(strs...)
}

func (im *importer) str(m map[string]any) dsl.Type {
	s := im.b.String()
	if v, ok := toInt(m["minLength"]); ok {
		s = s.Min(v)
	}
	if v, ok := toInt(m["maxLength"]); ok {
		s = s.Max(v)
	}
	if p, _ := m["pattern"].(string); p != "" {
		s = s.Regex(p)
	}
	switch f, _ := m["format"].(string); f {
	case "email":
		s = s.Email()
	case "uri", "url":
		s = s.URL()
	case "uuid":
		s = s.UUID()
	case "date-time":
		s = s.DateTime()
	}
	return s.Type
}

func (im *importer) number(m map[string]any) dsl.NumberType {
	n := im.b.Number()
	if v, ok := toFloat(m["minimum"]); ok {
		if excl, _ := m["exclusiveMinimum"].(bool); excl {
			n = n.Gt(v)
		} else {
			n = n.Min(v)
		}
	}
	if v, ok := toFloat(m["exclusiveMinimum"]); ok {
		n = n.Gt(v)
	}
	if v, ok := toFloat(m["maximum"]); ok {
		if excl, _ := m["exclusiveMaximum"].(bool); excl {
			n = n.Lt(v)
		} else {
			n = n.Max(v)
		}
	}
	if v, ok := toFloat(m["exclusiveMaximum"]); ok {
		n = n.Lt(v)
	}
	if v, ok := toFloat(m["multipleOf"]); ok {
		n = n.MultipleOf(v)
	}
	return n
}

func (im *importer) array(m map[string]any, path string) dsl.Type {
	if list, ok := m["items"].([]any); ok {
		items := make([]dsl.Typer, len(list))
		for i, raw := range list {
			sm, _ := raw.(map[string]any)
			items[i] = im.schema(sm, path+"/items/"+strconv.Itoa(i))
		}
		tt := im.b.Tuple(items...)
		if rest, ok := m["additionalItems"].(map[string]any); ok {
			tt = tt.Rest(im.schema(rest, path+"/additionalItems"))
		}
		return tt.Type
	}

	var elem dsl.Type
	if sm, ok := m["items"].(map[string]any); ok {
		elem = im.schema(sm, path+"/items")
	} else {
		elem = im.b.Any()
	}
	if u, _ := m["uniqueItems"].(bool); u {
		s := im.b.Set(elem)
		if v, ok := toInt(m["minItems"]); ok {
			s = s.Min(v)
		}
		if v, ok := toInt(m["maxItems"]); ok {
			s = s.Max(v)
		}
		return s.Type
	}
	a := im.b.Array(elem)
	if v, ok := toInt(m["minItems"]); ok {
		a = a.Min(v)
	}
	if v, ok := toInt(m["maxItems"]); ok {
		a = a.Max(v)
	}
	return a.Type
}

func (im *importer) object(m map[string]any, path string) dsl.Type {
	props, _ := m["properties"].(map[string]any)
	preserve, _ := m["x-kubernetes-preserve-unknown-fields"].(bool)
	if ap, ok := m["additionalProperties"].(map[string]any); ok && len(props) == 0 && !preserve {
		return im.b.Record(im.schema(ap, path+"/additionalProperties"))
	}

	o := im.b.Object()
	required := stringList(m["required"])
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ps, _ := props[name].(map[string]any)
		child := im.schema(ps, path+"/properties/"+name)
		if !slices.Contains(required, name) && !child.Node().Optional() {
			child = child.Optional()
		}
		o = o.Field(name, child)
	}
	for _, name := range required {
		if _, ok := props[name]; !ok {
			im.d.warnf("required property %q at %s is not declared", name, pathOrRoot(path))
		}
	}

	switch ap := m["additionalProperties"].(type) {
	case bool:
		if ap {
			return o.Passthrough().Type
		}
		return o.Strict().Type
	case map[string]any:
		return o.Catchall(im.schema(ap, path+"/additionalProperties")).Type
	}
	if preserve {
		return o.Passthrough().Type
	}
	switch im.opts.Unknown {
	case UnknownStrict:
		return o.Strict().Type
	case UnknownPreserve:
		return o.Passthrough().Type
	}
	return o.Strip().Type
}

func stringList(v any) []string {
	list, _ := v.([]any)
	out := make([]string, 0, len(list))
	for _, x := range list {
		if s, ok := x.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func nullableTrue(m map[string]any) bool {
	v, _ := m["nullable"].(bool)
	return v
}

func isIntOrString(m map[string]any) bool {
	v, _ := m["x-kubernetes-int-or-string"].(bool)
	return v
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	}
	return 0, false
}

func toInt(v any) (int, bool) {
	f, ok := toFloat(v)
	return int(f), ok
}
