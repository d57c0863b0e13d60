package translate

import (
	"reflect"

	"github.com/reoring/skemajs/def"
	"github.com/reoring/skemajs/internal/leaf"
	"github.com/reoring/skemajs/internal/refs"
	js "github.com/reoring/skemajs/jsonschema"
)

// handler renders one node kind. A nil fragment omits the node.
type handler func(t *Translator, id def.ID, n *def.Node, at refs.Path) (*js.Schema, error)

// Adding a kind to def shifts KindCount and breaks this index at compile
// time until the table below is updated.
func _() {
	var x [1]struct{}
	_ = x[def.KindCount-30]
}

var handlers [def.KindCount]handler

func init() {
	handlers = [def.KindCount]handler{
		def.KindString:       (*Translator).encString,
		def.KindNumber:       (*Translator).encNumber,
		def.KindBigInt:       (*Translator).encBigInt,
		def.KindBoolean:      (*Translator).encBoolean,
		def.KindDate:         (*Translator).encDate,
		def.KindNull:         (*Translator).encNull,
		def.KindUndefined:    (*Translator).encNever,
		def.KindAny:          (*Translator).encAny,
		def.KindUnknown:      (*Translator).encAny,
		def.KindNever:        (*Translator).encNever,
		def.KindVoid:         (*Translator).encOmit,
		def.KindLiteral:      (*Translator).encLiteral,
		def.KindEnum:         (*Translator).encEnum,
		def.KindNativeEnum:   (*Translator).encNativeEnum,
		def.KindArray:        (*Translator).encArray,
		def.KindTuple:        (*Translator).encTuple,
		def.KindObject:       (*Translator).encObject,
		def.KindRecord:       (*Translator).encRecord,
		def.KindMap:          (*Translator).encMap,
		def.KindSet:          (*Translator).encSet,
		def.KindUnion:        (*Translator).encUnion,
		def.KindIntersection: (*Translator).encIntersection,
		def.KindNullable:     (*Translator).encNullable,
		def.KindOptional:     (*Translator).encInner,
		def.KindDefault:      (*Translator).encDefault,
		def.KindLazy:         (*Translator).encLazy,
		def.KindEffect:       (*Translator).encEffect,
		def.KindPromise:      (*Translator).encInner,
		def.KindBranded:      (*Translator).encInner,
		def.KindFunction:     (*Translator).encOmit,
	}
	for k, h := range handlers {
		if h == nil {
			panic("translate: no handler for kind " + def.Kind(k).String())
		}
	}
}

func (t *Translator) encString(_ def.ID, n *def.Node, _ refs.Path) (*js.Schema, error) {
	return t.leaf.String(n), nil
}

func (t *Translator) encNumber(_ def.ID, n *def.Node, _ refs.Path) (*js.Schema, error) {
	return t.leaf.Number(n), nil
}

func (t *Translator) encBigInt(def.ID, *def.Node, refs.Path) (*js.Schema, error) {
	return t.leaf.BigInt(), nil
}

func (t *Translator) encBoolean(def.ID, *def.Node, refs.Path) (*js.Schema, error) {
	return t.leaf.Boolean(), nil
}

func (t *Translator) encDate(def.ID, *def.Node, refs.Path) (*js.Schema, error) {
	return t.leaf.Date(), nil
}

func (t *Translator) encNull(def.ID, *def.Node, refs.Path) (*js.Schema, error) {
	return t.leaf.Null(), nil
}

func (t *Translator) encAny(def.ID, *def.Node, refs.Path) (*js.Schema, error) {
	return t.leaf.Any(), nil
}

func (t *Translator) encNever(def.ID, *def.Node, refs.Path) (*js.Schema, error) {
	return t.leaf.Never(), nil
}

// encOmit drops kinds that have no data representation.
func (t *Translator) encOmit(_ def.ID, n *def.Node, at refs.Path) (*js.Schema, error) {
	t.note(CodeUnrepresentable, at, n.Kind)
	t.log.V(1).Info("omitting unrepresentable definition", "kind", n.Kind.String(), "path", at.String())
	return nil, nil
}

func (t *Translator) encLiteral(_ def.ID, n *def.Node, _ refs.Path) (*js.Schema, error) {
	return t.leaf.Literal(n.Value), nil
}

func (t *Translator) encEnum(_ def.ID, n *def.Node, _ refs.Path) (*js.Schema, error) {
	return t.leaf.Enum(n.Values), nil
}

func (t *Translator) encNativeEnum(_ def.ID, n *def.Node, _ refs.Path) (*js.Schema, error) {
	return t.leaf.NativeEnum(n.Values), nil
}

func sizes(s *js.Schema, checks []def.Check) {
	for _, c := range checks {
		switch c.Kind {
		case def.CheckMin:
			s.MinItems = js.Int(int(c.Value))
		case def.CheckMax:
			s.MaxItems = js.Int(int(c.Value))
		case def.CheckLength:
			s.MinItems = js.Int(int(c.Value))
			s.MaxItems = js.Int(int(c.Value))
		}
	}
}

// elements renders the element of an array or set. An any element is left
// out of the output.
func (t *Translator) elements(n *def.Node, at refs.Path) (*js.Schema, error) {
	s := &js.Schema{Type: js.Types("array")}
	if el, ok := t.g.Node(n.Elem); !ok || el.Kind != def.KindAny {
		items, err := t.visit(n.Elem, at.Child("items"))
		if err != nil {
			return nil, err
		}
		s.Items = items
	}
	sizes(s, n.Checks)
	return s, nil
}

func (t *Translator) encArray(_ def.ID, n *def.Node, at refs.Path) (*js.Schema, error) {
	return t.elements(n, at)
}

func (t *Translator) encSet(_ def.ID, n *def.Node, at refs.Path) (*js.Schema, error) {
	return t.elements(n, at)
}

func (t *Translator) encTuple(_ def.ID, n *def.Node, at refs.Path) (*js.Schema, error) {
	s := &js.Schema{
		Type:       js.Types("array"),
		MinItems:   js.Int(len(n.Items)),
		TupleItems: make([]*js.Schema, 0, len(n.Items)),
	}
	for i, item := range n.Items {
		x, err := t.visit(item, at.Index("items", i))
		if err != nil {
			return nil, err
		}
		if x == nil {
			x = &js.Schema{}
		}
		s.TupleItems = append(s.TupleItems, x)
	}
	if n.Rest == def.NoID {
		s.MaxItems = js.Int(len(n.Items))
		return s, nil
	}
	rest, err := t.visit(n.Rest, at.Child("additionalItems"))
	if err != nil {
		return nil, err
	}
	s.AdditionalItems = rest
	return s, nil
}

func (t *Translator) encObject(_ def.ID, n *def.Node, at refs.Path) (*js.Schema, error) {
	s := &js.Schema{Type: js.Types("object"), Properties: js.NewProperties()}
	for _, f := range n.Fields {
		child, err := t.visit(f.Type, at.Child("properties", f.Name))
		if err != nil {
			return nil, err
		}
		if child == nil {
			continue
		}
		_, dup := s.Properties.Get(f.Name)
		s.Properties.Set(f.Name, child)
		if !t.optional(f.Type) && !dup {
			s.Required = append(s.Required, f.Name)
		}
	}
	switch n.Unknown {
	case def.UnknownPassthrough:
		s.AdditionalProperties = true
	case def.UnknownCatchall:
		c, err := t.visit(n.Catchall, at.Child("additionalProperties"))
		if err != nil {
			return nil, err
		}
		if c == nil {
			s.AdditionalProperties = true
		} else {
			s.AdditionalProperties = c
		}
	default:
		s.AdditionalProperties = false
	}
	return s, nil
}

// optional reports whether a property of type id may be absent: an optional
// or default node, possibly beneath nullable, brand, promise, hintless
// effect and lazy nodes.
func (t *Translator) optional(id def.ID) bool {
	for range t.cfg.MaxDepth {
		n, ok := t.g.Node(id)
		if !ok {
			return false
		}
		switch n.Kind {
		case def.KindOptional, def.KindDefault:
			return true
		case def.KindNullable, def.KindBranded, def.KindPromise:
			id = n.Elem
		case def.KindEffect:
			if n.Hint != nil {
				return false
			}
			id = n.Elem
		case def.KindLazy:
			r, ok := t.lazy[id]
			if !ok {
				return false
			}
			id = r
		default:
			return false
		}
	}
	return false
}

func (t *Translator) encRecord(_ def.ID, n *def.Node, at refs.Path) (*js.Schema, error) {
	s := &js.Schema{Type: js.Types("object")}
	v, err := t.visit(n.Elem, at.Child("additionalProperties"))
	if err != nil {
		return nil, err
	}
	if v == nil {
		s.AdditionalProperties = true
	} else {
		s.AdditionalProperties = v
	}
	key, ok := t.g.Node(n.Key)
	if !ok {
		return s, nil
	}
	switch {
	case key.Kind == def.KindString && len(key.Checks) > 0:
		pn := t.leaf.String(&key)
		pn.Type = nil
		s.PropertyNames = pn
	case key.Kind == def.KindEnum:
		s.PropertyNames = &js.Schema{Enum: append([]any{}, key.Values...)}
	}
	return s, nil
}

func (t *Translator) encMap(_ def.ID, n *def.Node, at refs.Path) (*js.Schema, error) {
	pair := make([]*js.Schema, 2)
	for i, id := range []def.ID{n.Key, n.Elem} {
		x, err := t.visit(id, at.Child("items").Index("items", i))
		if err != nil {
			return nil, err
		}
		if x == nil {
			x = &js.Schema{}
		}
		pair[i] = x
	}
	return &js.Schema{
		Type:     js.Types("array"),
		MaxItems: js.Int(125),
		Items: &js.Schema{
			Type:       js.Types("array"),
			TupleItems: pair,
			MinItems:   js.Int(2),
			MaxItems:   js.Int(2),
		},
	}, nil
}

func (t *Translator) encIntersection(_ def.ID, n *def.Node, at refs.Path) (*js.Schema, error) {
	s := &js.Schema{AllOf: []*js.Schema{}}
	for _, id := range n.Options {
		x, err := t.visit(id, at.Index("allOf", len(s.AllOf)))
		if err != nil {
			return nil, err
		}
		if x != nil {
			s.AllOf = append(s.AllOf, x)
		}
	}
	if len(s.AllOf) == 0 {
		return nil, nil
	}
	return s, nil
}

func (t *Translator) encNullable(_ def.ID, n *def.Node, at refs.Path) (*js.Schema, error) {
	inner, ok := t.g.Node(n.Elem)
	if ok && inner.Unvalidated() {
		s := t.leaf.Primitive(inner.Kind)
		s.Description = inner.Description
		if inner.Kind == def.KindNull {
			return s, nil
		}
		if t.openAPI() {
			s.Nullable = true
		} else {
			s.Type = s.Type.Add("null")
		}
		return s, nil
	}

	// The inner fragment may become the target of later references, so it
	// must not carry nullable itself.
	if t.openAPI() {
		x, err := t.visit(n.Elem, at.Index("allOf", 0))
		if err != nil || x == nil {
			return nil, err
		}
		return &js.Schema{AllOf: []*js.Schema{x}, Nullable: true}, nil
	}

	x, err := t.visit(n.Elem, at.Index("oneOf", 0))
	if err != nil || x == nil {
		return nil, err
	}
	return &js.Schema{OneOf: []*js.Schema{x, {Type: js.Types("null")}}}, nil
}

func (t *Translator) encInner(_ def.ID, n *def.Node, at refs.Path) (*js.Schema, error) {
	return t.visit(n.Elem, at)
}

func (t *Translator) encDefault(_ def.ID, n *def.Node, at refs.Path) (*js.Schema, error) {
	x, err := t.visit(n.Elem, at)
	if err != nil || x == nil {
		return nil, err
	}
	if x.Ref != "" {
		x = &js.Schema{AllOf: []*js.Schema{x}}
	}
	x.Default = js.NewValue(n.Default)
	return x, nil
}

func (t *Translator) encLazy(id def.ID, n *def.Node, at refs.Path) (*js.Schema, error) {
	r, err := t.resolve(id, n, at)
	if err != nil {
		return nil, err
	}
	return t.visit(r, at)
}

func (t *Translator) encEffect(_ def.ID, n *def.Node, at refs.Path) (*js.Schema, error) {
	if n.Hint != nil {
		return &js.Schema{Raw: n.Hint}, nil
	}
	return t.visit(n.Elem, at)
}

// encUnion collapses unions of plain primitives, literals or string enums
// into a single fragment and falls back to oneOf.
func (t *Translator) encUnion(_ def.ID, n *def.Node, at refs.Path) (*js.Schema, error) {
	members := make([]def.Node, 0, len(n.Options))
	for _, id := range n.Options {
		m, ok := t.g.Node(id)
		if !ok {
			break
		}
		members = append(members, m)
	}
	if len(members) == len(n.Options) && len(members) > 0 {
		if s := t.collapse(members); s != nil {
			return s, nil
		}
	}

	s := &js.Schema{OneOf: []*js.Schema{}}
	for _, id := range n.Options {
		x, err := t.visit(id, at.Index("oneOf", len(s.OneOf)))
		if err != nil {
			return nil, err
		}
		if x != nil {
			s.OneOf = append(s.OneOf, x)
		}
	}
	if len(s.OneOf) == 0 {
		return nil, nil
	}
	return s, nil
}

func (t *Translator) collapse(members []def.Node) *js.Schema {
	all := func(ok func(*def.Node) bool) bool {
		for i := range members {
			if !ok(&members[i]) || members[i].Description != "" {
				return false
			}
		}
		return true
	}

	var s *js.Schema
	switch {
	case all((*def.Node).Unvalidated):
		var types js.TypeList
		for _, m := range members {
			name, _ := leaf.TypeName(m.Kind)
			types = types.Add(name)
		}
		s = &js.Schema{Type: types}
	case all(func(m *def.Node) bool { return m.Kind == def.KindLiteral }):
		var types js.TypeList
		var values []any
		for _, m := range members {
			types = types.Add(leaf.ValueType(m.Value))
			values = appendUnique(values, m.Value)
		}
		s = &js.Schema{Type: types, Enum: values}
	case all(func(m *def.Node) bool { return m.Kind == def.KindEnum }):
		var values []any
		for _, m := range members {
			for _, v := range m.Values {
				values = appendUnique(values, v)
			}
		}
		return &js.Schema{Type: js.Types("string"), Enum: values}
	default:
		return nil
	}

	// OpenAPI 3.0 has neither type lists nor a null type.
	if t.openAPI() && (len(s.Type) != 1 || s.Type[0] == "null") {
		return nil
	}
	if t.openAPI() && s.Enum == nil && s.Type[0] == "integer" {
		s.Format = "int64"
	}
	return s
}

func appendUnique(vs []any, v any) []any {
	for _, x := range vs {
		if reflect.DeepEqual(x, v) {
			return vs
		}
	}
	return append(vs, v)
}
