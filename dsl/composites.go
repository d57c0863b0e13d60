package dsl

import "github.com/reoring/skemajs/def"

// ArrayType is an array node accepting length checks.
type ArrayType struct{ Type }

func (b *Builder) Array(elem Typer) ArrayType {
	return ArrayType{b.add(def.Node{Kind: def.KindArray, Elem: elem.T().id})}
}

func (a ArrayType) Min(n int) ArrayType {
	return ArrayType{a.check(def.Min(float64(n)))}
}

func (a ArrayType) Max(n int) ArrayType {
	return ArrayType{a.check(def.Max(float64(n)))}
}

func (a ArrayType) Length(n int) ArrayType {
	return ArrayType{a.check(def.Check{Kind: def.CheckLength, Value: float64(n)})}
}

func (a ArrayType) Nonempty() ArrayType { return a.Min(1) }

// SetType is a set node accepting size checks.
type SetType struct{ Type }

func (b *Builder) Set(elem Typer) SetType {
	return SetType{b.add(def.Node{Kind: def.KindSet, Elem: elem.T().id})}
}

func (s SetType) Min(n int) SetType {
	return SetType{s.check(def.Min(float64(n)))}
}

func (s SetType) Max(n int) SetType {
	return SetType{s.check(def.Max(float64(n)))}
}

// TupleType is a fixed-position array node.
type TupleType struct{ Type }

func (b *Builder) Tuple(items ...Typer) TupleType {
	return TupleType{b.add(def.Node{Kind: def.KindTuple, Items: ids(items)})}
}

// Rest allows any number of trailing elements matching t.
func (tt TupleType) Rest(t Typer) TupleType {
	n := tt.Node()
	n.Rest = t.T().id
	return TupleType{tt.b.add(n)}
}

// Record is an object with string keys and values of one type.
func (b *Builder) Record(value Typer) Type {
	return b.RecordOf(b.String(), value)
}

// RecordOf is Record with a constrained key type.
func (b *Builder) RecordOf(key, value Typer) Type {
	return b.add(def.Node{Kind: def.KindRecord, Key: key.T().id, Elem: value.T().id})
}

func (b *Builder) Map(key, value Typer) Type {
	return b.add(def.Node{Kind: def.KindMap, Key: key.T().id, Elem: value.T().id})
}

// ObjectType is an object node with ordered fields.
type ObjectType struct{ Type }

// Object returns an empty object that strips unknown keys.
func (b *Builder) Object() ObjectType {
	return ObjectType{b.add(def.Node{Kind: def.KindObject})}
}

// Field declares a property. Redeclaring a name replaces its type and keeps
// its position.
func (o ObjectType) Field(name string, t Typer) ObjectType {
	id := t.T().id
	o.update(func(n *def.Node) {
		for i := range n.Fields {
			if n.Fields[i].Name == name {
				n.Fields[i].Type = id
				return
			}
		}
		n.Fields = append(n.Fields, def.Field{Name: name, Type: id})
	})
	return o
}

func (o ObjectType) policy(p def.UnknownPolicy, catchall def.ID) ObjectType {
	o.update(func(n *def.Node) {
		n.Unknown = p
		n.Catchall = catchall
	})
	return o
}

func (o ObjectType) Strip() ObjectType       { return o.policy(def.UnknownStrip, def.NoID) }
func (o ObjectType) Strict() ObjectType      { return o.policy(def.UnknownStrict, def.NoID) }
func (o ObjectType) Passthrough() ObjectType { return o.policy(def.UnknownPassthrough, def.NoID) }

// Catchall validates undeclared keys against t.
func (o ObjectType) Catchall(t Typer) ObjectType {
	return o.policy(def.UnknownCatchall, t.T().id)
}
