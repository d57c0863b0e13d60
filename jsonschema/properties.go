package jsonschema

import "iter"

// Properties is a name to fragment map that keeps insertion order.
type Properties struct {
	keys []string
	vals map[string]*Schema
}

func NewProperties() *Properties {
	return &Properties{vals: map[string]*Schema{}}
}

// Set adds or replaces name. Replacing keeps the original position.
func (p *Properties) Set(name string, s *Schema) {
	if _, ok := p.vals[name]; !ok {
		p.keys = append(p.keys, name)
	}
	p.vals[name] = s
}

func (p *Properties) Get(name string) (*Schema, bool) {
	if p == nil {
		return nil, false
	}
	s, ok := p.vals[name]
	return s, ok
}

func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Keys returns the names in insertion order.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.keys...)
}

// All iterates in insertion order.
func (p *Properties) All() iter.Seq2[string, *Schema] {
	return func(yield func(string, *Schema) bool) {
		if p == nil {
			return
		}
		for _, k := range p.keys {
			if !yield(k, p.vals[k]) {
				return
			}
		}
	}
}
