package dsl

import "github.com/reoring/skemajs/def"

// StringType is a string node accepting refinement checks.
type StringType struct{ Type }

func (b *Builder) String() StringType {
	return StringType{b.add(def.Node{Kind: def.KindString})}
}

func (s StringType) with(c def.Check) StringType { return StringType{s.check(c)} }

func (s StringType) Min(n int) StringType { return s.with(def.Min(float64(n))) }
func (s StringType) Max(n int) StringType { return s.with(def.Max(float64(n))) }
func (s StringType) Length(n int) StringType {
	return s.with(def.Check{Kind: def.CheckLength, Value: float64(n)})
}
func (s StringType) Email() StringType    { return s.with(def.Check{Kind: def.CheckEmail}) }
func (s StringType) URL() StringType      { return s.with(def.Check{Kind: def.CheckURL}) }
func (s StringType) UUID() StringType     { return s.with(def.Check{Kind: def.CheckUUID}) }
func (s StringType) CUID() StringType     { return s.with(def.Check{Kind: def.CheckCUID}) }
func (s StringType) DateTime() StringType { return s.with(def.Check{Kind: def.CheckDateTime}) }

// Regex constrains the value to a regular expression in ECMA-262 syntax.
func (s StringType) Regex(pattern string) StringType {
	return s.with(def.Check{Kind: def.CheckRegex, Pattern: pattern})
}

func (s StringType) StartsWith(prefix string) StringType {
	return s.with(def.Check{Kind: def.CheckStartsWith, Pattern: prefix})
}

func (s StringType) EndsWith(suffix string) StringType {
	return s.with(def.Check{Kind: def.CheckEndsWith, Pattern: suffix})
}

// NumberType is a number node accepting refinement checks.
type NumberType struct{ Type }

func (b *Builder) Number() NumberType {
	return NumberType{b.add(def.Node{Kind: def.KindNumber})}
}

func (n NumberType) with(c def.Check) NumberType { return NumberType{n.check(c)} }

func (n NumberType) Int() NumberType          { return n.with(def.Check{Kind: def.CheckInt}) }
func (n NumberType) Min(v float64) NumberType { return n.with(def.Min(v)) }
func (n NumberType) Max(v float64) NumberType { return n.with(def.Max(v)) }
func (n NumberType) Gt(v float64) NumberType  { return n.with(def.Gt(v)) }
func (n NumberType) Lt(v float64) NumberType  { return n.with(def.Lt(v)) }
func (n NumberType) Positive() NumberType     { return n.Gt(0) }
func (n NumberType) Nonnegative() NumberType  { return n.Min(0) }
func (n NumberType) Negative() NumberType     { return n.Lt(0) }
func (n NumberType) MultipleOf(v float64) NumberType {
	return n.with(def.Check{Kind: def.CheckMultipleOf, Value: v})
}
