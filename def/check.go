package def

// CheckKind identifies a refinement constraint.
type CheckKind int

const (
	// Length or value bounds. Strings and arrays read Value as a length;
	// numbers read it as a bound and honor Inclusive.
	CheckMin CheckKind = iota
	CheckMax
	CheckLength

	// String formats and patterns.
	CheckEmail
	CheckURL
	CheckUUID
	CheckCUID
	CheckDateTime
	CheckRegex
	CheckStartsWith
	CheckEndsWith

	// Number refinements.
	CheckInt
	CheckMultipleOf
)

// Check is one refinement attached to a node.
type Check struct {
	Kind      CheckKind
	Value     float64
	Inclusive bool
	// Pattern holds the regular expression, prefix or suffix.
	Pattern string
}

// Min returns an inclusive lower bound check.
func Min(v float64) Check { return Check{Kind: CheckMin, Value: v, Inclusive: true} }

// Max returns an inclusive upper bound check.
func Max(v float64) Check { return Check{Kind: CheckMax, Value: v, Inclusive: true} }

// Gt returns an exclusive lower bound check.
func Gt(v float64) Check { return Check{Kind: CheckMin, Value: v} }

// Lt returns an exclusive upper bound check.
func Lt(v float64) Check { return Check{Kind: CheckMax, Value: v} }
