package kubeopenapi

import "fmt"

// UnknownBehavior configures objects that do not say how to treat unknown
// fields (no additionalProperties and no x-kubernetes-preserve-unknown-fields).
type UnknownBehavior int

const (
	UnknownPrune    UnknownBehavior = iota // strip unknown keys, the Kubernetes default
	UnknownStrict                          // reject unknown keys
	UnknownPreserve                        // keep unknown keys
)

// DefaultMode controls how defaults from the schema are carried over.
type DefaultMode int

const (
	DefaultIgnore   DefaultMode = iota
	DefaultAnnotate             // wrap the node with its default; the property becomes optional
)

// Options controls import behavior for OpenAPI v3 and Kubernetes CRD schemas.
type Options struct {
	Unknown     UnknownBehavior
	DefaultMode DefaultMode
}

// Diag carries non-fatal warnings produced during import.
type Diag interface {
	HasWarnings() bool
	Warnings() []string
}

type simpleDiag struct{ ws []string }

func (d *simpleDiag) HasWarnings() bool        { return len(d.ws) > 0 }
func (d *simpleDiag) Warnings() []string       { return append([]string(nil), d.ws...) }
func (d *simpleDiag) warnf(f string, a ...any) { d.ws = append(d.ws, fmt.Sprintf(f, a...)) }
