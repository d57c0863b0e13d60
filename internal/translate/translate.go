// Package translate walks a definition graph and renders it as a schema
// document fragment.
package translate

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/reoring/skemajs/def"
	"github.com/reoring/skemajs/internal/leaf"
	"github.com/reoring/skemajs/internal/refs"
	js "github.com/reoring/skemajs/jsonschema"
)

// Diagnostic codes.
const (
	CodeCycleTruncated    = "cycle_truncated"
	CodeUnrepresentable   = "unrepresentable"
	CodeDepthExceeded     = "depth_exceeded"
	CodeInvalidDefinition = "invalid_definition"
)

// DefaultMaxDepth bounds recursion when Config.MaxDepth is zero.
const DefaultMaxDepth = 512

var (
	ErrDepthExceeded     = errors.New("definition nesting exceeds the depth limit")
	ErrInvalidDefinition = errors.New("invalid definition")
)

// Error is a fatal translation failure at a document location.
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("%s at %s: %v", e.Code, e.Path, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// Diagnostic is a non-fatal finding.
type Diagnostic struct {
	Code string
	Path string
	Kind def.Kind
}

// Config holds translation settings. Zero values are usable.
type Config struct {
	Target   js.Target
	Strategy refs.Strategy
	MaxDepth int
	Logger   logr.Logger
}

// Translator renders one graph. A Translator holds per-call state; create one
// per translation.
type Translator struct {
	g       *def.Graph
	cfg     Config
	leaf    leaf.Encoder
	tracker *refs.Tracker
	lazy    map[def.ID]def.ID
	depth   int
	diags   []Diagnostic
	log     logr.Logger
}

func New(g *def.Graph, cfg Config) *Translator {
	if cfg.Target == "" {
		cfg.Target = js.TargetJSONSchema7
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	log := cfg.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Translator{
		g:       g,
		cfg:     cfg,
		leaf:    leaf.For(cfg.Target),
		tracker: refs.New(cfg.Strategy),
		lazy:    map[def.ID]def.ID{},
		log:     log,
	}
}

// Translate renders root at base. A nil fragment means the root has no
// representation.
func (t *Translator) Translate(root def.ID, base refs.Path) (*js.Schema, error) {
	return t.visit(root, base)
}

// Diagnostics returns the findings collected so far.
func (t *Translator) Diagnostics() []Diagnostic { return t.diags }

func (t *Translator) fail(code string, at refs.Path, err error) error {
	return &Error{Code: code, Path: at.String(), Err: err}
}

func (t *Translator) note(code string, at refs.Path, k def.Kind) {
	t.diags = append(t.diags, Diagnostic{Code: code, Path: at.String(), Kind: k})
}

func (t *Translator) openAPI() bool { return t.cfg.Target == js.TargetOpenAPI3 }

// visit renders the node id located at path at.
func (t *Translator) visit(id def.ID, at refs.Path) (*js.Schema, error) {
	n, ok := t.g.Node(id)
	if !ok {
		return nil, t.fail(CodeInvalidDefinition, at, fmt.Errorf("%w: unknown node %d", ErrInvalidDefinition, id))
	}
	if n.Kind >= def.KindCount {
		return nil, t.fail(CodeInvalidDefinition, at, fmt.Errorf("%w: node %d has unknown kind %d", ErrInvalidDefinition, id, n.Kind))
	}
	if t.depth >= t.cfg.MaxDepth {
		return nil, t.fail(CodeDepthExceeded, at, fmt.Errorf("%w (%d)", ErrDepthExceeded, t.cfg.MaxDepth))
	}

	v := t.tracker.Enter(id, at)
	switch v.State {
	case refs.SeenAt:
		if t.tracker.Strategy() != refs.Disabled {
			return &js.Schema{Ref: t.tracker.Ref(at, v.Path)}, nil
		}
		t.tracker.Reenter(id)
	case refs.CycleAt:
		if t.tracker.Strategy() != refs.Disabled {
			t.log.V(1).Info("recursive reference", "path", at.String(), "target", v.Path.String())
			return &js.Schema{Ref: t.tracker.Ref(at, v.Path)}, nil
		}
		t.note(CodeCycleTruncated, at, n.Kind)
		t.log.Info(fmt.Sprintf("Recursive reference detected at %s! Defaulting to any", at))
		return &js.Schema{}, nil
	}

	t.depth++
	s, err := handlers[n.Kind](t, id, &n, at)
	t.depth--
	t.tracker.Leave(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		t.tracker.Forget(id, at)
		return nil, nil
	}
	if n.Description != "" {
		s.Description = n.Description
	}
	return s, nil
}

// resolve returns the node a lazy definition stands for, calling its getter
// at most once per translation.
func (t *Translator) resolve(id def.ID, n *def.Node, at refs.Path) (def.ID, error) {
	if r, ok := t.lazy[id]; ok {
		return r, nil
	}
	if n.Getter == nil {
		return def.NoID, t.fail(CodeInvalidDefinition, at, fmt.Errorf("%w: lazy node %d has no getter", ErrInvalidDefinition, id))
	}
	r := n.Getter()
	if _, ok := t.g.Node(r); !ok {
		return def.NoID, t.fail(CodeInvalidDefinition, at, fmt.Errorf("%w: lazy node %d resolved to %d", ErrInvalidDefinition, id, r))
	}
	t.lazy[id] = r
	return r, nil
}
