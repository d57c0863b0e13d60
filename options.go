package skemajs

import (
	"fmt"
	"slices"

	"github.com/go-logr/logr"

	"github.com/reoring/skemajs/i18n"
	"github.com/reoring/skemajs/internal/refs"
	"github.com/reoring/skemajs/internal/translate"
	js "github.com/reoring/skemajs/jsonschema"
)

// Target selects the output dialect.
type Target = js.Target

const (
	TargetJSONSchema7 = js.TargetJSONSchema7
	TargetOpenAPI3    = js.TargetOpenAPI3
)

// RefStrategy selects how definitions met more than once are emitted.
type RefStrategy string

const (
	// RefRoot emits root-anchored pointers such as "#/properties/a".
	RefRoot RefStrategy = "root"
	// RefRelative emits relative JSON pointers such as "1/a".
	RefRelative RefStrategy = "relative"
	// RefNone repeats definitions inline and replaces cycles with {}.
	RefNone RefStrategy = "none"
)

// Definitions container keys.
const (
	DefinitionsKey = "definitions"
	DefsKey        = "$defs"
)

// Options controls Convert. The zero value produces a draft-07 document with
// root-anchored references.
type Options struct {
	Target      Target
	RefStrategy RefStrategy
	// BasePath prefixes every rendered reference. It must start with "#".
	// Defaults to ["#"].
	BasePath []string
	// Name, when set, places the root definition under
	// <DefinitionsKey>/<Name> and makes the document a $ref to it.
	Name           string
	DefinitionsKey string
	// MaxDepth bounds definition nesting. Defaults to 512.
	MaxDepth int
	// Logger receives diagnostics. Defaults to logr.Discard().
	Logger logr.Logger
}

func invalidOption(option, value string) error {
	return fail(ErrInvalidOption, Issue{
		Path:    option,
		Code:    CodeInvalidOption,
		Message: i18n.T(CodeInvalidOption, map[string]string{"option": option + "=" + value}),
		Hint:    option,
	})
}

// normalize fills defaults and rejects malformed values.
func (o Options) normalize() (Options, error) {
	switch o.Target {
	case "":
		o.Target = TargetJSONSchema7
	case TargetJSONSchema7, TargetOpenAPI3:
	default:
		return o, invalidOption("target", string(o.Target))
	}
	switch o.RefStrategy {
	case "":
		o.RefStrategy = RefRoot
	case RefRoot, RefRelative, RefNone:
	default:
		return o, invalidOption("refStrategy", string(o.RefStrategy))
	}
	switch o.DefinitionsKey {
	case "":
		o.DefinitionsKey = DefinitionsKey
	case DefinitionsKey, DefsKey:
	default:
		return o, invalidOption("definitionsKey", o.DefinitionsKey)
	}
	if o.BasePath == nil {
		o.BasePath = []string{"#"}
	}
	if len(o.BasePath) == 0 || o.BasePath[0] != "#" {
		return o, invalidOption("basePath", fmt.Sprint(o.BasePath))
	}
	o.BasePath = slices.Clone(o.BasePath)
	if o.MaxDepth < 0 {
		return o, invalidOption("maxDepth", fmt.Sprint(o.MaxDepth))
	}
	if o.MaxDepth == 0 {
		o.MaxDepth = translate.DefaultMaxDepth
	}
	if o.Logger.GetSink() == nil {
		o.Logger = logr.Discard()
	}
	return o, nil
}

func (o Options) strategy() refs.Strategy {
	switch o.RefStrategy {
	case RefRelative:
		return refs.Relative
	case RefNone:
		return refs.Disabled
	}
	return refs.RootAnchored
}
