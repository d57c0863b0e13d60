package skemajs

import (
	"errors"

	"github.com/reoring/skemajs/def"
	"github.com/reoring/skemajs/dsl"
	"github.com/reoring/skemajs/i18n"
	"github.com/reoring/skemajs/internal/refs"
	"github.com/reoring/skemajs/internal/translate"
	js "github.com/reoring/skemajs/jsonschema"
)

// Convert renders the definition root of g as a schema document.
//
// The graph is only read, so concurrent conversions of one graph are safe.
// Non-fatal findings are reported through Diag; a non-nil error means no
// document was produced. Errors wrap one of ErrInvalidOption,
// ErrDepthExceeded or ErrInvalidDefinition and carry Issues.
func Convert(g *def.Graph, root def.ID, opts Options) (*js.Schema, Diag, error) {
	d := &diag{}
	o, err := opts.normalize()
	if err != nil {
		return nil, d, err
	}
	log := o.Logger.WithValues("target", string(o.Target), "refStrategy", string(o.RefStrategy))

	base := refs.Path(o.BasePath)
	if o.Name != "" {
		base = base.Child(o.DefinitionsKey, o.Name)
	}
	tr := translate.New(g, translate.Config{
		Target:   o.Target,
		Strategy: o.strategy(),
		MaxDepth: o.MaxDepth,
		Logger:   log,
	})
	body, err := tr.Translate(root, base)
	for _, di := range tr.Diagnostics() {
		d.add(diagnosticIssue(di))
	}
	if err != nil {
		return nil, d, translateError(err)
	}
	if body == nil {
		body = &js.Schema{}
	}

	doc := body
	if o.Name != "" {
		doc = &js.Schema{
			Ref:            base.String(),
			DefinitionsKey: o.DefinitionsKey,
			Definitions:    js.NewProperties(),
		}
		doc.Definitions.Set(o.Name, body)
	}
	if o.Target == TargetJSONSchema7 {
		doc.Schema = js.Draft7URI
	}
	log.V(1).Info("converted definition", "nodes", g.Len(), "warnings", len(d.issues))
	return doc, d, nil
}

// ConvertType is Convert for a builder handle.
func ConvertType(t dsl.Typer, opts Options) (*js.Schema, Diag, error) {
	h := t.T()
	return Convert(h.Graph(), h.ID(), opts)
}

func diagnosticIssue(di translate.Diagnostic) Issue {
	return Issue{
		Path:    di.Path,
		Code:    di.Code,
		Message: i18n.T(di.Code, map[string]string{"path": di.Path, "kind": di.Kind.String()}),
		Hint:    di.Kind.String(),
	}
}

func translateError(err error) error {
	var te *translate.Error
	if !errors.As(err, &te) {
		return err
	}
	return fail(te.Err, Issue{
		Path:    te.Path,
		Code:    te.Code,
		Message: i18n.T(te.Code, map[string]string{"path": te.Path}),
		Cause:   err,
	})
}
