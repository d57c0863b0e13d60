package kubeopenapi

import (
	"strings"

	"github.com/reoring/skemajs/dsl"
	js "github.com/reoring/skemajs/jsonschema"
)

// ref imports the target of a local $ref once and returns the same node for
// every later use. A ref met while its target is still being imported is a
// cycle and becomes a lazy node.
func (im *importer) ref(ref, path string) dsl.Type {
	if t, ok := im.refs[ref]; ok {
		return t
	}
	if im.building[ref] {
		return im.b.Lazy(func() dsl.Typer { return im.refs[ref] })
	}
	if !strings.HasPrefix(ref, "#") {
		im.d.warnf("$ref %q at %s not supported (local refs only)", ref, pathOrRoot(path))
		return im.b.Any()
	}
	target, err := js.Resolve(im.doc, ref)
	if err != nil {
		im.d.warnf("$ref %q at %s does not resolve: %v", ref, pathOrRoot(path), err)
		return im.b.Any()
	}
	m, ok := target.(map[string]any)
	if !ok {
		im.d.warnf("$ref %q at %s is not a schema", ref, pathOrRoot(path))
		return im.b.Any()
	}

	im.building[ref] = true
	t := im.schema(m, strings.TrimPrefix(ref, "#"))
	delete(im.building, ref)
	im.refs[ref] = t
	return t
}

func pathOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
