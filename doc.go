package skemajs

// Package skemajs converts zod-style definition graphs into JSON Schema
// draft-07 or OpenAPI 3.0 schema documents.
//
// - Definitions are built with the dsl package or imported from OpenAPI v3
//   schemas and Kubernetes CRDs by the kubeopenapi package.
// - Repeated and recursive definitions become $ref pointers into the
//   document (root-anchored or relative), or are inlined with cycles cut.
// - Failures and non-fatal findings are reported as Issues (path, code,
//   message), with messages localized through the i18n package.
//
// Design policy:
// - Keep only public APIs in the root package; put the walker, leaf renderers
//   and reference tracking under internal/.
// - Output documents are jsonschema.Schema values with a stable key order.
// - Place the CLI under cmd/skemajs.
//
// Typical usage:
//
//  b := dsl.New()
//  category := b.Object().Field("name", b.String())
//  doc, diag, err := skemajs.ConvertType(category, skemajs.Options{Target: skemajs.TargetOpenAPI3})
//  if err != nil {
//      if iss, ok := skemajs.AsIssues(err); ok { ... }
//  }
//  out, _ := doc.JSON()
