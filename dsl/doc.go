// Package dsl builds definition graphs with a zod-like fluent API.
//
// Overview
//   - Builder: every constructor allocates one node in the builder's graph and
//     returns a handle (Type, StringType, NumberType, ObjectType, ...).
//   - Handles are values. Wrappers (Optional, Nullable, Default, Refine, ...)
//     allocate a new node around the receiver; check methods (Min, Email, Int,
//     ...) and Describe annotate the receiver's node.
//   - Sharing: passing one handle to several parents shares the node, so the
//     converter renders it once and references it afterwards.
//   - Recursion: Lazy defers a node to a getter, which may return an ancestor.
//
// Example
//
//	b := dsl.New()
//	user := b.Object().
//	    Field("id", b.String().UUID()).
//	    Field("email", b.String().Email()).
//	    Field("age", b.Number().Int().Nonnegative().Optional()).
//	    Strict()
//
//	doc, _, err := skemajs.ConvertType(user, skemajs.Options{})
package dsl
