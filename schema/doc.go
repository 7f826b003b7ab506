// Package schema provides declarative shape descriptions for JSON payloads
// and binds raw response bytes against them.
//
// A Shape is a tagged value describing the expected structure of a payload:
// scalars, objects with required and optional fields, and homogeneous lists.
// Binding validates structurally and reports the first mismatch with its
// field path; incompatible types are never silently coerced.
//
//	shape := schema.Object(map[string]schema.Shape{
//	    "id":   schema.Int(),
//	    "name": schema.String(),
//	    "tags": schema.Optional(schema.List(schema.String())),
//	})
//
//	item, err := schema.BindAs[Item](body, shape)
package schema
