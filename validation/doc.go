// Package validation provides constraint validation for bound response
// models using struct tags.
//
// Schema binding checks structure; this package checks value constraints the
// way the original Pydantic models did, using the validator library:
//
//	type Item struct {
//	    ID   int    `json:"id" validate:"min=1"`
//	    Name string `json:"name" validate:"required,max=255"`
//	}
//	err := validation.Validate(item)
package validation
