package schema

import "fmt"

// ValidationError reports the first structural mismatch found while binding
// a payload against a declared shape.
type ValidationError struct {
	// FieldPath locates the mismatch, e.g. "items[2].id". Empty for the root.
	FieldPath string
	// Expected is the declared kind at that position.
	Expected string
	// Actual is what the payload contained.
	Actual string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	path := e.FieldPath
	if path == "" {
		path = "$"
	}
	return fmt.Sprintf("schema: %s: expected %s, got %s", path, e.Expected, e.Actual)
}

// mismatch builds a ValidationError for a value that did not match its shape.
func mismatch(path, expected string, v any) *ValidationError {
	return &ValidationError{FieldPath: path, Expected: expected, Actual: typeName(v)}
}
