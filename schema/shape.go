package schema

// Kind tags the JSON type a Shape expects at a position in the payload.
type Kind int

const (
	// KindAny accepts any JSON value, including null.
	KindAny Kind = iota
	// KindString expects a JSON string.
	KindString
	// KindInt expects a JSON number with no fractional part.
	KindInt
	// KindNumber expects any JSON number.
	KindNumber
	// KindBool expects a JSON boolean.
	KindBool
	// KindObject expects a JSON object matching declared fields.
	KindObject
	// KindList expects a JSON array of homogeneous elements.
	KindList
)

// String returns the kind name as used in validation messages.
func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindObject:
		return "object"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Shape is a declarative description of the expected structure of a JSON
// value. Shapes are plain values; they can be declared once per domain model
// and shared freely.
type Shape struct {
	// Kind selects which JSON type is expected.
	Kind Kind
	// Fields declares the expected object fields (KindObject only).
	Fields map[string]Shape
	// Elem declares the element shape (KindList only).
	Elem *Shape
	// Optional marks a field that may be absent (or null) in the payload.
	Optional bool
}

// String declares a string shape.
func String() Shape { return Shape{Kind: KindString} }

// Int declares an integer shape. Numbers with a fractional part do not match.
func Int() Shape { return Shape{Kind: KindInt} }

// Number declares a numeric shape (integer or floating point).
func Number() Shape { return Shape{Kind: KindNumber} }

// Bool declares a boolean shape.
func Bool() Shape { return Shape{Kind: KindBool} }

// Any declares a shape that accepts any JSON value.
func Any() Shape { return Shape{Kind: KindAny} }

// Object declares an object shape with the given named fields.
func Object(fields map[string]Shape) Shape {
	return Shape{Kind: KindObject, Fields: fields}
}

// List declares a homogeneous list shape.
func List(elem Shape) Shape {
	return Shape{Kind: KindList, Elem: &elem}
}

// Optional marks a shape as optional: the field may be absent from the
// payload or null. A present non-null value must still match the shape.
func Optional(s Shape) Shape {
	s.Optional = true
	return s
}
