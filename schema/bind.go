package schema

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
)

// Bind parses data as JSON and validates it structurally against shape.
// It returns the decoded value (with numbers as json.Number) or a
// *ValidationError describing the first mismatch.
func Bind(data []byte, shape Shape) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &ValidationError{Expected: shape.Kind.String(), Actual: "malformed JSON"}
	}

	if err := validate(v, shape, ""); err != nil {
		return nil, err
	}
	return v, nil
}

// BindAs validates data against shape and unmarshals it into T.
func BindAs[T any](data []byte, shape Shape) (T, error) {
	var out T
	if _, err := Bind(data, shape); err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, &ValidationError{Expected: shape.Kind.String(), Actual: err.Error()}
	}
	return out, nil
}

// validate walks a decoded JSON value against a shape, returning the first
// mismatch. Object fields are checked in name order so the reported mismatch
// is deterministic.
func validate(v any, s Shape, path string) error {
	if v == nil {
		if s.Optional || s.Kind == KindAny {
			return nil
		}
		return mismatch(path, s.Kind.String(), v)
	}

	switch s.Kind {
	case KindAny:
		return nil

	case KindString:
		if _, ok := v.(string); !ok {
			return mismatch(path, s.Kind.String(), v)
		}

	case KindInt:
		n, ok := v.(json.Number)
		if !ok {
			return mismatch(path, s.Kind.String(), v)
		}
		if _, err := n.Int64(); err != nil {
			return mismatch(path, s.Kind.String(), v)
		}

	case KindNumber:
		if _, ok := v.(json.Number); !ok {
			return mismatch(path, s.Kind.String(), v)
		}

	case KindBool:
		if _, ok := v.(bool); !ok {
			return mismatch(path, s.Kind.String(), v)
		}

	case KindObject:
		obj, ok := v.(map[string]any)
		if !ok {
			return mismatch(path, s.Kind.String(), v)
		}
		names := make([]string, 0, len(s.Fields))
		for name := range s.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			field := s.Fields[name]
			fv, present := obj[name]
			if !present {
				if field.Optional {
					continue
				}
				return &ValidationError{
					FieldPath: joinPath(path, name),
					Expected:  field.Kind.String(),
					Actual:    "absent",
				}
			}
			if err := validate(fv, field, joinPath(path, name)); err != nil {
				return err
			}
		}

	case KindList:
		list, ok := v.([]any)
		if !ok {
			return mismatch(path, s.Kind.String(), v)
		}
		if s.Elem == nil {
			return nil
		}
		for i, item := range list {
			if err := validate(item, *s.Elem, indexPath(path, i)); err != nil {
				return err
			}
		}
	}

	return nil
}

// typeName names a decoded JSON value for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "list"
	default:
		return "unknown"
	}
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}
