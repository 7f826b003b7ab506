package schema

import (
	"errors"
	"testing"
)

var itemShape = Object(map[string]Shape{
	"id":   Int(),
	"name": String(),
})

func TestBindAs_Object(t *testing.T) {
	type item struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	got, err := BindAs[item]([]byte(`{"id": 7, "name": "widget"}`), itemShape)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 7 {
		t.Errorf("expected id 7, got %d", got.ID)
	}
	if got.Name != "widget" {
		t.Errorf("expected name widget, got %s", got.Name)
	}
}

func TestBind_TypeMismatchReportsFieldPath(t *testing.T) {
	_, err := Bind([]byte(`{"id": "seven", "name": "widget"}`), itemShape)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.FieldPath != "id" {
		t.Errorf("expected field path id, got %q", verr.FieldPath)
	}
	if verr.Expected != "integer" {
		t.Errorf("expected expected=integer, got %q", verr.Expected)
	}
	if verr.Actual != "string" {
		t.Errorf("expected actual=string, got %q", verr.Actual)
	}
}

func TestBind_MissingRequiredField(t *testing.T) {
	_, err := Bind([]byte(`{"id": 7}`), itemShape)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.FieldPath != "name" {
		t.Errorf("expected field path name, got %q", verr.FieldPath)
	}
	if verr.Actual != "absent" {
		t.Errorf("expected actual=absent, got %q", verr.Actual)
	}
}

func TestBind_OptionalFieldAbsent(t *testing.T) {
	shape := Object(map[string]Shape{
		"id":   Int(),
		"tags": Optional(List(String())),
	})

	if _, err := Bind([]byte(`{"id": 1}`), shape); err != nil {
		t.Errorf("absent optional field should bind, got %v", err)
	}
	if _, err := Bind([]byte(`{"id": 1, "tags": null}`), shape); err != nil {
		t.Errorf("null optional field should bind, got %v", err)
	}
}

func TestBind_OptionalFieldPresentMustMatch(t *testing.T) {
	shape := Object(map[string]Shape{
		"tags": Optional(List(String())),
	})

	_, err := Bind([]byte(`{"tags": "not-a-list"}`), shape)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.FieldPath != "tags" {
		t.Errorf("expected field path tags, got %q", verr.FieldPath)
	}
}

func TestBind_NestedListFieldPath(t *testing.T) {
	shape := Object(map[string]Shape{
		"items": List(itemShape),
	})
	payload := []byte(`{"items": [{"id": 1, "name": "a"}, {"id": 2, "name": "b"}, {"id": "x", "name": "c"}]}`)

	_, err := Bind(payload, shape)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.FieldPath != "items[2].id" {
		t.Errorf("expected field path items[2].id, got %q", verr.FieldPath)
	}
}

func TestBind_ListRoot(t *testing.T) {
	type item struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	items, err := BindAs[[]item]([]byte(`[{"id": 1, "name": "a"}, {"id": 2, "name": "b"}]`), List(itemShape))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[1].Name != "b" {
		t.Errorf("expected name b, got %s", items[1].Name)
	}
}

func TestBind_FractionalNumberIsNotInt(t *testing.T) {
	_, err := Bind([]byte(`{"id": 7.5, "name": "widget"}`), itemShape)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.FieldPath != "id" {
		t.Errorf("expected field path id, got %q", verr.FieldPath)
	}
}

func TestBind_NumberAcceptsIntAndFloat(t *testing.T) {
	shape := Object(map[string]Shape{"price": Number()})

	if _, err := Bind([]byte(`{"price": 3}`), shape); err != nil {
		t.Errorf("integer should satisfy number, got %v", err)
	}
	if _, err := Bind([]byte(`{"price": 3.14}`), shape); err != nil {
		t.Errorf("float should satisfy number, got %v", err)
	}
}

func TestBind_NoCoercionNumberWhereStringDeclared(t *testing.T) {
	shape := Object(map[string]Shape{"name": String()})

	_, err := Bind([]byte(`{"name": 42}`), shape)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Actual != "number" {
		t.Errorf("expected actual=number, got %q", verr.Actual)
	}
}

func TestBind_ScalarRoot(t *testing.T) {
	if _, err := Bind([]byte(`"ok"`), String()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := Bind([]byte(`true`), Bool()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	_, err := Bind([]byte(`"ok"`), Int())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.FieldPath != "" {
		t.Errorf("expected empty root path, got %q", verr.FieldPath)
	}
}

func TestBind_AnyAcceptsEverything(t *testing.T) {
	for _, payload := range []string{`null`, `"x"`, `1.5`, `{"a": 1}`, `[1, 2]`} {
		if _, err := Bind([]byte(payload), Any()); err != nil {
			t.Errorf("Any should accept %s, got %v", payload, err)
		}
	}
}

func TestBind_MalformedJSON(t *testing.T) {
	_, err := Bind([]byte(`{"id":`), itemShape)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Actual != "malformed JSON" {
		t.Errorf("expected actual=malformed JSON, got %q", verr.Actual)
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{FieldPath: "items[0].id", Expected: "integer", Actual: "string"}
	want := "schema: items[0].id: expected integer, got string"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}

	root := &ValidationError{Expected: "object", Actual: "list"}
	if root.Error() != "schema: $: expected object, got list" {
		t.Errorf("unexpected root message: %q", root.Error())
	}
}
