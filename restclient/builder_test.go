package restclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
)

func specConfig() *Config {
	cfg := &Config{BaseURL: "https://api.example.com"}
	cfg.ApplyDefaults()
	return cfg
}

func TestBuildSpec_ResolvesPathAgainstBase(t *testing.T) {
	spec, err := buildSpec(specConfig(), Request{Method: http.MethodGet, Path: "/items/7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.URL.String() != "https://api.example.com/items/7" {
		t.Errorf("unexpected URL: %s", spec.URL)
	}
}

func TestBuildSpec_RejectsOriginEscape(t *testing.T) {
	for _, path := range []string{
		"https://evil.example.net/steal",
		"//evil.example.net/steal",
		"http://api.example.com/downgrade",
	} {
		_, err := buildSpec(specConfig(), Request{Method: http.MethodGet, Path: path})
		if !IsEncoding(err) {
			t.Errorf("path %q: expected encoding error, got %v", path, err)
		}
	}
}

func TestBuildSpec_MergesHeadersCallSiteWins(t *testing.T) {
	cfg := specConfig()
	cfg.Headers = map[string]string{"X-Tenant": "default", "X-Trace": "on"}

	spec, err := buildSpec(cfg, Request{
		Method:  http.MethodGet,
		Path:    "/items",
		Headers: map[string]string{"X-Tenant": "acme"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Headers["X-Tenant"] != "acme" {
		t.Errorf("call-site header should win, got %s", spec.Headers["X-Tenant"])
	}
	if spec.Headers["X-Trace"] != "on" {
		t.Errorf("default header missing, got %s", spec.Headers["X-Trace"])
	}
	if cfg.Headers["X-Tenant"] != "default" {
		t.Error("client defaults must not be mutated")
	}
}

func TestBuildSpec_SerializesBodyOnce(t *testing.T) {
	spec, err := buildSpec(specConfig(), Request{
		Method: http.MethodPost,
		Path:   "/items",
		Body:   map[string]string{"name": "widget"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(spec.Body) != `{"name":"widget"}` {
		t.Errorf("unexpected body: %s", spec.Body)
	}
	if spec.ContentType != "application/json" {
		t.Errorf("unexpected content type: %s", spec.ContentType)
	}
}

func TestBuildSpec_RawBodiesPassThrough(t *testing.T) {
	spec, err := buildSpec(specConfig(), Request{
		Method: http.MethodPost,
		Path:   "/items",
		Body:   []byte(`{"raw": true}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(spec.Body) != `{"raw": true}` {
		t.Errorf("byte body should pass through verbatim, got %s", spec.Body)
	}

	spec, err = buildSpec(specConfig(), Request{
		Method: http.MethodPost,
		Path:   "/items",
		Body:   `{"str": true}`,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(spec.Body) != `{"str": true}` {
		t.Errorf("string body should pass through verbatim, got %s", spec.Body)
	}
}

func TestBuildSpec_RejectsUnserializableBody(t *testing.T) {
	_, err := buildSpec(specConfig(), Request{
		Method: http.MethodPost,
		Path:   "/items",
		Body:   make(chan int),
	})
	if !IsEncoding(err) {
		t.Errorf("expected encoding error for channel body, got %v", err)
	}
}

func TestBuildSpec_RejectsReaderBody(t *testing.T) {
	_, err := buildSpec(specConfig(), Request{
		Method: http.MethodPost,
		Path:   "/items",
		Body:   bytes.NewReader([]byte(`{}`)),
	})
	if !IsEncoding(err) {
		t.Errorf("expected encoding error for reader body, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "encode request body") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestHTTPRequest_FreshRequestPerAttempt(t *testing.T) {
	spec, err := buildSpec(specConfig(), Request{
		Method:  http.MethodPost,
		Path:    "/items",
		Headers: map[string]string{"X-Request": "a"},
		Body:    map[string]string{"name": "widget"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := spec.httpRequest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first.Header.Set("X-Request", "mutated")
	if _, err := io.ReadAll(first.Body); err != nil {
		t.Fatalf("read first body: %v", err)
	}

	second, err := spec.httpRequest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := second.Header.Get("X-Request"); got != "a" {
		t.Errorf("second attempt observed first attempt's mutation: %s", got)
	}
	body, err := io.ReadAll(second.Body)
	if err != nil {
		t.Fatalf("read second body: %v", err)
	}
	if string(body) != `{"name":"widget"}` {
		t.Errorf("second attempt body not replayed: %s", body)
	}
}

func TestHTTPRequest_SetsDefaultHeaders(t *testing.T) {
	spec, err := buildSpec(specConfig(), Request{
		Method: http.MethodPost,
		Path:   "/items",
		Body:   map[string]string{"a": "b"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	httpReq, err := spec.httpRequest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := httpReq.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("expected JSON content type, got %s", got)
	}
	if got := httpReq.Header.Get("Accept"); got != "application/json" {
		t.Errorf("expected JSON accept header, got %s", got)
	}
}

func TestHTTPRequest_CallerContentTypeWins(t *testing.T) {
	spec, err := buildSpec(specConfig(), Request{
		Method:  http.MethodPost,
		Path:    "/items",
		Headers: map[string]string{"Content-Type": "application/x-ndjson"},
		Body:    []byte("{}\n{}"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	httpReq, err := spec.httpRequest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := httpReq.Header.Get("Content-Type"); got != "application/x-ndjson" {
		t.Errorf("caller content type should win, got %s", got)
	}
}

func TestHTTPRequest_EncodesQuery(t *testing.T) {
	spec, err := buildSpec(specConfig(), Request{
		Method: http.MethodGet,
		Path:   "/items",
		Query:  map[string]string{"q": "a b", "page": "2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	httpReq, err := spec.httpRequest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := httpReq.URL.Query().Get("q"); got != "a b" {
		t.Errorf("expected query q=a b, got %q", got)
	}
	if got := httpReq.URL.Query().Get("page"); got != "2" {
		t.Errorf("expected query page=2, got %q", got)
	}
}
