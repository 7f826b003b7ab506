package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kbukum/restkit/schema"
)

const contentTypeJSON = "application/json"

// RequestSpec is the fully resolved, immutable form of one request. It is
// built exactly once per call and shared read-only by all attempts; every
// attempt materializes a fresh *http.Request with a fresh header map, so
// retries of idempotent requests are deterministic.
type RequestSpec struct {
	Method      string
	URL         *url.URL
	Query       map[string]string
	Headers     map[string]string
	Body        []byte
	ContentType string
	Shape       *schema.Shape
	Auth        *AuthConfig
	Timeout     time.Duration
}

// buildSpec resolves a Request against the client configuration. It joins
// the base URL with the call-site path (rejecting cross-origin escapes),
// merges headers with call-site precedence, and serializes the body once.
// Side-effect-free.
func buildSpec(cfg *Config, req Request) (*RequestSpec, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, NewEncodingError(fmt.Sprintf("invalid base URL %q", cfg.BaseURL), err)
	}

	ref, err := url.Parse(req.Path)
	if err != nil {
		return nil, NewEncodingError(fmt.Sprintf("invalid path %q", req.Path), err)
	}

	resolved := base.ResolveReference(ref)
	if resolved.Scheme != base.Scheme || resolved.Host != base.Host {
		return nil, NewEncodingError(
			fmt.Sprintf("path %q escapes base URL origin %s://%s", req.Path, base.Scheme, base.Host), nil)
	}

	headers := make(map[string]string, len(cfg.Headers)+len(req.Headers))
	for k, v := range cfg.Headers {
		headers[k] = v
	}
	for k, v := range req.Headers {
		headers[k] = v
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, NewEncodingError("encode request body", err)
	}

	query := make(map[string]string, len(req.Query))
	for k, v := range req.Query {
		query[k] = v
	}

	auth := cfg.Auth
	if req.Auth != nil {
		auth = req.Auth
	}

	return &RequestSpec{
		Method:      req.Method,
		URL:         resolved,
		Query:       query,
		Headers:     headers,
		Body:        body,
		ContentType: contentType,
		Shape:       req.Shape,
		Auth:        auth,
		Timeout:     cfg.Timeout,
	}, nil
}

// httpRequest materializes one attempt's *http.Request from the spec.
// Headers, query, and auth are applied fresh so no attempt observes
// mutations from a previous one.
func (s *RequestSpec) httpRequest(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if s.Body != nil {
		body = bytes.NewReader(s.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, s.Method, s.URL.String(), body)
	if err != nil {
		return nil, NewEncodingError("create request", err)
	}

	if len(s.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range s.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	for k, v := range s.Headers {
		httpReq.Header.Set(k, v)
	}

	if s.Body != nil && httpReq.Header.Get("Content-Type") == "" && s.ContentType != "" {
		httpReq.Header.Set("Content-Type", s.ContentType)
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", contentTypeJSON)
	}

	s.Auth.apply(httpReq)

	return httpReq, nil
}

// encodeBody serializes a body value exactly once. Readers are rejected
// because a consumed reader cannot be replayed on retry.
func encodeBody(body any) ([]byte, string, error) {
	if body == nil {
		return nil, "", nil
	}
	switch v := body.(type) {
	case io.Reader:
		return nil, "", fmt.Errorf("io.Reader bodies are not replayable across retries; pass []byte instead")
	case []byte:
		return v, contentTypeJSON, nil
	case string:
		return []byte(v), contentTypeJSON, nil
	case json.RawMessage:
		return v, contentTypeJSON, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return data, contentTypeJSON, nil
	}
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
