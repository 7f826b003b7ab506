package restclient

import "github.com/kbukum/restkit/schema"

// Request describes one outbound call. It is a per-call value; the builder
// resolves it into an immutable RequestSpec before any attempt runs.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE).
	Method string
	// Path is resolved against the client's BaseURL. Paths that would
	// escape the base URL's origin are rejected.
	Path string
	// Headers are request-specific headers, merged over the client
	// defaults; the call site wins on conflict.
	Headers map[string]string
	// Query are URL query parameters.
	Query map[string]string
	// Body is the request body: []byte or string are sent verbatim, any
	// other non-nil value is JSON-encoded. The body must be replayable
	// across retries, so readers are not accepted.
	Body any
	// Shape optionally declares the expected response structure; when set,
	// the typed call path binds the body through the schema package.
	Shape *schema.Shape
	// ValidateResponse runs constraint validation (validate tags) on the
	// bound response model.
	ValidateResponse bool
	// Auth overrides the client-level auth for this request.
	Auth *AuthConfig
}

// Response is the raw result of a completed request.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}

// RequestOption configures a single request.
type RequestOption func(*Request)

// WithHeader adds a header to the request.
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string)
		}
		r.Headers[key] = value
	}
}

// WithHeaders merges headers into the request.
func WithHeaders(headers map[string]string) RequestOption {
	return func(r *Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			r.Headers[k] = v
		}
	}
}

// WithQueryParam adds a query parameter to the request.
func WithQueryParam(key, value string) RequestOption {
	return func(r *Request) {
		if r.Query == nil {
			r.Query = make(map[string]string)
		}
		r.Query[key] = value
	}
}

// WithQuery merges query parameters into the request.
func WithQuery(params map[string]string) RequestOption {
	return func(r *Request) {
		if r.Query == nil {
			r.Query = make(map[string]string, len(params))
		}
		for k, v := range params {
			r.Query[k] = v
		}
	}
}

// WithShape declares the expected response shape for schema binding.
func WithShape(s schema.Shape) RequestOption {
	return func(r *Request) {
		r.Shape = &s
	}
}

// WithValidation enables constraint validation of the bound response model.
func WithValidation() RequestOption {
	return func(r *Request) {
		r.ValidateResponse = true
	}
}

// WithRequestAuth overrides authentication for the request.
func WithRequestAuth(auth *AuthConfig) RequestOption {
	return func(r *Request) {
		r.Auth = auth
	}
}
