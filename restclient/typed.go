package restclient

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/kbukum/restkit/schema"
	"github.com/kbukum/restkit/validation"
)

// Bound wraps a response whose body was deserialized and, when a shape was
// declared, schema-validated into type T. Ownership of Data transfers
// fully to the caller.
type Bound[T any] struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string
	// Data is the bound response body.
	Data T
}

// Get performs a GET request and binds the JSON response into type T.
func Get[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (*Bound[T], error) {
	return doTyped[T](ctx, c, http.MethodGet, path, nil, opts...)
}

// Post performs a POST request with a JSON body and binds the response into type T.
func Post[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (*Bound[T], error) {
	return doTyped[T](ctx, c, http.MethodPost, path, body, opts...)
}

// Put performs a PUT request with a JSON body and binds the response into type T.
func Put[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (*Bound[T], error) {
	return doTyped[T](ctx, c, http.MethodPut, path, body, opts...)
}

// Patch performs a PATCH request with a JSON body and binds the response into type T.
func Patch[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (*Bound[T], error) {
	return doTyped[T](ctx, c, http.MethodPatch, path, body, opts...)
}

// Delete performs a DELETE request and binds the JSON response into type T.
func Delete[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (*Bound[T], error) {
	return doTyped[T](ctx, c, http.MethodDelete, path, nil, opts...)
}

// doTyped executes a request and binds the response body. Shape mismatches
// surface as validation errors and are never retried; binding only runs
// after the attempt loop has produced a terminal success.
func doTyped[T any](ctx context.Context, c *Client, method, path string, body any, opts ...RequestOption) (*Bound[T], error) {
	req := applyOptions(Request{Method: method, Path: path, Body: body}, opts)

	resp, err := c.Do(ctx, req)
	if err != nil {
		// Non-2xx responses still carry a body; decode it best-effort so
		// callers can inspect typed error payloads alongside the error.
		if resp != nil && len(resp.Body) > 0 {
			var data T
			if jsonErr := json.Unmarshal(resp.Body, &data); jsonErr == nil {
				return &Bound[T]{StatusCode: resp.StatusCode, Headers: resp.Headers, Data: data}, err
			}
		}
		return nil, err
	}

	var data T
	if len(resp.Body) > 0 {
		if req.Shape != nil {
			data, err = schema.BindAs[T](resp.Body, *req.Shape)
			if err != nil {
				return nil, NewValidationError(err)
			}
		} else if err := json.Unmarshal(resp.Body, &data); err != nil {
			return nil, NewValidationError(err)
		}
	}

	if req.ValidateResponse {
		if err := validation.Validate(data); err != nil {
			return nil, NewValidationError(err)
		}
	}

	return &Bound[T]{StatusCode: resp.StatusCode, Headers: resp.Headers, Data: data}, nil
}
