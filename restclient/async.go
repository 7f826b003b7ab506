package restclient

import (
	"context"
	"encoding/json"
	"net/http"
)

// Future is the handle to an in-flight asynchronous call. Each call runs as
// its own goroutine multiplexed over the facade's shared connection pool;
// many futures may be in flight concurrently with no ordering guarantee
// between them.
type Future[T any] struct {
	done   chan struct{}
	cancel context.CancelFunc
	result *Bound[T]
	err    error
}

// Wait blocks until the call completes and returns its result. Safe to call
// from multiple goroutines and more than once.
func (f *Future[T]) Wait() (*Bound[T], error) {
	<-f.done
	return f.result, f.err
}

// Done returns a channel closed when the call has completed.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Cancel aborts the call. An in-flight attempt is interrupted and no
// further attempts are issued; Wait then reports a cancelled error unless
// the call had already completed.
func (f *Future[T]) Cancel() {
	f.cancel()
}

// GetAsync starts an asynchronous GET request.
func GetAsync[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) *Future[T] {
	return doAsync[T](ctx, c, http.MethodGet, path, nil, opts...)
}

// PostAsync starts an asynchronous POST request with a JSON body.
func PostAsync[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) *Future[T] {
	return doAsync[T](ctx, c, http.MethodPost, path, body, opts...)
}

// PutAsync starts an asynchronous PUT request with a JSON body.
func PutAsync[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) *Future[T] {
	return doAsync[T](ctx, c, http.MethodPut, path, body, opts...)
}

// PatchAsync starts an asynchronous PATCH request with a JSON body.
func PatchAsync[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) *Future[T] {
	return doAsync[T](ctx, c, http.MethodPatch, path, body, opts...)
}

// DeleteAsync starts an asynchronous DELETE request.
func DeleteAsync[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) *Future[T] {
	return doAsync[T](ctx, c, http.MethodDelete, path, nil, opts...)
}

// DoAsync starts an asynchronous raw request. The returned future yields
// the raw response without schema binding.
func (c *Client) DoAsync(ctx context.Context, req Request) *Future[json.RawMessage] {
	callCtx, cancel := context.WithCancel(ctx)
	f := &Future[json.RawMessage]{done: make(chan struct{}), cancel: cancel}
	go func() {
		defer close(f.done)
		defer cancel()
		resp, err := c.Do(callCtx, req)
		if resp != nil {
			f.result = &Bound[json.RawMessage]{
				StatusCode: resp.StatusCode,
				Headers:    resp.Headers,
				Data:       json.RawMessage(resp.Body),
			}
		}
		f.err = err
	}()
	return f
}

// doAsync shares the typed retry/bind path with the blocking calls; only
// the suspension point differs.
func doAsync[T any](ctx context.Context, c *Client, method, path string, body any, opts ...RequestOption) *Future[T] {
	callCtx, cancel := context.WithCancel(ctx)
	f := &Future[T]{done: make(chan struct{}), cancel: cancel}
	go func() {
		defer close(f.done)
		defer cancel()
		f.result, f.err = doTyped[T](callCtx, c, method, path, body, opts...)
	}()
	return f
}
