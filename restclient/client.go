package restclient

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/retry"
)

// Client is the caller-facing facade combining the request builder, a
// transport, the retry policy, and schema binding. One Client is
// constructed per upstream API; multiple clients with independent
// configurations may coexist. Safe for concurrent use.
type Client struct {
	config    Config
	transport Transport
	policy    retry.Policy
	log       *logger.Logger
	tracing   *tracing
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithTransport replaces the production HTTP transport. Used by tests and
// by callers that need to interpose on attempts.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithLogger attaches a structured logger. The default discards all output.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		c.log = l.WithComponent("restclient")
	}
}

// New creates a new client facade. The configuration is copied and owned by
// the returned client; it is never mutated afterwards.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config: cfg,
		policy: cfg.policy(),
		log:    logger.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.transport == nil {
		t, err := newHTTPTransport(&c.config)
		if err != nil {
			return nil, err
		}
		c.transport = t
	}

	return c, nil
}

// Close releases idle pooled connections. The client must not be used
// afterwards.
func (c *Client) Close() {
	if t, ok := c.transport.(*httpTransport); ok {
		t.CloseIdleConnections()
	}
}

// Do executes a request to completion: build, attempt loop governed by the
// retry policy, terminal classification. The returned Response is non-nil
// for every completed HTTP exchange, including non-2xx ones, so callers can
// inspect error bodies.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	spec, err := buildSpec(&c.config, req)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, spec)
}

// Get performs a GET request and returns the raw response.
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, applyOptions(Request{Method: http.MethodGet, Path: path}, opts))
}

// Post performs a POST request with a JSON body and returns the raw response.
func (c *Client) Post(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, applyOptions(Request{Method: http.MethodPost, Path: path, Body: body}, opts))
}

// Put performs a PUT request with a JSON body and returns the raw response.
func (c *Client) Put(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, applyOptions(Request{Method: http.MethodPut, Path: path, Body: body}, opts))
}

// Patch performs a PATCH request with a JSON body and returns the raw response.
func (c *Client) Patch(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, applyOptions(Request{Method: http.MethodPatch, Path: path, Body: body}, opts))
}

// Delete performs a DELETE request and returns the raw response.
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, applyOptions(Request{Method: http.MethodDelete, Path: path}, opts))
}

// do runs the attempt loop. It is shared by the blocking and asynchronous
// call paths: attempts are strictly sequential, backoff waits are
// context-aware timer waits, and cancellation is honored before each
// attempt and during every wait.
func (c *Client) do(ctx context.Context, spec *RequestSpec) (*Response, error) {
	requestID := uuid.NewString()
	log := c.log.WithFields(map[string]interface{}{
		logger.FieldRequestID: requestID,
		logger.FieldMethod:    spec.Method,
		logger.FieldURL:       spec.URL.String(),
	})

	ctx, span := c.tracing.start(ctx, spec)
	start := time.Now()

	var out AttemptOutcome
	attempts := 0
	for attempt := 0; ; attempt++ {
		if err := terminalContextError(ctx); err != nil {
			c.tracing.end(span, 0, attempts, err)
			return nil, err
		}

		log.Debug("issuing attempt", logger.Fields(logger.FieldAttempt, attempt))
		out = c.transport.Execute(ctx, spec)
		attempts++

		decision := c.policy.Decide(out.retryOutcome(), attempt)
		if !decision.Retry {
			break
		}

		log.Warn("retrying request", logger.Fields(
			logger.FieldAttempt, attempt,
			logger.FieldStatus, out.Status,
			logger.FieldWait, decision.Wait.Milliseconds(),
		))

		if err := waitBackoff(ctx, decision.Wait); err != nil {
			c.tracing.end(span, 0, attempts, err)
			return nil, err
		}
	}

	resp, err := out.terminal()
	c.tracing.end(span, out.Status, attempts, err)

	fields := logger.Fields(
		logger.FieldStatus, out.Status,
		logger.FieldAttempt, attempts,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	)
	if err != nil {
		log.WithError(err).Error("request failed", fields)
	} else {
		log.Debug("request completed", fields)
	}

	return resp, err
}

// terminalContextError maps a finished context to the public taxonomy:
// explicit cancellation and expired deadlines end the call without further
// attempts.
func terminalContextError(ctx context.Context) error {
	switch ctx.Err() {
	case context.Canceled:
		return NewCancelledError(ctx.Err())
	case context.DeadlineExceeded:
		return NewTimeoutError(ctx.Err())
	default:
		return nil
	}
}

// waitBackoff waits out a backoff interval without blocking past
// cancellation.
func waitBackoff(ctx context.Context, wait time.Duration) error {
	if wait <= 0 {
		return terminalContextError(ctx)
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return terminalContextError(ctx)
	case <-timer.C:
		return nil
	}
}

func applyOptions(req Request, opts []RequestOption) Request {
	for _, opt := range opts {
		opt(&req)
	}
	return req
}
