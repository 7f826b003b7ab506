package restclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
)

// Transport executes one physical HTTP exchange for a resolved request
// spec. Implementations must be safe for concurrent use; the production
// transport shares one pooled connection registry across all in-flight
// calls of a facade.
type Transport interface {
	Execute(ctx context.Context, spec *RequestSpec) AttemptOutcome
}

// httpTransport is the production Transport backed by net/http.
type httpTransport struct {
	client *http.Client
}

// newHTTPTransport builds the pooled transport from the client config.
// The per-attempt timeout is enforced via context so cancellation and
// deadline remain distinguishable.
func newHTTPTransport(cfg *Config) (*httpTransport, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			transport.TLSClientConfig = tlsCfg
		}
	}

	return &httpTransport{client: &http.Client{Transport: transport}}, nil
}

// Execute issues a single attempt and classifies the result: 2xx is
// Success, any other response is HTTPError, and everything else is a
// TransportFailure with a timeout/network/cancelled cause.
func (t *httpTransport) Execute(ctx context.Context, spec *RequestSpec) AttemptOutcome {
	attemptCtx := ctx
	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	httpReq, err := spec.httpRequest(attemptCtx)
	if err != nil {
		var clientErr *Error
		if !errors.As(err, &clientErr) {
			clientErr = NewEncodingError("create request", err)
		}
		return AttemptOutcome{Kind: OutcomeTransportFailure, Cause: clientErr}
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return AttemptOutcome{
			Kind:  OutcomeTransportFailure,
			Cause: classifyTransportError(ctx, attemptCtx, err),
		}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return AttemptOutcome{
			Kind:  OutcomeTransportFailure,
			Cause: NewNetworkError(fmt.Errorf("read response body: %w", err)),
		}
	}

	kind := OutcomeHTTPError
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		kind = OutcomeSuccess
	}

	return AttemptOutcome{
		Kind:    kind,
		Status:  resp.StatusCode,
		Headers: flattenHeaders(resp.Header),
		Body:    body,
	}
}

// CloseIdleConnections releases pooled sockets.
func (t *httpTransport) CloseIdleConnections() {
	t.client.CloseIdleConnections()
}

// classifyTransportError separates caller cancellation from timeouts and
// connection failures. The parent context distinguishes an aborted call
// from an attempt that merely ran out its own deadline.
func classifyTransportError(parent, attempt context.Context, err error) *Error {
	switch {
	case errors.Is(parent.Err(), context.Canceled):
		return NewCancelledError(err)
	case errors.Is(parent.Err(), context.DeadlineExceeded):
		return NewTimeoutError(err)
	case errors.Is(attempt.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return NewTimeoutError(err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NewTimeoutError(err)
	}
	return NewNetworkError(err)
}
