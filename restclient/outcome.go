package restclient

import "github.com/kbukum/restkit/retry"

// OutcomeKind tags the result of one transport attempt.
type OutcomeKind int

const (
	// OutcomeSuccess is a 2xx response.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeHTTPError is any non-2xx response.
	OutcomeHTTPError
	// OutcomeTransportFailure is an attempt that produced no response.
	OutcomeTransportFailure
)

// AttemptOutcome is the classified result of one transport attempt. The
// transport classifies purely by status code and error cause; it never
// interprets body semantics. Outcomes are consumed by the retry policy and,
// on exhaustion, converted into the terminal result.
type AttemptOutcome struct {
	Kind    OutcomeKind
	Status  int
	Headers map[string]string
	Body    []byte
	// Cause carries the classified error for transport failures
	// (timeout, network, cancelled).
	Cause *Error
}

// retryOutcome maps the attempt to the retry policy's view of it.
func (o AttemptOutcome) retryOutcome() retry.Outcome {
	switch o.Kind {
	case OutcomeSuccess:
		return retry.Outcome{Class: retry.ClassSuccess}
	case OutcomeHTTPError:
		return retry.Outcome{Class: retry.ClassHTTP, Status: o.Status}
	default:
		if o.Cause != nil {
			switch o.Cause.Code {
			case ErrCodeTimeout:
				return retry.Outcome{Class: retry.ClassTimeout}
			case ErrCodeCancelled:
				return retry.Outcome{Class: retry.ClassCancelled}
			}
		}
		return retry.Outcome{Class: retry.ClassNetwork}
	}
}

// terminal converts the last attempt into the caller-facing result,
// preserving the real cause: HTTP errors keep their status and body, and
// transport failures surface their classified error.
func (o AttemptOutcome) terminal() (*Response, error) {
	switch o.Kind {
	case OutcomeSuccess:
		return &Response{StatusCode: o.Status, Headers: o.Headers, Body: o.Body}, nil
	case OutcomeHTTPError:
		resp := &Response{StatusCode: o.Status, Headers: o.Headers, Body: o.Body}
		return resp, NewHTTPStatusError(o.Status, o.Body)
	default:
		return nil, o.Cause
	}
}
