package retry

import "time"

const (
	// DefaultMaxRetries bounds total attempts to DefaultMaxRetries+1.
	DefaultMaxRetries = 3
	// DefaultBackoffBase is the wait before the first retry.
	DefaultBackoffBase = 500 * time.Millisecond
	// DefaultBackoffCap bounds the backoff growth.
	DefaultBackoffCap = 30 * time.Second
)

// Class classifies one transport attempt as seen by the policy.
type Class int

const (
	// ClassSuccess is a 2xx response. Never retried.
	ClassSuccess Class = iota
	// ClassNetwork is a connection-level failure (DNS, refusal, reset).
	ClassNetwork
	// ClassTimeout is an attempt that exceeded its timeout.
	ClassTimeout
	// ClassHTTP is a non-2xx response, retried only for retriable statuses.
	ClassHTTP
	// ClassCancelled is a caller-aborted attempt. Never retried.
	ClassCancelled
)

// Outcome is the policy's view of one attempt. Status is only meaningful
// for ClassHTTP.
type Outcome struct {
	Class  Class
	Status int
}

// Decision tells the caller whether to retry and how long to wait first.
type Decision struct {
	Retry bool
	Wait  time.Duration
}

// Policy configures retry behavior. The zero value is not usable; construct
// with NewPolicy or fill every field.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// BackoffBase is the wait before the first retry; subsequent waits
	// double per attempt.
	BackoffBase time.Duration
	// BackoffCap bounds the exponential growth.
	BackoffCap time.Duration
	// RetryStatus reports whether an HTTP status is retriable.
	RetryStatus func(status int) bool
}

// NewPolicy builds a policy, filling zero fields with defaults.
func NewPolicy(maxRetries int, backoffBase, backoffCap time.Duration, retryStatus func(int) bool) Policy {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if backoffBase <= 0 {
		backoffBase = DefaultBackoffBase
	}
	if backoffCap <= 0 {
		backoffCap = DefaultBackoffCap
	}
	if retryStatus == nil {
		retryStatus = DefaultRetryStatus
	}
	return Policy{
		MaxRetries:  maxRetries,
		BackoffBase: backoffBase,
		BackoffCap:  backoffCap,
		RetryStatus: retryStatus,
	}
}

// DefaultPolicy returns the stock policy: 3 retries, 500ms base, 30s cap,
// retriable statuses 429 and 5xx.
func DefaultPolicy() Policy {
	return NewPolicy(DefaultMaxRetries, DefaultBackoffBase, DefaultBackoffCap, nil)
}

// DefaultRetryStatus reports the default retriable status set: 429 and 5xx.
func DefaultRetryStatus(status int) bool {
	return status == 429 || (status >= 500 && status < 600)
}

// Decide reports whether the attempt with the given zero-based index should
// be retried. Success and cancelled outcomes never retry; HTTP outcomes
// retry only for retriable statuses; retrying stops once attempt >= MaxRetries.
func (p Policy) Decide(outcome Outcome, attempt int) Decision {
	if !p.retriable(outcome) {
		return Decision{}
	}
	if attempt >= p.MaxRetries {
		return Decision{}
	}
	return Decision{Retry: true, Wait: p.Backoff(attempt)}
}

// Backoff returns the wait after the attempt with the given zero-based
// index: min(BackoffBase * 2^attempt, BackoffCap). Waits are monotonically
// non-decreasing across attempts.
func (p Policy) Backoff(attempt int) time.Duration {
	wait := p.BackoffBase
	for i := 0; i < attempt; i++ {
		wait *= 2
		if wait >= p.BackoffCap || wait < 0 {
			return p.BackoffCap
		}
	}
	if wait > p.BackoffCap {
		return p.BackoffCap
	}
	return wait
}

func (p Policy) retriable(o Outcome) bool {
	switch o.Class {
	case ClassNetwork, ClassTimeout:
		return true
	case ClassHTTP:
		return p.RetryStatus != nil && p.RetryStatus(o.Status)
	default:
		return false
	}
}
