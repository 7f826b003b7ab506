// Package retry implements the retry decision policy for the REST client.
//
// The policy is a pure function: given the classified outcome of one
// transport attempt, the zero-based attempt index, and the policy
// configuration, Decide reports whether to retry and how long to wait.
// It performs no I/O and holds no state, so it can be tested exhaustively
// and shared between the blocking and asynchronous call paths.
package retry
