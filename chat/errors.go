package chat

import (
	"errors"
	"fmt"
)

// ErrStaleSnapshot indicates the conversation was cleared after a
// snapshot was taken, so the pending append was dropped.
var ErrStaleSnapshot = errors.New("conversation cleared since snapshot")

// CredentialError indicates a missing or rejected API key. Recovered by
// prompting for a new key; never fatal.
type CredentialError struct {
	Reason string
	Cause  error
}

func (e *CredentialError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("credential error: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("credential error: %s", e.Reason)
}

func (e *CredentialError) Unwrap() error { return e.Cause }

// ValidationError indicates rejected input, such as an empty message or
// an out-of-range generation option. Recovered by ignoring the submission.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Reason)
}

// UnknownRoleError indicates the role mapper received a value outside
// the internal vocabulary. This is a programming-contract violation:
// it is surfaced, never silently defaulted.
type UnknownRoleError struct {
	Role string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("unknown role %q", e.Role)
}

// StreamInterruptedError indicates the transport failed mid-stream.
// Partial holds whatever text had been accumulated; callers decide
// whether to show or discard it.
type StreamInterruptedError struct {
	Partial string
	Cause   error
}

func (e *StreamInterruptedError) Error() string {
	return fmt.Sprintf("stream interrupted after %d bytes: %v", len(e.Partial), e.Cause)
}

func (e *StreamInterruptedError) Unwrap() error { return e.Cause }

// ProviderError indicates the provider call failed or returned no
// usable candidates. The same prompt may be retried.
type ProviderError struct {
	Cause error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error: %v", e.Cause)
}

func (e *ProviderError) Unwrap() error { return e.Cause }

// wrapProvider folds an arbitrary provider failure into the taxonomy,
// leaving already-classified errors untouched.
func wrapProvider(err error) error {
	if err == nil {
		return nil
	}
	var (
		credErr   *CredentialError
		valErr    *ValidationError
		roleErr   *UnknownRoleError
		streamErr *StreamInterruptedError
		provErr   *ProviderError
	)
	if errors.As(err, &credErr) || errors.As(err, &valErr) || errors.As(err, &roleErr) ||
		errors.As(err, &streamErr) || errors.As(err, &provErr) {
		return err
	}
	return &ProviderError{Cause: err}
}
