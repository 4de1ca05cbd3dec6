package inquiry

import (
	"context"
	"fmt"
)

// Submitter delivers a payload to the inquiry-intake service.
//
// Implementations return *TransportError when the service could not be
// reached and *RejectedError when it answered with a failure.
type Submitter interface {
	Submit(ctx context.Context, payload Payload) error
}

// TransportError reports that the request never produced a response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("inquiry intake unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RejectedError reports a response whose status is not success. StatusCode
// is the HTTP status; Message is the server-provided reason, if any.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("inquiry intake rejected submission (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("inquiry intake rejected submission (status %d): %s", e.StatusCode, e.Message)
}

// SubmissionError wraps a failed submission after its notice was emitted.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit inquiry: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
