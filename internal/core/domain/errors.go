package domain

import (
	"errors"
	"fmt"
)

// Kind classifies submission failures.
type Kind string

const (
	KindValidation Kind = "validation"
	KindTransport  Kind = "transport"
	KindProtocol   Kind = "protocol"
	KindContract   Kind = "contract"
)

// TransportError means the request could not be sent or its response could not be read.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is a non-2xx webhook response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("webhook returned status %d", e.Code)
	}
	return fmt.Sprintf("webhook returned status %d: %s", e.Code, e.Body)
}

// ContractError is a 2xx response whose body does not carry an image URL.
type ContractError struct {
	Err error
}

func (e *ContractError) Error() string {
	if e.Err == nil || errors.Is(e.Err, ErrMissingImageURL) {
		return ErrMissingImageURL.Error()
	}
	return fmt.Sprintf("%s: %v", ErrMissingImageURL, e.Err)
}

func (e *ContractError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMissingImageURL}
	}
	return []error{ErrMissingImageURL, e.Err}
}

// KindOf returns the failure kind of err, defaulting to transport for unknown errors.
func KindOf(err error) Kind {
	var statusErr *StatusError
	var contractErr *ContractError

	switch {
	case errors.Is(err, ErrMissingInput), errors.Is(err, ErrSubmissionInProgress):
		return KindValidation
	case errors.As(err, &statusErr):
		return KindProtocol
	case errors.As(err, &contractErr), errors.Is(err, ErrMissingImageURL):
		return KindContract
	default:
		return KindTransport
	}
}
