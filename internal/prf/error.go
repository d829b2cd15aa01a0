// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package prf

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind
// when determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrInvalidDescriptor indicates a descriptor violates the size
	// invariants every PRF must satisfy.
	ErrInvalidDescriptor = ErrorKind("ErrInvalidDescriptor")

	// ErrUnknownPRF indicates a PRF name does not match any known
	// implementation.
	ErrUnknownPRF = ErrorKind("ErrUnknownPRF")

	// ErrUnsupportedPRF indicates every implementation of a named PRF
	// needs CPU capabilities that are not available.
	ErrUnsupportedPRF = ErrorKind("ErrUnsupportedPRF")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies a PRF selection error.  It has full support for errors.Is
// and errors.As, so the caller can ascertain the specific reason for the
// error by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
