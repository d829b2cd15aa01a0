// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entropy

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind
// when determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrNoEligibleSources indicates that no entropy source was both
	// enabled and a match for the required flags.
	ErrNoEligibleSources = ErrorKind("ErrNoEligibleSources")

	// ErrAllSourcesFailed indicates that every eligible entropy source
	// failed or returned no bytes.
	ErrAllSourcesFailed = ErrorKind("ErrAllSourcesFailed")

	// ErrBufferTooSmall indicates the destination buffer cannot hold the
	// output of every source that might be queried.
	ErrBufferTooSmall = ErrorKind("ErrBufferTooSmall")

	// ErrSourceUnavailable indicates a source is not supported on the
	// running platform.
	ErrSourceUnavailable = ErrorKind("ErrSourceUnavailable")

	// ErrNotCharDevice indicates the configured random device path does not
	// name a character device.
	ErrNotCharDevice = ErrorKind("ErrNotCharDevice")

	// ErrHardwareUnderflow indicates the CPU random number instruction kept
	// reporting that no random value was ready.
	ErrHardwareUnderflow = ErrorKind("ErrHardwareUnderflow")

	// ErrEGDProtocol indicates an entropy gathering daemon replied with a
	// malformed message.
	ErrEGDProtocol = ErrorKind("ErrEGDProtocol")

	// ErrEmptyRead indicates a source reported success without producing
	// any bytes.
	ErrEmptyRead = ErrorKind("ErrEmptyRead")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an entropy acquisition error.  It has full support for
// errors.Is and errors.As, so the caller can ascertain the specific reason
// for the error by checking the underlying error.
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
