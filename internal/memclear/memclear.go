// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package memclear provides zeroing of memory that holds secret material.
//
// The stores performed by this package are kept opaque to the compiler so
// they are not removed when the buffer is never read again, which is exactly
// the situation for key material that is about to be discarded.
package memclear

import "runtime"

// Bytes overwrites every byte of b with zero.
//
//go:noinline
func Bytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// Words overwrites every element of w with zero.
//
//go:noinline
func Words(w []uint32) {
	for i := range w {
		w[i] = 0
	}
	runtime.KeepAlive(w)
}
