// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ottery

import "sync/atomic"

// fatalHandler holds the handler installed by SetFatalHandler.
var fatalHandler atomic.Pointer[func(error)]

// SetFatalHandler installs fn to be called with the error when a generator
// hits a condition it cannot recover from, such as running out of entropy
// while seeding.  A nil fn restores the default, which logs the error at the
// critical level.
//
// The handler is expected not to return.  When it does, the generator
// panics with the error rather than produce output that is not random.
func SetFatalHandler(fn func(error)) {
	if fn == nil {
		fatalHandler.Store(nil)
		return
	}
	fatalHandler.Store(&fn)
}

// fatal reports err to the fatal handler and panics.  It never returns.
func fatal(err error) {
	if fn := fatalHandler.Load(); fn != nil {
		(*fn)(err)
	} else {
		log.Criticalf("Unrecoverable random generator failure: %v", err)
	}
	panic(err)
}
