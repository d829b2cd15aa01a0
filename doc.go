// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package ottery implements a fast userspace cryptographically secure
pseudorandom number generator.

Operating system and hardware entropy sources are too slow to serve every
request for random bytes directly, so a generator seeds a pseudorandom
function (PRF) from them once and then stretches that seed into a keystream
by evaluating the PRF over an incrementing block counter.  After a bounded
amount of output the generator stirs fresh entropy into its state, which
limits how much output a compromise of any single state can reveal.

# Generators

Generator is safe for concurrent access.  NoLockGenerator runs the identical
algorithm without locking and must only be used by a single goroutine at a
time.  Both seed lazily on first use and reseed automatically when they
detect that they are running in a different process than the one they were
seeded in.

	g, err := ottery.New(nil)
	if err != nil {
		// Handle configuration error.
	}
	defer g.Close()

	key := make([]byte, 32)
	g.RandomBytes(key)

The package level functions use a process-wide default Generator that is
created on first use.

# PRFs

The PRF is selected automatically from the capabilities of the running CPU
unless one is named with Config.PRF.  PRFNames lists every name that may be
requested.  Implementations of the same algorithm produce identical output.

# Errors

Configuration problems are returned from New as errors of type Error.  A
failure to obtain entropy while seeding and an invalid PRF are not
recoverable since the only alternative is to produce output that is not
random.  They are passed to the handler installed with SetFatalHandler
followed by a panic.
*/
package ottery
