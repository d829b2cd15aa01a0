// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:build !unix

package entropy

const haveRandomDev = false

func readRandomDev(_ *Config, _ []byte) (int, error) {
	return 0, makeError(ErrSourceUnavailable, "random devices are only "+
		"available on unix")
}
