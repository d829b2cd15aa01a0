// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:build !amd64

package entropy

func rdrandEnabled(*Config) bool {
	return false
}

func readRDRAND(_ *Config, _ []byte) (int, error) {
	return 0, makeError(ErrSourceUnavailable, "rdrand is only available "+
		"on amd64")
}
