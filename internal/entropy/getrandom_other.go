// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:build !linux

package entropy

const haveGetRandom = false

func readGetRandom(_ *Config, _ []byte) (int, error) {
	return 0, makeError(ErrSourceUnavailable, "getrandom is only "+
		"available on linux")
}
