// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entropy

import (
	cryptorand "crypto/rand"
	"io"
)

// readCryptoRand fills buf from the Go runtime's operating system CSPRNG.
// It covers platforms without a random device.
func readCryptoRand(_ *Config, buf []byte) (int, error) {
	return io.ReadFull(cryptorand.Reader, buf)
}
