// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package prf

import (
	"encoding/binary"

	"github.com/decred/ottery/internal/memclear"
	"golang.org/x/crypto/chacha20"
)

// chacha20XCrypto is ChaCha20 backed by golang.org/x/crypto/chacha20, which
// uses vector instructions where available.
//
// The IETF layout of that package has a 32-bit counter and 96-bit nonce, so
// the high half of the 64-bit block counter is carried in the first nonce
// word.  That produces exactly the keystream of the portable implementation.
// The state is the raw seed.
type chacha20XCrypto struct{}

func (chacha20XCrypto) Setup(state, seed []byte) {
	copy(state[:chachaSeedSize], seed[:chachaSeedSize])
}

func (chacha20XCrypto) Generate(state, out []byte, idx uint32) {
	var nonce [chacha20.NonceSize]byte
	ctr := uint64(idx) * chachaBlocksPerCall
	binary.LittleEndian.PutUint32(nonce[0:4], uint32(ctr>>32))
	copy(nonce[4:], state[chachaKeySize:chachaSeedSize])

	// The key and nonce sizes are fixed, so this never errors.
	c, err := chacha20.NewUnauthenticatedCipher(state[:chachaKeySize],
		nonce[:])
	if err != nil {
		panic(err)
	}
	c.SetCounter(uint32(ctr))

	out = out[:chachaOutputLen]
	clear(out)
	c.XORKeyStream(out, out)
	memclear.Bytes(nonce[:])
}
