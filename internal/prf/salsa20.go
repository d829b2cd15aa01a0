// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package prf

import (
	"encoding/binary"

	"github.com/decred/ottery/internal/memclear"
	"golang.org/x/crypto/salsa20/salsa"
)

// salsa20XCrypto is Salsa20/20 backed by golang.org/x/crypto/salsa20/salsa.
// It shares the seed layout and block counter scheme of ChaCha.
type salsa20XCrypto struct{}

func (salsa20XCrypto) Setup(state, seed []byte) {
	copy(state[:chachaSeedSize], seed[:chachaSeedSize])
}

func (salsa20XCrypto) Generate(state, out []byte, idx uint32) {
	var key [chachaKeySize]byte
	var counter [16]byte
	copy(key[:], state[:chachaKeySize])
	copy(counter[:8], state[chachaKeySize:chachaSeedSize])
	binary.LittleEndian.PutUint64(counter[8:],
		uint64(idx)*chachaBlocksPerCall)

	out = out[:chachaOutputLen]
	clear(out)
	salsa.XORKeyStream(out, out, &counter, &key)
	memclear.Bytes(key[:])
	memclear.Bytes(counter[:])
}
