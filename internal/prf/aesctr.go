// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package prf

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"

	"github.com/decred/ottery/internal/memclear"
)

const (
	aesKeySize    = 32
	aesNonceSize  = 8
	aesSeedSize   = aesKeySize + aesNonceSize
	aesOutputLen  = 1024
	aesBlocksCall = aesOutputLen / aes.BlockSize
)

// aes256CTR is AES-256 in counter mode.  The 128-bit counter block is the
// 64-bit nonce followed by the big endian block number idx*64.  The state is
// the raw seed.
type aes256CTR struct{}

func (aes256CTR) Setup(state, seed []byte) {
	copy(state[:aesSeedSize], seed[:aesSeedSize])
}

func (aes256CTR) Generate(state, out []byte, idx uint32) {
	// The key size is fixed, so this never errors.
	block, err := aes.NewCipher(state[:aesKeySize])
	if err != nil {
		panic(err)
	}
	var iv [aes.BlockSize]byte
	copy(iv[:aesNonceSize], state[aesKeySize:aesSeedSize])
	binary.BigEndian.PutUint64(iv[aesNonceSize:], uint64(idx)*aesBlocksCall)

	out = out[:aesOutputLen]
	clear(out)
	cipher.NewCTR(block, iv[:]).XORKeyStream(out, out)
	memclear.Bytes(iv[:])
}
