// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package prf

import (
	"crypto/hmac"
	"encoding/binary"
	"hash"

	"github.com/decred/dcrd/crypto/blake256"
	"github.com/decred/ottery/internal/memclear"
)

const (
	hmacBlake256KeySize   = 32
	hmacBlake256Size      = blake256.Size
	hmacBlake256OutputLen = 1024
)

// hmacBlake256 is HMAC-BLAKE-256 in counter mode: output chunk j of block
// idx is HMAC(key, LE32(idx) || LE32(j)).  It is slow compared to the stream
// ciphers but relies only on the hash.  The state is the raw key.
type hmacBlake256 struct{}

func newBlake256() hash.Hash {
	return blake256.New()
}

func (hmacBlake256) Setup(state, seed []byte) {
	copy(state[:hmacBlake256KeySize], seed[:hmacBlake256KeySize])
}

func (hmacBlake256) Generate(state, out []byte, idx uint32) {
	var msg [8]byte
	var sum [hmacBlake256Size]byte
	binary.LittleEndian.PutUint32(msg[0:4], idx)

	mac := hmac.New(newBlake256, state[:hmacBlake256KeySize])
	for j := 0; j < hmacBlake256OutputLen/hmacBlake256Size; j++ {
		binary.LittleEndian.PutUint32(msg[4:8], uint32(j))
		mac.Reset()
		mac.Write(msg[:])
		copy(out[j*hmacBlake256Size:], mac.Sum(sum[:0]))
	}
	mac.Reset()
	memclear.Bytes(sum[:])
}
