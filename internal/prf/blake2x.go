// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package prf

import (
	"encoding/binary"
	"io"

	"golang.org/x/crypto/blake2b"
)

const (
	blake2xKeySize   = 64
	blake2xOutputLen = 1024
)

// blake2xb is keyed BLAKE2Xb: block idx is the OutputLen byte XOF output
// over the little endian counter.  The state is the raw key.
type blake2xb struct{}

func (blake2xb) Setup(state, seed []byte) {
	copy(state[:blake2xKeySize], seed[:blake2xKeySize])
}

func (blake2xb) Generate(state, out []byte, idx uint32) {
	var ctr [4]byte
	binary.LittleEndian.PutUint32(ctr[:], idx)

	// The key and output sizes are fixed, so this never errors.
	x, err := blake2b.NewXOF(blake2xOutputLen, state[:blake2xKeySize])
	if err != nil {
		panic(err)
	}
	x.Write(ctr[:])
	if _, err := io.ReadFull(x, out[:blake2xOutputLen]); err != nil {
		panic(err)
	}
	x.Reset()
}
