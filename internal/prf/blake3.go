// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package prf

import (
	"encoding/binary"

	"lukechampine.com/blake3"
)

const (
	blake3KeySize   = 32
	blake3OutputLen = 1024
)

// blake3Keyed is keyed BLAKE3 in extendable output mode: block idx is the
// first OutputLen bytes of the XOF over the little endian counter.  The
// state is the raw key.
type blake3Keyed struct{}

func (blake3Keyed) Setup(state, seed []byte) {
	copy(state[:blake3KeySize], seed[:blake3KeySize])
}

func (blake3Keyed) Generate(state, out []byte, idx uint32) {
	var ctr [4]byte
	binary.LittleEndian.PutUint32(ctr[:], idx)

	h := blake3.New(blake3KeySize, state[:blake3KeySize])
	h.Write(ctr[:])
	h.XOF().Read(out[:blake3OutputLen])
	h.Reset()
}
