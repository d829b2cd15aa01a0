// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package prf

import (
	"encoding/binary"
	"math/bits"

	"github.com/decred/ottery/internal/memclear"
)

// ChaCha parameters shared by every ChaCha implementation.  The seed is a
// 256-bit key followed by a 64-bit nonce, and each Generate call produces 16
// consecutive keystream blocks starting at block idx*16 of a 64-bit block
// counter.
const (
	chachaKeySize       = 32
	chachaNonceSize     = 8
	chachaSeedSize      = chachaKeySize + chachaNonceSize
	chachaBlockSize     = 64
	chachaBlocksPerCall = 16
	chachaOutputLen     = chachaBlockSize * chachaBlocksPerCall
)

// "expand 32-byte k"
const (
	sigma0 = 0x61707865
	sigma1 = 0x3320646e
	sigma2 = 0x79622d32
	sigma3 = 0x6b206574
)

// chachaPortable is a pure Go ChaCha with a configurable round count.
//
// Its state is the 16-word ChaCha input block, serialized little endian,
// with the counter words left zero.
type chachaPortable struct {
	rounds int
}

func (chachaPortable) Setup(state, seed []byte) {
	binary.LittleEndian.PutUint32(state[0:], sigma0)
	binary.LittleEndian.PutUint32(state[4:], sigma1)
	binary.LittleEndian.PutUint32(state[8:], sigma2)
	binary.LittleEndian.PutUint32(state[12:], sigma3)
	copy(state[16:48], seed[:chachaKeySize])
	memclear.Bytes(state[48:56])
	copy(state[56:64], seed[chachaKeySize:chachaSeedSize])
}

func (c chachaPortable) Generate(state, out []byte, idx uint32) {
	var in [16]uint32
	defer memclear.Words(in[:])
	for i := range in {
		in[i] = binary.LittleEndian.Uint32(state[4*i:])
	}

	ctr := uint64(idx) * chachaBlocksPerCall
	for j := 0; j < chachaBlocksPerCall; j++ {
		in[12] = uint32(ctr)
		in[13] = uint32(ctr >> 32)
		chachaBlock(&in, c.rounds, out[j*chachaBlockSize:])
		ctr++
	}
}

// quarterRound is the ChaCha quarter round.
func quarterRound(a, b, c, d uint32) (uint32, uint32, uint32, uint32) {
	a += b
	d ^= a
	d = bits.RotateLeft32(d, 16)
	c += d
	b ^= c
	b = bits.RotateLeft32(b, 12)
	a += b
	d ^= a
	d = bits.RotateLeft32(d, 8)
	c += d
	b ^= c
	b = bits.RotateLeft32(b, 7)
	return a, b, c, d
}

// chachaBlock writes the 64-byte keystream block for the input words to out.
func chachaBlock(in *[16]uint32, rounds int, out []byte) {
	x := *in
	for i := 0; i < rounds; i += 2 {
		// Columns.
		x[0], x[4], x[8], x[12] = quarterRound(x[0], x[4], x[8], x[12])
		x[1], x[5], x[9], x[13] = quarterRound(x[1], x[5], x[9], x[13])
		x[2], x[6], x[10], x[14] = quarterRound(x[2], x[6], x[10], x[14])
		x[3], x[7], x[11], x[15] = quarterRound(x[3], x[7], x[11], x[15])

		// Diagonals.
		x[0], x[5], x[10], x[15] = quarterRound(x[0], x[5], x[10], x[15])
		x[1], x[6], x[11], x[12] = quarterRound(x[1], x[6], x[11], x[12])
		x[2], x[7], x[8], x[13] = quarterRound(x[2], x[7], x[8], x[13])
		x[3], x[4], x[9], x[14] = quarterRound(x[3], x[4], x[9], x[14])
	}
	for i := range x {
		binary.LittleEndian.PutUint32(out[4*i:], x[i]+in[i])
	}
	memclear.Words(x[:])
}
