// Copyright (c) 2024-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ottery

import (
	"encoding/binary"
	"math"
	"math/big"
	"math/bits"
	"time"

	"github.com/decred/ottery/internal/memclear"
)

// The integer helpers take the lock once per call and draw every word they
// need, including rejected ones, straight from the output buffer.

// word32 returns the next four bytes of output as a uint32.  The lock must
// be held.
func (s *state[L, PL]) word32() uint32 {
	var b [4]byte
	s.fill(b[:])
	return binary.LittleEndian.Uint32(b[:])
}

// word64 returns the next eight bytes of output as a uint64.  The lock must
// be held.
func (s *state[L, PL]) word64() uint64 {
	var b [8]byte
	s.fill(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

// below32 returns a uniform value in [0,n) for a non-zero n.  The lock must
// be held.
//
// The result is the high half of the 64-bit product of a random word and n.
// A product whose low half is under 2^32 mod n is drawn again, leaving
// exactly floor(2^32/n) words for every result.
func (s *state[L, PL]) below32(n uint32) uint32 {
	if n&(n-1) == 0 {
		return s.word32() & (n - 1)
	}
	prod := uint64(s.word32()) * uint64(n)
	if low := uint32(prod); low < n {
		// 2^32 mod n is always less than n, so the division is only
		// needed when the low half is small.
		thresh := -n % n
		for low < thresh {
			prod = uint64(s.word32()) * uint64(n)
			low = uint32(prod)
		}
	}
	return uint32(prod >> 32)
}

// below64 is the 64-bit version of below32.  The lock must be held.
func (s *state[L, PL]) below64(n uint64) uint64 {
	if n&(n-1) == 0 {
		return s.word64() & (n - 1)
	}
	if n <= math.MaxUint32 {
		return uint64(s.below32(uint32(n)))
	}
	hi, lo := bits.Mul64(s.word64(), n)
	if lo < n {
		thresh := -n % n
		for lo < thresh {
			hi, lo = bits.Mul64(s.word64(), n)
		}
	}
	return hi
}

// Uint32 returns a uniform random uint32.
func (s *state[L, PL]) Uint32() uint32 {
	s.lock()
	defer s.unlock()

	return s.word32()
}

// Uint64 returns a uniform random uint64.
func (s *state[L, PL]) Uint64() uint64 {
	s.lock()
	defer s.unlock()

	return s.word64()
}

// Uint32N returns a uniform random uint32 in [0,n).
// Panics if n == 0.
func (s *state[L, PL]) Uint32N(n uint32) uint32 {
	if n == 0 {
		panic("ottery: invalid argument to Uint32N")
	}

	s.lock()
	defer s.unlock()

	return s.below32(n)
}

// Uint64N returns a uniform random uint64 in [0,n).
// Panics if n == 0.
func (s *state[L, PL]) Uint64N(n uint64) uint64 {
	if n == 0 {
		panic("ottery: invalid argument to Uint64N")
	}

	s.lock()
	defer s.unlock()

	return s.below64(n)
}

// Range returns a uniform random uint32 in [0,top].  Unlike Uint32N, the
// upper bound is included, so every top is valid.
func (s *state[L, PL]) Range(top uint32) uint32 {
	s.lock()
	defer s.unlock()

	if top == math.MaxUint32 {
		return s.word32()
	}
	return s.below32(top + 1)
}

// Range64 returns a uniform random uint64 in [0,top].
func (s *state[L, PL]) Range64(top uint64) uint64 {
	s.lock()
	defer s.unlock()

	if top == math.MaxUint64 {
		return s.word64()
	}
	return s.below64(top + 1)
}

// Int32 returns a uniform random non-negative int32.
func (s *state[L, PL]) Int32() int32 {
	s.lock()
	defer s.unlock()

	return int32(s.word32() >> 1)
}

// Int32N returns a uniform random int32 in [0,n).
// Panics if n <= 0.
func (s *state[L, PL]) Int32N(n int32) int32 {
	if n <= 0 {
		panic("ottery: invalid argument to Int32N")
	}

	s.lock()
	defer s.unlock()

	return int32(s.below32(uint32(n)))
}

// Int64 returns a uniform random non-negative int64.
func (s *state[L, PL]) Int64() int64 {
	s.lock()
	defer s.unlock()

	return int64(s.word64() >> 1)
}

// Int64N returns a uniform random int64 in [0,n).
// Panics if n <= 0.
func (s *state[L, PL]) Int64N(n int64) int64 {
	if n <= 0 {
		panic("ottery: invalid argument to Int64N")
	}

	s.lock()
	defer s.unlock()

	return int64(s.below64(uint64(n)))
}

// Int returns a uniform random non-negative int.
func (s *state[L, PL]) Int() int {
	s.lock()
	defer s.unlock()

	return int(uint(s.word64()) >> 1)
}

// IntN returns a uniform random int in [0,n).
// Panics if n <= 0.
func (s *state[L, PL]) IntN(n int) int {
	if n <= 0 {
		panic("ottery: invalid argument to IntN")
	}

	s.lock()
	defer s.unlock()

	return int(s.below64(uint64(n)))
}

// UintN returns a uniform random uint in [0,n).
// Panics if n == 0.
func (s *state[L, PL]) UintN(n uint) uint {
	if n == 0 {
		panic("ottery: invalid argument to UintN")
	}

	s.lock()
	defer s.unlock()

	return uint(s.below64(uint64(n)))
}

// Duration returns a uniform random duration in [0,n).
// Panics if n <= 0.
func (s *state[L, PL]) Duration(n time.Duration) time.Duration {
	if n <= 0 {
		panic("ottery: invalid argument to Duration")
	}

	s.lock()
	defer s.unlock()

	return time.Duration(s.below64(uint64(n)))
}

// Shuffle randomizes the order of n elements with a Fisher-Yates shuffle,
// calling swap to exchange the elements at indexes i and j.  The lock is
// released while swap runs, so swap may use the generator.
// Panics if n < 0.
func (s *state[L, PL]) Shuffle(n int, swap func(i, j int)) {
	if n < 0 {
		panic("ottery: invalid argument to Shuffle")
	}

	for i := n - 1; i > 0; i-- {
		var j int
		if uint64(i) < math.MaxUint32 {
			j = int(s.Uint32N(uint32(i + 1)))
		} else {
			j = int(s.Uint64N(uint64(i) + 1))
		}
		swap(i, j)
	}
}

// BigInt returns a uniform random value in [0,max).
// Panics if max <= 0.
func (s *state[L, PL]) BigInt(max *big.Int) *big.Int {
	if max.Sign() <= 0 {
		panic("ottery: invalid argument to BigInt")
	}

	n := new(big.Int).Sub(max, big.NewInt(1))
	bitLen := n.BitLen()
	if bitLen == 0 {
		return n
	}

	// Candidates have exactly the bit length of max-1, so each one is
	// accepted with probability above one half.
	buf := make([]byte, (bitLen+7)/8)
	defer memclear.Bytes(buf)
	topMask := byte(0xff >> (8*len(buf) - bitLen))

	s.lock()
	defer s.unlock()

	for {
		s.fill(buf)
		buf[0] &= topMask
		n.SetBytes(buf)
		if n.Cmp(max) < 0 {
			return n
		}
	}
}
