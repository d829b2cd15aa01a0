// Copyright (c) 2024-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ottery

import (
	"io"
	"math/big"
	"sync"
	"time"
)

// defaultGenerator returns the process-wide generator, creating it on first
// use so capabilities disabled during program initialization are honored.
var defaultGenerator = sync.OnceValue(func() *Generator {
	g, err := New(nil)
	if err != nil {
		// The zero Config always has the crypto/rand source available.
		panic(err)
	}
	return g
})

// Reader returns the default generator.  The returned Reader is safe for
// concurrent access and reads from it never fail.
func Reader() io.Reader {
	return defaultGenerator()
}

// Read fills b with random bytes obtained from the default generator.
func Read(b []byte) {
	defaultGenerator().RandomBytes(b)
}

// Reseed stirs fresh entropy into the default generator.
func Reseed() {
	defaultGenerator().Reseed()
}

// AddSeed mixes b along with fresh entropy into the default generator.
func AddSeed(b []byte) {
	defaultGenerator().AddSeed(b)
}

// PreventBacktracking ensures a later compromise of the default generator
// cannot reveal output it produced before the call.
func PreventBacktracking() {
	defaultGenerator().PreventBacktracking()
}

// Uint32 returns a uniform random uint32.
func Uint32() uint32 {
	return defaultGenerator().Uint32()
}

// Uint64 returns a uniform random uint64.
func Uint64() uint64 {
	return defaultGenerator().Uint64()
}

// Uint32N returns a uniform random uint32 in [0,n).
// Panics if n == 0.
func Uint32N(n uint32) uint32 {
	return defaultGenerator().Uint32N(n)
}

// Uint64N returns a uniform random uint64 in [0,n).
// Panics if n == 0.
func Uint64N(n uint64) uint64 {
	return defaultGenerator().Uint64N(n)
}

// Range returns a uniform random uint32 in [0,top].
func Range(top uint32) uint32 {
	return defaultGenerator().Range(top)
}

// Range64 returns a uniform random uint64 in [0,top].
func Range64(top uint64) uint64 {
	return defaultGenerator().Range64(top)
}

// Int32 returns a uniform random non-negative int32.
func Int32() int32 {
	return defaultGenerator().Int32()
}

// Int32N returns a uniform random int32 in [0,n).
// Panics if n <= 0.
func Int32N(n int32) int32 {
	return defaultGenerator().Int32N(n)
}

// Int64 returns a uniform random non-negative int64.
func Int64() int64 {
	return defaultGenerator().Int64()
}

// Int64N returns a uniform random int64 in [0,n).
// Panics if n <= 0.
func Int64N(n int64) int64 {
	return defaultGenerator().Int64N(n)
}

// Int returns a uniform random non-negative int.
func Int() int {
	return defaultGenerator().Int()
}

// IntN returns a uniform random int in [0,n).
// Panics if n <= 0.
func IntN(n int) int {
	return defaultGenerator().IntN(n)
}

// UintN returns a uniform random uint in [0,n).
// Panics if n == 0.
func UintN(n uint) uint {
	return defaultGenerator().UintN(n)
}

// Duration returns a uniform random duration in [0,n).
// Panics if n <= 0.
func Duration(n time.Duration) time.Duration {
	return defaultGenerator().Duration(n)
}

// Shuffle randomizes the order of n elements by swapping the elements at
// indexes i and j.  The generator is not locked while swap runs, so swap may
// use it.
// Panics if n < 0.
func Shuffle(n int, swap func(i, j int)) {
	defaultGenerator().Shuffle(n, swap)
}

// ShuffleSlice randomizes the order of the elements of s.
func ShuffleSlice[T any](s []T) {
	defaultGenerator().Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}

// BigInt returns a uniform random value in [0,max).
// Panics if max <= 0.
func BigInt(max *big.Int) *big.Int {
	return defaultGenerator().BigInt(max)
}
