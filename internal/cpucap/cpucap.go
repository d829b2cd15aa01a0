// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cpucap reports the optional CPU features that select between PRF
// implementations and the hardware entropy source.
package cpucap

import (
	"strings"
	"sync/atomic"

	"github.com/klauspost/cpuid/v2"
)

// Caps is a bitmask of CPU capabilities.
type Caps uint32

// These constants define the individual capabilities.
const (
	// SIMD indicates baseline vector instructions (SSE2 or ARM ASIMD).
	SIMD Caps = 1 << iota

	// SSSE3 indicates supplemental SSE3 byte shuffles.
	SSSE3

	// AES indicates hardware AES rounds (AES-NI or the ARMv8 AES
	// extension).
	AES

	// Rand indicates the RDRAND hardware random number instruction.
	Rand

	// All is every capability known to this package.
	All = SIMD | SSSE3 | AES | Rand
)

var capNames = []struct {
	cap  Caps
	name string
}{
	{SIMD, "simd"},
	{SSSE3, "ssse3"},
	{AES, "aes"},
	{Rand, "rand"},
}

// String returns the capabilities as a '|' separated list of names.
func (c Caps) String() string {
	if c == 0 {
		return "none"
	}
	var names []string
	for _, cn := range capNames {
		if c&cn.cap != 0 {
			names = append(names, cn.name)
		}
	}
	if unknown := c &^ All; unknown != 0 {
		names = append(names, "unknown")
	}
	return strings.Join(names, "|")
}

// Parse returns the capability with the given name as reported by String.
func Parse(name string) (Caps, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, cn := range capNames {
		if cn.name == name {
			return cn.cap, true
		}
	}
	return 0, false
}

// detected holds the capabilities of the running CPU.  It never changes after
// package initialization.
var detected = detect()

// disabled holds the capabilities that have been forced off.  Bits are only
// ever added.
var disabled atomic.Uint32

func detect() Caps {
	var caps Caps
	if cpuid.CPU.Supports(cpuid.SSE2) || cpuid.CPU.Supports(cpuid.ASIMD) {
		caps |= SIMD
	}
	if cpuid.CPU.Supports(cpuid.SSSE3) {
		caps |= SSSE3
	}
	if cpuid.CPU.Supports(cpuid.AESNI) || cpuid.CPU.Supports(cpuid.AESARM) {
		caps |= AES
	}
	if cpuid.CPU.Supports(cpuid.RDRAND) {
		caps |= Rand
	}
	return caps
}

// Probe returns the capabilities of the running CPU less any that were
// disabled.
func Probe() Caps {
	return detected &^ Caps(disabled.Load())
}

// Disable permanently removes the capabilities in mask from future Probe
// results.  Later calls further restrict the set; capabilities are never
// re-enabled.
func Disable(mask Caps) {
	for {
		old := disabled.Load()
		if disabled.CompareAndSwap(old, old|uint32(mask)) {
			return
		}
	}
}
