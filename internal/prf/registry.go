// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package prf

import (
	"fmt"
	"strings"

	"github.com/decred/ottery/internal/cpucap"
)

// Descriptors for every known implementation.
var (
	chacha8Portable = Descriptor{
		Name:       "chacha8",
		Impl:       "portable",
		Flavor:     "generic",
		StateLen:   64,
		StateBytes: chachaSeedSize,
		OutputLen:  chachaOutputLen,
		Func:       chachaPortable{rounds: 8},
	}

	chacha12Portable = Descriptor{
		Name:       "chacha12",
		Impl:       "portable",
		Flavor:     "generic",
		StateLen:   64,
		StateBytes: chachaSeedSize,
		OutputLen:  chachaOutputLen,
		Func:       chachaPortable{rounds: 12},
	}

	chacha20Portable = Descriptor{
		Name:       "chacha20",
		Impl:       "portable",
		Flavor:     "generic",
		StateLen:   64,
		StateBytes: chachaSeedSize,
		OutputLen:  chachaOutputLen,
		Func:       chachaPortable{rounds: 20},
	}

	chacha20Accel = Descriptor{
		Name:           "chacha20",
		Impl:           "xcrypto",
		Flavor:         "simd",
		StateLen:       chachaSeedSize,
		StateBytes:     chachaSeedSize,
		OutputLen:      chachaOutputLen,
		RequiredCPUCap: cpucap.SIMD,
		Func:           chacha20XCrypto{},
	}

	salsa20Accel = Descriptor{
		Name:       "salsa20",
		Impl:       "xcrypto",
		Flavor:     "generic",
		StateLen:   chachaSeedSize,
		StateBytes: chachaSeedSize,
		OutputLen:  chachaOutputLen,
		Func:       salsa20XCrypto{},
	}

	blake3XOF = Descriptor{
		Name:       "blake3",
		Impl:       "lukechampine",
		Flavor:     "generic",
		StateLen:   blake3KeySize,
		StateBytes: blake3KeySize,
		OutputLen:  blake3OutputLen,
		Func:       blake3Keyed{},
	}

	blake2xbXOF = Descriptor{
		Name:       "blake2xb",
		Impl:       "xcrypto",
		Flavor:     "generic",
		StateLen:   blake2xKeySize,
		StateBytes: blake2xKeySize,
		OutputLen:  blake2xOutputLen,
		Func:       blake2xb{},
	}

	aes256CTRAccel = Descriptor{
		Name:           "aes256-ctr",
		Impl:           "stdlib",
		Flavor:         "aesni",
		StateLen:       aesSeedSize,
		StateBytes:     aesSeedSize,
		OutputLen:      aesOutputLen,
		RequiredCPUCap: cpucap.AES,
		Func:           aes256CTR{},
	}

	hmacBlake256CTR = Descriptor{
		Name:       "hmac-blake256",
		Impl:       "dcrd",
		Flavor:     "generic",
		StateLen:   hmacBlake256KeySize,
		StateBytes: hmacBlake256KeySize,
		OutputLen:  hmacBlake256OutputLen,
		Func:       hmacBlake256{},
	}
)

// registry lists the implementations considered for automatic selection,
// from most to least specialized.  The final entry requires no CPU
// capabilities.
var registry = [...]Descriptor{
	chacha20Accel,
	chacha20Portable,
}

// catalog lists every implementation that may be chosen explicitly.  For a
// given algorithm the preferred implementation comes first.
var catalog = [...]Descriptor{
	chacha20Accel,
	chacha20Portable,
	chacha12Portable,
	chacha8Portable,
	salsa20Accel,
	blake3XOF,
	blake2xbXOF,
	aes256CTRAccel,
	hmacBlake256CTR,
}

// satisfied returns whether caps include every capability the descriptor
// requires.
func (d *Descriptor) satisfied(caps cpucap.Caps) bool {
	return d.RequiredCPUCap&caps == d.RequiredCPUCap
}

// Select returns the PRF to use for a CPU with the provided capabilities.
//
// A non-nil override is returned as is, regardless of capabilities, once it
// is verified to satisfy the size invariants.  Otherwise the first registry
// entry whose required capabilities are all present is returned.
func Select(caps cpucap.Caps, override *Descriptor) (Descriptor, error) {
	if override != nil {
		if err := override.Validate(); err != nil {
			return Descriptor{}, err
		}
		return *override, nil
	}

	for i := range registry {
		d := &registry[i]
		if !d.satisfied(caps) {
			continue
		}
		if err := d.Validate(); err != nil {
			return Descriptor{}, err
		}
		return *d, nil
	}

	str := fmt.Sprintf("no registered prf runs with cpu capabilities %v",
		caps)
	return Descriptor{}, makeError(ErrUnsupportedPRF, str)
}

// Lookup returns the implementation named by ident, which is either an
// algorithm name such as "chacha12" or an algorithm and implementation such
// as "chacha20/portable".
//
// An algorithm name resolves to its most preferred implementation that runs
// with caps.  An explicit implementation is returned regardless of caps.
func Lookup(ident string, caps cpucap.Caps) (Descriptor, error) {
	name, impl, explicit := strings.Cut(strings.ToLower(ident), "/")
	var known bool
	for i := range catalog {
		d := &catalog[i]
		if d.Name != name {
			continue
		}
		known = true
		if explicit && d.Impl != impl {
			continue
		}
		if !explicit && !d.satisfied(caps) {
			continue
		}
		return Select(caps, d)
	}

	if known && !explicit {
		str := fmt.Sprintf("no implementation of prf %q runs with cpu "+
			"capabilities %v", ident, caps)
		return Descriptor{}, makeError(ErrUnsupportedPRF, str)
	}
	str := fmt.Sprintf("unknown prf %q", ident)
	return Descriptor{}, makeError(ErrUnknownPRF, str)
}

// All returns every known implementation.
func All() []Descriptor {
	return append([]Descriptor(nil), catalog[:]...)
}

// Names returns the algorithm/implementation names of every known
// implementation.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for i := range catalog {
		names = append(names, catalog[i].Name+"/"+catalog[i].Impl)
	}
	return names
}
