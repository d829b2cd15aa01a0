// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package prf defines the pseudorandom functions a generator can be built
// on and selects among their implementations.
//
// Every PRF maps a secret state of StateBytes seed bytes and a 32-bit block
// counter to OutputLen bytes of output that cannot be distinguished from
// random without knowledge of the state.  Implementations of the same
// algorithm produce identical output for identical seeds and counters.
package prf

import (
	"fmt"

	"github.com/decred/ottery/internal/cpucap"
)

const (
	// MaxStateLen is the largest state buffer any PRF may use.
	MaxStateLen = 256

	// MaxStateBytes is the largest seed any PRF may consume.
	MaxStateBytes = 64

	// MaxOutputLen is the largest block any PRF may produce per call.
	MaxOutputLen = 1024
)

// Func is the computation behind a PRF.  Implementations keep no state of
// their own; everything secret lives in the state buffer owned by the
// caller.
type Func interface {
	// Setup initializes state, which is StateLen bytes, from seed, which is
	// StateBytes fresh random bytes.
	Setup(state, seed []byte)

	// Generate writes OutputLen bytes for block counter idx to out.
	Generate(state, out []byte, idx uint32)
}

// Descriptor describes one implementation of a PRF algorithm.  Descriptors
// are plain values and are copied into each generator.
type Descriptor struct {
	// Name is the algorithm, Impl the implementation and Flavor the variant
	// of that implementation.
	Name   string
	Impl   string
	Flavor string

	// StateLen is the number of bytes of state the PRF needs.
	StateLen int

	// StateBytes is the number of random bytes consumed by Setup.
	StateBytes int

	// OutputLen is the number of bytes produced by each Generate call.
	OutputLen int

	// RequiredCPUCap are the CPU capabilities the implementation needs.
	RequiredCPUCap cpucap.Caps

	Func Func
}

// String returns the full name of the descriptor.
func (d *Descriptor) String() string {
	return d.Name + "/" + d.Impl + "/" + d.Flavor
}

// Validate returns an error when the descriptor violates the size
// invariants of a PRF.
func (d *Descriptor) Validate() error {
	var problem string
	switch {
	case d.Func == nil:
		problem = "has no implementation"
	case d.OutputLen <= 0 || d.OutputLen > MaxOutputLen:
		problem = fmt.Sprintf("output length %d is outside (0, %d]",
			d.OutputLen, MaxOutputLen)
	case d.StateLen <= 0 || d.StateLen > MaxStateLen:
		problem = fmt.Sprintf("state length %d is outside (0, %d]",
			d.StateLen, MaxStateLen)
	case d.StateBytes <= 0 || d.StateBytes > MaxStateBytes:
		problem = fmt.Sprintf("seed length %d is outside (0, %d]",
			d.StateBytes, MaxStateBytes)
	case d.StateBytes > d.StateLen:
		problem = fmt.Sprintf("seed length %d exceeds state length %d",
			d.StateBytes, d.StateLen)
	case d.StateBytes > d.OutputLen:
		problem = fmt.Sprintf("seed length %d exceeds output length %d",
			d.StateBytes, d.OutputLen)
	default:
		return nil
	}
	str := fmt.Sprintf("prf %s %s", d, problem)
	return makeError(ErrInvalidDescriptor, str)
}
