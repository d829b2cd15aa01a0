// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entropy

import "strings"

// Flags describes entropy sources.  The low byte holds quality flags, the
// second byte the domain a source draws from, and the upper bits identify
// the individual sources.
type Flags uint32

// Quality flags.
const (
	// FlagStrong marks a source that probably provides strong entropy.
	FlagStrong Flags = 0x000001

	// FlagFast marks a source that runs very quickly.
	FlagFast Flags = 0x000002
)

// Entropy domains.  Sources in the same domain share an underlying
// generator, so once one of them contributes the others are skipped.
const (
	// DomOS is randomness provided by the operating system.
	DomOS Flags = 0x000100

	// DomCPU is randomness provided by the CPU.
	DomCPU Flags = 0x000200

	// DomEGD is randomness provided by an entropy gathering daemon.
	DomEGD Flags = 0x000400

	// DomainMask selects the domain bits.
	DomainMask Flags = 0x00ff00
)

// Individual sources.
const (
	// SrcRandomDev is a unix-style /dev/urandom device.
	SrcRandomDev Flags = 0x0010000

	// SrcCryptoRand is the Go runtime crypto/rand reader.
	SrcCryptoRand Flags = 0x0020000

	// SrcRDRAND is the x86 RDRAND instruction.
	SrcRDRAND Flags = 0x0040000

	// SrcEGD is an entropy gathering daemon.
	SrcEGD Flags = 0x0080000

	// SrcGetRandom is the Linux getrandom system call.
	SrcGetRandom Flags = 0x0100000

	// AllSources selects every source bit.
	AllSources Flags = 0x0fff0000
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagStrong, "strong"},
	{FlagFast, "fast"},
	{DomOS, "os"},
	{DomCPU, "cpu"},
	{DomEGD, "egd-domain"},
	{SrcRandomDev, "randomdev"},
	{SrcCryptoRand, "cryptorand"},
	{SrcRDRAND, "rdrand"},
	{SrcEGD, "egd"},
	{SrcGetRandom, "getrandom"},
}

// String returns the flags as a '|' separated list of names.
func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	var known Flags
	for _, fn := range flagNames {
		known |= fn.flag
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	if f&^known != 0 {
		names = append(names, "unknown")
	}
	return strings.Join(names, "|")
}

// ParseSource returns the source flag for the named entropy source.
func ParseSource(name string) (Flags, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i := range sources {
		if sources[i].name == name {
			return sources[i].flags & AllSources, true
		}
	}
	return 0, false
}

// SourceNames returns the names of all entropy sources in query order.
func SourceNames() []string {
	names := make([]string, 0, len(sources))
	for i := range sources {
		names = append(names, sources[i].name)
	}
	return names
}
