// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ottery

import (
	"errors"
	"fmt"
	"time"

	"github.com/decred/ottery/internal/cpucap"
	"github.com/decred/ottery/internal/entropy"
	"github.com/decred/ottery/internal/prf"
)

// maxBytesPerSeed is the amount of output produced under a single seed
// before fresh entropy is stirred in.
const maxBytesPerSeed = 4 * 1024 * 1024 // 4 MiB

// SourceFlags describes entropy sources and the properties of the entropy
// they provide.
type SourceFlags = entropy.Flags

// These constants identify the entropy source properties and sources that
// may be reported by a generator or disabled through Config.
const (
	// SourceStrong marks sources that probably provide strong entropy.
	SourceStrong = entropy.FlagStrong

	// SourceFast marks sources that run very quickly.
	SourceFast = entropy.FlagFast

	// DomainOS, DomainCPU and DomainEGD identify where the entropy of a
	// source comes from.
	DomainOS  = entropy.DomOS
	DomainCPU = entropy.DomCPU
	DomainEGD = entropy.DomEGD

	// SourceGetRandom is the Linux getrandom system call.
	SourceGetRandom = entropy.SrcGetRandom

	// SourceRandomDev is the /dev/urandom device or its configured
	// replacement.
	SourceRandomDev = entropy.SrcRandomDev

	// SourceCryptoRand is the Go runtime crypto/rand reader.
	SourceCryptoRand = entropy.SrcCryptoRand

	// SourceRDRAND is the x86 RDRAND instruction.
	SourceRDRAND = entropy.SrcRDRAND

	// SourceEGD is an entropy gathering daemon.
	SourceEGD = entropy.SrcEGD

	// AllSources selects every individual source.
	AllSources = entropy.AllSources
)

// CPUCaps is a set of optional CPU capabilities used to select a PRF.
type CPUCaps = cpucap.Caps

// These constants identify the CPU capabilities a PRF may require.
const (
	CPUCapSIMD  = cpucap.SIMD
	CPUCapSSSE3 = cpucap.SSSE3
	CPUCapAES   = cpucap.AES
	CPUCapRand  = cpucap.Rand
)

// DisableCPUCapabilities prevents generators created after the call from
// using any capability in mask.  Capabilities are never re-enabled.
func DisableCPUCapabilities(mask CPUCaps) {
	cpucap.Disable(mask)
}

// PRFNames returns the names of every PRF implementation that may be
// requested with Config.PRF.
func PRFNames() []string {
	return prf.Names()
}

// Config describes how a generator is constructed.  The zero value selects
// the best PRF for the running CPU and every available entropy source.
type Config struct {
	// PRF names the PRF to use, either as an algorithm such as "chacha20"
	// or as an algorithm and implementation such as "chacha20/portable".
	// The best available PRF is used when empty.
	PRF string

	// URandomDevice overrides the path of the random device.
	URandomDevice string

	// DisabledSources prevents the use of any entropy source with any of
	// these flags set.
	DisabledSources SourceFlags

	// EGDNetwork and EGDAddress locate an entropy gathering daemon to use
	// in addition to the other sources.  It is not used when the address
	// is empty.
	EGDNetwork string
	EGDAddress string

	// EGDTimeout bounds each exchange with the entropy gathering daemon.
	EGDTimeout time.Duration

	// StirAfter is the number of PRF blocks produced under one seed before
	// fresh entropy is stirred in.  It defaults to the number of blocks
	// that make up 4 MiB of output.
	StirAfter uint32

	// manualPRF replaces PRF selection entirely when set.
	manualPRF *prf.Descriptor
}

// setManualPRF forces the use of d regardless of the capabilities of the
// CPU.
func (cfg *Config) setManualPRF(d prf.Descriptor) {
	cfg.manualPRF = &d
}

// entropyConfig returns the entropy source settings of the configuration.
func (cfg *Config) entropyConfig() entropy.Config {
	return entropy.Config{
		URandomDevice: cfg.URandomDevice,
		EGDNetwork:    cfg.EGDNetwork,
		EGDAddress:    cfg.EGDAddress,
		EGDTimeout:    cfg.EGDTimeout,
		Disabled:      cfg.DisabledSources,
	}
}

// selectPRF returns the PRF the configuration asks for.  An invalid PRF is
// fatal.
func (cfg *Config) selectPRF() (prf.Descriptor, error) {
	caps := cpucap.Probe()
	override := cfg.manualPRF
	if override == nil && cfg.PRF != "" {
		d, err := prf.Lookup(cfg.PRF, caps)
		switch {
		case errors.Is(err, prf.ErrUnknownPRF):
			str := fmt.Sprintf("unknown prf %q, known prfs are %v", cfg.PRF,
				prf.Names())
			return prf.Descriptor{}, makeError(ErrUnknownPRF, str)

		case errors.Is(err, prf.ErrUnsupportedPRF):
			return prf.Descriptor{}, makeError(ErrUnsupportedPRF, err.Error())

		case err != nil:
			fatal(makeError(ErrInvalidPRF, err.Error()))
		}
		override = &d
	}

	d, err := prf.Select(caps, override)
	switch {
	case errors.Is(err, prf.ErrUnsupportedPRF):
		return prf.Descriptor{}, makeError(ErrUnsupportedPRF, err.Error())

	case err != nil:
		fatal(makeError(ErrInvalidPRF, err.Error()))
	}
	return d, nil
}

// stirAfter returns the stir threshold in blocks of the PRF d.
func (cfg *Config) stirAfter(d *prf.Descriptor) uint32 {
	if cfg.StirAfter != 0 {
		return cfg.StirAfter
	}
	return uint32(maxBytesPerSeed / d.OutputLen)
}
