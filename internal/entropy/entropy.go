// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package entropy gathers raw random bytes from the external randomness
// sources available to the process: the operating system, the CPU and an
// optional entropy gathering daemon.
//
// These sources are too slow to serve every request for random bytes, so
// they are only used to seed and stir a userspace generator.
package entropy

import (
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

const (
	// DefaultURandomDevice is the random device read when no override is
	// configured.
	DefaultURandomDevice = "/dev/urandom"

	// DefaultEGDTimeout bounds a whole exchange with an entropy gathering
	// daemon when no timeout is configured.
	DefaultEGDTimeout = 2 * time.Second
)

// Config holds the per-generator settings for the entropy sources.
type Config struct {
	// URandomDevice overrides the path of the random device.
	URandomDevice string

	// EGDNetwork and EGDAddress locate an entropy gathering daemon.  The
	// daemon is not used when the address is empty.  The network defaults
	// to "unix" for addresses containing a path separator and "tcp"
	// otherwise.
	EGDNetwork string
	EGDAddress string

	// EGDTimeout bounds the daemon exchange.
	EGDTimeout time.Duration

	// Disabled prevents the use of any source with any of these flags set.
	Disabled Flags
}

// source describes a single entropy source.
type source struct {
	name  string
	flags Flags

	// enabled reports whether the source can run with the configuration.
	// A nil func means the source is always available.
	enabled func(cfg *Config) bool

	// read fills buf with random bytes and returns how many were written.
	read func(cfg *Config, buf []byte) (int, error)
}

// eligible returns whether the source may be queried with the configuration
// and required flags.
func (s *source) eligible(cfg *Config, require Flags) bool {
	if s.flags&cfg.Disabled != 0 {
		return false
	}
	if s.flags&require != require {
		return false
	}
	return s.enabled == nil || s.enabled(cfg)
}

// sources lists the entropy sources in query order.
var sources = []source{{
	name:    "getrandom",
	flags:   SrcGetRandom | DomOS | FlagStrong | FlagFast,
	enabled: func(*Config) bool { return haveGetRandom },
	read:    readGetRandom,
}, {
	name:    "randomdev",
	flags:   SrcRandomDev | DomOS | FlagStrong,
	enabled: func(*Config) bool { return haveRandomDev },
	read:    readRandomDev,
}, {
	name:  "cryptorand",
	flags: SrcCryptoRand | DomOS | FlagStrong,
	read:  readCryptoRand,
}, {
	name:    "rdrand",
	flags:   SrcRDRAND | DomCPU | FlagFast,
	enabled: rdrandEnabled,
	read:    readRDRAND,
}, {
	name:    "egd",
	flags:   SrcEGD | DomEGD | FlagStrong,
	enabled: func(cfg *Config) bool { return cfg.EGDAddress != "" },
	read:    readEGD,
}}

// BufSize returns the buffer size needed to receive n bytes from every
// entropy source at once.  Read may use fewer.
func BufSize(n int) int {
	return n * len(sources)
}

// CheckConfig returns an error when no entropy source can run with the
// configuration.
func CheckConfig(cfg *Config) error {
	for i := range sources {
		if sources[i].eligible(cfg, 0) {
			return nil
		}
	}
	str := fmt.Sprintf("no entropy source is usable with disabled sources "+
		"%v", cfg.Disabled)
	return makeError(ErrNoEligibleSources, str)
}

// Read queries every enabled source whose flags include all of require, or
// every enabled source when require is zero, asking each for n bytes.  The
// bytes are appended to buf, which must be at least BufSize(n) long.  It
// returns the number of bytes written and the OR of the flags of every
// source that contributed.
//
// A source that fails is skipped.  An error is only returned when there are
// no eligible sources or all of them failed, in which case the contents of
// buf must not be treated as random.
func Read(cfg *Config, require Flags, buf []byte, n int) (int, Flags, error) {
	if need := BufSize(n); len(buf) < need {
		str := fmt.Sprintf("entropy buffer holds %d bytes, need %d",
			len(buf), need)
		return 0, 0, makeError(ErrBufferTooSmall, str)
	}

	var (
		used     int
		got      Flags
		eligible int
		failures *multierror.Error
	)
	for i := range sources {
		src := &sources[i]
		if !src.eligible(cfg, require) {
			continue
		}
		eligible++

		// One source per domain is enough.
		if got&src.flags&DomainMask != 0 {
			continue
		}

		nr, err := src.read(cfg, buf[used:used+n])
		if err == nil && nr <= 0 {
			err = makeError(ErrEmptyRead, "source returned no bytes")
		}
		if err != nil {
			log.Debugf("Entropy source %s failed: %v", src.name, err)
			failures = multierror.Append(failures,
				fmt.Errorf("%s: %w", src.name, err))
			continue
		}
		log.Tracef("Read %d bytes from entropy source %s", nr, src.name)
		used += nr
		got |= src.flags
	}

	switch {
	case eligible == 0:
		str := fmt.Sprintf("no entropy source matches required flags %v "+
			"with disabled sources %v", require, cfg.Disabled)
		return 0, 0, makeError(ErrNoEligibleSources, str)

	case used == 0:
		failures.ErrorFormat = joinErrors
		str := fmt.Sprintf("all %d eligible entropy sources failed: %v",
			eligible, failures)
		return 0, 0, makeError(ErrAllSourcesFailed, str)
	}

	return used, got, nil
}

// joinErrors formats aggregated source failures on a single line.
func joinErrors(errs []error) string {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "; ")
}
