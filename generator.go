// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ottery

import "sync"

// Generator is a cryptographically secure pseudorandom number generator
// capable of generating random bytes and integers.  Generator methods are
// safe for concurrent access.
//
// The zero value is a generator using the zero Config.  A Generator must not
// be copied after first use.
type Generator struct {
	state[sync.Mutex, *sync.Mutex]
}

// New returns a generator described by cfg, or by the zero Config when cfg
// is nil.  The generator is seeded on first use.
//
// An error of type Error is returned when the configuration cannot be
// satisfied.
func New(cfg *Config) (*Generator, error) {
	g := new(Generator)
	if err := g.configure(cfg); err != nil {
		return nil, err
	}
	return g, nil
}

// nopLocker is a sync.Locker that does nothing.
type nopLocker struct{}

func (nopLocker) Lock()   {}
func (nopLocker) Unlock() {}

// NoLockGenerator is a Generator without locking.  NoLockGenerator methods
// are not safe for concurrent access.  The zero value is ready to use.
type NoLockGenerator struct {
	state[nopLocker, *nopLocker]
}

// NewNoLock returns a generator described by cfg that must only be used by
// one goroutine at a time.  See New.
func NewNoLock(cfg *Config) (*NoLockGenerator, error) {
	g := new(NoLockGenerator)
	if err := g.configure(cfg); err != nil {
		return nil, err
	}
	return g, nil
}
