// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ottery

import (
	"fmt"
	"os"
	"sync"

	"github.com/decred/ottery/internal/entropy"
	"github.com/decred/ottery/internal/memclear"
	"github.com/decred/ottery/internal/prf"
)

// stateMagic marks a state that completed seeding.
const stateMagic = 0x11b07734

var (
	// readEntropy obtains seed material from the entropy sources.
	readEntropy = entropy.Read

	// getpid returns the id of the running process.
	getpid = os.Getpid
)

// lockerPtr constrains a lock type L whose pointer is a sync.Locker, which
// lets the lock live inside the state so the zero state is usable.
type lockerPtr[L any] interface {
	*L
	sync.Locker
}

// state is a generator over a PRF.  The lock mu guards every field and is
// held for the whole of each operation.
//
// Whenever the state is seeded, pos is the index of the next unread byte of
// buffer.  pos equal to the PRF output length means the buffer has been
// consumed and every byte of it erased.
//
// A state without a PRF configures itself from the zero Config when it is
// first seeded.
type state[L any, PL lockerPtr[L]] struct {
	buffer   [prf.MaxOutputLen]byte
	prfState [prf.MaxStateLen]byte
	prf      prf.Descriptor

	// blockCounter is the counter of the next block to generate.  A stir
	// happens before generating block stirAfter.
	blockCounter uint32
	stirAfter    uint32
	pos          int

	magic uint32
	pid   int

	// entropySrcFlags accumulates the flags of every entropy read that
	// influenced the state while lastOSRNGFlags holds those of the most
	// recent one.
	entropySrcFlags entropy.Flags
	lastOSRNGFlags  entropy.Flags
	osrngConfig     entropy.Config

	mu L
}

// lock acquires the lock of the state.
func (s *state[L, PL]) lock() {
	PL(&s.mu).Lock()
}

// unlock releases the lock of the state.
func (s *state[L, PL]) unlock() {
	PL(&s.mu).Unlock()
}

// configure prepares an unseeded state from the configuration.  No entropy
// is read until the first request for output.
func (s *state[L, PL]) configure(cfg *Config) error {
	if cfg == nil {
		cfg = &Config{}
	}
	osrngConfig := cfg.entropyConfig()
	if err := entropy.CheckConfig(&osrngConfig); err != nil {
		return makeError(ErrNoEntropySources, err.Error())
	}
	d, err := cfg.selectPRF()
	if err != nil {
		return err
	}

	s.prf = d
	s.stirAfter = cfg.stirAfter(&d)
	s.osrngConfig = osrngConfig
	log.Debugf("Using prf %s, stirring after %d blocks", d.String(),
		s.stirAfter)
	return nil
}

// seeded returns whether the state was seeded in the running process.
func (s *state[L, PL]) seeded() bool {
	return s.magic == stateMagic && s.pid == getpid()
}

// gatherEntropy folds fresh entropy into seed, which must be StateBytes
// long, and returns the flags of the sources that provided it.  Failing to
// obtain enough entropy is fatal.
func (s *state[L, PL]) gatherEntropy(seed []byte) entropy.Flags {
	want := len(seed)
	buf := make([]byte, entropy.BufSize(want))
	defer memclear.Bytes(buf)

	n, flags, err := readEntropy(&s.osrngConfig, 0, buf, want)
	if err != nil {
		str := fmt.Sprintf("unable to obtain entropy: %v", err)
		fatal(makeError(ErrEntropyExhausted, str))
	}
	if n < want {
		str := fmt.Sprintf("entropy sources provided %d bytes, need %d", n,
			want)
		fatal(makeError(ErrEntropyExhausted, str))
	}
	fold(seed, buf[:n])
	return flags
}

// fold XORs every byte of src into dst, wrapping around dst as needed.
func fold(dst, src []byte) {
	for i, b := range src {
		dst[i%len(dst)] ^= b
	}
}

// setup initializes the PRF state from seed and discards any buffered
// output.  The seed is erased.
func (s *state[L, PL]) setup(seed []byte) {
	memclear.Bytes(s.prfState[:])
	s.prf.Func.Setup(s.prfState[:s.prf.StateLen], seed)
	memclear.Bytes(seed)
	memclear.Bytes(s.buffer[:])
	s.blockCounter = 0
	s.pos = s.prf.OutputLen
}

// seed replaces the state with one derived from fresh entropy alone.
func (s *state[L, PL]) seed() {
	if s.prf.Func == nil {
		// The zero Config always has the crypto/rand source available.
		if err := s.configure(nil); err != nil {
			fatal(err)
		}
	}

	var seed [prf.MaxStateBytes]byte
	flags := s.gatherEntropy(seed[:s.prf.StateBytes])
	s.setup(seed[:s.prf.StateBytes])

	s.magic = stateMagic
	s.pid = getpid()
	s.entropySrcFlags |= flags
	s.lastOSRNGFlags = flags
	log.Debugf("Seeded %s generator from %v", s.prf.Name, flags)
}

// stir mixes fresh entropy and extra into the state.  The new seed is the
// folded entropy XORed with a block of the current state that was never
// used for output, so the result is at least as strong as either input.
func (s *state[L, PL]) stir(extra []byte) {
	var seed [prf.MaxStateBytes]byte
	var mix [prf.MaxOutputLen]byte
	defer memclear.Bytes(mix[:])

	n := s.prf.StateBytes
	flags := s.gatherEntropy(seed[:n])
	if len(extra) > 0 {
		fold(seed[:n], extra)
	}
	s.prf.Func.Generate(s.prfState[:s.prf.StateLen],
		mix[:s.prf.OutputLen], s.blockCounter)
	for i := 0; i < n; i++ {
		seed[i] ^= mix[i]
	}
	s.setup(seed[:n])

	s.entropySrcFlags |= flags
	s.lastOSRNGFlags = flags
	log.Debugf("Stirred %s generator with entropy from %v", s.prf.Name,
		flags)
}

// generate writes the next block of output to out, stirring first when the
// block counter has reached the threshold.
func (s *state[L, PL]) generate(out []byte) {
	if s.blockCounter >= s.stirAfter {
		s.stir(nil)
	}
	s.prf.Func.Generate(s.prfState[:s.prf.StateLen], out, s.blockCounter)
	s.blockCounter++
}

// fill writes len(dst) bytes of output to dst, seeding first when needed.
// The lock must be held.
//
// Whole blocks needed while the buffer is empty are generated directly into
// dst.  That consumes the same counter values, and yields the same bytes, as
// reading them through the buffer.
func (s *state[L, PL]) fill(dst []byte) {
	if !s.seeded() {
		s.seed()
	}

	outLen := s.prf.OutputLen
	for len(dst) > 0 {
		if s.pos == outLen {
			if len(dst) >= outLen {
				s.generate(dst[:outLen])
				dst = dst[outLen:]
				continue
			}
			s.generate(s.buffer[:outLen])
			s.pos = 0
		}

		n := copy(dst, s.buffer[s.pos:outLen])
		memclear.Bytes(s.buffer[s.pos : s.pos+n])
		s.pos += n
		dst = dst[n:]
	}
}

// Read fills p with random bytes.  It always fills all of p and never
// returns an error.  It implements io.Reader.
func (s *state[L, PL]) Read(p []byte) (int, error) {
	s.RandomBytes(p)
	return len(p), nil
}

// RandomBytes fills p with random bytes.
func (s *state[L, PL]) RandomBytes(p []byte) {
	s.lock()
	defer s.unlock()

	s.fill(p)
}

// Reseed immediately stirs fresh entropy into the generator, or seeds it
// when it has not been seeded yet.
func (s *state[L, PL]) Reseed() {
	s.lock()
	defer s.unlock()

	if !s.seeded() {
		s.seed()
		return
	}
	s.stir(nil)
}

// AddSeed mixes b along with fresh entropy into the generator.  The caller
// retains ownership of b, which is not modified.
func (s *state[L, PL]) AddSeed(b []byte) {
	s.lock()
	defer s.unlock()

	if !s.seeded() {
		s.seed()
	}
	s.stir(b)
}

// PreventBacktracking erases buffered output and replaces the PRF state
// with one derived from the current state.  Once it returns, a compromise
// of the generator cannot reveal output produced before the call.
func (s *state[L, PL]) PreventBacktracking() {
	s.lock()
	defer s.unlock()

	if !s.seeded() {
		return
	}

	var next [prf.MaxOutputLen]byte
	s.generate(next[:s.prf.OutputLen])
	s.setup(next[:s.prf.StateBytes])
	memclear.Bytes(next[:])
}

// Close erases the state and buffered output of the generator.  A closed
// generator is seeded again from fresh entropy if it is used.
func (s *state[L, PL]) Close() error {
	s.lock()
	defer s.unlock()

	memclear.Bytes(s.prfState[:])
	memclear.Bytes(s.buffer[:])
	s.blockCounter = 0
	s.pos = 0
	s.magic = 0
	s.pid = 0
	return nil
}

// EntropySourceFlags returns the combined flags of every entropy source
// that contributed to the generator since it was created.
func (s *state[L, PL]) EntropySourceFlags() SourceFlags {
	s.lock()
	defer s.unlock()

	return s.entropySrcFlags
}

// LastEntropyFlags returns the flags of the entropy sources used by the
// most recent seed or stir.
func (s *state[L, PL]) LastEntropyFlags() SourceFlags {
	s.lock()
	defer s.unlock()

	return s.lastOSRNGFlags
}

// PRFName returns the name of the PRF used by the generator in the form
// algorithm/implementation/flavor.  It is empty for a zero value generator
// that has not produced output yet.
func (s *state[L, PL]) PRFName() string {
	s.lock()
	defer s.unlock()

	if s.prf.Func == nil {
		return ""
	}
	return s.prf.String()
}
