// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entropy

import (
	"encoding/binary"
	"fmt"

	"github.com/decred/ottery/internal/cpucap"
	"github.com/decred/ottery/internal/memclear"
)

// rdrandRetries is the number of attempts made for each word before the
// instruction is considered to have failed.
const rdrandRetries = 10

// rdrand64 executes RDRAND.  ok is false when no random value was ready.
func rdrand64() (v uint64, ok bool)

func rdrandEnabled(*Config) bool {
	return cpucap.Probe()&cpucap.Rand != 0
}

// readRDRAND fills buf eight bytes at a time from the RDRAND instruction.
func readRDRAND(_ *Config, buf []byte) (int, error) {
	var word [8]byte
	defer memclear.Bytes(word[:])
	for i := 0; i < len(buf); i += len(word) {
		var v uint64
		var ok bool
		for try := 0; try < rdrandRetries && !ok; try++ {
			v, ok = rdrand64()
		}
		if !ok {
			str := fmt.Sprintf("rdrand underflow after %d attempts",
				rdrandRetries)
			return 0, makeError(ErrHardwareUnderflow, str)
		}
		binary.LittleEndian.PutUint64(word[:], v)
		copy(buf[i:], word[:])
	}
	return len(buf), nil
}
