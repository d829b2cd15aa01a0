// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entropy

import (
	"bytes"
	"testing"
)

// TestReadRDRAND ensures reads that are not a multiple of the word size are
// filled exactly and reported with the CPU source flags.
func TestReadRDRAND(t *testing.T) {
	if !rdrandEnabled(nil) {
		t.Skip("cpu does not support rdrand")
	}

	const n = 13
	const sentinel = 0xa5
	buf := bytes.Repeat([]byte{sentinel}, n+8)
	got, err := readRDRAND(nil, buf[:n])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != n {
		t.Fatalf("read %d bytes, want %d", got, n)
	}
	if !bytes.Equal(buf[n:], bytes.Repeat([]byte{sentinel}, 8)) {
		t.Fatalf("read past the requested length: %x", buf[n:])
	}
	if bytes.Equal(buf[:n], make([]byte, n)) {
		t.Fatal("rdrand returned all zero bytes")
	}

	// Disabling the other domains leaves the instruction as the only
	// source.
	cfg := Config{Disabled: DomOS | DomEGD}
	rbuf := make([]byte, BufSize(n))
	used, flags, err := Read(&cfg, 0, rbuf, n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if used != n {
		t.Fatalf("read %d bytes, want %d", used, n)
	}
	if want := SrcRDRAND | DomCPU | FlagFast; flags != want {
		t.Fatalf("unexpected flags -- got %v, want %v", flags, want)
	}
}
