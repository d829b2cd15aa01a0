// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package memclear

import (
	"bytes"
	"testing"
)

// TestBytes ensures clearing a byte slice zeroes exactly the provided region.
func TestBytes(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		start int
		end   int
	}{
		{name: "empty", size: 0, start: 0, end: 0},
		{name: "whole buffer", size: 64, start: 0, end: 64},
		{name: "prefix", size: 64, start: 0, end: 17},
		{name: "suffix", size: 1024, start: 1000, end: 1024},
		{name: "middle", size: 256, start: 40, end: 200},
	}

	for _, test := range tests {
		buf := bytes.Repeat([]byte{0xa5}, test.size)
		Bytes(buf[test.start:test.end])

		for i, b := range buf {
			inRange := i >= test.start && i < test.end
			if inRange && b != 0 {
				t.Errorf("%s: byte %d not cleared: %#x", test.name, i, b)
				break
			}
			if !inRange && b != 0xa5 {
				t.Errorf("%s: byte %d outside range modified: %#x",
					test.name, i, b)
				break
			}
		}
	}
}

// TestWords ensures clearing a word slice zeroes every element.
func TestWords(t *testing.T) {
	w := []uint32{0xffffffff, 1, 2, 0x61707865}
	Words(w[1:])
	if w[0] != 0xffffffff {
		t.Fatalf("word outside range modified: %#x", w[0])
	}
	for i, v := range w[1:] {
		if v != 0 {
			t.Fatalf("word %d not cleared: %#x", i+1, v)
		}
	}
}
