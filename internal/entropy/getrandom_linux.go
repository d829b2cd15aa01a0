// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:build linux

package entropy

import (
	"errors"

	"golang.org/x/sys/unix"
)

const haveGetRandom = true

// readGetRandom fills buf using the getrandom system call.  Short reads are
// retried until buf is full.
func readGetRandom(_ *Config, buf []byte) (int, error) {
	var total int
	for total < len(buf) {
		n, err := unix.Getrandom(buf[total:], 0)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}
