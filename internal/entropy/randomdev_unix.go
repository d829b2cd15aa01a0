// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

//go:build unix

package entropy

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

const haveRandomDev = true

// readRandomDev fills buf from the configured random device.  The path must
// name a character device so a regular file planted at the path is never
// mistaken for a source of entropy.
func readRandomDev(cfg *Config, buf []byte) (int, error) {
	path := cfg.URandomDevice
	if path == "" {
		path = DefaultURandomDevice
	}

	f, err := os.OpenFile(path, os.O_RDONLY|unix.O_NOCTTY, 0)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var st unix.Stat_t
	if err := unix.Fstat(int(f.Fd()), &st); err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	if st.Mode&unix.S_IFMT != unix.S_IFCHR {
		str := fmt.Sprintf("%s is not a character device", path)
		return 0, makeError(ErrNotCharDevice, str)
	}

	n, err := io.ReadFull(f, buf)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	return n, nil
}
