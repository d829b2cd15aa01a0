// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entropy

import (
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// egdReadNonBlocking is the EGD command to read up to 255 bytes without
// waiting for the daemon's pool to fill.
const egdReadNonBlocking = 0x01

// egdMaxRead is the largest request a single EGD command can carry.
const egdMaxRead = 255

// egdNetwork returns the network to dial for the configured daemon.
func egdNetwork(cfg *Config) string {
	if cfg.EGDNetwork != "" {
		return cfg.EGDNetwork
	}
	if strings.ContainsRune(cfg.EGDAddress, '/') {
		return "unix"
	}
	return "tcp"
}

// readEGD requests len(buf) bytes from an entropy gathering daemon.  The
// daemon may return fewer bytes than requested.
func readEGD(cfg *Config, buf []byte) (int, error) {
	timeout := cfg.EGDTimeout
	if timeout <= 0 {
		timeout = DefaultEGDTimeout
	}
	want := len(buf)
	if want > egdMaxRead {
		want = egdMaxRead
	}

	d := net.Dialer{Timeout: timeout}
	conn, err := d.Dial(egdNetwork(cfg), cfg.EGDAddress)
	if err != nil {
		return 0, err
	}
	defer conn.Close()
	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return 0, err
	}

	if _, err := conn.Write([]byte{egdReadNonBlocking, byte(want)}); err != nil {
		return 0, err
	}
	var count [1]byte
	if _, err := io.ReadFull(conn, count[:]); err != nil {
		return 0, err
	}
	got := int(count[0])
	if got > want {
		str := fmt.Sprintf("daemon announced %d bytes for a request of %d",
			got, want)
		return 0, makeError(ErrEGDProtocol, str)
	}
	if _, err := io.ReadFull(conn, buf[:got]); err != nil {
		return 0, err
	}
	return got, nil
}
