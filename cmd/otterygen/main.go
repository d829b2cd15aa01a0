// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/decred/ottery"
	"github.com/decred/ottery/internal/memclear"
	"github.com/hashicorp/go-secure-stdlib/mlock"
	"golang.org/x/term"
)

// chunkSize is the number of bytes generated per write.
const chunkSize = 64 * 1024

// errTerminal is returned when raw output would be written to a terminal.
var errTerminal = errors.New("refusing to write raw random bytes to a " +
	"terminal -- use --hex or --force")

// generate writes count bytes read from r to w, or writes until ctx is
// canceled when count is zero.  Bytes are hex encoded when hexOut is set.
// It returns the number of random bytes written.
func generate(ctx context.Context, r io.Reader, w io.Writer, count int64, hexOut bool) (int64, error) {
	out := w
	if hexOut {
		out = hex.NewEncoder(w)
	}

	buf := make([]byte, chunkSize)
	defer memclear.Bytes(buf)
	var written int64
	for count == 0 || written < count {
		if shutdownRequested(ctx) {
			break
		}
		n := int64(len(buf))
		if count != 0 && count-written < n {
			n = count - written
		}
		if _, err := io.ReadFull(r, buf[:n]); err != nil {
			return written, err
		}
		if _, err := out.Write(buf[:n]); err != nil {
			return written, err
		}
		written += n
	}
	if hexOut {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return written, err
		}
	}
	return written, nil
}

// otterygenMain is the real main function for otterygen.  It is necessary to
// work around the fact that deferred functions do not run when os.Exit() is
// called.
func otterygenMain() error {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil || cfg == nil {
		return err
	}
	defer func() {
		if logRotator != nil {
			logRotator.Close()
		}
	}()

	if cfg.MLock {
		if !mlock.Supported() {
			return errors.New("memory locking is not supported on this " +
				"platform")
		}
		if err := mlock.LockMemory(); err != nil {
			return fmt.Errorf("unable to lock memory: %w", err)
		}
		log.Debug("Locked process memory")
	}

	caps, err := cfg.cpuCapsToDisable()
	if err != nil {
		return err
	}
	ottery.DisableCPUCapabilities(caps)

	ocfg, err := cfg.otteryConfig()
	if err != nil {
		return err
	}
	g, err := ottery.New(ocfg)
	if err != nil {
		return err
	}
	defer g.Close()

	f, closeOutput, err := openOutput(cfg)
	if err != nil {
		return err
	}
	defer closeOutput()
	if !cfg.Hex && !cfg.Force && term.IsTerminal(int(f.Fd())) {
		return errTerminal
	}

	ctx := shutdownListener()
	w := bufio.NewWriterSize(f, chunkSize)
	n, err := generate(ctx, g, w, cfg.Count, cfg.Hex)
	if err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}

	log.Debugf("Wrote %d bytes using prf %s with entropy from %v", n,
		g.PRFName(), g.EntropySourceFlags())
	return nil
}

func main() {
	ottery.SetFatalHandler(func(err error) {
		log.Criticalf("Unrecoverable generator failure: %v", err)
		if logRotator != nil {
			logRotator.Close()
		}
		os.Exit(1)
	})

	if err := otterygenMain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
