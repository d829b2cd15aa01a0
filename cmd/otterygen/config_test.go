// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/decred/ottery"
	"github.com/decred/slog"
)

// TestParseAndSetDebugLevels ensures debug level strings are validated and
// applied to the expected subsystems.
func TestParseAndSetDebugLevels(t *testing.T) {
	t.Cleanup(func() { setLogLevels(defaultLogLevel) })

	tests := []struct {
		name    string
		level   string
		want    map[string]slog.Level
		wantErr bool
	}{{
		name:  "all subsystems",
		level: "debug",
		want: map[string]slog.Level{"OGEN": slog.LevelDebug,
			"OTTR": slog.LevelDebug, "ENTR": slog.LevelDebug},
	}, {
		name:  "individual subsystems",
		level: "OTTR=trace,ENTR=warn",
		want: map[string]slog.Level{"OTTR": slog.LevelTrace,
			"ENTR": slog.LevelWarn},
	}, {
		name:    "invalid level",
		level:   "loud",
		wantErr: true,
	}, {
		name:    "unknown subsystem",
		level:   "NOPE=debug",
		wantErr: true,
	}, {
		name:    "missing level",
		level:   "OTTR=debug,ENTR",
		wantErr: true,
	}, {
		name:    "invalid subsystem level",
		level:   "OTTR=loud",
		wantErr: true,
	}}

	for _, test := range tests {
		setLogLevels(defaultLogLevel)
		err := parseAndSetDebugLevels(test.level)
		if (err != nil) != test.wantErr {
			t.Errorf("%s: unexpected error result: %v", test.name, err)
			continue
		}
		for subsys, want := range test.want {
			if got := subsystemLoggers[subsys].Level(); got != want {
				t.Errorf("%s: subsystem %s level -- got %v, want %v",
					test.name, subsys, got, want)
			}
		}
	}
}

// TestLoadConfig ensures command line options are translated into the
// generator configuration.
func TestLoadConfig(t *testing.T) {
	t.Cleanup(func() { setLogLevels(defaultLogLevel) })

	cfg, err := loadConfig([]string{"-n", "100", "--hex", "--prf",
		"chacha12", "--disablesource=rdrand", "--disablesource", "egd",
		"--stirafter=10", "--disablecpu=aes", "-d", "warn"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Count != 100 || !cfg.Hex {
		t.Fatalf("unexpected output options: %d, %v", cfg.Count, cfg.Hex)
	}

	ocfg, err := cfg.otteryConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ocfg.PRF != "chacha12" || ocfg.StirAfter != 10 {
		t.Fatalf("unexpected generator options: %q, %d", ocfg.PRF,
			ocfg.StirAfter)
	}
	if want := ottery.SourceRDRAND | ottery.SourceEGD; ocfg.DisabledSources != want {
		t.Fatalf("unexpected disabled sources -- got %v, want %v",
			ocfg.DisabledSources, want)
	}
	caps, err := cfg.cpuCapsToDisable()
	if err != nil || caps != ottery.CPUCapAES {
		t.Fatalf("unexpected cpu capabilities: %v, %v", caps, err)
	}

	badArgs := [][]string{
		{"--disablesource=lavalamp"},
		{"--disablecpu=avx9000"},
		{"-n", "-1"},
		{"--egdnet=tcp"},
		{"-d", "loud"},
		{"extra"},
		{"--nosuchflag"},
	}
	for _, args := range badArgs {
		cfg, err := loadConfig(args)
		if err == nil {
			_, err = cfg.otteryConfig()
		}
		if err == nil {
			_, err = cfg.cpuCapsToDisable()
		}
		if err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

// TestLogFile ensures logs are written to the rotated log file.
func TestLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "otterygen.log")
	t.Cleanup(func() {
		if logRotator != nil {
			logRotator.Close()
			logRotator = nil
		}
	})

	if _, err := loadConfig([]string{"--logfile", logFile}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logRotator == nil {
		t.Fatal("log rotator not created")
	}
}

// TestGenerate ensures the requested number of bytes is written and
// optionally hex encoded.
func TestGenerate(t *testing.T) {
	g, err := ottery.NewNoLock(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	for _, count := range []int64{1, 100, chunkSize, chunkSize + 3} {
		var buf bytes.Buffer
		n, err := generate(ctx, g, &buf, count, false)
		if err != nil || n != count || int64(buf.Len()) != count {
			t.Fatalf("raw %d: wrote %d (%d buffered): %v", count, n,
				buf.Len(), err)
		}

		buf.Reset()
		n, err = generate(ctx, g, &buf, count, true)
		if err != nil || n != count {
			t.Fatalf("hex %d: wrote %d: %v", count, n, err)
		}
		decoded, err := hex.DecodeString(strings.TrimSuffix(buf.String(), "\n"))
		if err != nil || int64(len(decoded)) != count {
			t.Fatalf("hex %d: invalid output: %v", count, err)
		}
	}
}

// TestGenerateCanceled ensures streaming stops once the context is canceled.
func TestGenerateCanceled(t *testing.T) {
	g, err := ottery.NewNoLock(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	n, err := generate(ctx, g, &buf, 0, false)
	if err != nil || n != 0 || buf.Len() != 0 {
		t.Fatalf("unexpected result: %d, %v", n, err)
	}
}

// TestOpenOutput ensures output files are created exclusively unless forced
// and that standard output survives closing the output.
func TestOpenOutput(t *testing.T) {
	for _, name := range []string{"", "-"} {
		f, closeOutput, err := openOutput(&config{Output: name})
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", name, err)
		}
		if f != os.Stdout {
			t.Fatalf("%q: output is not stdout", name)
		}
		if err := closeOutput(); err != nil {
			t.Fatalf("%q: unexpected close error: %v", name, err)
		}
		if _, err := os.Stdout.Stat(); errors.Is(err, os.ErrClosed) {
			t.Fatalf("%q: stdout was closed", name)
		}
	}

	path := filepath.Join(t.TempDir(), "random.bin")
	f, closeOutput, err := openOutput(&config{Output: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := closeOutput(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if _, err := f.Write([]byte{1}); !errors.Is(err, os.ErrClosed) {
		t.Fatalf("output file left open: %v", err)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	perm := fi.Mode().Perm()
	if runtime.GOOS != "windows" && perm&0077 != 0 {
		t.Fatalf("output file is accessible to others: %v", perm)
	}

	if _, _, err := openOutput(&config{Output: path}); !errors.Is(err, os.ErrExist) {
		t.Fatalf("unexpected error for existing file: %v", err)
	}
	_, closeOutput, err = openOutput(&config{Output: path, Force: true})
	if err != nil {
		t.Fatalf("unexpected error with force: %v", err)
	}
	closeOutput()
}
