// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entropy

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

// fakeSource describes a source used to drive Read in tests.
type fakeSource struct {
	name  string
	flags Flags
	fill  byte  // byte value written to the buffer
	short int   // number of bytes to produce when non-zero
	err   error // error to return instead of bytes
	off   bool  // report the source as unavailable
	calls int
}

// withSources replaces the package sources with the provided fakes for the
// duration of the test.
func withSources(t *testing.T, fakes ...*fakeSource) {
	t.Helper()
	srcs := make([]source, 0, len(fakes))
	for _, f := range fakes {
		f := f
		srcs = append(srcs, source{
			name:    f.name,
			flags:   f.flags,
			enabled: func(*Config) bool { return !f.off },
			read: func(_ *Config, buf []byte) (int, error) {
				f.calls++
				if f.err != nil {
					return 0, f.err
				}
				n := len(buf)
				if f.short != 0 {
					n = f.short
				}
				for i := 0; i < n; i++ {
					buf[i] = f.fill
				}
				return n, nil
			},
		})
	}
	old := sources
	sources = srcs
	t.Cleanup(func() { sources = old })
}

// TestReadAggregation ensures Read queries the eligible sources in order,
// appends their bytes and reports the combined flags.
func TestReadAggregation(t *testing.T) {
	errBroken := errors.New("broken")

	tests := []struct {
		name      string
		fakes     []*fakeSource
		cfg       Config
		require   Flags
		n         int
		wantBytes []byte
		wantFlags Flags
		wantCalls []int
		wantErr   error
	}{{
		name: "sources from distinct domains all contribute",
		fakes: []*fakeSource{
			{name: "os", flags: SrcGetRandom | DomOS | FlagStrong, fill: 1},
			{name: "cpu", flags: SrcRDRAND | DomCPU | FlagFast, fill: 2},
		},
		n:         4,
		wantBytes: []byte{1, 1, 1, 1, 2, 2, 2, 2},
		wantFlags: SrcGetRandom | SrcRDRAND | DomOS | DomCPU | FlagStrong |
			FlagFast,
		wantCalls: []int{1, 1},
	}, {
		name: "second source of a satisfied domain is skipped",
		fakes: []*fakeSource{
			{name: "getrandom", flags: SrcGetRandom | DomOS | FlagStrong, fill: 1},
			{name: "randomdev", flags: SrcRandomDev | DomOS | FlagStrong, fill: 2},
		},
		n:         3,
		wantBytes: []byte{1, 1, 1},
		wantFlags: SrcGetRandom | DomOS | FlagStrong,
		wantCalls: []int{1, 0},
	}, {
		name: "failed source falls through to the next in its domain",
		fakes: []*fakeSource{
			{name: "getrandom", flags: SrcGetRandom | DomOS, err: errBroken},
			{name: "randomdev", flags: SrcRandomDev | DomOS | FlagStrong, fill: 7},
		},
		n:         2,
		wantBytes: []byte{7, 7},
		wantFlags: SrcRandomDev | DomOS | FlagStrong,
		wantCalls: []int{1, 1},
	}, {
		name: "short reads are accepted",
		fakes: []*fakeSource{
			{name: "egd", flags: SrcEGD | DomEGD | FlagStrong, fill: 9, short: 2},
			{name: "cpu", flags: SrcRDRAND | DomCPU | FlagFast, fill: 3},
		},
		n:         4,
		wantBytes: []byte{9, 9, 3, 3, 3, 3},
		wantFlags: SrcEGD | SrcRDRAND | DomEGD | DomCPU | FlagStrong | FlagFast,
		wantCalls: []int{1, 1},
	}, {
		name: "required flags filter sources",
		fakes: []*fakeSource{
			{name: "os", flags: SrcRandomDev | DomOS | FlagStrong, fill: 1},
			{name: "cpu", flags: SrcRDRAND | DomCPU | FlagFast, fill: 2},
		},
		require:   FlagFast,
		n:         2,
		wantBytes: []byte{2, 2},
		wantFlags: SrcRDRAND | DomCPU | FlagFast,
		wantCalls: []int{0, 1},
	}, {
		name: "disabled sources are not queried",
		fakes: []*fakeSource{
			{name: "os", flags: SrcRandomDev | DomOS | FlagStrong, fill: 1},
			{name: "cpu", flags: SrcRDRAND | DomCPU | FlagFast, fill: 2},
		},
		cfg:       Config{Disabled: SrcRandomDev},
		n:         2,
		wantBytes: []byte{2, 2},
		wantFlags: SrcRDRAND | DomCPU | FlagFast,
		wantCalls: []int{0, 1},
	}, {
		name: "disabling a domain disables its sources",
		fakes: []*fakeSource{
			{name: "os", flags: SrcRandomDev | DomOS | FlagStrong, fill: 1},
			{name: "cpu", flags: SrcRDRAND | DomCPU | FlagFast, fill: 2},
		},
		cfg:       Config{Disabled: DomCPU},
		n:         1,
		wantBytes: []byte{1},
		wantFlags: SrcRandomDev | DomOS | FlagStrong,
		wantCalls: []int{1, 0},
	}, {
		name: "unavailable sources are not eligible",
		fakes: []*fakeSource{
			{name: "os", flags: SrcRandomDev | DomOS, off: true},
		},
		n:         1,
		wantCalls: []int{0},
		wantErr:   ErrNoEligibleSources,
	}, {
		name: "no source matches the required flags",
		fakes: []*fakeSource{
			{name: "os", flags: SrcRandomDev | DomOS | FlagStrong, fill: 1},
		},
		require:   FlagFast,
		n:         1,
		wantCalls: []int{0},
		wantErr:   ErrNoEligibleSources,
	}, {
		name: "every eligible source fails",
		fakes: []*fakeSource{
			{name: "os", flags: SrcRandomDev | DomOS, err: errBroken},
			{name: "cpu", flags: SrcRDRAND | DomCPU, short: -1},
		},
		n:         4,
		wantCalls: []int{1, 1},
		wantErr:   ErrAllSourcesFailed,
	}}

	useTestLogger(t)
	for _, test := range tests {
		withSources(t, test.fakes...)

		buf := make([]byte, BufSize(test.n))
		n, flags, err := Read(&test.cfg, test.require, buf, test.n)
		if !errors.Is(err, test.wantErr) {
			t.Errorf("%s: unexpected error -- got %v, want %v", test.name,
				err, test.wantErr)
			continue
		}
		for i, f := range test.fakes {
			if f.calls != test.wantCalls[i] {
				t.Errorf("%s: source %s queried %d times, want %d",
					test.name, f.name, f.calls, test.wantCalls[i])
			}
		}
		if test.wantErr != nil {
			if n != 0 || flags != 0 {
				t.Errorf("%s: failed read reported %d bytes with flags %v",
					test.name, n, flags)
			}
			continue
		}
		if !bytes.Equal(buf[:n], test.wantBytes) {
			t.Errorf("%s: unexpected bytes -- got %s want %s", test.name,
				spew.Sdump(buf[:n]), spew.Sdump(test.wantBytes))
			continue
		}
		if flags != test.wantFlags {
			t.Errorf("%s: unexpected flags -- got %v, want %v", test.name,
				flags, test.wantFlags)
		}
	}
}

// TestReadFailureDetails ensures the error for all sources failing names
// every source that failed.
func TestReadFailureDetails(t *testing.T) {
	withSources(t,
		&fakeSource{name: "first", flags: DomOS, err: errors.New("no device")},
		&fakeSource{name: "second", flags: DomCPU, err: errors.New("underflow")},
	)

	buf := make([]byte, BufSize(8))
	_, _, err := Read(&Config{}, 0, buf, 8)
	if !errors.Is(err, ErrAllSourcesFailed) {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"first: no device", "second: underflow"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

// TestReadBufferTooSmall ensures Read refuses buffers that cannot hold the
// output of every source.
func TestReadBufferTooSmall(t *testing.T) {
	withSources(t,
		&fakeSource{name: "a", flags: DomOS, fill: 1},
		&fakeSource{name: "b", flags: DomCPU, fill: 2},
	)

	buf := make([]byte, BufSize(16)-1)
	_, _, err := Read(&Config{}, 0, buf, 16)
	if !errors.Is(err, ErrBufferTooSmall) {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestCheckConfig ensures configurations that disable every source are
// rejected.
func TestCheckConfig(t *testing.T) {
	withSources(t,
		&fakeSource{name: "randomdev", flags: SrcRandomDev | DomOS},
		&fakeSource{name: "rdrand", flags: SrcRDRAND | DomCPU},
	)

	if err := CheckConfig(&Config{}); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
	if err := CheckConfig(&Config{Disabled: SrcRandomDev}); err != nil {
		t.Fatalf("config with a usable source rejected: %v", err)
	}
	err := CheckConfig(&Config{Disabled: SrcRandomDev | SrcRDRAND})
	if !errors.Is(err, ErrNoEligibleSources) {
		t.Fatalf("unexpected error: %v", err)
	}
	err = CheckConfig(&Config{Disabled: AllSources})
	if !errors.Is(err, ErrNoEligibleSources) {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestReadSystemSources ensures the real sources of the running platform
// produce strong operating system entropy.
func TestReadSystemSources(t *testing.T) {
	const n = 40
	buf := make([]byte, BufSize(n))
	used, flags, err := Read(&Config{}, 0, buf, n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if used < n {
		t.Fatalf("read %d bytes, want at least %d", used, n)
	}
	if flags&(DomOS|FlagStrong) != DomOS|FlagStrong {
		t.Fatalf("missing strong OS entropy in flags %v", flags)
	}
	if bytes.Equal(buf[:n], make([]byte, n)) {
		t.Fatal("system entropy returned all zero bytes")
	}

	// Requiring strong sources while disabling the whole OS domain leaves
	// only the daemon, which is not configured.
	cfg := Config{Disabled: DomOS}
	_, _, err = Read(&cfg, FlagStrong, buf, n)
	if !errors.Is(err, ErrNoEligibleSources) {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestFlagsStringer tests the stringized output for the Flags type.
func TestFlagsStringer(t *testing.T) {
	tests := []struct {
		in   Flags
		want string
	}{
		{0, "none"},
		{FlagStrong, "strong"},
		{SrcGetRandom | DomOS | FlagStrong | FlagFast, "strong|fast|os|getrandom"},
		{SrcRDRAND | DomCPU, "cpu|rdrand"},
		{SrcEGD | DomEGD, "egd-domain|egd"},
		{0x08000000, "unknown"},
	}

	for i, test := range tests {
		result := test.in.String()
		if result != test.want {
			t.Errorf("#%d: got: %s want: %s", i, result, test.want)
			continue
		}
	}
}

// TestParseSource ensures every source name maps back to its source flag.
func TestParseSource(t *testing.T) {
	tests := []struct {
		name string
		want Flags
		ok   bool
	}{
		{"getrandom", SrcGetRandom, true},
		{"randomdev", SrcRandomDev, true},
		{"cryptorand", SrcCryptoRand, true},
		{"RDRAND", SrcRDRAND, true},
		{" egd", SrcEGD, true},
		{"cryptgenrandom", 0, false},
	}

	for _, test := range tests {
		got, ok := ParseSource(test.name)
		if got != test.want || ok != test.ok {
			t.Errorf("ParseSource(%q) = %v, %v; want %v, %v", test.name,
				got, ok, test.want, test.ok)
		}
	}

	if names := SourceNames(); len(names) != len(sources) {
		t.Fatalf("got %d source names for %d sources", len(names),
			len(sources))
	}
}
