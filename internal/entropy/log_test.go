// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package entropy

import (
	"testing"

	"github.com/decred/slog"
)

type testLog struct {
	*testing.T
}

func (t *testLog) Write(b []byte) (int, error) {
	t.Logf("%s", b)
	return len(b), nil
}

// useTestLogger sets the package logger to a backend that writes trace-level
// logs to the test log and restores the disabled logger when the test ends.
//
// Due to the use of a global logger variable, tests using it must not be
// run in parallel.
func useTestLogger(t *testing.T) {
	backend := slog.NewBackend(&testLog{T: t})
	l := backend.Logger("TEST")
	l.SetLevel(slog.LevelTrace)
	UseLogger(l)
	t.Cleanup(func() {
		UseLogger(slog.Disabled)
	})
}
